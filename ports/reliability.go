package ports

import (
	"context"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
)

// ReliabilityPort is the pluggable reliability/availability stage. It runs
// after the fault tree resolves and may annotate the result with a system
// reliability estimate. The stage is optional and not hardened; the default
// implementation is a no-op.
type ReliabilityPort interface {
	// Estimate derives a reliability figure from the resolved result, or
	// returns nil to leave the result unannotated.
	Estimate(ctx context.Context, res *result.PipelineResult) (*result.ReliabilityResult, error)
}
