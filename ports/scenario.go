package ports

import (
	"context"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

// ScenarioSourcePort loads scenario declarations from an external source.
// Implementations return a fully validated model or an error; the pipeline
// never sees partially decoded input.
type ScenarioSourcePort interface {
	Load(ctx context.Context, path string) (*scenario.Model, error)
}
