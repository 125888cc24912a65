package engine

import (
	"context"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
)

// NoopReliability is the default reliability stage: it leaves the result
// unannotated. The reliability extension is optional and not hardened.
type NoopReliability struct{}

func (NoopReliability) Estimate(ctx context.Context, res *result.PipelineResult) (*result.ReliabilityResult, error) {
	return nil, nil
}

// ComplementReliability models system reliability as 1 - P(top event),
// using the primary top event's analytic value.
type ComplementReliability struct{}

func (ComplementReliability) Estimate(ctx context.Context, res *result.PipelineResult) (*result.ReliabilityResult, error) {
	top, ok := res.PrimaryTopEvent()
	if !ok {
		return nil, nil
	}
	return &result.ReliabilityResult{
		Estimator:         "complement",
		SystemReliability: clamp01(1 - top.Analytic),
	}, nil
}
