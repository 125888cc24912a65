package engine

import (
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

// CorrelationModel adjusts one group member's independent probability for a
// shared failure cause. The exact numeric form of the adjustment is an
// implementation choice, so both supported models sit behind this interface
// and the chosen one is named in the run configuration.
type CorrelationModel interface {
	Name() string
	// Adjust combines the member's independent probability with the group
	// factor and the group's shared term. The result is clamped to [0,1]
	// by the caller.
	Adjust(independent, factor, shared float64) float64
}

// SharedTermModel inflates each member's probability toward the shared term:
//
//	p' = p + factor * (1 - p) * shared
//
// With shared = max member probability this raises every member's failure
// probability beyond independence without ever exceeding 1.
type SharedTermModel struct{}

func (SharedTermModel) Name() string { return CorrelationSharedTerm }

func (SharedTermModel) Adjust(independent, factor, shared float64) float64 {
	return independent + factor*(1-independent)*shared
}

// BetaFactorModel is the classic beta-factor approximation:
//
//	p' = (1 - beta) * p + beta * p_common
//
// where p_common is the group's shared term.
type BetaFactorModel struct{}

func (BetaFactorModel) Name() string { return CorrelationBetaFactor }

func (BetaFactorModel) Adjust(independent, factor, shared float64) float64 {
	return (1-factor)*independent + factor*shared
}

func correlationModel(name string) CorrelationModel {
	if name == CorrelationBetaFactor {
		return BetaFactorModel{}
	}
	return SharedTermModel{}
}

// ApplyCommonCause adjusts group members' probabilities for shared failure
// causes. The shared term per group is the conservative choice: the largest
// member probability. Risks outside any group pass through unchanged. The
// stage is a pure function of the probability map and the group definitions;
// fault-tree topology is untouched.
func ApplyCommonCause(model *scenario.Model, probs result.ProbabilityMap, corr CorrelationModel) result.ProbabilityMap {
	out := probs.Clone()

	for _, g := range model.Groups {
		shared := 0.0
		for _, member := range g.Members {
			if p, ok := probs[member]; ok && p > shared {
				shared = p
			}
		}
		for _, member := range g.Members {
			p, ok := probs[member]
			if !ok {
				continue
			}
			out[member] = clamp01(corr.Adjust(p, g.Factor, shared))
		}
	}

	return out
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
