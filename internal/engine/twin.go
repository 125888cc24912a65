package engine

import (
	"context"
	"math/rand"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

// TwinGenerator derives adversarial twins: whole-scenario perturbations that
// bound how far the top event can move under systematic assumption error.
// Twins are evaluated independently of each other and of the baseline; no
// twin's output feeds another twin's input.
type TwinGenerator struct {
	pipeline *Pipeline
}

// NewTwinGenerator wraps a baseline pipeline.
func NewTwinGenerator(p *Pipeline) *TwinGenerator {
	return &TwinGenerator{pipeline: p}
}

// Evaluate runs every twin declared on the scenario against the baseline.
func (g *TwinGenerator) Evaluate(ctx context.Context, model *scenario.Model, baseline *result.PipelineResult) ([]result.TwinResult, error) {
	twins := make([]result.TwinResult, 0, len(model.Twins))
	for _, spec := range model.Twins {
		tr, err := g.EvaluateSpec(ctx, model, baseline, spec)
		if err != nil {
			return nil, err
		}
		twins = append(twins, tr)
	}
	return twins, nil
}

// EvaluateSpec perturbs every risk's scored probability per the spec's mode,
// re-runs the analytic pipeline on the perturbed scenario, and reports the
// top-event shift plus the twin's full resolved mapping.
//
// Modes draw a per-risk multiplier from the spec's seeded stream:
//
//	optimistic:  U(1-bound, 1)        systematic understatement
//	pessimistic: U(1, 1+bound)        systematic overstatement
//	chaotic:     U(1-bound, 1+bound)  bounded noise, both directions
//
// Risks perturb in declaration order, so a given (spec, scenario) pair is
// reproducible bit for bit.
func (g *TwinGenerator) EvaluateSpec(ctx context.Context, model *scenario.Model, baseline *result.PipelineResult, spec scenario.TwinSpec) (result.TwinResult, error) {
	rng := rand.New(rand.NewSource(spec.Seed))

	perturbed := make(map[core.RiskID]float64, len(model.Risks))
	for _, rid := range model.RiskIDs() {
		perturbed[rid] = clamp01(baseline.Scored[rid] * twinMultiplier(rng, spec))
	}

	res, err := g.pipeline.RunAnalytic(ctx, model.WithProbabilities(perturbed))
	if err != nil {
		return result.TwinResult{}, err
	}

	baseTop, _ := baseline.PrimaryTopEvent()
	twinTop, _ := res.PrimaryTopEvent()

	return result.TwinResult{
		TwinID:   spec.ID,
		Mode:     spec.Mode,
		Bound:    spec.Bound,
		Seed:     spec.Seed,
		TopEvent: twinTop.Analytic,
		Delta:    twinTop.Analytic - baseTop.Analytic,
		Final:    res.Final.Clone(),
	}, nil
}

func twinMultiplier(rng *rand.Rand, spec scenario.TwinSpec) float64 {
	switch spec.Mode {
	case scenario.TwinOptimistic:
		return 1 - spec.Bound*rng.Float64()
	case scenario.TwinPessimistic:
		return 1 + spec.Bound*rng.Float64()
	default: // chaotic
		return 1 + spec.Bound*(2*rng.Float64()-1)
	}
}
