package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

// Pipeline runs the baseline stage chain over an immutable scenario:
// score -> Bayesian update -> common-cause adjustment -> cascade ->
// fault tree (analytic, then optionally Monte Carlo) -> reliability.
// A Pipeline holds no mutable state across invocations; every Run derives
// everything from its inputs plus the configured seed.
type Pipeline struct {
	cfg         RunConfig
	reliability ports.ReliabilityPort
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithReliability installs the optional reliability stage.
func WithReliability(port ports.ReliabilityPort) Option {
	return func(p *Pipeline) { p.reliability = port }
}

// New creates a pipeline with the given run configuration.
func New(cfg RunConfig, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Config returns the run configuration the pipeline was built with.
func (p *Pipeline) Config() RunConfig {
	return p.cfg
}

// Run executes the full baseline pipeline including the Monte Carlo pass.
func (p *Pipeline) Run(ctx context.Context, model *scenario.Model) (*result.PipelineResult, error) {
	if err := p.cfg.ValidateMonteCarlo(); err != nil {
		return nil, err
	}
	return p.run(ctx, model, true)
}

// RunAnalytic executes the baseline pipeline in analytic-only mode. This is
// the black-box function re-invoked per sensitivity step and per twin.
func (p *Pipeline) RunAnalytic(ctx context.Context, model *scenario.Model) (*result.PipelineResult, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	return p.run(ctx, model, false)
}

func (p *Pipeline) run(ctx context.Context, model *scenario.Model, sampled bool) (*result.PipelineResult, error) {
	// Fail fast: every structural and validation problem aborts here,
	// before any stage produces partial work.
	if err := model.Validate(); err != nil {
		return nil, err
	}
	if model.Tree != nil {
		known := make(map[core.RiskID]bool, len(model.Risks))
		for _, r := range model.Risks {
			known[r.ID] = true
		}
		if err := model.Tree.Validate(known); err != nil {
			return nil, err
		}
	}

	scored, err := ScoreRisks(model)
	if err != nil {
		return nil, err
	}

	bayes := UpdatePosteriors(model, scored.Probs, p.cfg.PseudoN)
	adjusted := ApplyCommonCause(model, bayes.Probs, correlationModel(p.cfg.Correlation))
	cascaded := PropagateCascade(model, adjusted, p.cfg.Cascade)

	res := &result.PipelineResult{
		RunID:        core.NewRunID(),
		ScenarioName: model.Name,
		Fingerprint:  p.fingerprint(model),
		CreatedAt:    core.Now(),
		Seed:         p.cfg.Seed,
		Scored:       scored.Probs,
		Saturated:    scored.Saturated,
		Posterior:    bayes.Probs,
		Posteriors:   bayes.Details,
		Adjusted:     adjusted,
		Final:        cascaded.Probs,
		Cascade:      cascaded.Trace,
	}

	if model.Tree != nil {
		analytic := EvaluateAnalytic(model.Tree, cascaded.Probs)
		res.Gates = make(map[string]result.GateResult, len(analytic.Gates))
		for id, pGate := range analytic.Gates {
			res.Gates[id] = result.GateResult{Analytic: pGate}
		}
		res.TopEvents = analytic.TopEvents

		if sampled {
			mcSeed := core.DeriveSeed(p.cfg.Seed, "fault_tree_mc", model.Name)
			mc, err := EvaluateMonteCarlo(ctx, model.Tree, model.RiskIDs(), cascaded.Probs, p.cfg.MonteCarlo, mcSeed)
			if err != nil {
				return nil, fmt.Errorf("monte carlo pass: %w", err)
			}
			for id, est := range mc.Gates {
				gr := res.Gates[id]
				e := est
				gr.MonteCarlo = &e
				res.Gates[id] = gr
			}
			for i := range res.TopEvents {
				if est, ok := mc.TopEvents[res.TopEvents[i].ID]; ok {
					e := est
					res.TopEvents[i].MonteCarlo = &e
				}
			}
		}
	}

	if p.reliability != nil {
		rel, err := p.reliability.Estimate(ctx, res)
		if err != nil {
			return nil, fmt.Errorf("reliability stage: %w", err)
		}
		res.Reliability = rel
	}

	return res, nil
}

// fingerprint hashes the scenario's declared inputs with the run seed so a
// stored result can be matched back to exactly what produced it.
func (p *Pipeline) fingerprint(model *scenario.Model) core.Hash {
	raw, err := json.Marshal(model)
	if err != nil {
		return core.NewHash([]byte(model.Name))
	}
	return core.ComputeScenarioFingerprint(model.Name, p.cfg.Seed, map[string]string{
		"model": core.NewHash(raw).String(),
	})
}
