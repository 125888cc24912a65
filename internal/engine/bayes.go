package engine

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

// BayesOutcome is the update stage's snapshot plus its per-risk audit detail.
type BayesOutcome struct {
	Probs   result.ProbabilityMap
	Details map[core.RiskID]result.PosteriorDetail
}

// UpdatePosteriors refines each scored probability through Beta-Binomial
// conjugacy. Risks with declared evidence counts get the textbook update
// alpha' = alpha + successes, beta' = beta + failures. Risks with a prior but
// no evidence treat the scored probability as an observed rate over pseudoN
// pseudo-trials. Risks without a prior pass through unchanged; the identity
// is recorded explicitly so the absence of an update stays auditable.
func UpdatePosteriors(model *scenario.Model, scored result.ProbabilityMap, pseudoN float64) BayesOutcome {
	out := BayesOutcome{
		Probs:   make(result.ProbabilityMap, len(model.Risks)),
		Details: make(map[core.RiskID]result.PosteriorDetail, len(model.Risks)),
	}

	for _, r := range model.Risks {
		p := scored[r.ID]

		if r.Prior == nil {
			out.Probs[r.ID] = p
			out.Details[r.ID] = result.PosteriorDetail{Updated: false}
			continue
		}

		alpha, beta := r.Prior.Alpha, r.Prior.Beta
		if r.Evidence != nil {
			alpha += r.Evidence.Successes
			beta += r.Evidence.Failures
		} else {
			alpha += pseudoN * p
			beta += pseudoN * (1 - p)
		}

		posterior := distuv.Beta{Alpha: alpha, Beta: beta}
		mean := alpha / (alpha + beta)

		out.Probs[r.ID] = mean
		out.Details[r.ID] = result.PosteriorDetail{
			Updated:             true,
			AlphaPrior:          r.Prior.Alpha,
			BetaPrior:           r.Prior.Beta,
			AlphaPosterior:      alpha,
			BetaPosterior:       beta,
			EffectiveSampleSize: r.Prior.EffectiveSampleSize(),
			CredibleLow:         posterior.Quantile(0.025),
			CredibleHigh:        posterior.Quantile(0.975),
		}
	}

	return out
}
