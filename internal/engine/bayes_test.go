package engine

import (
	"math"
	"testing"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

func TestUpdatePosteriors_IdentityWithoutPrior(t *testing.T) {
	model := &scenario.Model{
		Name:  "bayes",
		Risks: []scenario.Risk{{ID: "r_plain", Probability: f64(0.42)}},
	}
	scored := result.ProbabilityMap{"r_plain": 0.42}

	out := UpdatePosteriors(model, scored, 5)

	// No declared prior means an explicit identity pass, not a default
	// prior guess.
	if got := out.Probs["r_plain"]; got != 0.42 {
		t.Errorf("expected identity 0.42, got %v", got)
	}
	if out.Details["r_plain"].Updated {
		t.Error("identity pass must be recorded as not updated")
	}
}

func TestUpdatePosteriors_EvidenceCounts(t *testing.T) {
	model := &scenario.Model{
		Name: "bayes",
		Risks: []scenario.Risk{{
			ID:          "r_obs",
			Probability: f64(0.3),
			Prior:       &scenario.BetaPrior{Alpha: 2, Beta: 8},
			Evidence:    &scenario.Evidence{Successes: 3, Failures: 7},
		}},
	}
	scored := result.ProbabilityMap{"r_obs": 0.3}

	out := UpdatePosteriors(model, scored, 5)

	// alpha' = 2+3 = 5, beta' = 8+7 = 15, mean = 5/20.
	if got := out.Probs["r_obs"]; math.Abs(got-0.25) > 1e-12 {
		t.Errorf("expected posterior mean 0.25, got %v", got)
	}
	detail := out.Details["r_obs"]
	if !detail.Updated {
		t.Fatal("expected an update")
	}
	if detail.AlphaPosterior != 5 || detail.BetaPosterior != 15 {
		t.Errorf("unexpected posterior parameters (%v, %v)", detail.AlphaPosterior, detail.BetaPosterior)
	}
	if detail.EffectiveSampleSize != 10 {
		t.Errorf("effective sample size should surface prior weight 10, got %v", detail.EffectiveSampleSize)
	}
	if detail.CredibleLow >= detail.CredibleHigh {
		t.Errorf("credible interval is degenerate: [%v, %v]", detail.CredibleLow, detail.CredibleHigh)
	}
}

func TestUpdatePosteriors_PseudoSampleSize(t *testing.T) {
	model := &scenario.Model{
		Name: "bayes",
		Risks: []scenario.Risk{{
			ID:          "r_rate",
			Probability: f64(0.6),
			Prior:       &scenario.BetaPrior{Alpha: 1, Beta: 1},
		}},
	}
	scored := result.ProbabilityMap{"r_rate": 0.6}

	out := UpdatePosteriors(model, scored, 10)

	// alpha' = 1 + 10*0.6 = 7, beta' = 1 + 10*0.4 = 5, mean = 7/12.
	want := 7.0 / 12.0
	if got := out.Probs["r_rate"]; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestUpdatePosteriors_StrongerPriorResistsEvidence(t *testing.T) {
	weak := &scenario.Model{
		Name: "bayes",
		Risks: []scenario.Risk{{
			ID: "r", Probability: f64(0.9),
			Prior: &scenario.BetaPrior{Alpha: 1, Beta: 9},
		}},
	}
	strong := &scenario.Model{
		Name: "bayes",
		Risks: []scenario.Risk{{
			ID: "r", Probability: f64(0.9),
			Prior: &scenario.BetaPrior{Alpha: 10, Beta: 90},
		}},
	}
	scored := result.ProbabilityMap{"r": 0.9}

	weakOut := UpdatePosteriors(weak, scored, 5)
	strongOut := UpdatePosteriors(strong, scored, 5)

	// Both priors have mean 0.1; the heavier one should move less toward
	// the observed 0.9.
	if strongOut.Probs["r"] >= weakOut.Probs["r"] {
		t.Errorf("stronger prior moved further: strong=%v weak=%v",
			strongOut.Probs["r"], weakOut.Probs["r"])
	}
}
