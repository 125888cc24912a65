package engine

import (
	"math"
	"testing"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

func ccfModel(factor float64) *scenario.Model {
	return &scenario.Model{
		Name: "ccf",
		Risks: []scenario.Risk{
			{ID: "r_power", Probability: f64(0.2), Group: "g_shared"},
			{ID: "r_gas", Probability: f64(0.1), Group: "g_shared"},
			{ID: "r_lone", Probability: f64(0.3)},
		},
		Groups: []scenario.CommonCauseGroup{{
			ID:      "g_shared",
			Factor:  factor,
			Members: []core.RiskID{"r_power", "r_gas"},
		}},
	}
}

func TestApplyCommonCause_SharedTermModel(t *testing.T) {
	model := ccfModel(0.5)
	probs := result.ProbabilityMap{"r_power": 0.2, "r_gas": 0.1, "r_lone": 0.3}

	out := ApplyCommonCause(model, probs, SharedTermModel{})

	// Shared term is the max member probability, 0.2.
	// r_power: 0.2 + 0.5*0.8*0.2 = 0.28
	// r_gas:   0.1 + 0.5*0.9*0.2 = 0.19
	if got := out["r_power"]; math.Abs(got-0.28) > 1e-12 {
		t.Errorf("r_power: expected 0.28, got %v", got)
	}
	if got := out["r_gas"]; math.Abs(got-0.19) > 1e-12 {
		t.Errorf("r_gas: expected 0.19, got %v", got)
	}
	// Risks outside any group pass through unchanged.
	if got := out["r_lone"]; got != 0.3 {
		t.Errorf("r_lone: expected untouched 0.3, got %v", got)
	}
	// Input snapshot untouched.
	if probs["r_power"] != 0.2 {
		t.Error("input map was mutated")
	}
}

func TestApplyCommonCause_BetaFactorModel(t *testing.T) {
	model := ccfModel(0.3)
	probs := result.ProbabilityMap{"r_power": 0.2, "r_gas": 0.1, "r_lone": 0.3}

	out := ApplyCommonCause(model, probs, BetaFactorModel{})

	// p' = (1-beta)*p + beta*p_common, p_common = 0.2.
	if got := out["r_power"]; math.Abs(got-0.2) > 1e-12 {
		t.Errorf("r_power: expected 0.2, got %v", got)
	}
	if got := out["r_gas"]; math.Abs(got-(0.7*0.1+0.3*0.2)) > 1e-12 {
		t.Errorf("r_gas: expected 0.13, got %v", got)
	}
}

func TestApplyCommonCause_AdjustmentNeverLowersBelowZeroOrAboveOne(t *testing.T) {
	model := ccfModel(1.0)
	probs := result.ProbabilityMap{"r_power": 1.0, "r_gas": 0.0, "r_lone": 0.3}

	out := ApplyCommonCause(model, probs, SharedTermModel{})

	for rid, p := range out {
		if p < 0 || p > 1 {
			t.Errorf("%s adjusted outside [0,1]: %v", rid, p)
		}
	}
	// Full factor pulls the zero-probability member all the way to the
	// shared term.
	if got := out["r_gas"]; got != 1.0 {
		t.Errorf("expected r_gas raised to 1.0, got %v", got)
	}
}

func TestApplyCommonCause_NoGroupsIsIdentity(t *testing.T) {
	model := &scenario.Model{
		Name:  "ccf",
		Risks: []scenario.Risk{{ID: "r_a", Probability: f64(0.5)}},
	}
	probs := result.ProbabilityMap{"r_a": 0.5}

	out := ApplyCommonCause(model, probs, SharedTermModel{})
	if out["r_a"] != 0.5 {
		t.Errorf("expected identity, got %v", out["r_a"])
	}
}
