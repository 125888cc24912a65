package engine

import (
	"testing"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

func TestScoreRisks_DeclaredProbabilityPassesThrough(t *testing.T) {
	model := &scenario.Model{
		Name: "score",
		Risks: []scenario.Risk{
			{ID: "r_a", Probability: f64(0.37)},
			{ID: "r_zero", Probability: f64(0)},
			{ID: "r_one", Probability: f64(1)},
		},
	}

	out, err := ScoreRisks(model)
	if err != nil {
		t.Fatalf("ScoreRisks failed: %v", err)
	}
	if got := out.Probs["r_a"]; got != 0.37 {
		t.Errorf("expected 0.37, got %v", got)
	}
	// Exact 0 and 1 are valid probabilities and must not pick up noise.
	if got := out.Probs["r_zero"]; got != 0 {
		t.Errorf("expected exactly 0, got %v", got)
	}
	if got := out.Probs["r_one"]; got != 1 {
		t.Errorf("expected exactly 1, got %v", got)
	}
	if len(out.Saturated) != 0 {
		t.Errorf("no saturation expected, got %v", out.Saturated)
	}
}

func TestScoreRisks_CompositeProduct(t *testing.T) {
	model := &scenario.Model{
		Name: "score",
		Risks: []scenario.Risk{
			{ID: "r_comp", Frequency: f64(0.4), Severity: f64(0.5)},
		},
	}

	out, err := ScoreRisks(model)
	if err != nil {
		t.Fatalf("ScoreRisks failed: %v", err)
	}
	if got := out.Probs["r_comp"]; got != 0.2 {
		t.Errorf("expected 0.2, got %v", got)
	}
}

func TestScoreRisks_SaturationIsFlaggedNotSwallowed(t *testing.T) {
	model := &scenario.Model{
		Name: "score",
		Risks: []scenario.Risk{
			{ID: "r_hot", Frequency: f64(3.0), Severity: f64(0.9)},
		},
	}

	out, err := ScoreRisks(model)
	if err != nil {
		t.Fatalf("ScoreRisks failed: %v", err)
	}
	if got := out.Probs["r_hot"]; got != 1 {
		t.Errorf("expected capped 1.0, got %v", got)
	}
	if len(out.Saturated) != 1 || out.Saturated[0] != "r_hot" {
		t.Errorf("expected saturation event for r_hot, got %v", out.Saturated)
	}
}

func TestScoreRisks_InvalidInputs(t *testing.T) {
	cases := []struct {
		name string
		risk scenario.Risk
	}{
		{"probability above one", scenario.Risk{ID: "r_bad", Probability: f64(1.2)}},
		{"negative probability", scenario.Risk{ID: "r_bad", Probability: f64(-0.1)}},
		{"missing inputs", scenario.Risk{ID: "r_bad"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := &scenario.Model{Name: "score", Risks: []scenario.Risk{tc.risk}}
			_, err := ScoreRisks(model)
			if !core.IsValidationError(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
