package scenario

import (
	"testing"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
)

func f64(v float64) *float64 { return &v }

func validModel() *Model {
	return &Model{
		Name: "valid",
		Risks: []Risk{
			{ID: "r_a", Probability: f64(0.2)},
			{ID: "r_b", Frequency: f64(0.5), Severity: f64(0.4)},
		},
	}
}

func TestValidate_AcceptsWellFormedModel(t *testing.T) {
	if err := validModel().Validate(); err != nil {
		t.Fatalf("expected valid model, got %v", err)
	}
}

func TestValidate_RejectsBadRisks(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Model)
		check  func(error) bool
	}{
		{"duplicate risk id", func(m *Model) {
			m.Risks = append(m.Risks, Risk{ID: "r_a", Probability: f64(0.1)})
		}, core.IsValidationError},
		{"missing inputs", func(m *Model) {
			m.Risks[0].Probability = nil
		}, core.IsValidationError},
		{"probability out of range", func(m *Model) {
			m.Risks[0].Probability = f64(1.01)
		}, core.IsValidationError},
		{"both probability and composite", func(m *Model) {
			m.Risks[0].Frequency = f64(0.1)
			m.Risks[0].Severity = f64(0.2)
		}, core.IsValidationError},
		{"incomplete composite", func(m *Model) {
			m.Risks[1].Severity = nil
		}, core.IsValidationError},
		{"non-positive prior", func(m *Model) {
			m.Risks[0].Prior = &BetaPrior{Alpha: 0, Beta: 2}
		}, core.IsValidationError},
		{"evidence without prior", func(m *Model) {
			m.Risks[0].Evidence = &Evidence{Successes: 1, Failures: 1}
		}, core.IsValidationError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validModel()
			tc.mutate(m)
			if err := m.Validate(); !tc.check(err) {
				t.Fatalf("expected rejection, got %v", err)
			}
		})
	}
}

func TestValidate_GroupRules(t *testing.T) {
	m := validModel()
	m.Groups = []CommonCauseGroup{{ID: "g1", Factor: 0.5, Members: []core.RiskID{"r_a", "r_ghost"}}}
	if err := m.Validate(); !core.IsReferenceError(err) {
		t.Fatalf("expected reference error for unknown member, got %v", err)
	}

	m = validModel()
	m.Groups = []CommonCauseGroup{
		{ID: "g1", Factor: 0.5, Members: []core.RiskID{"r_a"}},
		{ID: "g2", Factor: 0.5, Members: []core.RiskID{"r_a"}},
	}
	if err := m.Validate(); !core.IsValidationError(err) {
		t.Fatalf("a risk in two groups must be rejected, got %v", err)
	}

	m = validModel()
	m.Groups = []CommonCauseGroup{{ID: "g1", Factor: 1.2, Members: []core.RiskID{"r_a"}}}
	if err := m.Validate(); !core.IsValidationError(err) {
		t.Fatalf("factor above 1 must be rejected, got %v", err)
	}
}

func TestValidate_RiskGroupAnnotation(t *testing.T) {
	m := validModel()
	m.Groups = []CommonCauseGroup{{ID: "g1", Factor: 0.5, Members: []core.RiskID{"r_a"}}}
	m.Risks[0].Group = "g1"
	if err := m.Validate(); err != nil {
		t.Fatalf("matching group annotation must pass, got %v", err)
	}

	m = validModel()
	m.Risks[0].Group = "g_missing"
	if err := m.Validate(); !core.IsReferenceError(err) {
		t.Fatalf("annotation naming an undeclared group must be rejected, got %v", err)
	}

	m = validModel()
	m.Groups = []CommonCauseGroup{{ID: "g1", Factor: 0.5, Members: []core.RiskID{"r_a"}}}
	m.Risks[1].Group = "g1"
	if err := m.Validate(); !core.IsValidationError(err) {
		t.Fatalf("annotation on a non-member must be rejected, got %v", err)
	}
}

func TestValidate_EdgeRules(t *testing.T) {
	m := validModel()
	m.Edges = []InfluenceEdge{{From: "r_ghost", To: "r_a", Weight: 0.5}}
	if err := m.Validate(); !core.IsReferenceError(err) {
		t.Fatalf("expected reference error for unknown source, got %v", err)
	}

	m = validModel()
	m.Edges = []InfluenceEdge{{From: "r_a", To: "r_b", Weight: 1.0}}
	if err := m.Validate(); !core.IsValidationError(err) {
		t.Fatalf("edge weight of 1 must be rejected, got %v", err)
	}
}

func TestWithProbabilities_DerivesWithoutMutating(t *testing.T) {
	m := validModel()
	derived := m.WithProbabilities(map[core.RiskID]float64{"r_b": 0.9})

	if *m.Risks[0].Probability != 0.2 || m.Risks[1].Frequency == nil {
		t.Fatal("original model was mutated")
	}
	if derived.Risks[1].Probability == nil || *derived.Risks[1].Probability != 0.9 {
		t.Errorf("expected override 0.9, got %+v", derived.Risks[1])
	}
	if derived.Risks[1].Frequency != nil {
		t.Error("override must clear the composite inputs")
	}
	if derived.Risks[0].Probability == m.Risks[0].Probability {
		// Pointer sharing for untouched risks is fine; the slices differ.
		if &derived.Risks[0] == &m.Risks[0] {
			t.Error("derived model shares risk storage with the original")
		}
	}
}
