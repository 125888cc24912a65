package scenariojson

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
)

const validScenario = `{
  "name": "cooling",
  "risks": [
    {"id": "r_pump", "probability": 0.1, "prior": {"alpha": 2, "beta": 8}},
    {"id": "r_power", "frequency": 0.4, "severity": 0.5}
  ],
  "edges": [
    {"from": "r_power", "to": "r_pump", "weight": 0.2}
  ],
  "fault_tree": {
    "top_events": [
      {"id": "top", "kind": "or", "children": [
        {"kind": "leaf", "risk": "r_pump"},
        {"kind": "leaf", "risk": "r_power"}
      ]}
    ]
  }
}`

func TestDecodeValidScenario(t *testing.T) {
	model, err := Decode([]byte(validScenario))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if model.Name != "cooling" {
		t.Fatalf("name = %q", model.Name)
	}
	if len(model.Risks) != 2 {
		t.Fatalf("risks = %d, want 2", len(model.Risks))
	}
	if model.SchemaVersion == "" {
		t.Fatal("schema version should be defaulted")
	}
	if model.Tree == nil || len(model.Tree.TopEvents) != 1 {
		t.Fatal("fault tree not decoded")
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	doc := `{"name": "x", "risks": [{"id": "r_a", "probability": 0.1, "probabillity": 0.2}]}`
	if _, err := Decode([]byte(doc)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDecodeRejectsInvalidModel(t *testing.T) {
	doc := `{"name": "x", "risks": [{"id": "r_a", "probability": 1.5}]}`
	_, err := Decode([]byte(doc))
	if !core.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeRejectsDanglingTreeReference(t *testing.T) {
	doc := `{
	  "name": "x",
	  "risks": [{"id": "r_a", "probability": 0.1}],
	  "fault_tree": {"top_events": [
	    {"id": "top", "kind": "or", "children": [{"kind": "leaf", "risk": "r_ghost"}]}
	  ]}
	}`
	_, err := Decode([]byte(doc))
	if !core.IsReferenceError(err) {
		t.Fatalf("expected reference error, got %v", err)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := os.WriteFile(path, []byte(validScenario), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	model, err := NewLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if model.Name != "cooling" {
		t.Fatalf("name = %q", model.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	model, err := Decode([]byte(validScenario))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	data, err := Encode(model)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode round trip: %v", err)
	}
	if again.Name != model.Name || len(again.Risks) != len(model.Risks) {
		t.Fatal("round trip changed the model")
	}
}
