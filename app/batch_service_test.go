package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/adapters/scenariojson"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/engine"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/testkit"
)

func writeScenarioFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestBatchRunsAllScenarios(t *testing.T) {
	dir := t.TempDir()

	flat, err := scenariojson.Encode(testkit.FlatModel())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	plant, err := scenariojson.Encode(testkit.PlantModel())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	paths := []string{
		writeScenarioFile(t, dir, "flat.json", flat),
		writeScenarioFile(t, dir, "plant.json", plant),
	}

	pipeline := engine.New(engine.DefaultConfig())
	service := NewAssessmentService(pipeline, nil, nil)
	batch := NewBatchService(scenariojson.NewLoader(), service, nil, 2)

	items, err := batch.Run(context.Background(), paths, AssessmentOptions{Analytic: true})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.Err != nil {
			t.Fatalf("scenario %s failed: %v", item.Path, item.Err)
		}
		if item.Assessment == nil {
			t.Fatalf("scenario %s has no assessment", item.Path)
		}
	}
	// Results keep input order regardless of completion order.
	if items[0].Assessment.Baseline.ScenarioName != "flat" {
		t.Fatalf("first item = %s, want flat", items[0].Assessment.Baseline.ScenarioName)
	}
	if items[1].Assessment.Baseline.ScenarioName != "plant" {
		t.Fatalf("second item = %s, want plant", items[1].Assessment.Baseline.ScenarioName)
	}
}

func TestBatchIsolatesFailures(t *testing.T) {
	dir := t.TempDir()

	flat, err := scenariojson.Encode(testkit.FlatModel())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	paths := []string{
		writeScenarioFile(t, dir, "broken.json", []byte(`{"name": "broken"`)),
		writeScenarioFile(t, dir, "flat.json", flat),
	}

	pipeline := engine.New(engine.DefaultConfig())
	service := NewAssessmentService(pipeline, nil, nil)
	batch := NewBatchService(scenariojson.NewLoader(), service, nil, 1)

	items, err := batch.Run(context.Background(), paths, AssessmentOptions{Analytic: true})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if items[0].Err == nil {
		t.Fatal("expected error for malformed scenario")
	}
	if items[1].Err != nil {
		t.Fatalf("valid scenario should not be affected: %v", items[1].Err)
	}
}
