package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/internal/testkit"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

func storedAssessment(t *testing.T, kit *testkit.TestKit, name string) *result.Assessment {
	t.Helper()
	assessment := &result.Assessment{
		Baseline: &result.PipelineResult{
			RunID:        core.NewRunID(),
			ScenarioName: name,
			Fingerprint:  core.NewHash([]byte(name)),
			CreatedAt:    core.Now(),
			Seed:         1,
			Scored:       result.ProbabilityMap{"r_a": 0.2},
			Posterior:    result.ProbabilityMap{"r_a": 0.2},
			Adjusted:     result.ProbabilityMap{"r_a": 0.2},
			Final:        result.ProbabilityMap{"r_a": 0.2},
			Posteriors:   map[core.RiskID]result.PosteriorDetail{"r_a": {}},
			Cascade:      result.CascadeTrace{Iterations: 1, Converged: true},
			TopEvents:    []result.TopEventResult{{ID: "top", Analytic: 0.2}},
		},
	}
	if err := kit.LedgerAdapter().SaveAssessment(context.Background(), assessment); err != nil {
		t.Fatalf("SaveAssessment: %v", err)
	}
	return assessment
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(testkit.NewTestKit().LedgerAdapter(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListRunsEndpoint(t *testing.T) {
	kit := testkit.NewTestKit()
	storedAssessment(t, kit, "alpha")
	storedAssessment(t, kit, "beta")

	server := NewServer(kit.LedgerAdapter(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var summaries []ports.RunSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
}

func TestListRunsRejectsBadLimit(t *testing.T) {
	server := NewServer(testkit.NewTestKit().LedgerAdapter(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs?limit=abc", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetRunEndpoint(t *testing.T) {
	kit := testkit.NewTestKit()
	stored := storedAssessment(t, kit, "alpha")

	server := NewServer(kit.LedgerAdapter(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+stored.Baseline.RunID.String(), nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var assessment result.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &assessment); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if assessment.Baseline.ScenarioName != "alpha" {
		t.Fatalf("scenario = %q", assessment.Baseline.ScenarioName)
	}
}

func TestGetRunNotFound(t *testing.T) {
	server := NewServer(testkit.NewTestKit().LedgerAdapter(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+core.NewRunID().String(), nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetReportEndpoint(t *testing.T) {
	kit := testkit.NewTestKit()
	stored := storedAssessment(t, kit, "alpha")

	server := NewServer(kit.LedgerAdapter(), nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+stored.Baseline.RunID.String()+"/report", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "alpha") {
		t.Fatal("report should mention the scenario name")
	}
}
