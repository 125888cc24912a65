package testkit

import (
	"context"
	"sort"
	"sync"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/faulttree"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/ports"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	ledger *InMemoryLedgerAdapter
}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{ledger: NewInMemoryLedgerAdapter()}
}

// LedgerAdapter returns the shared ledger so services and handlers use
// the same storage.
func (t *TestKit) LedgerAdapter() ports.RunLedgerPort {
	return t.ledger
}

// PlantModel builds a small but complete scenario: three risks, one
// common-cause group, one influence edge, and an AND/OR tree.
func PlantModel() *scenario.Model {
	return &scenario.Model{
		Name:          "plant",
		SchemaVersion: scenario.CurrentSchemaVersion,
		Risks: []scenario.Risk{
			{ID: "r_pump", Category: "mechanical", Probability: f64(0.1),
				Prior: &scenario.BetaPrior{Alpha: 2, Beta: 8}},
			{ID: "r_valve", Category: "mechanical", Probability: f64(0.05)},
			{ID: "r_power", Category: "electrical", Frequency: f64(0.4), Severity: f64(0.5)},
		},
		Groups: []scenario.CommonCauseGroup{
			{ID: "g_mech", Factor: 0.3, Members: []core.RiskID{"r_pump", "r_valve"}},
		},
		Edges: []scenario.InfluenceEdge{
			{From: "r_power", To: "r_pump", Weight: 0.2},
		},
		Tree: &faulttree.Tree{TopEvents: []faulttree.Node{
			{ID: "top_loss", Kind: faulttree.KindOr, Children: []faulttree.Node{
				{Kind: faulttree.KindLeaf, Risk: "r_power"},
				{ID: "g_flow", Kind: faulttree.KindAnd, Children: []faulttree.Node{
					{Kind: faulttree.KindLeaf, Risk: "r_pump"},
					{Kind: faulttree.KindLeaf, Risk: "r_valve"},
				}},
			}},
		}},
		Twins: []scenario.TwinSpec{
			{ID: "pessimistic_1", Mode: scenario.TwinPessimistic, Bound: 0.2, Seed: 11},
		},
	}
}

// FlatModel builds a minimal scenario with independent risks and a
// single OR gate, useful when group and edge behavior is not under test.
func FlatModel() *scenario.Model {
	return &scenario.Model{
		Name:          "flat",
		SchemaVersion: scenario.CurrentSchemaVersion,
		Risks: []scenario.Risk{
			{ID: "r_a", Probability: f64(0.2)},
			{ID: "r_b", Probability: f64(0.3)},
		},
		Tree: &faulttree.Tree{TopEvents: []faulttree.Node{
			{ID: "top", Kind: faulttree.KindOr, Children: []faulttree.Node{
				{Kind: faulttree.KindLeaf, Risk: "r_a"},
				{Kind: faulttree.KindLeaf, Risk: "r_b"},
			}},
		}},
	}
}

func f64(v float64) *float64 { return &v }

// InMemoryLedgerAdapter implements RunLedgerPort with in-memory storage
type InMemoryLedgerAdapter struct {
	assessments map[core.RunID]*result.Assessment
	order       []core.RunID
	mu          sync.RWMutex
}

func NewInMemoryLedgerAdapter() *InMemoryLedgerAdapter {
	return &InMemoryLedgerAdapter{
		assessments: make(map[core.RunID]*result.Assessment),
	}
}

func (s *InMemoryLedgerAdapter) SaveAssessment(ctx context.Context, assessment *result.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := assessment.Baseline.RunID
	if _, exists := s.assessments[id]; !exists {
		s.order = append(s.order, id)
	}
	s.assessments[id] = assessment
	return nil
}

func (s *InMemoryLedgerAdapter) GetAssessment(ctx context.Context, runID core.RunID) (*result.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assessment, exists := s.assessments[runID]
	if !exists {
		return nil, core.NewRunNotFoundError(runID)
	}
	return assessment, nil
}

func (s *InMemoryLedgerAdapter) ListRuns(ctx context.Context, limit int) ([]ports.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]core.RunID, len(s.order))
	copy(ids, s.order)

	// Newest first
	sort.SliceStable(ids, func(i, j int) bool {
		a := s.assessments[ids[i]].Baseline
		b := s.assessments[ids[j]].Baseline
		return a.CreatedAt.Time().After(b.CreatedAt.Time())
	})

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	summaries := make([]ports.RunSummary, 0, len(ids))
	for _, id := range ids {
		baseline := s.assessments[id].Baseline
		summary := ports.RunSummary{
			RunID:        baseline.RunID,
			ScenarioName: baseline.ScenarioName,
			Fingerprint:  baseline.Fingerprint,
			Seed:         baseline.Seed,
			CreatedAt:    baseline.CreatedAt,
		}
		if top, ok := baseline.PrimaryTopEvent(); ok {
			summary.TopEvent = top.Analytic
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
