package result

import (
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

// ProbabilityMap carries one stage's per-risk probability snapshot.
// Each stage produces a fresh map; snapshots are never edited in place.
type ProbabilityMap map[core.RiskID]float64

// Clone returns an independent copy of the map.
func (m ProbabilityMap) Clone() ProbabilityMap {
	out := make(ProbabilityMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// PosteriorDetail records one risk's Bayesian update for explainability.
// Identity passes (no declared prior) are recorded with Updated=false so the
// absence of an update is auditable rather than silent.
type PosteriorDetail struct {
	Updated        bool    `json:"updated"`
	AlphaPrior     float64 `json:"alpha_prior,omitempty"`
	BetaPrior      float64 `json:"beta_prior,omitempty"`
	AlphaPosterior float64 `json:"alpha_posterior,omitempty"`
	BetaPosterior  float64 `json:"beta_posterior,omitempty"`
	// EffectiveSampleSize is alpha+beta of the prior: the weight evidence
	// must overcome to move the estimate.
	EffectiveSampleSize float64 `json:"effective_sample_size,omitempty"`
	// CredibleLow/High bound the central 95% of the posterior Beta.
	CredibleLow  float64 `json:"credible_low,omitempty"`
	CredibleHigh float64 `json:"credible_high,omitempty"`
}

// CascadeTrace summarizes the propagation stage.
type CascadeTrace struct {
	Iterations int     `json:"iterations"`
	MaxDelta   float64 `json:"max_delta"`
	Converged  bool    `json:"converged"`
	// Capped flags a run that hit the iteration cap before converging.
	// The result is still valid; the flag is the NonConvergence warning.
	Capped bool `json:"capped"`
}

// ConfidenceInterval is a two-sided interval at the stated confidence level.
type ConfidenceInterval struct {
	Low        float64 `json:"low"`
	High       float64 `json:"high"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// Width returns the interval width.
func (ci ConfidenceInterval) Width() float64 {
	return ci.High - ci.Low
}

// MonteCarloEstimate is a sampled gate probability with its interval.
type MonteCarloEstimate struct {
	Mean     float64            `json:"mean"`
	Samples  int                `json:"samples"`
	Hits     int                `json:"hits"`
	Seed     int64              `json:"seed"`
	Interval ConfidenceInterval `json:"interval"`
}

// GateResult holds one gate's resolved probability in both modes.
type GateResult struct {
	Analytic   float64             `json:"analytic"`
	MonteCarlo *MonteCarloEstimate `json:"monte_carlo,omitempty"`
}

// TopEventResult is a named root gate's resolution.
type TopEventResult struct {
	ID         string              `json:"id"`
	Analytic   float64             `json:"analytic"`
	MonteCarlo *MonteCarloEstimate `json:"monte_carlo,omitempty"`
}

// ReliabilityResult is the optional reliability stage's output.
type ReliabilityResult struct {
	Estimator         string  `json:"estimator"`
	SystemReliability float64 `json:"system_reliability"`
}

// PipelineResult is the artifact of record for one pipeline invocation.
// It is produced fresh per run, never mutated afterwards, and fully
// reconstructible from the scenario plus declared seeds.
type PipelineResult struct {
	RunID        core.RunID     `json:"run_id"`
	ScenarioName string         `json:"scenario_name"`
	Fingerprint  core.Hash      `json:"fingerprint"`
	CreatedAt    core.Timestamp `json:"created_at"`

	Seed int64 `json:"seed"`

	// Stage snapshots, in pipeline order.
	Scored    ProbabilityMap `json:"scored"`
	Posterior ProbabilityMap `json:"posterior"`
	Adjusted  ProbabilityMap `json:"adjusted"`
	Final     ProbabilityMap `json:"final"`

	// Saturated lists risks whose frequency x severity composite was capped
	// at 1.0 during scoring.
	Saturated []core.RiskID `json:"saturated,omitempty"`

	Posteriors map[core.RiskID]PosteriorDetail `json:"posteriors"`
	Cascade    CascadeTrace                    `json:"cascade"`

	Gates     map[string]GateResult `json:"gates,omitempty"`
	TopEvents []TopEventResult      `json:"top_events,omitempty"`

	Reliability *ReliabilityResult `json:"reliability,omitempty"`
}

// PrimaryTopEvent returns the first declared top event, the probability of
// interest for deltas in sensitivity and twin analysis.
func (r *PipelineResult) PrimaryTopEvent() (TopEventResult, bool) {
	if len(r.TopEvents) == 0 {
		return TopEventResult{}, false
	}
	return r.TopEvents[0], true
}

// SensitivityEntry is one risk's one-at-a-time sweep outcome.
type SensitivityEntry struct {
	RiskID core.RiskID `json:"risk_id"`
	// BaseProbability is the risk's scored probability before perturbation.
	BaseProbability float64 `json:"base_probability"`
	// MaxDelta is the signed top-event shift with the largest magnitude
	// across the sweep factors; WorstFactor is the factor that produced it.
	MaxDelta    float64            `json:"max_delta"`
	WorstFactor float64            `json:"worst_factor"`
	Deltas      map[string]float64 `json:"deltas"`
}

// SensitivityReport is the full sweep table, ranked by |MaxDelta| descending
// with ties broken by risk id.
type SensitivityReport struct {
	TopEvent string             `json:"top_event"`
	Baseline float64            `json:"baseline"`
	Factors  []float64          `json:"factors"`
	Entries  []SensitivityEntry `json:"entries"`
}

// TwinResult is one adversarial twin's outcome relative to the baseline.
type TwinResult struct {
	TwinID   string            `json:"twin_id"`
	Mode     scenario.TwinMode `json:"mode"`
	Bound    float64           `json:"bound"`
	Seed     int64             `json:"seed"`
	TopEvent float64           `json:"top_event"`
	Delta    float64           `json:"delta"`
	// Final is the twin's fully resolved per-risk mapping for inspection.
	Final ProbabilityMap `json:"final"`
}

// Assessment bundles a baseline run with its derived analyses. This is the
// complete output boundary consumed by the reporting and governance layers.
type Assessment struct {
	Baseline    *PipelineResult    `json:"baseline"`
	Sensitivity *SensitivityReport `json:"sensitivity,omitempty"`
	Twins       []TwinResult       `json:"twins,omitempty"`
}
