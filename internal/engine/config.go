package engine

import (
	"fmt"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
)

// Correlation model names accepted by RunConfig.Correlation.
const (
	CorrelationSharedTerm = "shared_term"
	CorrelationBetaFactor = "beta_factor"
)

// Interval method names accepted by MonteCarloConfig.Interval.
const (
	IntervalWald           = "wald"
	IntervalWilson         = "wilson"
	IntervalClopperPearson = "clopper_pearson"
)

// CascadeConfig controls the propagation stage.
type CascadeConfig struct {
	// Damping attenuates each propagated increment; must stay below 1 so
	// circular influence cannot grow without bound.
	Damping float64 `json:"damping"`
	// Tolerance is the convergence threshold on the max per-risk change.
	Tolerance float64 `json:"tolerance"`
	// MaxIterations caps the iteration count. Hitting the cap is reported
	// as a non-convergence flag, not an error.
	MaxIterations int `json:"max_iterations"`
}

// MonteCarloConfig controls the sampled fault-tree pass.
type MonteCarloConfig struct {
	// Samples is required and never defaulted: it trades runtime for
	// estimator variance, so the caller must choose it.
	Samples int `json:"samples"`
	// Confidence is the two-sided interval level, e.g. 0.95.
	Confidence float64 `json:"confidence"`
	// Interval selects the interval method: wald (default), wilson or
	// clopper_pearson.
	Interval string `json:"interval"`
}

// RunConfig is the explicit per-run state threaded through every stage call.
// Nothing here is ambient or global, so concurrent sensitivity and twin
// evaluations cannot interfere.
type RunConfig struct {
	Seed int64 `json:"seed"`

	// PseudoN is the effective sample size used when a risk declares a
	// prior but no explicit evidence counts: the scored probability is
	// treated as an observed rate over PseudoN pseudo-trials.
	PseudoN float64 `json:"pseudo_n"`

	// Correlation selects the common-cause adjustment model.
	Correlation string `json:"correlation"`

	Cascade    CascadeConfig    `json:"cascade"`
	MonteCarlo MonteCarloConfig `json:"monte_carlo"`

	// SweepFactors are the multiplicative perturbations applied per risk
	// in the one-at-a-time sensitivity sweep.
	SweepFactors []float64 `json:"sweep_factors"`
}

// DefaultConfig returns the documented stage defaults. MonteCarlo.Samples is
// deliberately left at zero: a sampled pass requires an explicit count.
func DefaultConfig() RunConfig {
	return RunConfig{
		Seed:        1,
		PseudoN:     5.0,
		Correlation: CorrelationSharedTerm,
		Cascade: CascadeConfig{
			Damping:       0.8,
			Tolerance:     1e-4,
			MaxIterations: 32,
		},
		MonteCarlo: MonteCarloConfig{
			Confidence: 0.95,
			Interval:   IntervalWald,
		},
		SweepFactors: []float64{0.5, 0.75, 1.25, 1.5},
	}
}

// Validate checks the configuration for an analytic-only run.
func (c RunConfig) Validate() error {
	if c.PseudoN < 0 {
		return fmt.Errorf("%w: pseudo_n %v is negative", core.ErrValidation, c.PseudoN)
	}
	switch c.Correlation {
	case CorrelationSharedTerm, CorrelationBetaFactor:
	default:
		return fmt.Errorf("%w: unknown correlation model %q", core.ErrValidation, c.Correlation)
	}
	if c.Cascade.Damping < 0 || c.Cascade.Damping >= 1 {
		return fmt.Errorf("%w: cascade damping %v outside [0,1)", core.ErrValidation, c.Cascade.Damping)
	}
	if c.Cascade.Tolerance <= 0 {
		return fmt.Errorf("%w: cascade tolerance %v must be positive", core.ErrValidation, c.Cascade.Tolerance)
	}
	if c.Cascade.MaxIterations < 1 {
		return fmt.Errorf("%w: cascade max iterations %d must be at least 1", core.ErrValidation, c.Cascade.MaxIterations)
	}
	for _, f := range c.SweepFactors {
		if f < 0 {
			return fmt.Errorf("%w: sweep factor %v is negative", core.ErrValidation, f)
		}
	}
	return nil
}

// ValidateMonteCarlo additionally checks the sampled-pass parameters.
func (c RunConfig) ValidateMonteCarlo() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.MonteCarlo.Samples < 1 {
		return fmt.Errorf("%w: monte carlo sample count must be declared explicitly", core.ErrValidation)
	}
	if c.MonteCarlo.Confidence <= 0 || c.MonteCarlo.Confidence >= 1 {
		return fmt.Errorf("%w: confidence %v outside (0,1)", core.ErrValidation, c.MonteCarlo.Confidence)
	}
	switch c.MonteCarlo.Interval {
	case IntervalWald, IntervalWilson, IntervalClopperPearson:
	default:
		return fmt.Errorf("%w: unknown interval method %q", core.ErrValidation, c.MonteCarlo.Interval)
	}
	return nil
}
