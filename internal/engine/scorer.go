package engine

import (
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

// ScoreOutcome is the scoring stage's snapshot: one scalar probability per
// risk, plus the list of risks whose composite product was capped.
type ScoreOutcome struct {
	Probs     result.ProbabilityMap
	Saturated []core.RiskID
}

// ScoreRisks resolves each risk's declared inputs into a baseline probability
// in [0,1]. A declared probability passes through as-is; a frequency/severity
// pair multiplies out, with products above 1.0 capped and reported as
// saturation events rather than swallowed. Anything else is a validation
// failure naming the offending risk.
func ScoreRisks(model *scenario.Model) (ScoreOutcome, error) {
	out := ScoreOutcome{Probs: make(result.ProbabilityMap, len(model.Risks))}

	for _, r := range model.Risks {
		switch {
		case r.Probability != nil:
			p := *r.Probability
			if p < 0 || p > 1 {
				return ScoreOutcome{}, core.NewValidationError(r.ID, "probability outside [0,1]")
			}
			out.Probs[r.ID] = p

		case r.Frequency != nil && r.Severity != nil:
			p := *r.Frequency * *r.Severity
			if *r.Frequency < 0 || *r.Severity < 0 || *r.Severity > 1 {
				return ScoreOutcome{}, core.NewValidationError(r.ID, "frequency/severity outside valid range")
			}
			if p > 1 {
				// Documented normalization: composite products cap at 1.0
				// and the cap is surfaced as a saturation event.
				p = 1
				out.Saturated = append(out.Saturated, r.ID)
			}
			out.Probs[r.ID] = p

		default:
			return ScoreOutcome{}, core.NewValidationError(r.ID, "missing probability or frequency/severity pair")
		}
	}

	return out, nil
}
