package engine

import (
	"math"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

// CascadeOutcome is the propagation stage's snapshot plus its trace.
type CascadeOutcome struct {
	Probs result.ProbabilityMap
	Trace result.CascadeTrace
}

// PropagateCascade spreads probability increases along the influence graph
// until the largest per-risk change drops below the tolerance or the
// iteration cap is hit. Hitting the cap is flagged on the trace, not raised:
// the last computed snapshot is still valid output.
//
// Each iteration recomputes every risk from the same base snapshot:
//
//	p[t+1](r) = base(r) + damping * sum over incoming edges w * p[t](src)
//
// clamped to [0,1]. Risks are visited in declaration order every iteration,
// so identical inputs always produce identical trajectories. Cycles and
// self-loops are permitted; damping below 1 and edge weights below 1 keep
// the iteration contractive.
func PropagateCascade(model *scenario.Model, base result.ProbabilityMap, cfg CascadeConfig) CascadeOutcome {
	if len(model.Edges) == 0 {
		return CascadeOutcome{
			Probs: base.Clone(),
			Trace: result.CascadeTrace{Iterations: 0, Converged: true},
		}
	}

	incoming := make(map[core.RiskID][]scenario.InfluenceEdge, len(model.Edges))
	for _, e := range model.Edges {
		incoming[e.To] = append(incoming[e.To], e)
	}

	order := model.RiskIDs()
	current := base.Clone()

	trace := result.CascadeTrace{}
	for it := 0; it < cfg.MaxIterations; it++ {
		next := make(result.ProbabilityMap, len(current))
		maxDelta := 0.0

		for _, rid := range order {
			extra := 0.0
			for _, e := range incoming[rid] {
				extra += e.Weight * current[e.From]
			}
			p := clamp01(base[rid] + cfg.Damping*extra)
			next[rid] = p
			if d := math.Abs(p - current[rid]); d > maxDelta {
				maxDelta = d
			}
		}

		current = next
		trace.Iterations = it + 1
		trace.MaxDelta = maxDelta

		if maxDelta < cfg.Tolerance {
			trace.Converged = true
			break
		}
	}

	if !trace.Converged {
		trace.Capped = true
	}

	return CascadeOutcome{Probs: current, Trace: trace}
}
