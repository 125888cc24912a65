package engine

import (
	"context"
	"math/rand"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/faulttree"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
)

// cancelCheckStride is how many trials run between context checks. Sampling
// supports cancellation at iteration granularity without paying a select per
// trial.
const cancelCheckStride = 1024

// MonteCarloOutcome holds sampled estimates for every gate and top event.
type MonteCarloOutcome struct {
	Gates     map[string]result.MonteCarloEstimate
	TopEvents map[string]result.MonteCarloEstimate
}

// EvaluateMonteCarlo estimates every gate's probability by drawing N
// independent Bernoulli trials per leaf and evaluating the boolean structure
// per trial. Leaves are sampled in scenario declaration order from a single
// generator seeded with the given seed, so identical (seed, leaf mapping,
// tree, N) reproduce identical output bit for bit.
func EvaluateMonteCarlo(ctx context.Context, tree *faulttree.Tree, order []core.RiskID, probs result.ProbabilityMap, cfg MonteCarloConfig, seed int64) (MonteCarloOutcome, error) {
	rng := rand.New(rand.NewSource(seed))
	method := intervalMethod(cfg.Interval)

	gateIDs := tree.GateIDs()
	gateHits := make(map[string]int, len(gateIDs))
	topHits := make(map[string]int, len(tree.TopEvents))

	state := make(map[core.RiskID]bool, len(order))

	for trial := 0; trial < cfg.Samples; trial++ {
		if trial%cancelCheckStride == 0 {
			select {
			case <-ctx.Done():
				return MonteCarloOutcome{}, ctx.Err()
			default:
			}
		}

		for _, rid := range order {
			state[rid] = rng.Float64() < probs[rid]
		}

		for i := range tree.TopEvents {
			top := &tree.TopEvents[i]
			if evalBool(top, state, gateHits) {
				topHits[top.Name()]++
			}
		}
	}

	out := MonteCarloOutcome{
		Gates:     make(map[string]result.MonteCarloEstimate, len(gateIDs)),
		TopEvents: make(map[string]result.MonteCarloEstimate, len(tree.TopEvents)),
	}
	for _, id := range gateIDs {
		out.Gates[id] = newEstimate(gateHits[id], cfg, method, seed)
	}
	for i := range tree.TopEvents {
		id := tree.TopEvents[i].Name()
		out.TopEvents[id] = newEstimate(topHits[id], cfg, method, seed)
	}
	return out, nil
}

func newEstimate(hits int, cfg MonteCarloConfig, method IntervalMethod, seed int64) result.MonteCarloEstimate {
	return result.MonteCarloEstimate{
		Mean:     float64(hits) / float64(cfg.Samples),
		Samples:  cfg.Samples,
		Hits:     hits,
		Seed:     seed,
		Interval: method.Interval(hits, cfg.Samples, cfg.Confidence),
	}
}

// evalBool evaluates one trial. Gate hit counters are incremented as a side
// effect so every gate accumulates its own sample mean.
func evalBool(n *faulttree.Node, state map[core.RiskID]bool, gateHits map[string]int) bool {
	switch n.Kind {
	case faulttree.KindLeaf:
		return state[n.Risk]

	case faulttree.KindAnd:
		val := true
		for i := range n.Children {
			// Children are always evaluated so nested gate counters see
			// every trial; no short-circuiting.
			if !evalBool(&n.Children[i], state, gateHits) {
				val = false
			}
		}
		if val {
			gateHits[n.Name()]++
		}
		return val

	case faulttree.KindOr:
		val := false
		for i := range n.Children {
			if evalBool(&n.Children[i], state, gateHits) {
				val = true
			}
		}
		if val {
			gateHits[n.Name()]++
		}
		return val

	case faulttree.KindKofN:
		count := 0
		for i := range n.Children {
			if evalBool(&n.Children[i], state, gateHits) {
				count++
			}
		}
		val := count >= n.K
		if val {
			gateHits[n.Name()]++
		}
		return val

	default:
		return false
	}
}
