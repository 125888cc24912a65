package engine

import (
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/faulttree"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
)

// AnalyticOutcome is the closed-form fault-tree resolution: every gate's
// probability plus each top event's.
type AnalyticOutcome struct {
	Gates     map[string]float64
	TopEvents []result.TopEventResult
}

// EvaluateAnalytic resolves the gate hierarchy bottom-up over the final leaf
// probabilities. AND is the product of children, OR the complement of the
// product of complements, and k-of-n the exact combinatorial probability via
// the dynamic-programming recurrence over (possibly non-identical) children.
// The tree must have passed Validate against the same leaf mapping.
func EvaluateAnalytic(tree *faulttree.Tree, probs result.ProbabilityMap) AnalyticOutcome {
	out := AnalyticOutcome{Gates: make(map[string]float64)}

	for i := range tree.TopEvents {
		top := &tree.TopEvents[i]
		p := evalAnalytic(top, probs, out.Gates)
		out.TopEvents = append(out.TopEvents, result.TopEventResult{ID: top.Name(), Analytic: p})
	}

	return out
}

func evalAnalytic(n *faulttree.Node, probs result.ProbabilityMap, gates map[string]float64) float64 {
	switch n.Kind {
	case faulttree.KindLeaf:
		return probs[n.Risk]

	case faulttree.KindAnd:
		p := 1.0
		for i := range n.Children {
			p *= evalAnalytic(&n.Children[i], probs, gates)
		}
		gates[n.Name()] = p
		return p

	case faulttree.KindOr:
		q := 1.0
		for i := range n.Children {
			q *= 1 - evalAnalytic(&n.Children[i], probs, gates)
		}
		p := 1 - q
		gates[n.Name()] = p
		return p

	case faulttree.KindKofN:
		child := make([]float64, len(n.Children))
		for i := range n.Children {
			child[i] = evalAnalytic(&n.Children[i], probs, gates)
		}
		p := atLeastKofN(child, n.K)
		gates[n.Name()] = p
		return p

	default:
		// Unreachable after Validate; the node set is closed.
		return 0
	}
}

// atLeastKofN computes P(at least k of the children occur) exactly.
// dp[j] holds P(exactly j successes among the children processed so far);
// folding one child at a time is the generating-function recurrence.
func atLeastKofN(probs []float64, k int) float64 {
	n := len(probs)
	dp := make([]float64, n+1)
	dp[0] = 1

	for _, p := range probs {
		q := 1 - p
		for j := n; j >= 1; j-- {
			dp[j] = dp[j]*q + dp[j-1]*p
		}
		dp[0] *= q
	}

	total := 0.0
	for j := k; j <= n; j++ {
		total += dp[j]
	}
	return clamp01(total)
}
