package engine

import (
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/faulttree"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/scenario"
)

func f64(v float64) *float64 { return &v }

func leaf(rid string) faulttree.Node {
	return faulttree.Node{Kind: faulttree.KindLeaf, Risk: core.RiskID(rid)}
}

func gate(id string, kind faulttree.NodeKind, k int, children ...faulttree.Node) faulttree.Node {
	return faulttree.Node{ID: id, Kind: kind, K: k, Children: children}
}

// threeRiskModel declares three independent risks at 0.5 with an AND top
// event over the first two.
func threeRiskModel() *scenario.Model {
	top := gate("top", faulttree.KindAnd, 0, leaf("r_a"), leaf("r_b"))
	return &scenario.Model{
		Name: "fixture",
		Risks: []scenario.Risk{
			{ID: "r_a", Probability: f64(0.5)},
			{ID: "r_b", Probability: f64(0.5)},
			{ID: "r_c", Probability: f64(0.5)},
		},
		Tree: &faulttree.Tree{TopEvents: []faulttree.Node{top}},
	}
}

func analyticConfig() RunConfig {
	cfg := DefaultConfig()
	return cfg
}

func sampledConfig(samples int) RunConfig {
	cfg := DefaultConfig()
	cfg.MonteCarlo.Samples = samples
	return cfg
}
