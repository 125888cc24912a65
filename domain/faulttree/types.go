package faulttree

import (
	"fmt"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
)

// NodeKind discriminates the closed set of fault-tree node variants.
// Evaluation switches exhaustively over this tag.
type NodeKind string

const (
	KindLeaf NodeKind = "leaf"
	KindAnd  NodeKind = "and"
	KindOr   NodeKind = "or"
	KindKofN NodeKind = "k_of_n"
)

// Node is one fault-tree vertex: either a Leaf referencing a risk, or a gate
// combining its ordered children. Trees are nested values, so the structure
// is acyclic by construction.
type Node struct {
	// ID names the node. Gate ids must be unique within a tree; they key the
	// per-gate probability mapping in results. Leaf ids may be omitted, in
	// which case the referenced risk id is used.
	ID   string   `json:"id,omitempty"`
	Kind NodeKind `json:"kind"`

	// Risk is the referenced basic event; leaf nodes only.
	Risk core.RiskID `json:"risk,omitempty"`

	// K is the required success count; k-of-n gates only.
	K int `json:"k,omitempty"`

	Children []Node `json:"children,omitempty"`
}

// IsGate reports whether the node combines children.
func (n *Node) IsGate() bool {
	return n.Kind != KindLeaf
}

// Name returns the id a result row should carry for this node.
func (n *Node) Name() string {
	if n.ID != "" {
		return n.ID
	}
	return n.Risk.String()
}

// Tree declares one or more named top events over a shared leaf mapping.
// Each top event is resolved independently.
type Tree struct {
	TopEvents []Node `json:"top_events"`
}

// Leaves returns every distinct risk id referenced by any top event,
// in first-reference order.
func (t *Tree) Leaves() []core.RiskID {
	var out []core.RiskID
	seen := make(map[core.RiskID]bool)
	for i := range t.TopEvents {
		walk(&t.TopEvents[i], func(n *Node) {
			if n.Kind == KindLeaf && !seen[n.Risk] {
				seen[n.Risk] = true
				out = append(out, n.Risk)
			}
		})
	}
	return out
}

// GateIDs returns every gate id across all top events, depth-first.
func (t *Tree) GateIDs() []string {
	var out []string
	for i := range t.TopEvents {
		walk(&t.TopEvents[i], func(n *Node) {
			if n.IsGate() {
				out = append(out, n.Name())
			}
		})
	}
	return out
}

func walk(n *Node, fn func(*Node)) {
	fn(n)
	for i := range n.Children {
		walk(&n.Children[i], fn)
	}
}

// Validate checks topology before any evaluation begins. Gates with zero
// children and malformed k-of-n parameters are StructuralErrors; a leaf
// referencing a risk outside knownRisks is a ReferenceError.
func (t *Tree) Validate(knownRisks map[core.RiskID]bool) error {
	if len(t.TopEvents) == 0 {
		return core.NewStructuralError("", "fault tree declares no top events")
	}
	gateIDs := make(map[string]bool)
	for i := range t.TopEvents {
		top := &t.TopEvents[i]
		if !top.IsGate() {
			return core.NewStructuralError(top.Name(), "top event must be a gate")
		}
		if top.ID == "" {
			return core.NewStructuralError("", "top event gate requires an id")
		}
		if err := validateNode(top, knownRisks, gateIDs); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *Node, knownRisks map[core.RiskID]bool, gateIDs map[string]bool) error {
	switch n.Kind {
	case KindLeaf:
		if n.Risk == "" {
			return core.NewStructuralError(n.Name(), "leaf without a risk reference")
		}
		if len(n.Children) != 0 {
			return core.NewStructuralError(n.Name(), "leaf cannot have children")
		}
		if !knownRisks[n.Risk] {
			return core.NewReferenceError("leaf", n.Name(), n.Risk.String())
		}
		return nil
	case KindAnd, KindOr, KindKofN:
		name := n.Name()
		if name != "" {
			if gateIDs[name] {
				return core.NewStructuralError(name, "duplicate gate id")
			}
			gateIDs[name] = true
		}
		// A gate with zero children is undefined, not an identity.
		if len(n.Children) == 0 {
			return core.NewStructuralError(name, "gate has no children")
		}
		if n.Kind == KindKofN {
			if n.K < 1 || n.K > len(n.Children) {
				return core.NewStructuralError(name, fmt.Sprintf("k=%d outside 1..%d", n.K, len(n.Children)))
			}
		}
		for i := range n.Children {
			if err := validateNode(&n.Children[i], knownRisks, gateIDs); err != nil {
				return err
			}
		}
		return nil
	default:
		return core.NewStructuralError(n.Name(), fmt.Sprintf("unknown node kind %q", n.Kind))
	}
}
