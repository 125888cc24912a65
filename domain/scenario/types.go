package scenario

import (
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/faulttree"
)

// Risk is one declared failure mode. Either Probability or the
// Frequency/Severity pair must be present; everything else is optional.
// Probability-valued fields live in [0,1].
type Risk struct {
	ID          core.RiskID  `json:"id"`
	Category    string       `json:"category,omitempty"`
	Description string       `json:"description,omitempty"`

	// Probability is the declared base failure probability.
	Probability *float64 `json:"probability,omitempty"`

	// Frequency and Severity form the composite alternative to a declared
	// probability: score = frequency * severity, capped at 1.0 with the cap
	// reported as a saturation event.
	Frequency *float64 `json:"frequency,omitempty"`
	Severity  *float64 `json:"severity,omitempty"`

	// Prior, when declared, enables the Bayesian update stage for this risk.
	// Risks without a prior pass through the update stage unchanged.
	Prior *BetaPrior `json:"prior,omitempty"`

	// Evidence, when declared, supplies observed counts for the conjugate
	// update. Without it the update weighs the scored probability by the
	// run's pseudo sample size.
	Evidence *Evidence `json:"evidence,omitempty"`

	// Group, when declared, must name the common-cause group that lists
	// this risk among its members. Membership itself is driven by the
	// group's member list; this field is a cross-checked annotation.
	Group core.GroupID `json:"group,omitempty"`
}

// BetaPrior holds Beta distribution parameters for a risk's prior belief.
type BetaPrior struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// EffectiveSampleSize is the weight of the prior expressed as pseudo-observations.
func (p BetaPrior) EffectiveSampleSize() float64 {
	return p.Alpha + p.Beta
}

// Evidence carries observed binomial outcomes for a risk.
type Evidence struct {
	Successes float64 `json:"successes"`
	Failures  float64 `json:"failures"`
}

// CommonCauseGroup couples a set of risks through a shared failure cause.
// Factor is bounded in [0,1]; a risk belongs to at most one group.
type CommonCauseGroup struct {
	ID          core.GroupID  `json:"id"`
	Description string        `json:"description,omitempty"`
	Factor      float64       `json:"factor"`
	Members     []core.RiskID `json:"members"`
}

// InfluenceEdge is a directed cascade dependency: failures of From raise the
// effective probability of To, attenuated by Weight.
type InfluenceEdge struct {
	From   core.RiskID `json:"from"`
	To     core.RiskID `json:"to"`
	Weight float64     `json:"weight"`
}

// CurrentSchemaVersion is the scenario schema this release reads and writes.
const CurrentSchemaVersion = "1.0"

// TwinMode names an adversarial perturbation regime.
type TwinMode string

const (
	TwinOptimistic  TwinMode = "optimistic"
	TwinPessimistic TwinMode = "pessimistic"
	TwinChaotic     TwinMode = "chaotic"
)

// TwinSpec declares one adversarial twin: a bounded, reproducible whole-
// scenario perturbation evaluated against the unperturbed baseline.
type TwinSpec struct {
	ID    string   `json:"id"`
	Mode  TwinMode `json:"mode"`
	Bound float64  `json:"bound"`
	Seed  int64    `json:"seed"`
}

// Model is the immutable in-memory scenario. It is built once per run (or
// once per perturbed variant); pipeline stages never mutate it. Derivation
// helpers return fresh copies so twin and sensitivity variants can share the
// same baseline safely across goroutines.
type Model struct {
	Name          string             `json:"name"`
	SchemaVersion string             `json:"schema_version,omitempty"`
	Risks         []Risk             `json:"risks"`
	Groups        []CommonCauseGroup `json:"groups,omitempty"`
	Edges         []InfluenceEdge    `json:"edges,omitempty"`
	Tree          *faulttree.Tree    `json:"fault_tree,omitempty"`
	Twins         []TwinSpec         `json:"twins,omitempty"`
}

// RiskIDs returns the declared risk ids in declaration order.
func (m *Model) RiskIDs() []core.RiskID {
	ids := make([]core.RiskID, len(m.Risks))
	for i, r := range m.Risks {
		ids[i] = r.ID
	}
	return ids
}

// Risk looks up a risk by id.
func (m *Model) Risk(id core.RiskID) (Risk, bool) {
	for _, r := range m.Risks {
		if r.ID == id {
			return r, true
		}
	}
	return Risk{}, false
}

// WithProbabilities derives a new Model whose risks carry the given declared
// probabilities in place of their original probability or frequency/severity
// inputs. Risks absent from the overlay keep their declaration. The receiver
// is not modified.
func (m *Model) WithProbabilities(probs map[core.RiskID]float64) *Model {
	derived := *m
	derived.Risks = make([]Risk, len(m.Risks))
	copy(derived.Risks, m.Risks)
	for i := range derived.Risks {
		p, ok := probs[derived.Risks[i].ID]
		if !ok {
			continue
		}
		v := p
		derived.Risks[i].Probability = &v
		derived.Risks[i].Frequency = nil
		derived.Risks[i].Severity = nil
	}
	return &derived
}
