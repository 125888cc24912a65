package scenario

import (
	"fmt"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/core"
)

// Validate checks the scenario's declared data before any stage executes.
// Validation failures abort a run with no partial output, so every rule here
// is a hard contract, not a normalization.
func (m *Model) Validate() error {
	if len(m.Risks) == 0 {
		return core.NewValidationError("", "scenario declares no risks")
	}

	seen := make(map[core.RiskID]bool, len(m.Risks))
	for _, r := range m.Risks {
		if r.ID == "" {
			return core.NewValidationError("", "risk with empty id")
		}
		if seen[r.ID] {
			return core.NewValidationError(r.ID, "duplicate risk id")
		}
		seen[r.ID] = true

		if err := r.validate(); err != nil {
			return err
		}
	}

	grouped := make(map[core.RiskID]core.GroupID)
	groupIDs := make(map[core.GroupID]bool, len(m.Groups))
	for _, g := range m.Groups {
		if g.ID == "" {
			return core.NewValidationError("", "common-cause group with empty id")
		}
		if groupIDs[g.ID] {
			return core.NewValidationError("", fmt.Sprintf("duplicate common-cause group id %s", g.ID))
		}
		groupIDs[g.ID] = true
		if g.Factor < 0 || g.Factor > 1 {
			return core.NewValidationError("", fmt.Sprintf("group %s factor %v outside [0,1]", g.ID, g.Factor))
		}
		for _, member := range g.Members {
			if !seen[member] {
				return core.NewReferenceError("group", g.ID.String(), member.String())
			}
			if prev, ok := grouped[member]; ok {
				return core.NewValidationError(member, fmt.Sprintf("belongs to both group %s and group %s", prev, g.ID))
			}
			grouped[member] = g.ID
		}
	}

	// A risk's own group declaration is redundant with the group's member
	// list. When present it must agree, never silently lose to it.
	for _, r := range m.Risks {
		if r.Group == "" {
			continue
		}
		if !groupIDs[r.Group] {
			return core.NewReferenceError("risk", r.ID.String(), r.Group.String())
		}
		if grouped[r.ID] != r.Group {
			return core.NewValidationError(r.ID, fmt.Sprintf("declares group %s but is not among its members", r.Group))
		}
	}

	for _, e := range m.Edges {
		if !seen[e.From] {
			return core.NewReferenceError("edge", e.To.String(), e.From.String())
		}
		if !seen[e.To] {
			return core.NewReferenceError("edge", e.From.String(), e.To.String())
		}
		// Weights must stay below 1 so circular cascades damp out instead
		// of growing without bound.
		if e.Weight < 0 || e.Weight >= 1 {
			return core.NewValidationError(e.To, fmt.Sprintf("edge from %s has weight %v outside [0,1)", e.From, e.Weight))
		}
	}

	twinIDs := make(map[string]bool, len(m.Twins))
	for _, tw := range m.Twins {
		if tw.ID == "" {
			return core.NewValidationError("", "twin spec with empty id")
		}
		if twinIDs[tw.ID] {
			return core.NewValidationError("", fmt.Sprintf("duplicate twin id %s", tw.ID))
		}
		twinIDs[tw.ID] = true
		switch tw.Mode {
		case TwinOptimistic, TwinPessimistic, TwinChaotic:
		default:
			return core.NewValidationError("", fmt.Sprintf("twin %s has unknown mode %q", tw.ID, tw.Mode))
		}
		if tw.Bound <= 0 || tw.Bound > 1 {
			return core.NewValidationError("", fmt.Sprintf("twin %s bound %v outside (0,1]", tw.ID, tw.Bound))
		}
	}

	return nil
}

func (r Risk) validate() error {
	hasProb := r.Probability != nil
	hasComposite := r.Frequency != nil || r.Severity != nil

	switch {
	case hasProb && hasComposite:
		return core.NewValidationError(r.ID, "declares both probability and frequency/severity")
	case hasProb:
		if p := *r.Probability; p < 0 || p > 1 {
			return core.NewValidationError(r.ID, fmt.Sprintf("probability %v outside [0,1]", p))
		}
	case hasComposite:
		if r.Frequency == nil || r.Severity == nil {
			return core.NewValidationError(r.ID, "frequency/severity pair is incomplete")
		}
		if *r.Frequency < 0 {
			return core.NewValidationError(r.ID, fmt.Sprintf("frequency %v is negative", *r.Frequency))
		}
		if s := *r.Severity; s < 0 || s > 1 {
			return core.NewValidationError(r.ID, fmt.Sprintf("severity %v outside [0,1]", s))
		}
	default:
		return core.NewValidationError(r.ID, "missing probability or frequency/severity pair")
	}

	if r.Prior != nil {
		if r.Prior.Alpha <= 0 || r.Prior.Beta <= 0 {
			return core.NewValidationError(r.ID, fmt.Sprintf("beta prior (%v, %v) requires positive parameters", r.Prior.Alpha, r.Prior.Beta))
		}
	}
	if r.Evidence != nil {
		if r.Prior == nil {
			return core.NewValidationError(r.ID, "evidence declared without a prior")
		}
		if r.Evidence.Successes < 0 || r.Evidence.Failures < 0 {
			return core.NewValidationError(r.ID, "evidence counts cannot be negative")
		}
	}
	return nil
}
