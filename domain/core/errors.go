package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrValidation covers malformed or out-of-range scenario and prior data.
	// A validation failure aborts the whole run before any stage executes.
	ErrValidation = errors.New("scenario validation failed")

	// ErrStructural covers malformed fault-tree topology, detected before
	// any evaluation begins.
	ErrStructural = errors.New("malformed fault tree")

	// ErrReference covers dangling id references between risks, groups,
	// influence edges and tree leaves.
	ErrReference = errors.New("dangling reference")

	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)
)

// Error constructors with context

func NewValidationError(riskID RiskID, reason string) error {
	if riskID == "" {
		return fmt.Errorf("%w: %s", ErrValidation, reason)
	}
	return fmt.Errorf("%w: risk %s: %s", ErrValidation, riskID, reason)
}

func NewStructuralError(nodeID string, reason string) error {
	return fmt.Errorf("%w: node %s: %s", ErrStructural, nodeID, reason)
}

func NewReferenceError(kind string, from string, target string) error {
	return fmt.Errorf("%w: %s %s references unknown id %q", ErrReference, kind, from, target)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewRunNotFoundError(runID RunID) error {
	return fmt.Errorf("%w %s", ErrRunNotFound, runID)
}

// Error checking helpers

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsStructuralError(err error) bool {
	return errors.Is(err, ErrStructural)
}

func IsReferenceError(err error) bool {
	return errors.Is(err, ErrReference)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
