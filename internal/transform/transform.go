package transform

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// LoanTransform defines the interface for all loan what-if transformations.
// Transforms are composable operations that modify loan terms in predictable
// ways, enabling loan comparison and interactive exploration.
type LoanTransform interface {
	// Apply returns modified copy of the base terms.
	// Returns an error if the transformation cannot be applied (e.g., invalid parameters).
	Apply(base domain.LoanTerms) (domain.LoanTerms, error)

	// Name returns a short identifier for this transform (e.g., "adjust_rate").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid for base without applying it.
	Validate(base domain.LoanTerms) error
}

// ApplyTransforms applies a sequence of transforms to base loan terms.
// Transforms are applied in order, with each transform receiving the output of the previous one.
// Returns an error if any transform fails to apply.
func ApplyTransforms(base domain.LoanTerms, transforms []LoanTransform) (domain.LoanTerms, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.LoanTerms{}, fmt.Errorf("transform at index %d is nil", i)
		}

		// Validate before applying
		if err := transform.Validate(current); err != nil {
			return domain.LoanTerms{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.LoanTerms{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
