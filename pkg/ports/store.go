package ports

import (
	"context"

	"github.com/aretw0/strata/pkg/layout"
)

// PlanStore defines the interface for persisting computed plans keyed
// by their fingerprint. This lets downstream systems skip re-planning
// for a graph they have already seen.
type PlanStore interface {
	// Save persists the plan under its fingerprint.
	Save(ctx context.Context, plan *layout.Plan) error

	// Load retrieves the plan for a fingerprint.
	// Returns domain.ErrPlanNotFound if no such plan exists.
	Load(ctx context.Context, fingerprint string) (*layout.Plan, error)

	// Delete removes the plan for a fingerprint.
	Delete(ctx context.Context, fingerprint string) error

	// List returns the fingerprints of all stored plans.
	List(ctx context.Context) ([]string, error)
}
