package ports

import (
	"context"
	"testing"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/layout"
	"github.com/aretw0/strata/pkg/netdef"
	"github.com/aretw0/strata/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPlanStoreContract runs a suite of tests to verify that a PlanStore
// implementation adheres to the defined interface contract.
func RunPlanStoreContract(t *testing.T, store PlanStore) {
	ctx := context.Background()
	plan := contractPlan(t, 4)

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, plan)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, plan.Fingerprint)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, plan.Fingerprint, loaded.Fingerprint)
		assert.Equal(t, plan.ParamCount, loaded.ParamCount)
		assert.Equal(t, len(plan.Hubs), len(loaded.Hubs))

		leaf, err := loaded.Tree.Resolve("dense.parameters.W")
		require.NoError(t, err, "restored tree should resolve endpoints")
		assert.NotNil(t, leaf.Slice)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-fingerprint")
		assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, plan))
		require.NoError(t, store.Delete(ctx, plan.Fingerprint))

		_, err := store.Load(ctx, plan.Fingerprint)
		assert.ErrorIs(t, err, domain.ErrPlanNotFound, "Load after Delete should return ErrPlanNotFound")
	})

	t.Run("List", func(t *testing.T) {
		other := contractPlan(t, 6)
		require.NoError(t, store.Save(ctx, plan))
		require.NoError(t, store.Save(ctx, other))
		defer func() {
			_ = store.Delete(ctx, plan.Fingerprint)
			_ = store.Delete(ctx, other.Fingerprint)
		}()

		fingerprints, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, fingerprints, plan.Fingerprint)
		assert.Contains(t, fingerprints, other.Fingerprint)
	})
}

// contractPlan builds a small real plan; width varies the fingerprint.
func contractPlan(t *testing.T, width int) *layout.Plan {
	t.Helper()
	b := netdef.NewBuilder()
	b.Add("dense").
		Param("W", schema.Of(width, width)).
		Output("out", schema.PerBatch(width))
	b.Add("sink").Input("in", schema.PerBatch(width))
	b.Connect("dense", "out", "sink", "in")

	reg, err := b.Build()
	require.NoError(t, err)
	plan, err := layout.Create(reg)
	require.NoError(t, err)
	return plan
}
