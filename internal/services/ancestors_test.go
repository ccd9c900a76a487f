package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAncestors(t *testing.T) {
	f := newFixture(t)
	root := f.store("root")
	mid := f.store("mid", parent(root.ID))
	leaf := f.store("leaf", parent(mid.ID))

	chain, err := Ancestors(f.ctx, f.db, leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{leaf.ID, mid.ID, root.ID}, chain)

	chain, err = Ancestors(f.ctx, f.db, root.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{root.ID}, chain)
}

func TestAncestorsUnknownStore(t *testing.T) {
	f := newFixture(t)
	_, err := Ancestors(f.ctx, f.db, uuid.NewString())
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAncestorsDanglingParent(t *testing.T) {
	f := newFixture(t)
	root := f.store("root")
	child := f.store("child", parent(root.ID))
	require.NoError(t, f.db.Delete(&models.Store{}, "id = ?", root.ID).Error)

	chain, err := Ancestors(f.ctx, f.db, child.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{child.ID}, chain)
}

func TestAncestorsDetectsCycle(t *testing.T) {
	f := newFixture(t)
	a := f.store("a")
	b := f.store("b", parent(a.ID))

	// bypass the write guard to plant a cycle
	require.NoError(t, f.db.Model(&models.Store{}).Where("id = ?", a.ID).Update("parent_store_id", b.ID).Error)

	_, err := Ancestors(f.ctx, f.db, b.ID)
	assert.ErrorIs(t, err, types.ErrCycleDetected)
}

func TestSetStoreParentRejectsCycles(t *testing.T) {
	f := newFixture(t)
	a := f.store("a")
	b := f.store("b", parent(a.ID))
	c := f.store("c", parent(b.ID))

	err := SetStoreParent(f.ctx, f.db, a.ID, c.ID)
	assert.ErrorIs(t, err, types.ErrCycleDetected)

	err = SetStoreParent(f.ctx, f.db, a.ID, a.ID)
	assert.ErrorIs(t, err, types.ErrCycleDetected)

	var stored models.Store
	f.reload(&stored, a.ID)
	assert.Nil(t, stored.ParentStoreID)

	require.NoError(t, SetStoreParent(f.ctx, f.db, c.ID, a.ID))
	chain, err := Ancestors(f.ctx, f.db, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID, a.ID}, chain)

	require.NoError(t, SetStoreParent(f.ctx, f.db, c.ID, ""))
	f.reload(&stored, c.ID)
	assert.Nil(t, stored.ParentStoreID)
}

func TestCreateStoreValidation(t *testing.T) {
	f := newFixture(t)
	f.store("taken")

	_, err := CreateStore(f.ctx, f.db, models.Store{Slug: "Not A Slug"})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = CreateStore(f.ctx, f.db, models.Store{Slug: "taken"})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = CreateStore(f.ctx, f.db, models.Store{Slug: "shady", Visibility: "secret"})
	assert.ErrorIs(t, err, types.ErrValidation)

	missing := uuid.NewString()
	_, err = CreateStore(f.ctx, f.db, models.Store{Slug: "orphan", ParentStoreID: &missing})
	assert.ErrorIs(t, err, types.ErrNotFound)
}
