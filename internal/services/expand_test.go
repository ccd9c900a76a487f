package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crossLinked builds two stores whose apps are installed into each other
func crossLinked(f *fixture) (storeA, storeB string) {
	a := f.store("a")
	b := f.store("b", parent(a.ID))
	a1 := f.app("a1", a.ID)
	a2 := f.app("a2", a.ID)
	b1 := f.app("b1", b.ID)
	f.storeInstall(a.ID, b1.ID, 1)
	f.storeInstall(b.ID, a1.ID, 1)
	f.storeInstall(b.ID, a2.ID, 2)
	require.NoError(f.t, SetStoreDefaultApp(f.ctx, f.db, a.ID, a1.ID))
	require.NoError(f.t, SetStoreDefaultApp(f.ctx, f.db, b.ID, b1.ID))
	return a.ID, b.ID
}

func TestExpandStoreDepthZero(t *testing.T) {
	f := newFixture(t)
	a, _ := crossLinked(f)

	view, err := f.catalog.ExpandStore(f.ctx, a, 0, Caller{})
	require.NoError(t, err)
	require.Len(t, view.Apps, 3)
	for _, app := range view.Apps {
		require.NotNil(t, app.Store)
		assert.Equal(t, app.StoreID, app.Store.ID)
		assert.Empty(t, app.Store.Apps)
		assert.Nil(t, app.Store.App)
	}

	require.NotNil(t, view.App)
	assert.Equal(t, "a1", view.App.Slug)
	assert.Nil(t, view.App.Store)
}

func TestExpandStoreDepthOne(t *testing.T) {
	f := newFixture(t)
	a, b := crossLinked(f)

	view, err := f.catalog.ExpandStore(f.ctx, a, 1, Caller{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b1", "a2"}, slugs(view.Apps))

	byslug := map[string]*AppView{}
	for _, app := range view.Apps {
		byslug[app.Slug] = app
	}

	nestedB := byslug["b1"].Store
	require.NotNil(t, nestedB)
	assert.Equal(t, b, nestedB.ID)
	assert.Nil(t, nestedB.App)
	assert.Equal(t, []string{"b1", "a1", "a2"}, slugs(nestedB.Apps))
	for _, app := range nestedB.Apps {
		require.NotNil(t, app.Store)
		assert.Empty(t, app.Store.Apps)
		assert.Nil(t, app.Store.App)
	}

	// apps sharing a home store share one expansion
	assert.Same(t, byslug["a1"].Store, byslug["a2"].Store)
	assert.Nil(t, byslug["a1"].Store.App)
}

func TestExpandStoreClampsDepth(t *testing.T) {
	f := newFixture(t)
	a, _ := crossLinked(f)

	deep, err := f.catalog.ExpandStore(f.ctx, a, 50, Caller{})
	require.NoError(t, err)
	capped, err := f.catalog.ExpandStore(f.ctx, a, DefaultMaxDepth, Caller{})
	require.NoError(t, err)
	assert.Equal(t, depthOf(capped), depthOf(deep))
	assert.Equal(t, DefaultMaxDepth, depthOf(deep))

	negative, err := f.catalog.ExpandStore(f.ctx, a, -3, Caller{})
	require.NoError(t, err)
	assert.Equal(t, 0, depthOf(negative))

	shallow := NewCatalog(f.db, nil, nil, Options{MaxDepth: 0})
	view, err := shallow.ExpandStore(f.ctx, a, 2, Caller{})
	require.NoError(t, err)
	assert.Equal(t, 0, depthOf(view))
}

// depthOf measures how many nested levels of apps a view materializes
func depthOf(view *StoreView) int {
	best := 0
	for _, app := range view.Apps {
		if app.Store != nil && len(app.Store.Apps) > 0 {
			if d := depthOf(app.Store) + 1; d > best {
				best = d
			}
		}
	}
	return best
}

func TestExpandStoreUnknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.ExpandStore(f.ctx, uuid.NewString(), 1, Caller{})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestExpandStoreSelfHomedApps(t *testing.T) {
	f := newFixture(t)
	s := f.store("s")
	f.app("only", s.ID)

	// each level re-expands the same store one level shallower
	view, err := f.catalog.ExpandStore(f.ctx, s.ID, 2, Caller{})
	require.NoError(t, err)
	level1 := view.Apps[0].Store
	require.NotNil(t, level1)
	level2 := level1.Apps[0].Store
	require.NotNil(t, level2)
	assert.Equal(t, s.ID, level2.ID)
	require.Len(t, level2.Apps, 1)
	leaf := level2.Apps[0].Store
	require.NotNil(t, leaf)
	assert.Empty(t, leaf.Apps)
}
