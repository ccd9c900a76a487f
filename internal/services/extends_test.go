package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edgesOf(t *testing.T, f *fixture, appID string) []string {
	t.Helper()
	var to []string
	require.NoError(t, f.db.Model(&models.AppExtend{}).Where("app_id = ?", appID).Order("to_id").Pluck("to_id", &to).Error)
	return to
}

func TestSetExtendsReplaces(t *testing.T) {
	f := newFixture(t)
	s := f.store("s")
	a := f.app("a", s.ID)
	b := f.app("b", s.ID)
	c := f.app("c", s.ID)

	edges, err := SetExtends(f.ctx, f.db, a.ID, []string{b.ID, c.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, edges, 2)
	assert.ElementsMatch(t, []string{b.ID, c.ID}, edgesOf(t, f, a.ID))

	_, err = SetExtends(f.ctx, f.db, a.ID, []string{c.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, edgesOf(t, f, a.ID))

	edges, err = SetExtends(f.ctx, f.db, a.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, edges)
	assert.Empty(t, edgesOf(t, f, a.ID))
}

func TestSetExtendsRejectsInvalidTargets(t *testing.T) {
	f := newFixture(t)
	s := f.store("s")
	a := f.app("a", s.ID)
	b := f.app("b", s.ID)
	_, err := SetExtends(f.ctx, f.db, a.ID, []string{b.ID})
	require.NoError(t, err)

	_, err = SetExtends(f.ctx, f.db, a.ID, []string{b.ID, a.ID})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = SetExtends(f.ctx, f.db, a.ID, []string{uuid.NewString()})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = SetExtends(f.ctx, f.db, uuid.NewString(), []string{b.ID})
	assert.ErrorIs(t, err, types.ErrNotFound)

	// a rejected replacement leaves the previous edges in place
	assert.Equal(t, []string{b.ID}, edgesOf(t, f, a.ID))
}

func TestSetExtendsAllowsMutualEdges(t *testing.T) {
	f := newFixture(t)
	s := f.store("s")
	a := f.app("a", s.ID)
	b := f.app("b", s.ID)

	_, err := SetExtends(f.ctx, f.db, a.ID, []string{b.ID})
	require.NoError(t, err)
	_, err = SetExtends(f.ctx, f.db, b.ID, []string{a.ID})
	require.NoError(t, err)

	views, err := GetExtends(f.ctx, f.db, f.catalog.Logger, a.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "b", views[0].Slug)
	assert.Empty(t, views[0].Extends)
}

func TestSetExtendsInstallsIntoHomeStore(t *testing.T) {
	f := newFixture(t)
	home := f.store("home")
	other := f.store("other")
	a := f.app("a", home.ID)
	b := f.app("b", other.ID, func(app *models.App) { app.Description = "the b app" })
	c := f.app("c", other.ID)

	// c was already placed by hand and must stay as it is
	f.storeInstall(home.ID, c.ID, 9)

	_, err := SetExtends(f.ctx, f.db, a.ID, []string{b.ID, c.ID})
	require.NoError(t, err)
	_, err = SetExtends(f.ctx, f.db, a.ID, []string{b.ID, c.ID})
	require.NoError(t, err)

	var rows []models.StoreInstall
	require.NoError(t, f.db.Where("store_id = ?", home.ID).Find(&rows).Error)
	require.Len(t, rows, 2)

	byApp := map[string]models.StoreInstall{}
	for _, r := range rows {
		byApp[r.AppID] = r
	}
	assert.True(t, byApp[b.ID].Featured)
	assert.Equal(t, 1, byApp[b.ID].DisplayOrder)
	require.NotNil(t, byApp[b.ID].CustomDescription)
	assert.Equal(t, "the b app", *byApp[b.ID].CustomDescription)

	assert.False(t, byApp[c.ID].Featured)
	assert.Equal(t, 9, byApp[c.ID].DisplayOrder)

	// removing the edge does not withdraw the app from the store
	_, err = SetExtends(f.ctx, f.db, a.ID, nil)
	require.NoError(t, err)
	var n int64
	require.NoError(t, f.db.Model(&models.StoreInstall{}).Where("store_id = ?", home.ID).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestGetExtendsUnknownApp(t *testing.T) {
	f := newFixture(t)
	_, err := GetExtends(f.ctx, f.db, f.catalog.Logger, uuid.NewString())
	assert.ErrorIs(t, err, types.ErrNotFound)

	s := f.store("s")
	a := f.app("a", s.ID)
	views, err := GetExtends(f.ctx, f.db, f.catalog.Logger, a.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestCatalogSetExtendsRequiresOwner(t *testing.T) {
	f := newFixture(t)
	owner := member()
	s := f.store("s")
	a := f.app("a", s.ID, appOwner(owner.Subject()))
	b := f.app("b", s.ID)
	system := f.app("system", s.ID)

	_, err := f.catalog.SetExtends(f.ctx, member(), a.ID, []string{b.ID})
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	_, err = f.catalog.SetExtends(f.ctx, owner, system.ID, []string{b.ID})
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	edges, err := f.catalog.SetExtends(f.ctx, owner, a.ID, []string{b.ID})
	require.NoError(t, err)
	assert.Len(t, edges, 1)
}
