package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeSlugs(items []*StoreView) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.Slug
	}
	return out
}

func TestGetStoreAccess(t *testing.T) {
	f := newFixture(t)
	owner := member()
	private := f.store("private", storeOwner(owner.Subject()))
	f.app("inside", private.ID)

	view, err := f.catalog.GetStore(f.ctx, StoreLookup{Slug: "private"}, owner)
	require.NoError(t, err)
	assert.Equal(t, private.ID, view.ID)
	assert.Equal(t, []string{"inside"}, slugs(view.Apps))

	_, err = f.catalog.GetStore(f.ctx, StoreLookup{Slug: "private"}, guest())
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	view, err = f.catalog.GetStore(f.ctx, StoreLookup{ID: private.ID}, Caller{})
	require.NoError(t, err)
	assert.Equal(t, private.ID, view.ID)

	_, err = f.catalog.GetStore(f.ctx, StoreLookup{Slug: "nope"}, owner)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = f.catalog.GetStore(f.ctx, StoreLookup{}, owner)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestGetStoreVisibilityDoesNotGrantAccess(t *testing.T) {
	f := newFixture(t)
	f.store("listed", storeOwner(models.UserOwner(uuid.NewString())), func(s *models.Store) {
		s.Visibility = models.VisibilityPublic
	})
	f.store("hidden", func(s *models.Store) {
		s.Visibility = models.VisibilityPrivate
	})

	_, err := f.catalog.GetStore(f.ctx, StoreLookup{Slug: "listed"}, Caller{})
	assert.ErrorIs(t, err, types.ErrAccessDenied)

	view, err := f.catalog.GetStore(f.ctx, StoreLookup{Slug: "hidden"}, Caller{})
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityPrivate, view.Visibility)
}

func TestListStoresOrdering(t *testing.T) {
	f := newFixture(t)
	caller := guest()

	f.store("old")
	f.store(DefaultAnchorSlug)
	f.store("mine", storeOwner(caller.Subject()))
	f.store("new")
	f.store("theirs", storeOwner(models.UserOwner(uuid.NewString())))

	page, err := f.catalog.ListStores(f.ctx, StoreFilter{}, caller, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine", DefaultAnchorSlug, "new", "old"}, storeSlugs(page.Items))
	assert.EqualValues(t, 4, page.TotalCount)
	assert.False(t, page.HasNextPage)

	page, err = f.catalog.ListStores(f.ctx, StoreFilter{}, Caller{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultAnchorSlug, "new"}, storeSlugs(page.Items))
	assert.EqualValues(t, 3, page.TotalCount)
	require.NotNil(t, page.NextPage)
	assert.Equal(t, 2, *page.NextPage)
}

func TestListStoresFilters(t *testing.T) {
	f := newFixture(t)
	caller := member()
	root := f.store("root")
	f.store("child-a", parent(root.ID))
	f.store("child-b", parent(root.ID), storeOwner(caller.Subject()))
	f.store("elsewhere")

	page, err := f.catalog.ListStores(f.ctx, StoreFilter{ParentStoreID: root.ID}, caller, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"child-b", "child-a"}, storeSlugs(page.Items))

	page, err = f.catalog.ListStores(f.ctx, StoreFilter{OwnerID: caller.UserID}, caller, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"child-b"}, storeSlugs(page.Items))
	assert.EqualValues(t, 1, page.TotalCount)
}

func domain(d string) func(*models.Store) {
	return func(s *models.Store) { s.Domain = &d }
}

func TestGetStoreByDomainAndDefaultApp(t *testing.T) {
	f := newFixture(t)
	vex := f.store("vex", domain("https://vex.example.com"))
	other := f.store("other", domain("https://other.example.com"))
	front := f.app("front", vex.ID)
	f.app("side", other.ID)
	require.NoError(t, SetStoreDefaultApp(f.ctx, f.db, vex.ID, front.ID))

	view, err := f.catalog.GetStore(f.ctx, StoreLookup{Domain: "https://vex.example.com"}, Caller{})
	require.NoError(t, err)
	assert.Equal(t, vex.ID, view.ID)
	require.NotNil(t, view.Domain)
	assert.Equal(t, "https://vex.example.com", *view.Domain)
	require.NotNil(t, view.App)
	assert.Equal(t, "front", view.App.Slug)

	view, err = f.catalog.GetStore(f.ctx, StoreLookup{AppID: front.ID}, Caller{})
	require.NoError(t, err)
	assert.Equal(t, vex.ID, view.ID)

	// set fields must all match
	_, err = f.catalog.GetStore(f.ctx, StoreLookup{Slug: "other", Domain: "https://vex.example.com"}, Caller{})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = f.catalog.GetStore(f.ctx, StoreLookup{Domain: "https://nowhere.example.com"}, Caller{})
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = f.catalog.GetStore(f.ctx, StoreLookup{AppID: uuid.NewString()}, Caller{})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetStoreByDomainChecksAccess(t *testing.T) {
	f := newFixture(t)
	owner := member()
	f.store("private", storeOwner(owner.Subject()), domain("https://private.example.com"))

	view, err := f.catalog.GetStore(f.ctx, StoreLookup{Domain: "https://private.example.com"}, owner)
	require.NoError(t, err)
	assert.Equal(t, "private", view.Slug)

	_, err = f.catalog.GetStore(f.ctx, StoreLookup{Domain: "https://private.example.com"}, guest())
	assert.ErrorIs(t, err, types.ErrAccessDenied)
}
