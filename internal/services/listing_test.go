package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reorder(t *testing.T, f *fixture, caller Caller, storeID string, items ...ReorderItem) {
	t.Helper()
	_, err := ReorderApps(f.ctx, f.db, caller, storeID, items)
	require.NoError(t, err)
}

func TestListAppsCustomOrderAfterDefault(t *testing.T) {
	f := newFixture(t)
	caller := member()

	s := f.store("s")
	a := make([]models.App, 5)
	for i := range a {
		a[i] = f.app([]string{"a1", "a2", "a3", "a4", "a5"}[i], s.ID)
	}
	require.NoError(t, SetStoreDefaultApp(f.ctx, f.db, s.ID, a[0].ID))
	reorder(t, f, caller, s.ID, ReorderItem{AppID: a[2].ID, Order: 0})

	page, err := f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, caller, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "a1", page.Items[0].Slug)
	assert.Equal(t, "a3", page.Items[1].Slug)
	// the rest are newest first
	assert.Equal(t, []string{"a5", "a4", "a2"}, slugs(page.Items[2:]))
}

func TestListAppsDefaultBeatsSmallerCustomOrder(t *testing.T) {
	f := newFixture(t)
	caller := guest()

	s := f.store("s")
	a1 := f.app("a1", s.ID)
	a2 := f.app("a2", s.ID)
	require.NoError(t, SetStoreDefaultApp(f.ctx, f.db, s.ID, a1.ID))
	reorder(t, f, caller, s.ID,
		ReorderItem{AppID: a1.ID, Order: 10},
		ReorderItem{AppID: a2.ID, Order: -5},
	)

	page, err := f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, caller, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, slugs(page.Items))
}

func TestListAppsOrderingPrecedence(t *testing.T) {
	f := newFixture(t)
	caller := member()

	s := f.store("s")
	elsewhere := f.store("elsewhere")

	def := f.app("default", s.ID)
	f.app(DefaultAnchorSlug, s.ID)
	custom := f.app("custom", s.ID)
	shown := f.app("shown", elsewhere.ID)
	f.app("older", s.ID)
	f.app("newest", s.ID)

	require.NoError(t, SetStoreDefaultApp(f.ctx, f.db, s.ID, def.ID))
	f.storeInstall(s.ID, shown.ID, 3)
	reorder(t, f, caller, s.ID, ReorderItem{AppID: custom.ID, Order: 7})

	page, err := f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, caller, 1, 10)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"default", DefaultAnchorSlug, "custom", "shown", "newest", "older"},
		slugs(page.Items),
	)

	// without a caller the custom order does not apply
	page, err = f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, Caller{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"default", DefaultAnchorSlug, "shown", "newest", "older", "custom"},
		slugs(page.Items),
	)
}

func TestListAppsCustomOrderIsPerStore(t *testing.T) {
	f := newFixture(t)
	caller := member()

	s := f.store("s")
	other := f.store("other")
	first := f.app("first", s.ID)
	f.app("second", s.ID)
	reorder(t, f, caller, other.ID, ReorderItem{AppID: first.ID, Order: 0})

	page, err := f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, caller, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, slugs(page.Items))
}

func TestListAppsPaginationConsistency(t *testing.T) {
	f := newFixture(t)
	caller := member()
	stranger := uuid.NewString()

	s := f.store("s")
	other := f.store("other")
	for i := 0; i < 7; i++ {
		f.app("home-"+string(rune('a'+i)), s.ID)
	}
	for i := 0; i < 3; i++ {
		a := f.app("shared-"+string(rune('a'+i)), other.ID)
		f.storeInstall(s.ID, a.ID, i)
	}
	hidden := f.app("hidden", s.ID, appOwner(models.UserOwner(stranger)))
	f.app("not-listed", other.ID)
	// installing a hidden app into the store twice over must not double count it
	f.storeInstall(s.ID, hidden.ID, 0)

	var matching int64
	require.NoError(t, f.db.Model(&models.App{}).
		Scopes(appFilterScope(AppFilter{StoreID: s.ID}, caller)).
		Count(&matching).Error)
	assert.EqualValues(t, 10, matching)

	var seen []string
	for _, size := range []int{1, 3, 4, 10, 25} {
		seen = seen[:0]
		page := 1
		for {
			result, err := f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, caller, page, size)
			require.NoError(t, err)
			assert.Equal(t, matching, result.TotalCount, "pageSize %d page %d", size, page)
			seen = append(seen, slugs(result.Items)...)
			if !result.HasNextPage {
				assert.Nil(t, result.NextPage)
				break
			}
			require.NotNil(t, result.NextPage)
			assert.Equal(t, page+1, *result.NextPage)
			page = *result.NextPage
		}
		assert.Len(t, seen, int(matching), "pageSize %d", size)
		assert.NotContains(t, seen, "hidden")
	}

	// the hidden app becomes visible once installed by the caller
	_, err := Install(f.ctx, f.db, caller, AppObject(hidden.ID), InstallOptions{})
	require.NoError(t, err)
	result, err := f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, caller, 1, 100)
	require.NoError(t, err)
	assert.EqualValues(t, 11, result.TotalCount)
	assert.Contains(t, slugs(result.Items), "hidden")
}

func TestListAppsPageBounds(t *testing.T) {
	f := newFixture(t)
	s := f.store("s")
	f.app("one", s.ID)
	f.app("two", s.ID)

	result, err := f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, Caller{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.EqualValues(t, 2, result.TotalCount)
	assert.True(t, result.HasNextPage)
	require.NotNil(t, result.NextPage)
	assert.Equal(t, 2, *result.NextPage)

	result, err = f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, Caller{}, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.False(t, result.HasNextPage)
}

func TestListAppsOwnerFilter(t *testing.T) {
	f := newFixture(t)
	caller := member()

	s := f.store("s")
	f.app("system", s.ID)
	f.app("mine", s.ID, appOwner(caller.Subject()))

	result, err := f.catalog.ListApps(f.ctx, AppFilter{OwnerID: caller.UserID}, caller, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine"}, slugs(result.Items))
	assert.EqualValues(t, 1, result.TotalCount)
}

func TestListAppsItemsCarryLeafStoreAndExtends(t *testing.T) {
	f := newFixture(t)
	s := f.store("s")
	base := f.app("base", s.ID)
	derived := f.app("derived", s.ID)
	_, err := SetExtends(f.ctx, f.db, derived.ID, []string{base.ID})
	require.NoError(t, err)

	result, err := f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, Caller{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	for _, item := range result.Items {
		require.NotNil(t, item.Store)
		assert.Equal(t, s.ID, item.Store.ID)
		assert.Empty(t, item.Store.Apps)
		assert.Nil(t, item.Store.App)
	}
	byslug := map[string]*AppView{}
	for _, item := range result.Items {
		byslug[item.Slug] = item
	}
	require.Len(t, byslug["derived"].Extends, 1)
	assert.Equal(t, "base", byslug["derived"].Extends[0].Slug)
	assert.Empty(t, byslug["derived"].Extends[0].Extends)
	assert.Empty(t, byslug["base"].Extends)
}
