package services

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccess(t *testing.T) {
	userID := uuid.NewString()
	guestID := uuid.NewString()

	system := models.App{}
	userApp := models.App{}
	userApp.SetOwner(models.UserOwner(userID))
	guestApp := models.App{}
	guestApp.SetOwner(models.GuestOwner(guestID))

	tests := []struct {
		name      string
		entity    models.Ownable
		caller    Caller
		installed bool
		want      bool
	}{
		{"system app, anonymous", system, Caller{}, false, true},
		{"system app, member", system, Caller{UserID: userID}, false, true},
		{"system store, anonymous", models.Store{}, Caller{}, false, true},
		{"owning member", userApp, Caller{UserID: userID}, false, true},
		{"owning guest", guestApp, Caller{GuestID: guestID}, false, true},
		{"member with the owning guest id", guestApp, Caller{UserID: userID, GuestID: guestID}, false, true},
		{"other member", userApp, Caller{UserID: uuid.NewString()}, false, false},
		{"guest id does not match a user owner", userApp, Caller{GuestID: userID}, false, false},
		{"anonymous, owned app", userApp, Caller{}, false, false},
		{"other member with install", userApp, Caller{UserID: uuid.NewString()}, true, true},
		{"installed alone grants access", guestApp, Caller{GuestID: uuid.NewString()}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.entity, tt.caller, tt.installed))
		})
	}
}

func TestAccessScopeMatchesCanAccess(t *testing.T) {
	f := newFixture(t)

	userID := uuid.NewString()
	guestID := uuid.NewString()
	otherID := uuid.NewString()

	home := f.store("home")
	apps := []models.App{
		f.app("system", home.ID),
		f.app("mine", home.ID, appOwner(models.UserOwner(userID))),
		f.app("guest", home.ID, appOwner(models.GuestOwner(guestID))),
		f.app("other", home.ID, appOwner(models.UserOwner(otherID))),
		f.app("shared", home.ID, appOwner(models.UserOwner(otherID))),
		f.app("gone", home.ID, appOwner(models.UserOwner(otherID))),
	}

	// the member installed "shared", and "gone" was installed then removed
	member := Caller{UserID: userID}
	_, err := Install(f.ctx, f.db, member, AppObject(apps[4].ID), InstallOptions{})
	require.NoError(t, err)
	_, err = Install(f.ctx, f.db, member, AppObject(apps[5].ID), InstallOptions{})
	require.NoError(t, err)
	_, err = Uninstall(f.ctx, f.db, member, AppObject(apps[5].ID))
	require.NoError(t, err)

	callers := map[string]Caller{
		"anonymous":    {},
		"member":       member,
		"guest":        {GuestID: guestID},
		"member+guest": {UserID: userID, GuestID: guestID},
		"other":        {UserID: otherID},
		"stranger":     {GuestID: uuid.NewString()},
	}

	for name, caller := range callers {
		t.Run(name, func(t *testing.T) {
			var want []string
			for _, app := range apps {
				installed, err := HasActiveInstall(f.ctx, f.db, caller, AppObject(app.ID))
				require.NoError(t, err)
				if CanAccess(app, caller, installed) {
					want = append(want, app.ID)
				}
			}

			var got []string
			err := f.db.Model(&models.App{}).
				Scopes(accessScope("apps", "app_id", caller)).
				Pluck("apps.id", &got).Error
			require.NoError(t, err)

			sort.Strings(want)
			sort.Strings(got)
			assert.Equal(t, want, got)
		})
	}
}

func TestStoreAccessScopeHonorsStoreInstalls(t *testing.T) {
	f := newFixture(t)
	caller := guest()

	private := f.store("private", storeOwner(models.UserOwner(uuid.NewString())))
	f.store("public")

	var got []string
	require.NoError(t, f.db.Model(&models.Store{}).
		Scopes(accessScope("stores", "store_id", caller)).
		Pluck("stores.slug", &got).Error)
	assert.Equal(t, []string{"public"}, got)

	_, err := Install(f.ctx, f.db, caller, StoreObject(private.ID), InstallOptions{})
	require.NoError(t, err)

	got = nil
	require.NoError(t, f.db.Model(&models.Store{}).
		Scopes(accessScope("stores", "store_id", caller)).
		Order("stores.slug").
		Pluck("stores.slug", &got).Error)
	assert.Equal(t, []string{"private", "public"}, got)
}

func TestHasActiveInstallAnonymous(t *testing.T) {
	f := newFixture(t)
	ok, err := HasActiveInstall(f.ctx, f.db, Caller{}, AppObject(uuid.NewString()))
	require.NoError(t, err)
	assert.False(t, ok)
}
