// apps.go
//
// Hierarchical app and store resolution service for the jam-build marketplace
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-appstore.
// jam-build-appstore is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-appstore is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-appstore.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"slices"
	"sort"

	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"gorm.io/gorm"
)

// AppLookup identifies an app by id, or by slug within an optional store context.
// The context store is named by StoreSlug, StoreDomain or StoreID, in that order.
type AppLookup struct {
	ID          string
	Slug        string
	StoreSlug   string
	StoreDomain string
	StoreID     string
	Depth     int
	SkipCache bool
}

// CreateApp inserts an app into its home store
func CreateApp(ctx context.Context, db *gorm.DB, app models.App) (*models.App, error) {
	if err := validateSlug(app.Slug); err != nil {
		return nil, err
	}
	if !app.Visibility.Valid() {
		return nil, types.Validation("invalid visibility %q", app.Visibility)
	}
	if app.StoreID == "" {
		return nil, types.Validation("storeId is required")
	}
	if app.Name == "" {
		app.Name = app.Slug
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Store{}, app.StoreID); err != nil {
			return err
		}
		if err := tx.Create(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.Validation("app slug %q is taken in store %s", app.Slug, app.StoreID)
			}
			return wrap("create app", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrap("create app", err)
	}
	return &app, nil
}

// GetApp resolves an app for caller and presents it inside its effective store context,
// expanded to lookup.Depth. Id lookups skip the access policy. Slug lookups fail with
// ErrAccessDenied when matching apps exist but none is visible to the caller.
func (c *Catalog) GetApp(ctx context.Context, lookup AppLookup, caller Caller) (*AppView, error) {
	if lookup.ID == "" && lookup.Slug == "" {
		return nil, types.Validation("an app id or slug is required")
	}

	depth := c.clampDepth(lookup.Depth)
	key := cacheKey("app", lookup.ID, lookup.Slug, lookup.StoreSlug, lookup.StoreDomain, lookup.StoreID, depthKey(depth), callerKey(caller))

	var cached AppView
	if !lookup.SkipCache && c.cached(ctx, key, &cached) {
		return &cached, nil
	}

	candidate, err := c.candidateStore(ctx, lookup)
	if err != nil {
		return nil, err
	}

	var app models.App
	if lookup.ID != "" {
		if err := c.DB.WithContext(ctx).Where("id = ?", lookup.ID).Take(&app).Error; err != nil {
			return nil, notFoundOr("get app", err, "app %s not found", lookup.ID)
		}
	} else {
		found, err := c.findBySlug(ctx, lookup.Slug, candidate, caller)
		if err != nil {
			return nil, err
		}
		app = found
	}

	storeID, err := ResolveContext(ctx, c.DB, app, candidate)
	if err != nil {
		return nil, err
	}

	views, err := decorate(ctx, c.DB, c.Logger, []models.App{app})
	if err != nil {
		return nil, err
	}
	view := views[0]

	store, err := c.ExpandStore(ctx, storeID, depth, caller)
	switch {
	case errors.Is(err, types.ErrNotFound):
		// home store is gone; keep the leaf view
	case err != nil:
		return nil, err
	default:
		view.Store = store
	}

	c.store(ctx, key, view, caller.Owns(app.OwnerOf()))
	return view, nil
}

// candidateStore resolves the store context the lookup asks for, if any
func (c *Catalog) candidateStore(ctx context.Context, lookup AppLookup) (string, error) {
	var column, value string
	switch {
	case lookup.StoreSlug != "":
		column, value = "slug", lookup.StoreSlug
	case lookup.StoreDomain != "":
		column, value = "domain", lookup.StoreDomain
	default:
		return lookup.StoreID, nil
	}

	var store models.Store
	err := c.DB.WithContext(ctx).
		Select("id").
		Where(column+" = ?", value).
		Order("created_at ASC").
		Take(&store).Error
	if err != nil {
		return "", notFoundOr("get app", err, "store %s not found", value)
	}
	return store.ID, nil
}

// findBySlug picks the app with slug that best fits the candidate store: homed in the
// candidate, then installed into it, then homed in the nearest ancestor. When none of those
// is visible to the caller every app with the slug is considered, oldest first.
func (c *Catalog) findBySlug(ctx context.Context, slug, candidate string, caller Caller) (models.App, error) {
	var chain []string
	if candidate != "" {
		var err error
		chain, err = Ancestors(ctx, c.DB, candidate)
		if err != nil && !errors.Is(err, types.ErrNotFound) {
			return models.App{}, err
		}
	}

	find := func(inContext bool) ([]models.App, error) {
		var apps []models.App
		q := c.DB.WithContext(ctx).Where("apps.slug = ?", slug)
		if inContext {
			q = q.Where(
				"(apps.store_id IN ? OR EXISTS (SELECT 1 FROM store_installs csi WHERE csi.store_id = ? AND csi.app_id = apps.id))",
				chain, candidate,
			)
		}
		err := q.Order("apps.created_at ASC").Order("apps.id ASC").Find(&apps).Error
		return apps, wrap("find app", err)
	}

	tried := make(map[string]struct{})
	pick := func(apps []models.App) (*models.App, error) {
		for i, app := range apps {
			if _, ok := tried[app.ID]; ok {
				continue
			}
			tried[app.ID] = struct{}{}
			ok, err := canAccessStored(ctx, c.DB, app, caller, AppObject(app.ID))
			if err != nil {
				return nil, err
			}
			if ok {
				return &apps[i], nil
			}
		}
		return nil, nil
	}

	if len(chain) > 0 {
		apps, err := find(true)
		if err != nil {
			return models.App{}, err
		}
		rank := func(a models.App) int {
			switch i := slices.Index(chain, a.StoreID); {
			case i == 0:
				return 0
			case i < 0:
				return 1
			default:
				return i + 1
			}
		}
		sort.SliceStable(apps, func(i, j int) bool { return rank(apps[i]) < rank(apps[j]) })

		found, err := pick(apps)
		if err != nil || found != nil {
			return deref(found), err
		}
	}

	apps, err := find(false)
	if err != nil {
		return models.App{}, err
	}
	found, err := pick(apps)
	if err != nil || found != nil {
		return deref(found), err
	}

	if len(tried) == 0 {
		return models.App{}, types.NotFound("app %s not found", slug)
	}
	return models.App{}, types.AccessDenied("app %s", slug)
}

func deref(app *models.App) models.App {
	if app == nil {
		return models.App{}
	}
	return *app
}
