// mutations.go
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

	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
)

// The Catalog write methods run the storage operation and then drop cached resolver
// results. Cache invalidation never fails a write.

func (c *Catalog) Install(ctx context.Context, subject Caller, object Object, opts InstallOptions) (*models.Install, error) {
	row, created, err := install(ctx, c.DB, subject, object, opts)
	if err != nil {
		return nil, err
	}
	if created {
		c.invalidate(ctx)
	}
	return row, nil
}

func (c *Catalog) Uninstall(ctx context.Context, subject Caller, object Object) (*models.Install, error) {
	row, err := Uninstall(ctx, c.DB, subject, object)
	if err != nil {
		return nil, err
	}
	if row != nil {
		c.invalidate(ctx)
	}
	return row, nil
}

func (c *Catalog) AutoInstallDefaultApps(ctx context.Context, subject Caller) ([]models.Install, error) {
	rows, err := AutoInstallDefaultApps(ctx, c.DB, subject)
	if len(rows) > 0 {
		c.invalidate(ctx)
	}
	return rows, err
}

func (c *Catalog) ListInstalls(ctx context.Context, subject Caller) ([]models.Install, error) {
	return ListInstalls(ctx, c.DB, subject)
}

// SetExtends replaces an app's extends. Only the app's owner may edit them.
func (c *Catalog) SetExtends(ctx context.Context, caller Caller, appID string, toIDs []string) ([]models.AppExtend, error) {
	var app models.App
	if err := c.DB.WithContext(ctx).Select("id", "user_id", "guest_id").Where("id = ?", appID).Take(&app).Error; err != nil {
		return nil, notFoundOr("set extends", err, "app %s not found", appID)
	}
	if !caller.Owns(app.OwnerOf()) {
		return nil, types.AccessDenied("app %s", appID)
	}

	edges, err := SetExtends(ctx, c.DB, appID, toIDs)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return edges, nil
}

func (c *Catalog) GetExtends(ctx context.Context, appID string) ([]*AppView, error) {
	return GetExtends(ctx, c.DB, c.Logger, appID)
}

func (c *Catalog) ReorderApps(ctx context.Context, caller Caller, storeID string, items []ReorderItem) (ReorderResult, error) {
	result, err := ReorderApps(ctx, c.DB, caller, storeID, items)
	if result.Created+result.Updated+result.Installed > 0 {
		c.invalidate(ctx)
	}
	return result, err
}

func (c *Catalog) UpsertStoreInstall(ctx context.Context, in models.StoreInstall) (*models.StoreInstall, error) {
	row, err := UpsertStoreInstall(ctx, c.DB, in)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return row, nil
}

func (c *Catalog) RemoveStoreInstall(ctx context.Context, storeID, appID string) error {
	if err := RemoveStoreInstall(ctx, c.DB, storeID, appID); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Catalog) CreateStore(ctx context.Context, store models.Store) (*models.Store, error) {
	created, err := CreateStore(ctx, c.DB, store)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return created, nil
}

func (c *Catalog) SetStoreParent(ctx context.Context, storeID, parentID string) error {
	if err := SetStoreParent(ctx, c.DB, storeID, parentID); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Catalog) SetStoreDefaultApp(ctx context.Context, storeID, appID string) error {
	if err := SetStoreDefaultApp(ctx, c.DB, storeID, appID); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *Catalog) CreateApp(ctx context.Context, app models.App) (*models.App, error) {
	created, err := CreateApp(ctx, c.DB, app)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return created, nil
}

func (c *Catalog) Ancestors(ctx context.Context, storeID string) ([]string, error) {
	return Ancestors(ctx, c.DB, storeID)
}
