// orders.go
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
	"fmt"

	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"gorm.io/gorm"
)

// ReorderItem moves one app to a new position for the caller
type ReorderItem struct {
	AppID string `json:"appId"`
	// StoreID overrides the request store for this item
	StoreID     string `json:"storeId,omitempty"`
	Order       int    `json:"order"`
	AutoInstall bool   `json:"autoInstall,omitempty"`
}

// ReorderResult counts what a reorder changed
type ReorderResult struct {
	Updated      int `json:"updated"`
	Created      int `json:"created"`
	Installed    int `json:"installed"`
	StoreUpdated int `json:"storeUpdated"`
}

// ReorderApps records the caller's custom order for each item. When the caller is the
// member who owns an app, the store's display order for that app follows. Items that
// fail are skipped and their errors joined into the returned error.
func ReorderApps(ctx context.Context, db *gorm.DB, caller Caller, storeID string, items []ReorderItem) (ReorderResult, error) {
	var result ReorderResult
	if err := validateSubject(caller); err != nil {
		return result, err
	}

	var errs []error
	for _, item := range items {
		if item.AppID == "" {
			errs = append(errs, types.Validation("appId is required"))
			continue
		}
		target := storeID
		if item.StoreID != "" {
			target = item.StoreID
		}

		created, storeUpdated, err := reorderOne(ctx, db, caller, target, item)
		if err != nil {
			errs = append(errs, fmt.Errorf("app %s: %w", item.AppID, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
		if storeUpdated {
			result.StoreUpdated++
		}

		if item.AutoInstall {
			_, installed, err := install(ctx, db, caller, AppObject(item.AppID), InstallOptions{Order: item.Order, Source: "reorder"})
			if err != nil {
				errs = append(errs, fmt.Errorf("app %s: %w", item.AppID, err))
				continue
			}
			if installed {
				result.Installed++
			}
		}
	}

	return result, errors.Join(errs...)
}

func reorderOne(ctx context.Context, db *gorm.DB, caller Caller, storeID string, item ReorderItem) (created, storeUpdated bool, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.App
		if err := tx.Where("id = ?", item.AppID).Take(&app).Error; err != nil {
			return notFoundOr("reorder", err, "app %s not found", item.AppID)
		}

		var existing []models.AppOrder
		q := tx.Scopes(forUpdate, subjectScope("app_orders", caller)).
			Where("app_orders.app_id = ?", item.AppID)
		if storeID != "" {
			q = q.Where("app_orders.store_id = ?", storeID)
		} else {
			q = q.Where("app_orders.store_id IS NULL")
		}
		if err := q.Limit(1).Find(&existing).Error; err != nil {
			return wrap("reorder", err)
		}

		if len(existing) > 0 {
			if err := tx.Model(&existing[0]).Update("sort_order", item.Order).Error; err != nil {
				return wrap("reorder", err)
			}
		} else {
			order := models.AppOrder{AppID: item.AppID, SortOrder: item.Order}
			if storeID != "" {
				s := storeID
				order.StoreID = &s
			}
			order.UserID, order.GuestID = caller.Subject().Columns()
			if err := tx.Create(&order).Error; err != nil {
				return wrap("reorder", err)
			}
			created = true
		}

		if storeID != "" && caller.UserID != "" && caller.Owns(app.OwnerOf()) {
			res := tx.Model(&models.StoreInstall{}).
				Where("store_id = ? AND app_id = ?", storeID, item.AppID).
				Update("display_order", item.Order)
			if res.Error != nil {
				return wrap("reorder store", res.Error)
			}
			storeUpdated = res.RowsAffected > 0
		}
		return nil
	})
	return created, storeUpdated, err
}
