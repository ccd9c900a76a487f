// store_installs.go
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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertStoreInstall cross-distributes an app into a store, or updates the presentation
// of an existing (store, app) row.
func UpsertStoreInstall(ctx context.Context, db *gorm.DB, in models.StoreInstall) (*models.StoreInstall, error) {
	if in.StoreID == "" || in.AppID == "" {
		return nil, types.Validation("storeId and appId are required")
	}

	var row models.StoreInstall
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Store{}, in.StoreID); err != nil {
			return err
		}
		if err := exists(tx, &models.App{}, in.AppID); err != nil {
			return err
		}

		in.ID = ""
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "store_id"}, {Name: "app_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"display_order", "featured", "custom_description", "custom_icon", "updated_at",
			}),
		}).Create(&in).Error
		if err != nil {
			return wrap("upsert store install", err)
		}

		return wrap("upsert store install", tx.Where("store_id = ? AND app_id = ?", in.StoreID, in.AppID).Take(&row).Error)
	})
	if err != nil {
		return nil, wrap("upsert store install", err)
	}
	return &row, nil
}

// RemoveStoreInstall withdraws an app from a store it was cross-distributed into
func RemoveStoreInstall(ctx context.Context, db *gorm.DB, storeID, appID string) error {
	res := db.WithContext(ctx).
		Where("store_id = ? AND app_id = ?", storeID, appID).
		Delete(&models.StoreInstall{})
	if res.Error != nil {
		return wrap("remove store install", res.Error)
	}
	if res.RowsAffected == 0 {
		return types.NotFound("app %s is not installed in store %s", appID, storeID)
	}
	return nil
}

func exists(db *gorm.DB, model interface{}, id string) error {
	var n int64
	if err := db.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return wrap("lookup", err)
	}
	if n == 0 {
		name := "app"
		if _, ok := model.(*models.Store); ok {
			name = "store"
		}
		return types.NotFound("%s %s not found", name, id)
	}
	return nil
}
