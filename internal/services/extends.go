// extends.go
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
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetExtends replaces the full set of apps that appID extends with toIDs.
// Every extended app is also installed into appID's home store, featured, unless
// that store already has it. Self references and unknown app ids are rejected.
func SetExtends(ctx context.Context, db *gorm.DB, appID string, toIDs []string) ([]models.AppExtend, error) {
	ids := distinct(toIDs)
	for _, id := range ids {
		if id == appID {
			return nil, types.Validation("app %s cannot extend itself", appID)
		}
	}

	var edges []models.AppExtend
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.App
		err := tx.Scopes(forUpdate).
			Where("id = ?", appID).
			Take(&app).Error
		if err != nil {
			return notFoundOr("set extends", err, "app %s not found", appID)
		}

		var targets []models.App
		if len(ids) > 0 {
			if err := tx.Where("id IN ?", ids).Find(&targets).Error; err != nil {
				return wrap("set extends", err)
			}
			if len(targets) != len(ids) {
				return types.Validation("extends references an unknown app")
			}
		}

		if err := tx.Where("app_id = ?", appID).Delete(&models.AppExtend{}).Error; err != nil {
			return wrap("delete extends", err)
		}
		if len(ids) == 0 {
			return nil
		}

		edges = make([]models.AppExtend, len(ids))
		for i, id := range ids {
			edges[i] = models.AppExtend{AppID: appID, ToID: id}
		}
		if err := tx.Create(&edges).Error; err != nil {
			return wrap("insert extends", err)
		}

		for _, target := range targets {
			description := target.Description
			install := models.StoreInstall{
				StoreID:           app.StoreID,
				AppID:             target.ID,
				Featured:          true,
				DisplayOrder:      1,
				CustomDescription: &description,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "store_id"}, {Name: "app_id"}},
				DoNothing: true,
			}).Create(&install).Error
			if err != nil {
				return wrap("install extended app", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrap("set extends", err)
	}

	if edges == nil {
		edges = []models.AppExtend{}
	}
	return edges, nil
}

// GetExtends returns the apps appID extends, shallow
func GetExtends(ctx context.Context, db *gorm.DB, log *zap.Logger, appID string) ([]*AppView, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&models.App{}).Where("id = ?", appID).Count(&n).Error; err != nil {
		return nil, wrap("get extends", err)
	}
	if n == 0 {
		return nil, types.NotFound("app %s not found", appID)
	}

	extends, err := extendsByApp(ctx, db, log, []string{appID})
	if err != nil {
		return nil, err
	}
	if views, ok := extends[appID]; ok {
		return views, nil
	}
	return []*AppView{}, nil
}

// distinct drops empty and repeated ids, keeping first occurrence order
func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
