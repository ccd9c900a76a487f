// context.go
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

	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"gorm.io/gorm"
)

// ResolveContext picks the store an app is presented inside of.
// The candidate is used when it is the home store, when the app was installed into it,
// or when the home store is one of its ancestors. Otherwise the home store is used.
func ResolveContext(ctx context.Context, db *gorm.DB, app models.App, candidateStoreID string) (string, error) {
	if candidateStoreID == "" || candidateStoreID == app.StoreID {
		return app.StoreID, nil
	}

	var n int64
	err := db.WithContext(ctx).
		Model(&models.StoreInstall{}).
		Where("store_id = ? AND app_id = ?", candidateStoreID, app.ID).
		Count(&n).Error
	if err != nil {
		return "", wrap("resolve context", err)
	}
	if n > 0 {
		return candidateStoreID, nil
	}

	chain, err := Ancestors(ctx, db, candidateStoreID)
	if errors.Is(err, types.ErrNotFound) {
		return app.StoreID, nil
	}
	if err != nil {
		return "", err
	}
	if slices.Contains(chain, app.StoreID) {
		return candidateStoreID, nil
	}

	return app.StoreID, nil
}
