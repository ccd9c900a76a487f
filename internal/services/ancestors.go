// ancestors.go
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

	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"gorm.io/gorm"
)

// Ancestors returns the ancestor chain of a store: the store itself first, its root last.
// A parent id that no longer resolves ends the chain at the last existing store.
func Ancestors(ctx context.Context, db *gorm.DB, storeID string) ([]string, error) {
	var chain []string
	visited := make(map[string]struct{})

	current := storeID
	for {
		if _, seen := visited[current]; seen {
			return nil, types.CycleDetected("store %s is its own ancestor", current)
		}

		var store models.Store
		err := db.WithContext(ctx).
			Select("id", "parent_store_id").
			Where("id = ?", current).
			Take(&store).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if len(chain) == 0 {
				return nil, types.NotFound("store %s not found", storeID)
			}
			return chain, nil
		}
		if err != nil {
			return nil, wrap("ancestors", err)
		}

		visited[current] = struct{}{}
		chain = append(chain, store.ID)

		if store.ParentStoreID == nil || *store.ParentStoreID == "" {
			return chain, nil
		}
		current = *store.ParentStoreID
	}
}
