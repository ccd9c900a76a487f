// access.go
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
	"fmt"
	"strings"

	"github.com/localnerve/jam-build-appstore/internal/models"
	"gorm.io/gorm"
)

// CanAccess decides whether caller may view entity. Any of these grants access:
//  1. the entity has no owner (system-owned), for every caller including anonymous ones
//  2. the caller is the owning member
//  3. the caller is the owning guest
//  4. the caller has an active install of the entity (installed)
//
// Visibility is presentation metadata and does not grant or remove access.
func CanAccess(entity models.Ownable, caller Caller, installed bool) bool {
	owner := entity.OwnerOf()
	if owner.IsSystem() {
		return true
	}
	if caller.Owns(owner) {
		return true
	}
	return installed
}

// HasActiveInstall reports whether the caller, as member or guest, has an active install of object
func HasActiveInstall(ctx context.Context, db *gorm.DB, caller Caller, object Object) (bool, error) {
	if caller.IsAnonymous() {
		return false, nil
	}
	if err := object.validate(); err != nil {
		return false, err
	}

	var n int64
	err := db.WithContext(ctx).
		Model(&models.Install{}).
		Where(object.column()+" = ?", object.id()).
		Where("uninstalled_at IS NULL").
		Scopes(anyIdentityScope("installs", caller)).
		Count(&n).Error
	if err != nil {
		return false, wrap("check install", err)
	}
	return n > 0, nil
}

// canAccessStored applies CanAccess, consulting installs only when ownership alone does not grant access
func canAccessStored(ctx context.Context, db *gorm.DB, entity models.Ownable, caller Caller, object Object) (bool, error) {
	if CanAccess(entity, caller, false) {
		return true, nil
	}
	installed, err := HasActiveInstall(ctx, db, caller, object)
	if err != nil {
		return false, err
	}
	return CanAccess(entity, caller, installed), nil
}

// anyIdentityScope matches rows recorded against either of the caller's identities
func anyIdentityScope(table string, caller Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		var conds []string
		var args []interface{}
		if caller.UserID != "" {
			conds = append(conds, table+".user_id = ?")
			args = append(args, caller.UserID)
		}
		if caller.GuestID != "" {
			conds = append(conds, table+".guest_id = ?")
			args = append(args, caller.GuestID)
		}
		if len(conds) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// accessScope is the storage filter form of CanAccess for rows of table ("apps" or "stores").
// installColumn names the installs column that references table.
func accessScope(table, installColumn string, caller Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		conds := []string{fmt.Sprintf("(%[1]s.user_id IS NULL AND %[1]s.guest_id IS NULL)", table)}
		var args []interface{}

		installed := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM installs ai WHERE ai.%s = %s.id AND ai.uninstalled_at IS NULL AND ai.%%s = ?)",
			installColumn, table,
		)
		if caller.UserID != "" {
			conds = append(conds, table+".user_id = ?", fmt.Sprintf(installed, "user_id"))
			args = append(args, caller.UserID, caller.UserID)
		}
		if caller.GuestID != "" {
			conds = append(conds, table+".guest_id = ?", fmt.Sprintf(installed, "guest_id"))
			args = append(args, caller.GuestID, caller.GuestID)
		}

		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}
