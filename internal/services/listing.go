// listing.go
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
	"strings"

	"github.com/localnerve/jam-build-appstore/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// AppFilter narrows an app listing. Empty fields do not filter.
type AppFilter struct {
	// StoreID lists apps homed in the store plus apps installed into it
	StoreID string
	// OwnerID lists apps owned by this member or guest id
	OwnerID string
}

// AppPage is one page of an app listing
type AppPage struct {
	Items       []*AppView `json:"items"`
	TotalCount  int64      `json:"totalCount"`
	HasNextPage bool       `json:"hasNextPage"`
	NextPage    *int       `json:"nextPage"`
}

// appFilterScope is the single WHERE clause shared by the page and the count query
func appFilterScope(filter AppFilter, caller Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.StoreID != "" {
			db = db.Where(
				"(apps.store_id = ? OR EXISTS (SELECT 1 FROM store_installs fsi WHERE fsi.store_id = ? AND fsi.app_id = apps.id))",
				filter.StoreID, filter.StoreID,
			)
		}
		if filter.OwnerID != "" {
			db = db.Where("(apps.user_id = ? OR apps.guest_id = ?)", filter.OwnerID, filter.OwnerID)
		}
		return db.Scopes(accessScope("apps", "app_id", caller))
	}
}

// appOrderClause builds the listing order:
//  1. the store's default app
//  2. the anchor slug
//  3. the caller's custom order for this store, missing last
//  4. the store's display order for installed apps, missing last
//  5. newest first
//
// apps.id breaks any remaining tie.
func appOrderClause(filter AppFilter, caller Caller, anchorSlug string) clause.OrderBy {
	var keys []string
	var vars []interface{}

	if filter.StoreID != "" {
		keys = append(keys, "CASE WHEN apps.id = (SELECT ds.app_id FROM stores ds WHERE ds.id = ?) THEN 0 ELSE 1 END")
		vars = append(vars, filter.StoreID)
	}

	if anchorSlug != "" {
		keys = append(keys, "CASE WHEN apps.slug = ? THEN 0 ELSE 1 END")
		vars = append(vars, anchorSlug)
	}

	if !caller.IsAnonymous() {
		sub, subVars := customOrderSubquery(filter.StoreID, caller)
		keys = append(keys, "CASE WHEN "+sub+" IS NULL THEN 1 ELSE 0 END", sub)
		vars = append(vars, subVars...)
		vars = append(vars, subVars...)
	}

	if filter.StoreID != "" {
		sub := "(SELECT MIN(osi.display_order) FROM store_installs osi WHERE osi.store_id = ? AND osi.app_id = apps.id)"
		keys = append(keys, "CASE WHEN "+sub+" IS NULL THEN 1 ELSE 0 END", sub)
		vars = append(vars, filter.StoreID, filter.StoreID)
	}

	keys = append(keys, "apps.created_at DESC", "apps.id ASC")

	return clause.OrderBy{Expression: clause.Expr{
		SQL:                strings.Join(keys, ", "),
		Vars:               vars,
		WithoutParentheses: true,
	}}
}

// customOrderSubquery selects the caller's AppOrder for an app in a store, or the
// caller's global order when no store is given
func customOrderSubquery(storeID string, caller Caller) (string, []interface{}) {
	var conds []string
	var vars []interface{}

	if storeID != "" {
		conds = append(conds, "ao.store_id = ?")
		vars = append(vars, storeID)
	} else {
		conds = append(conds, "ao.store_id IS NULL")
	}

	subject := caller.Subject()
	if subject.Kind == models.OwnerUser {
		conds = append(conds, "ao.user_id = ?")
	} else {
		conds = append(conds, "ao.guest_id = ?")
	}
	vars = append(vars, subject.ID)

	return "(SELECT MIN(ao.sort_order) FROM app_orders ao WHERE ao.app_id = apps.id AND " +
		strings.Join(conds, " AND ") + ")", vars
}

// ListApps returns one page of the apps visible to caller, in listing order.
func (c *Catalog) ListApps(ctx context.Context, filter AppFilter, caller Caller, page, pageSize int) (*AppPage, error) {
	return listApps(ctx, c.DB, c.Logger, filter, caller, c.Options.AnchorSlug, page, pageSize)
}

func listApps(ctx context.Context, db *gorm.DB, log *zap.Logger, filter AppFilter, caller Caller, anchorSlug string, page, pageSize int) (*AppPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	var total int64
	err := db.WithContext(ctx).
		Model(&models.App{}).
		Clauses(hints.CommentBefore("select", "listApps:count")).
		Scopes(appFilterScope(filter, caller)).
		Distinct("apps.id").
		Count(&total).Error
	if err != nil {
		return nil, wrap("count apps", err)
	}

	var apps []models.App
	err = db.WithContext(ctx).
		Model(&models.App{}).
		Clauses(hints.CommentBefore("select", "listApps:page")).
		Scopes(appFilterScope(filter, caller)).
		Clauses(appOrderClause(filter, caller, anchorSlug)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&apps).Error
	if err != nil {
		return nil, wrap("list apps", err)
	}

	items, err := decorate(ctx, db, log, apps)
	if err != nil {
		return nil, err
	}

	hasNext, next := pageMeta(total, page, pageSize)
	return &AppPage{
		Items:       items,
		TotalCount:  total,
		HasNextPage: hasNext,
		NextPage:    next,
	}, nil
}
