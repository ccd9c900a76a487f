// stores.go
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
	"regexp"
	"slices"
	"strings"

	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,254}$`)

func validateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return types.Validation("invalid slug %q", slug)
	}
	return nil
}

// StoreLookup identifies a store by id, slug, serving domain, or the app it
// defaults to. Set fields must all match.
type StoreLookup struct {
	ID        string
	Slug      string
	Domain    string
	AppID     string
	Depth     int
	SkipCache bool
}

// StoreFilter narrows a store listing
type StoreFilter struct {
	ParentStoreID string
	OwnerID       string
}

// StorePage is one page of a store listing
type StorePage struct {
	Items       []*StoreView `json:"items"`
	TotalCount  int64        `json:"totalCount"`
	HasNextPage bool         `json:"hasNextPage"`
	NextPage    *int         `json:"nextPage"`
}

// CreateStore inserts a store. A parent must exist and must not have the new store as an ancestor.
func CreateStore(ctx context.Context, db *gorm.DB, store models.Store) (*models.Store, error) {
	if err := validateSlug(store.Slug); err != nil {
		return nil, err
	}
	if !store.Visibility.Valid() {
		return nil, types.Validation("invalid visibility %q", store.Visibility)
	}
	if store.Name == "" {
		store.Name = store.Slug
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if store.ParentStoreID != nil && *store.ParentStoreID != "" {
			if err := checkParent(ctx, tx, store.ID, *store.ParentStoreID); err != nil {
				return err
			}
		}
		if err := tx.Create(&store).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.Validation("store slug %q is taken", store.Slug)
			}
			return wrap("create store", err)
		}
		return nil
	})
	if err != nil {
		return nil, wrap("create store", err)
	}
	return &store, nil
}

// SetStoreParent moves a store under parentID, or makes it a root when parentID is empty.
// A move that would make the store its own ancestor fails with a cycle error.
func SetStoreParent(ctx context.Context, db *gorm.DB, storeID, parentID string) error {
	return wrap("set store parent", db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var store models.Store
		err := tx.Scopes(forUpdate).Where("id = ?", storeID).Take(&store).Error
		if err != nil {
			return notFoundOr("set store parent", err, "store %s not found", storeID)
		}

		var parent *string
		if parentID != "" {
			if err := checkParent(ctx, tx, storeID, parentID); err != nil {
				return err
			}
			parent = &parentID
		}
		return wrap("set store parent", tx.Model(&store).Update("parent_store_id", parent).Error)
	}))
}

// checkParent rejects a parent whose chain already contains storeID
func checkParent(ctx context.Context, tx *gorm.DB, storeID, parentID string) error {
	if storeID != "" && storeID == parentID {
		return types.CycleDetected("store %s cannot be its own parent", storeID)
	}
	chain, err := Ancestors(ctx, tx, parentID)
	if err != nil {
		return err
	}
	if storeID != "" && slices.Contains(chain, storeID) {
		return types.CycleDetected("store %s is an ancestor of %s", storeID, parentID)
	}
	return nil
}

// SetStoreDefaultApp designates the app listed first in a store
func SetStoreDefaultApp(ctx context.Context, db *gorm.DB, storeID, appID string) error {
	return wrap("set default app", db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Store{}, storeID); err != nil {
			return err
		}
		var app *string
		if appID != "" {
			if err := exists(tx, &models.App{}, appID); err != nil {
				return err
			}
			app = &appID
		}
		return tx.Model(&models.Store{}).Where("id = ?", storeID).Update("app_id", app).Error
	}))
}

func (l StoreLookup) empty() bool {
	return l.ID == "" && l.Slug == "" && l.Domain == "" && l.AppID == ""
}

func (l StoreLookup) scope(db *gorm.DB) *gorm.DB {
	if l.ID != "" {
		db = db.Where("stores.id = ?", l.ID)
	}
	if l.Slug != "" {
		db = db.Where("stores.slug = ?", l.Slug)
	}
	if l.Domain != "" {
		db = db.Where("stores.domain = ?", l.Domain)
	}
	if l.AppID != "" {
		db = db.Where("stores.app_id = ?", l.AppID)
	}
	return db
}

// GetStore resolves a store and expands it. Id lookups skip the access policy;
// slug, domain and default app lookups require the caller to pass it.
func (c *Catalog) GetStore(ctx context.Context, lookup StoreLookup, caller Caller) (*StoreView, error) {
	if lookup.empty() {
		return nil, types.Validation("a store id, slug, domain or appId is required")
	}

	depth := c.clampDepth(lookup.Depth)
	key := cacheKey("store", lookup.ID, lookup.Slug, lookup.Domain, lookup.AppID, depthKey(depth), callerKey(caller))

	var cached StoreView
	if !lookup.SkipCache && c.cached(ctx, key, &cached) {
		return &cached, nil
	}

	var store models.Store
	err := c.DB.WithContext(ctx).
		Scopes(lookup.scope).
		Order("stores.created_at ASC").
		Take(&store).Error
	if err != nil {
		return nil, notFoundOr("get store", err, "store not found")
	}

	if lookup.ID == "" {
		ok, err := canAccessStored(ctx, c.DB, store, caller, StoreObject(store.ID))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, types.AccessDenied("store %s", store.Slug)
		}
	}

	view, err := c.ExpandStore(ctx, store.ID, depth, caller)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, view, caller.Owns(store.OwnerOf()))
	return view, nil
}

// ListStores returns one page of the stores visible to caller: the caller's own stores
// first, then the anchor store, then newest first.
func (c *Catalog) ListStores(ctx context.Context, filter StoreFilter, caller Caller, page, pageSize int) (*StorePage, error) {
	page, pageSize = normalizePage(page, pageSize)

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.ParentStoreID != "" {
			db = db.Where("stores.parent_store_id = ?", filter.ParentStoreID)
		}
		if filter.OwnerID != "" {
			db = db.Where("(stores.user_id = ? OR stores.guest_id = ?)", filter.OwnerID, filter.OwnerID)
		}
		return db.Scopes(accessScope("stores", "store_id", caller))
	}

	var total int64
	err := c.DB.WithContext(ctx).
		Model(&models.Store{}).
		Clauses(hints.CommentBefore("select", "listStores:count")).
		Scopes(scope).
		Count(&total).Error
	if err != nil {
		return nil, wrap("count stores", err)
	}

	var stores []models.Store
	err = c.DB.WithContext(ctx).
		Model(&models.Store{}).
		Clauses(hints.CommentBefore("select", "listStores:page")).
		Scopes(scope).
		Clauses(storeOrderClause(caller, c.Options.AnchorSlug)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&stores).Error
	if err != nil {
		return nil, wrap("list stores", err)
	}

	items := make([]*StoreView, len(stores))
	for i, s := range stores {
		items[i] = newStoreView(s)
	}

	hasNext, next := pageMeta(total, page, pageSize)
	return &StorePage{
		Items:       items,
		TotalCount:  total,
		HasNextPage: hasNext,
		NextPage:    next,
	}, nil
}

func storeOrderClause(caller Caller, anchorSlug string) clause.OrderBy {
	var keys []string
	var vars []interface{}

	if !caller.IsAnonymous() {
		s := caller.Subject()
		column := "stores.guest_id"
		if s.Kind == models.OwnerUser {
			column = "stores.user_id"
		}
		keys = append(keys, "CASE WHEN "+column+" = ? THEN 0 ELSE 1 END")
		vars = append(vars, s.ID)
	}
	if anchorSlug != "" {
		keys = append(keys, "CASE WHEN stores.slug = ? THEN 0 ELSE 1 END")
		vars = append(vars, anchorSlug)
	}
	keys = append(keys, "stores.created_at DESC", "stores.id ASC")

	return clause.OrderBy{Expression: clause.Expr{
		SQL:                strings.Join(keys, ", "),
		Vars:               vars,
		WithoutParentheses: true,
	}}
}
