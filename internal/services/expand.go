// expand.go
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
	"sync"
	"time"

	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// expansion materializes one nested store tree. Views are memoized per (store, depth)
// for the lifetime of a single ExpandStore call so shared subtrees are built once.
type expansion struct {
	catalog *Catalog
	caller  Caller

	group singleflight.Group
	mu    sync.Mutex
	memo  map[string]*StoreView
}

// ExpandStore returns the store view for storeID with its apps expanded depth levels.
// At depth 0 each listed app carries a leaf store (no apps, no default app). Above 0 each
// app's store is the expansion of its home store at depth-1. Nested stores never carry a
// default app; the top level carries it shallow. depth is clamped into [0, MaxDepth].
func (c *Catalog) ExpandStore(ctx context.Context, storeID string, depth int, caller Caller) (*StoreView, error) {
	start := time.Now()
	defer func() {
		expandDuration.Observe(time.Since(start).Seconds())
	}()

	depth = c.clampDepth(depth)

	x := &expansion{
		catalog: c,
		caller:  caller,
		memo:    make(map[string]*StoreView),
	}
	view, err := x.expand(ctx, storeID, depth)
	if err != nil {
		return nil, err
	}

	// memoized views are shared; attach the default app to a copy
	top := *view
	if top.AppID != nil && *top.AppID != "" {
		app, err := c.shallowApp(ctx, *top.AppID)
		if err != nil {
			return nil, err
		}
		top.App = app
	}
	return &top, nil
}

// shallowApp loads an app with flattened extends and no store. A missing app yields nil.
func (c *Catalog) shallowApp(ctx context.Context, appID string) (*AppView, error) {
	var apps []models.App
	if err := c.DB.WithContext(ctx).Where("id = ?", appID).Limit(1).Find(&apps).Error; err != nil {
		return nil, wrap("load default app", err)
	}
	if len(apps) == 0 {
		return nil, nil
	}

	extends, err := extendsByApp(ctx, c.DB, c.Logger, []string{appID})
	if err != nil {
		return nil, err
	}
	view := newAppView(apps[0], c.Logger)
	if ext, ok := extends[appID]; ok {
		view.Extends = ext
	}
	return view, nil
}

func (x *expansion) expand(ctx context.Context, storeID string, depth int) (*StoreView, error) {
	key := fmt.Sprintf("%s:%d", storeID, depth)

	x.mu.Lock()
	if view, ok := x.memo[key]; ok {
		x.mu.Unlock()
		return view, nil
	}
	x.mu.Unlock()

	// depth strictly decreases on recursion so a key never waits on itself
	v, err, _ := x.group.Do(key, func() (interface{}, error) {
		x.mu.Lock()
		if view, ok := x.memo[key]; ok {
			x.mu.Unlock()
			return view, nil
		}
		x.mu.Unlock()

		view, err := x.build(ctx, storeID, depth)
		if err != nil {
			return nil, err
		}
		x.mu.Lock()
		x.memo[key] = view
		x.mu.Unlock()
		return view, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*StoreView), nil
}

func (x *expansion) build(ctx context.Context, storeID string, depth int) (*StoreView, error) {
	c := x.catalog

	var store models.Store
	if err := c.DB.WithContext(ctx).Where("id = ?", storeID).Take(&store).Error; err != nil {
		return nil, notFoundOr("load store", err, "store %s not found", storeID)
	}
	view := newStoreView(store)

	page, err := listApps(ctx, c.DB, c.Logger, AppFilter{StoreID: storeID}, x.caller, c.Options.AnchorSlug, 1, c.Options.ExpansionPageSize)
	if err != nil {
		return nil, err
	}
	view.Apps = page.Items

	if depth == 0 {
		return view, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	nested := make([]*StoreView, len(page.Items))
	for i, item := range page.Items {
		g.Go(func() error {
			sub, err := x.expand(gctx, item.StoreID, depth-1)
			if errors.Is(err, types.ErrNotFound) {
				// dangling home store keeps its leaf view
				return nil
			}
			if err != nil {
				return err
			}
			nested[i] = sub
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, item := range page.Items {
		if nested[i] != nil {
			item.Store = nested[i]
		}
	}
	return view, nil
}
