// views.go
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
	"sort"
	"time"

	"github.com/localnerve/jam-build-appstore/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// AppView is an app as presented to a caller
type AppView struct {
	ID           string              `json:"id"`
	Slug         string              `json:"slug"`
	Name         string              `json:"name"`
	Title        string              `json:"title,omitempty"`
	Description  string              `json:"description,omitempty"`
	Icon         string              `json:"icon,omitempty"`
	StoreID      string              `json:"storeId"`
	OwnerUserID  *string             `json:"ownerUserId,omitempty"`
	OwnerGuestID *string             `json:"ownerGuestId,omitempty"`
	Visibility   models.Visibility   `json:"visibility"`
	Capabilities models.Capabilities `json:"capabilities"`
	InstallCount int64               `json:"installCount"`
	CreatedAt    time.Time           `json:"createdAt"`
	Extends      []*AppView          `json:"extends"`
	Store        *StoreView          `json:"store,omitempty"`
}

// StoreView is a store with its apps, expanded to a bounded depth
type StoreView struct {
	ID            string            `json:"id"`
	Slug          string            `json:"slug"`
	Name          string            `json:"name"`
	Title         string            `json:"title,omitempty"`
	Description   string            `json:"description,omitempty"`
	Domain        *string           `json:"domain,omitempty"`
	AppID         *string           `json:"appId,omitempty"`
	ParentStoreID *string           `json:"parentStoreId,omitempty"`
	OwnerUserID   *string           `json:"ownerUserId,omitempty"`
	OwnerGuestID  *string           `json:"ownerGuestId,omitempty"`
	Visibility    models.Visibility `json:"visibility"`
	InstallCount  int64             `json:"installCount"`
	Apps          []*AppView        `json:"apps"`
	App           *AppView          `json:"app"`
}

// newAppView presents a stored app. A capabilities column that fails to decode is
// logged and rendered as empty capabilities.
func newAppView(a models.App, log *zap.Logger) *AppView {
	caps, err := a.CapabilitiesOf()
	if err != nil && log != nil {
		log.Warn("malformed app capabilities",
			zap.String("appId", a.ID),
			zap.String("slug", a.Slug),
			zap.Error(err),
		)
	}
	return &AppView{
		ID:           a.ID,
		Slug:         a.Slug,
		Name:         a.Name,
		Title:        a.Title,
		Description:  a.Description,
		Icon:         a.Icon,
		StoreID:      a.StoreID,
		OwnerUserID:  a.UserID,
		OwnerGuestID: a.GuestID,
		Visibility:   a.Visibility,
		Capabilities: caps,
		InstallCount: a.InstallCount,
		CreatedAt:    a.CreatedAt,
		Extends:      []*AppView{},
	}
}

func newStoreView(s models.Store) *StoreView {
	return &StoreView{
		ID:            s.ID,
		Slug:          s.Slug,
		Name:          s.Name,
		Title:         s.Title,
		Description:   s.Description,
		Domain:        s.Domain,
		AppID:         s.AppID,
		ParentStoreID: s.ParentStoreID,
		OwnerUserID:   s.UserID,
		OwnerGuestID:  s.GuestID,
		Visibility:    s.Visibility,
		InstallCount:  s.InstallCount,
		Apps:          []*AppView{},
	}
}

// extendsByApp loads the flattened extends of every app in appIDs.
// Extended apps are shallow: their own extends are always empty.
func extendsByApp(ctx context.Context, db *gorm.DB, log *zap.Logger, appIDs []string) (map[string][]*AppView, error) {
	result := make(map[string][]*AppView, len(appIDs))
	if len(appIDs) == 0 {
		return result, nil
	}

	var edges []models.AppExtend
	if err := db.WithContext(ctx).Where("app_id IN ?", appIDs).Find(&edges).Error; err != nil {
		return nil, wrap("load extends", err)
	}
	if len(edges) == 0 {
		return result, nil
	}

	targetIDs := make([]string, 0, len(edges))
	seen := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		if _, ok := seen[e.ToID]; !ok {
			seen[e.ToID] = struct{}{}
			targetIDs = append(targetIDs, e.ToID)
		}
	}

	var targets []models.App
	if err := db.WithContext(ctx).Where("id IN ?", targetIDs).Find(&targets).Error; err != nil {
		return nil, wrap("load extended apps", err)
	}
	byID := make(map[string]models.App, len(targets))
	for _, a := range targets {
		byID[a.ID] = a
	}

	for _, e := range edges {
		if target, ok := byID[e.ToID]; ok {
			result[e.AppID] = append(result[e.AppID], newAppView(target, log))
		}
	}
	for id := range result {
		sort.Slice(result[id], func(i, j int) bool {
			return result[id][i].Slug < result[id][j].Slug
		})
	}
	return result, nil
}

// leafStores loads a leaf view (no apps, no default app) for each store id
func leafStores(ctx context.Context, db *gorm.DB, storeIDs []string) (map[string]*StoreView, error) {
	result := make(map[string]*StoreView, len(storeIDs))
	if len(storeIDs) == 0 {
		return result, nil
	}

	var stores []models.Store
	if err := db.WithContext(ctx).Where("id IN ?", storeIDs).Find(&stores).Error; err != nil {
		return nil, wrap("load stores", err)
	}
	for _, s := range stores {
		result[s.ID] = newStoreView(s)
	}
	return result, nil
}

// decorate builds views for apps with their flattened extends and a leaf home store.
// The two lookups run concurrently and are joined by id.
func decorate(ctx context.Context, db *gorm.DB, log *zap.Logger, apps []models.App) ([]*AppView, error) {
	appIDs := make([]string, 0, len(apps))
	storeIDs := make([]string, 0, len(apps))
	seenStore := make(map[string]struct{})
	for _, a := range apps {
		appIDs = append(appIDs, a.ID)
		if _, ok := seenStore[a.StoreID]; !ok {
			seenStore[a.StoreID] = struct{}{}
			storeIDs = append(storeIDs, a.StoreID)
		}
	}

	var (
		extends map[string][]*AppView
		stores  map[string]*StoreView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		extends, err = extendsByApp(gctx, db, log, appIDs)
		return err
	})
	g.Go(func() error {
		var err error
		stores, err = leafStores(gctx, db, storeIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := make([]*AppView, len(apps))
	for i, a := range apps {
		v := newAppView(a, log)
		if ext, ok := extends[a.ID]; ok {
			v.Extends = ext
		}
		if s, ok := stores[a.StoreID]; ok {
			leaf := *s
			leaf.Apps = []*AppView{}
			v.Store = &leaf
		}
		views[i] = v
	}
	return views, nil
}
