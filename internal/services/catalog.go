// catalog.go
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
	"strconv"
	"strings"
	"time"

	"github.com/localnerve/jam-build-appstore/internal/cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultAnchorSlug        = "chrry"
	DefaultMaxDepth          = 2
	DefaultExpansionPageSize = 50
	DefaultPageSize          = 20
	MaxPageSize              = 100

	ownerCacheTTL  = 5 * time.Minute
	publicCacheTTL = time.Hour
)

// Options tune the catalog resolvers
type Options struct {
	// AnchorSlug is the platform-wide pinned app that sorts right after a store's default app
	AnchorSlug string
	// MaxDepth caps nested store expansion
	MaxDepth int
	// ExpansionPageSize is how many apps each expanded store lists
	ExpansionPageSize int
}

// Catalog composes the resolvers over one storage handle and an optional result cache
type Catalog struct {
	DB      *gorm.DB
	Cache   cache.Cache
	Logger  *zap.Logger
	Options Options
}

// NewCatalog builds a Catalog. A nil cache disables result caching and a nil logger discards logs.
func NewCatalog(db *gorm.DB, c cache.Cache, log *zap.Logger, opts Options) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.AnchorSlug == "" {
		opts.AnchorSlug = DefaultAnchorSlug
	}
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}
	if opts.ExpansionPageSize < 1 {
		opts.ExpansionPageSize = DefaultExpansionPageSize
	}
	return &Catalog{
		DB:      db,
		Cache:   c,
		Logger:  log.Named("catalog"),
		Options: opts,
	}
}

// cacheKey joins parts under a prefix. Invalidation relies on the prefix.
func cacheKey(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, "|")
}

func callerKey(c Caller) string {
	return "u=" + c.UserID + ",g=" + c.GuestID
}

func depthKey(depth int) string {
	return "d=" + strconv.Itoa(depth)
}

// cached reads key into dest. Cache failures are logged and reported as a miss.
func (c *Catalog) cached(ctx context.Context, key string, dest interface{}) bool {
	if c.Cache == nil {
		return false
	}
	ok, err := c.Cache.Get(ctx, key, dest)
	switch {
	case err != nil:
		cacheRequests.WithLabelValues("error").Inc()
		c.Logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	case ok:
		cacheRequests.WithLabelValues("hit").Inc()
	default:
		cacheRequests.WithLabelValues("miss").Inc()
	}
	return ok
}

func (c *Catalog) store(ctx context.Context, key string, value interface{}, owner bool) {
	if c.Cache == nil {
		return
	}
	ttl := publicCacheTTL
	if owner {
		ttl = ownerCacheTTL
	}
	if err := c.Cache.Set(ctx, key, value, ttl); err != nil {
		c.Logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate drops every cached resolver result after a write
func (c *Catalog) invalidate(ctx context.Context) {
	if c.Cache == nil {
		return
	}
	for _, pattern := range []string{"app:*", "store:*"} {
		if err := c.Cache.DeletePattern(ctx, pattern); err != nil {
			c.Logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

// clampDepth bounds a caller supplied depth into [0, MaxDepth]
func (c *Catalog) clampDepth(depth int) int {
	switch {
	case depth < 0:
		depthClamped.Inc()
		return 0
	case depth > c.Options.MaxDepth:
		depthClamped.Inc()
		return c.Options.MaxDepth
	}
	return depth
}

// normalizePage applies the paging defaults and bounds
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = 1
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// pageMeta derives the next page from the total row count
func pageMeta(total int64, page, pageSize int) (bool, *int) {
	if total > int64(page)*int64(pageSize) {
		next := page + 1
		return true, &next
	}
	return false, nil
}
