package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// epoch anchors fixture timestamps so created_at ordering is deterministic
var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	t       *testing.T
	ctx     context.Context
	db      *gorm.DB
	catalog *Catalog
	clock   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		t:   t,
		ctx: context.Background(),
		db:  db,
		catalog: NewCatalog(db, nil, zaptest.NewLogger(t), Options{
			MaxDepth:          DefaultMaxDepth,
			ExpansionPageSize: DefaultExpansionPageSize,
		}),
	}
}

// tick returns a creation time one minute after the previous one
func (f *fixture) tick() time.Time {
	f.clock++
	return epoch.Add(time.Duration(f.clock) * time.Minute)
}

func (f *fixture) store(slug string, opts ...func(*models.Store)) models.Store {
	f.t.Helper()
	s := models.Store{Slug: slug, Name: slug, CreatedAt: f.tick()}
	for _, opt := range opts {
		opt(&s)
	}
	created, err := CreateStore(f.ctx, f.db, s)
	require.NoError(f.t, err)
	return *created
}

func (f *fixture) app(slug, storeID string, opts ...func(*models.App)) models.App {
	f.t.Helper()
	a := models.App{Slug: slug, Name: slug, StoreID: storeID, CreatedAt: f.tick()}
	for _, opt := range opts {
		opt(&a)
	}
	created, err := CreateApp(f.ctx, f.db, a)
	require.NoError(f.t, err)
	return *created
}

func (f *fixture) storeInstall(storeID, appID string, displayOrder int) {
	f.t.Helper()
	_, err := UpsertStoreInstall(f.ctx, f.db, models.StoreInstall{
		StoreID:      storeID,
		AppID:        appID,
		DisplayOrder: displayOrder,
	})
	require.NoError(f.t, err)
}

func (f *fixture) reload(model interface{}, id string) {
	f.t.Helper()
	require.NoError(f.t, f.db.Where("id = ?", id).Take(model).Error)
}

func appOwner(o models.Owner) func(*models.App) {
	return func(a *models.App) { a.SetOwner(o) }
}

func storeOwner(o models.Owner) func(*models.Store) {
	return func(s *models.Store) { s.SetOwner(o) }
}

func parent(id string) func(*models.Store) {
	return func(s *models.Store) { s.ParentStoreID = &id }
}

func member() Caller {
	return Caller{UserID: uuid.NewString()}
}

func guest() Caller {
	return Caller{GuestID: uuid.NewString()}
}

func slugs(items []*AppView) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.Slug
	}
	return out
}
