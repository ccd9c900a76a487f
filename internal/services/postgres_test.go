package services

import (
	"context"
	"sync"
	"testing"

	"github.com/localnerve/jam-build-appstore/internal/config"
	"github.com/localnerve/jam-build-appstore/internal/database"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPostgresIntegration(t *testing.T) {
	pg := testutil.StartPostgres(t)

	cfg := &config.Config{
		DBType:            "postgres",
		DBHost:            pg.Host,
		DBPort:            pg.Port,
		DBDatabase:        pg.Database,
		DBUser:            pg.User,
		DBPassword:        pg.Password,
		DBConnectionLimit: 10,
	}
	db, err := database.Connect(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))

	base := fixture{
		t:       t,
		ctx:     context.Background(),
		db:      db,
		catalog: NewCatalog(db, nil, zaptest.NewLogger(t), Options{MaxDepth: DefaultMaxDepth}),
	}
	// each subtest gets its own handle on the shared database
	sub := func(t *testing.T) *fixture {
		f := base
		f.t = t
		return &f
	}

	t.Run("listing order", func(t *testing.T) {
		f := sub(t)
		caller := member()
		s := f.store("pg-s")
		a1 := f.app("a1", s.ID)
		for _, slug := range []string{"a2", "a3", "a4", "a5"} {
			f.app(slug, s.ID)
		}
		require.NoError(t, SetStoreDefaultApp(f.ctx, db, s.ID, a1.ID))
		var a3 models.App
		require.NoError(t, db.Where("slug = ? AND store_id = ?", "a3", s.ID).Take(&a3).Error)
		reorder(t, f, caller, s.ID, ReorderItem{AppID: a3.ID, Order: 0})

		page, err := f.catalog.ListApps(f.ctx, AppFilter{StoreID: s.ID}, caller, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"a1", "a3", "a5", "a4", "a2"}, slugs(page.Items))
		assert.EqualValues(t, 5, page.TotalCount)
	})

	t.Run("concurrent installs", func(t *testing.T) {
		f := sub(t)
		caller := guest()
		s := f.store("pg-race")
		app := f.app("racer", s.ID)

		var wg sync.WaitGroup
		ids := make([]string, 8)
		errs := make([]error, 8)
		for i := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				row, err := Install(f.ctx, db, caller, AppObject(app.ID), InstallOptions{})
				errs[i] = err
				if row != nil {
					ids[i] = row.ID
				}
			}()
		}
		wg.Wait()

		for i, err := range errs {
			require.NoError(t, err)
			assert.Equal(t, ids[0], ids[i])
		}

		var active int64
		require.NoError(t, db.Model(&models.Install{}).
			Where("app_id = ? AND uninstalled_at IS NULL", app.ID).
			Count(&active).Error)
		assert.EqualValues(t, 1, active)

		var stored models.App
		require.NoError(t, db.Where("id = ?", app.ID).Take(&stored).Error)
		assert.EqualValues(t, 1, stored.InstallCount)
	})

	t.Run("expansion", func(t *testing.T) {
		f := sub(t)
		a := f.store("pg-a")
		b := f.store("pg-b", parent(a.ID))
		f.app("home", a.ID)
		shared := f.app("shared", b.ID)
		f.storeInstall(a.ID, shared.ID, 1)

		view, err := f.catalog.ExpandStore(f.ctx, a.ID, 1, Caller{})
		require.NoError(t, err)
		assert.Equal(t, []string{"shared", "home"}, slugs(view.Apps))
		require.NotNil(t, view.Apps[0].Store)
		assert.Equal(t, b.ID, view.Apps[0].Store.ID)
	})
}
