package database_test

import (
	"errors"
	"testing"

	"github.com/localnerve/jam-build-appstore/internal/config"
	"github.com/localnerve/jam-build-appstore/internal/database"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/testutil"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func TestAutoMigrateCreatesActiveInstallIndex(t *testing.T) {
	db := testutil.NewDB(t)

	for _, name := range []string{
		"idx_installs_active_user_app",
		"idx_installs_active_guest_app",
		"idx_installs_active_user_store",
		"idx_installs_active_guest_store",
	} {
		if !db.Migrator().HasIndex(&models.Install{}, name) {
			t.Errorf("Expected index %s to exist", name)
		}
	}

	// Running again is a no-op
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Second AutoMigrate failed: %v", err)
	}
}

func TestActiveInstallIsUnique(t *testing.T) {
	db := testutil.NewDB(t)

	first := models.Install{UserID: strPtr("u1"), AppID: strPtr("a1")}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to create install: %v", err)
	}

	dup := models.Install{UserID: strPtr("u1"), AppID: strPtr("a1")}
	err := db.Create(&dup).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("Expected ErrDuplicatedKey, got %v", err)
	}

	// Once the first is uninstalled a new active row is allowed
	if err := db.Model(&first).Update("uninstalled_at", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
		t.Fatalf("Failed to uninstall: %v", err)
	}
	again := models.Install{UserID: strPtr("u1"), AppID: strPtr("a1")}
	if err := db.Create(&again).Error; err != nil {
		t.Fatalf("Expected reinstall to succeed, got %v", err)
	}
}

func TestSingleOwnerCheck(t *testing.T) {
	db := testutil.NewDB(t)

	store := models.Store{Slug: "both", Name: "Both", UserID: strPtr("u1"), GuestID: strPtr("g1")}
	if err := db.Create(&store).Error; err == nil {
		t.Fatal("Expected CHECK constraint violation for a store with two owners")
	}
}

func TestDialectorUnsupported(t *testing.T) {
	_, err := database.Dialector(&config.Config{DBType: "oracle"})
	if err == nil {
		t.Fatal("Expected error for unsupported database type")
	}
}

func TestDialectorNames(t *testing.T) {
	cases := map[string]string{
		"mysql":       "mysql",
		"mariadb":     "mysql",
		"postgres":    "postgres",
		"sqlite":      "sqlite",
		"sqlite-pure": "sqlite",
		"sqlserver":   "sqlserver",
	}
	for dbType, want := range cases {
		d, err := database.Dialector(&config.Config{
			DBType:     dbType,
			DBHost:     "localhost",
			DBPort:     "1234",
			DBDatabase: "appstore",
			DBUser:     "user",
			DBPassword: "p@ss:word",
		})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", dbType, err)
		}
		if d.Name() != want {
			t.Errorf("%s: expected dialector %s, got %s", dbType, want, d.Name())
		}
	}
}
