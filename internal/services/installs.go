// installs.go
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
	"time"

	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"gorm.io/gorm"
)

// InstallOptions are recorded on a new install row
type InstallOptions struct {
	Order    int
	IsPinned bool
	Platform string
	Source   string
}

// Install puts object on the subject's home screen. Installing an object that is
// already actively installed returns the existing row and leaves the counter alone.
func Install(ctx context.Context, db *gorm.DB, subject Caller, object Object, opts InstallOptions) (*models.Install, error) {
	row, _, err := install(ctx, db, subject, object, opts)
	return row, err
}

func install(ctx context.Context, db *gorm.DB, subject Caller, object Object, opts InstallOptions) (*models.Install, bool, error) {
	if err := validateSubject(subject); err != nil {
		return nil, false, err
	}
	if err := object.validate(); err != nil {
		return nil, false, err
	}

	var result *models.Install
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockObject(tx, object); err != nil {
			return err
		}

		active, err := findActive(tx, subject, object)
		if err != nil {
			return err
		}
		if active != nil {
			result = active
			return nil
		}

		row := newInstall(subject, object, opts)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if err := adjustCount(tx, object, 1); err != nil {
			return err
		}
		result, created = &row, true
		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// a concurrent install committed first; its row is the active one
		active, ferr := findActive(db.WithContext(ctx), subject, object)
		if ferr != nil {
			return nil, false, ferr
		}
		if active == nil {
			return nil, false, wrap("install", err)
		}
		result, created, err = active, false, nil
	}
	if err != nil {
		return nil, false, wrap("install", err)
	}

	if created {
		installsTotal.WithLabelValues(object.kind(), "installed").Inc()
	} else {
		installsTotal.WithLabelValues(object.kind(), "existing").Inc()
	}
	return result, created, nil
}

// Uninstall stamps the active install of object as uninstalled. It returns nil, nil when
// nothing is installed.
func Uninstall(ctx context.Context, db *gorm.DB, subject Caller, object Object) (*models.Install, error) {
	if err := validateSubject(subject); err != nil {
		return nil, err
	}
	if err := object.validate(); err != nil {
		return nil, err
	}

	var result *models.Install
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockObject(tx, object); err != nil {
			return err
		}

		active, err := findActive(tx, subject, object)
		if err != nil || active == nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(active).Update("uninstalled_at", now).Error; err != nil {
			return wrap("uninstall", err)
		}
		if err := adjustCount(tx, object, -1); err != nil {
			return err
		}
		active.UninstalledAt = &now
		result = active
		return nil
	})
	if err != nil {
		return nil, wrap("uninstall", err)
	}

	if result != nil {
		installsTotal.WithLabelValues(object.kind(), "uninstalled").Inc()
	} else {
		installsTotal.WithLabelValues(object.kind(), "noop").Inc()
	}
	return result, nil
}

// AutoInstallDefaultApps installs every system app for subject, ordered by creation.
// Apps already installed keep their existing row.
func AutoInstallDefaultApps(ctx context.Context, db *gorm.DB, subject Caller) ([]models.Install, error) {
	if err := validateSubject(subject); err != nil {
		return nil, err
	}

	var apps []models.App
	err := db.WithContext(ctx).
		Where("user_id IS NULL AND guest_id IS NULL").
		Order("created_at ASC").
		Order("id ASC").
		Find(&apps).Error
	if err != nil {
		return nil, wrap("list system apps", err)
	}

	installs := make([]models.Install, 0, len(apps))
	for i, app := range apps {
		row, err := Install(ctx, db, subject, AppObject(app.ID), InstallOptions{Order: i, Source: "default"})
		if err != nil {
			return installs, err
		}
		installs = append(installs, *row)
	}
	return installs, nil
}

// ListInstalls returns the subject's active installs, pinned first, then by order
func ListInstalls(ctx context.Context, db *gorm.DB, subject Caller) ([]models.Install, error) {
	if err := validateSubject(subject); err != nil {
		return nil, err
	}

	var rows []models.Install
	err := db.WithContext(ctx).
		Scopes(subjectScope("installs", subject)).
		Where("uninstalled_at IS NULL").
		Order("is_pinned DESC").
		Order("sort_order ASC").
		Order("installed_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrap("list installs", err)
	}
	return rows, nil
}

// lockObject takes a row lock on the installed app or store so concurrent installs serialize
func lockObject(tx *gorm.DB, object Object) error {
	var rows []map[string]interface{}
	err := tx.Model(object.model()).
		Scopes(forUpdate).
		Select("id").
		Where("id = ?", object.id()).
		Find(&rows).Error
	if err != nil {
		return wrap("lock "+object.kind(), err)
	}
	if len(rows) == 0 {
		return types.NotFound("%s %s not found", object.kind(), object.id())
	}
	return nil
}

func findActive(db *gorm.DB, subject Caller, object Object) (*models.Install, error) {
	var rows []models.Install
	err := db.
		Scopes(subjectScope("installs", subject)).
		Where("installs."+object.column()+" = ?", object.id()).
		Where("installs.uninstalled_at IS NULL").
		Order("installed_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, wrap("find install", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func newInstall(subject Caller, object Object, opts InstallOptions) models.Install {
	row := models.Install{
		SortOrder: opts.Order,
		IsPinned:  opts.IsPinned,
	}
	row.UserID, row.GuestID = subject.Subject().Columns()
	if object.AppID != "" {
		id := object.AppID
		row.AppID = &id
	} else {
		id := object.StoreID
		row.StoreID = &id
	}
	if opts.Platform != "" {
		p := opts.Platform
		row.Platform = &p
	}
	if opts.Source != "" {
		s := opts.Source
		row.Source = &s
	}
	return row
}

// adjustCount applies a relative change to the object's install counter
func adjustCount(tx *gorm.DB, object Object, delta int) error {
	q := tx.Model(object.model()).Where("id = ?", object.id())
	if delta < 0 {
		q = q.Where("install_count > 0")
	}
	if err := q.UpdateColumn("install_count", gorm.Expr("install_count + ?", delta)).Error; err != nil {
		return wrap("update install count", err)
	}
	return nil
}
