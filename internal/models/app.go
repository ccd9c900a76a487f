// app.go
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

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// App is an installable agent or application, homed in exactly one store
type App struct {
	ID           string     `gorm:"type:char(36);primaryKey"`
	Slug         string     `gorm:"size:255;not null;uniqueIndex:idx_apps_store_slug"`
	Name         string     `gorm:"size:255;not null"`
	Title        string     `gorm:"size:255"`
	Description  string     `gorm:"type:text"`
	Icon         string     `gorm:"size:1024"`
	StoreID      string     `gorm:"type:char(36);not null;uniqueIndex:idx_apps_store_slug"`
	UserID       *string    `gorm:"type:char(36);index;check:apps_single_owner,user_id IS NULL OR guest_id IS NULL"`
	GuestID      *string    `gorm:"type:char(36);index"`
	TeamID       *string    `gorm:"type:char(36);index"`
	Visibility   Visibility `gorm:"size:16;not null;default:public"`
	Capabilities JSON
	InstallCount int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// Capabilities describes what an app can do. Stored as JSON on the app row.
type Capabilities struct {
	Tools     []string `json:"tools,omitempty"`
	OnlyAgent bool     `json:"onlyAgent,omitempty"`
	Features  []string `json:"features,omitempty"`
}

// TableName overrides the table name for App
func (App) TableName() string {
	return "apps"
}

// BeforeCreate assigns a UUID when the caller did not supply one
func (a *App) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Visibility == "" {
		a.Visibility = VisibilityPublic
	}
	return nil
}

// OwnerOf returns the app owner. Team ownership is not a caller identity and does not count.
func (a App) OwnerOf() Owner {
	return ownerFromColumns(a.UserID, a.GuestID)
}

// SetOwner writes the owner columns
func (a *App) SetOwner(o Owner) {
	a.UserID, a.GuestID = o.Columns()
}

// AppExtend is a directed capability inheritance edge: App AppID extends App ToID
type AppExtend struct {
	AppID     string `gorm:"type:char(36);primaryKey"`
	ToID      string `gorm:"type:char(36);primaryKey;index"`
	CreatedAt time.Time
}

// TableName overrides the table name for AppExtend
func (AppExtend) TableName() string {
	return "app_extends"
}

// StoreInstall places an app inside a store other than its home store
type StoreInstall struct {
	ID                string  `gorm:"type:char(36);primaryKey"`
	StoreID           string  `gorm:"type:char(36);not null;uniqueIndex:idx_store_installs_store_app"`
	AppID             string  `gorm:"type:char(36);not null;uniqueIndex:idx_store_installs_store_app;index"`
	DisplayOrder      int     `gorm:"not null;default:0"`
	Featured          bool    `gorm:"not null;default:false;index"`
	CustomDescription *string `gorm:"type:text"`
	CustomIcon        *string `gorm:"size:1024"`
	InstalledAt       time.Time
	UpdatedAt         time.Time
}

// TableName overrides the table name for StoreInstall
func (StoreInstall) TableName() string {
	return "store_installs"
}

// BeforeCreate assigns a UUID and install time
func (si *StoreInstall) BeforeCreate(tx *gorm.DB) error {
	if si.ID == "" {
		si.ID = uuid.NewString()
	}
	if si.InstalledAt.IsZero() {
		si.InstalledAt = time.Now().UTC()
	}
	return nil
}

// AppOrder is a per (app, store, subject) custom sort position
type AppOrder struct {
	ID        string  `gorm:"type:char(36);primaryKey"`
	AppID     string  `gorm:"type:char(36);not null;uniqueIndex:idx_app_orders_scope"`
	StoreID   *string `gorm:"type:char(36);uniqueIndex:idx_app_orders_scope;index"`
	UserID    *string `gorm:"type:char(36);uniqueIndex:idx_app_orders_scope;index"`
	GuestID   *string `gorm:"type:char(36);uniqueIndex:idx_app_orders_scope;index"`
	SortOrder int     `gorm:"column:sort_order;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name for AppOrder
func (AppOrder) TableName() string {
	return "app_orders"
}

// BeforeCreate assigns a UUID when the caller did not supply one
func (o *AppOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
