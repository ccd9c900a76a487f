// store.go
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

// Visibility of a store or app listing
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

// Valid reports whether v is a known visibility. Empty takes the column default.
func (v Visibility) Valid() bool {
	switch v {
	case "", VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return true
	}
	return false
}

// Store is a tenant or marketplace namespace, optionally nested under a parent store
type Store struct {
	ID            string     `gorm:"type:char(36);primaryKey"`
	Slug          string     `gorm:"size:255;not null;uniqueIndex"`
	Name          string     `gorm:"size:255;not null"`
	Title         string     `gorm:"size:255"`
	Description   string     `gorm:"type:text"`
	Domain        *string    `gorm:"size:255;index"`
	ParentStoreID *string    `gorm:"type:char(36);index"`
	AppID         *string    `gorm:"type:char(36);index"`
	UserID        *string    `gorm:"type:char(36);index;check:stores_single_owner,user_id IS NULL OR guest_id IS NULL"`
	GuestID       *string    `gorm:"type:char(36);index"`
	Visibility    Visibility `gorm:"size:16;not null;default:public"`
	InstallCount  int64      `gorm:"not null;default:0"`
	CreatedAt     time.Time  `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName overrides the table name for Store
func (Store) TableName() string {
	return "stores"
}

// BeforeCreate assigns a UUID when the caller did not supply one
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Visibility == "" {
		s.Visibility = VisibilityPublic
	}
	return nil
}

// OwnerOf returns the store owner
func (s Store) OwnerOf() Owner {
	return ownerFromColumns(s.UserID, s.GuestID)
}

// SetOwner writes the owner columns
func (s *Store) SetOwner(o Owner) {
	s.UserID, s.GuestID = o.Columns()
}
