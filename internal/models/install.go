// install.go
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

// Install is a caller's home screen membership of an app or a store.
// UninstalledAt == nil is the only definition of "currently installed"; uninstalling
// stamps the row and a later install creates a new one.
type Install struct {
	ID            string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        *string    `gorm:"type:char(36);index" json:"userId,omitempty"`
	GuestID       *string    `gorm:"type:char(36);index" json:"guestId,omitempty"`
	AppID         *string    `gorm:"type:char(36);index" json:"appId,omitempty"`
	StoreID       *string    `gorm:"type:char(36);index" json:"storeId,omitempty"`
	SortOrder     int        `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsPinned      bool       `gorm:"not null;default:false" json:"isPinned"`
	Platform      *string    `gorm:"size:16" json:"platform,omitempty"`
	Source        *string    `gorm:"size:16" json:"source,omitempty"`
	InstalledAt   time.Time  `gorm:"not null;index" json:"installedAt"`
	UninstalledAt *time.Time `gorm:"index" json:"uninstalledAt,omitempty"`
}

// TableName overrides the table name for Install
func (Install) TableName() string {
	return "installs"
}

// BeforeCreate assigns a UUID and install time
func (i *Install) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.InstalledAt.IsZero() {
		i.InstalledAt = time.Now().UTC()
	}
	return nil
}

// Active reports whether the install has not been uninstalled
func (i Install) Active() bool {
	return i.UninstalledAt == nil
}
