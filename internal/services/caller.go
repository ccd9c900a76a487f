// caller.go
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
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"gorm.io/gorm"
)

// Caller identifies who is making a request. The zero value is an anonymous caller.
type Caller struct {
	UserID  string
	GuestID string
}

// IsAnonymous reports whether the caller has neither a member nor a guest identity
func (c Caller) IsAnonymous() bool {
	return c.UserID == "" && c.GuestID == ""
}

// Owns reports whether the caller is the owner o
func (c Caller) Owns(o models.Owner) bool {
	switch o.Kind {
	case models.OwnerUser:
		return c.UserID != "" && c.UserID == o.ID
	case models.OwnerGuest:
		return c.GuestID != "" && c.GuestID == o.ID
	}
	return false
}

// Subject is the owner an install or custom order is recorded against.
// A member identity wins over a guest identity.
func (c Caller) Subject() models.Owner {
	if c.UserID != "" {
		return models.UserOwner(c.UserID)
	}
	return models.GuestOwner(c.GuestID)
}

func validateSubject(c Caller) error {
	if c.IsAnonymous() {
		return types.Validation("a user or guest is required")
	}
	return nil
}

// subjectScope matches rows recorded against the caller's subject
func subjectScope(alias string, c Caller) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		s := c.Subject()
		if s.Kind == models.OwnerUser {
			return db.Where(alias+".user_id = ?", s.ID)
		}
		return db.Where(alias+".guest_id = ?", s.ID)
	}
}

// Object is the target of an install: exactly one of AppID or StoreID
type Object struct {
	AppID   string
	StoreID string
}

// AppObject targets an app
func AppObject(id string) Object { return Object{AppID: id} }

// StoreObject targets a store
func StoreObject(id string) Object { return Object{StoreID: id} }

func (o Object) validate() error {
	if (o.AppID == "") == (o.StoreID == "") {
		return types.Validation("exactly one of appId or storeId is required")
	}
	return nil
}

// kind names the object for logs and metrics
func (o Object) kind() string {
	if o.AppID != "" {
		return "app"
	}
	return "store"
}

func (o Object) id() string {
	if o.AppID != "" {
		return o.AppID
	}
	return o.StoreID
}

func (o Object) column() string {
	if o.AppID != "" {
		return "app_id"
	}
	return "store_id"
}

func (o Object) model() interface{} {
	if o.AppID != "" {
		return &models.App{}
	}
	return &models.Store{}
}
