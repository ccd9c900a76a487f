// owner.go
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

// OwnerKind names who owns a store or an app.
type OwnerKind int

const (
	// OwnerNone marks a system-owned entity, visible to everyone.
	OwnerNone OwnerKind = iota
	OwnerUser
	OwnerGuest
)

// Owner is the single owner of a store or app. The zero value is the system owner.
// It is persisted as two nullable columns (user_id, guest_id) with a CHECK constraint
// that at most one of them is set.
type Owner struct {
	Kind OwnerKind
	ID   string
}

// UserOwner returns an owner for a member account.
func UserOwner(userID string) Owner {
	if userID == "" {
		return Owner{}
	}
	return Owner{Kind: OwnerUser, ID: userID}
}

// GuestOwner returns an owner for a guest session.
func GuestOwner(guestID string) Owner {
	if guestID == "" {
		return Owner{}
	}
	return Owner{Kind: OwnerGuest, ID: guestID}
}

// IsSystem reports whether nobody owns the entity.
func (o Owner) IsSystem() bool {
	return o.Kind == OwnerNone
}

// Columns returns the (user_id, guest_id) pair for persistence.
func (o Owner) Columns() (userID, guestID *string) {
	switch o.Kind {
	case OwnerUser:
		id := o.ID
		return &id, nil
	case OwnerGuest:
		id := o.ID
		return nil, &id
	}
	return nil, nil
}

// ownerFromColumns rebuilds an Owner from the persisted pair. The CHECK constraint keeps
// both from being set; if a legacy row has both, the user wins.
func ownerFromColumns(userID, guestID *string) Owner {
	if userID != nil && *userID != "" {
		return UserOwner(*userID)
	}
	if guestID != nil && *guestID != "" {
		return GuestOwner(*guestID)
	}
	return Owner{}
}

// Ownable is implemented by entities that have an owner.
type Ownable interface {
	OwnerOf() Owner
}
