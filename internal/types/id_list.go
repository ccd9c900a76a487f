// id_list.go
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

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// IDList decodes record ids from a JSON array of strings, a bare string, or null.
// Entries are trimmed, blanks are dropped and repeats collapse in first-seen order.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var raw []string
	switch {
	case len(data) == 0 || string(data) == "null":
		*l = IDList{}
		return nil
	case data[0] == '[':
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("IDList: expected an array of id strings: %w", err)
		}
	default:
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("IDList: expected an id string or an array of them: %w", err)
		}
		raw = []string{id}
	}

	ids := make(IDList, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}

// Strings returns the ids, never nil
func (l IDList) Strings() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
