// auth_service.go
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
	"fmt"

	"github.com/localnerve/authorizer-go"
	"github.com/localnerve/jam-build-appstore/internal/config"
	"github.com/localnerve/jam-build-appstore/internal/utils"
	"go.uber.org/zap"
)

// SessionValidator resolves a session cookie to a member id
type SessionValidator interface {
	ValidateSession(cookie string) (string, error)
}

// Authorizer validates member sessions against the Authorizer service
type Authorizer struct {
	client *authorizer.AuthorizerClient
	roles  []string
}

// NewAuthorizer pings the Authorizer service and builds a client for it
func NewAuthorizer(cfg *config.Config, redirectURL string, log *zap.Logger) (*Authorizer, error) {
	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	log.Info("initializing authorizer",
		zap.String("authorizerURL", cfg.AuthzURL),
		zap.String("clientID", cfg.AuthzClientID),
		zap.String("redirectURL", redirectURL),
	)

	client, err := authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}

	return &Authorizer{client: client, roles: []string{"user"}}, nil
}

// ValidateSession validates a session cookie and returns the member id
func (a *Authorizer) ValidateSession(cookie string) (string, error) {
	// Convert roles to []*string
	rolesPtrs := make([]*string, len(a.roles))
	for i := range a.roles {
		rolesPtrs[i] = &a.roles[i]
	}

	res, err := a.client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return "", fmt.Errorf("session validation failed: %w", err)
	}

	if res == nil || !res.IsValid || res.User == nil || res.User.ID == "" {
		return "", fmt.Errorf("session is not valid")
	}

	return res.User.ID, nil
}
