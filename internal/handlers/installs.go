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

package handlers

import (
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-appstore/internal/middleware"
	"github.com/localnerve/jam-build-appstore/internal/models"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"github.com/localnerve/jam-build-appstore/internal/utils"
	"go.uber.org/zap"
)

// InstallHandler handles the caller's home screen routes
type InstallHandler struct {
	Catalog *services.Catalog
	Logger  *zap.Logger
}

// ListInstalls handles GET /api/installs?kind=app,store
// @Summary List installs
// @Description List the caller's active installs, pinned first
// @Tags Installs
// @Produce json
// @Param kind query string false "Comma-separated object kinds: app, store"
// @Success 200 {array} models.Install
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /installs [get]
func (h *InstallHandler) ListInstalls(c *fiber.Ctx) error {
	rows, err := h.Catalog.ListInstalls(c.UserContext(), middleware.CallerFrom(c))
	if err != nil {
		return serviceError(c, h.Logger, err, "Installs not found", "listInstalls")
	}

	if kinds := parseList(c, "kind"); len(kinds) > 0 {
		rows = slices.DeleteFunc(rows, func(i models.Install) bool {
			if i.AppID != nil {
				return !slices.Contains(kinds, "app")
			}
			return !slices.Contains(kinds, "store")
		})
	}
	if rows == nil {
		rows = []models.Install{}
	}
	return c.Status(fiber.StatusOK).JSON(rows)
}

// InstallDefaults handles POST /api/installs/defaults
// @Summary Install the default apps
// @Description Install every system app for the caller, in creation order
// @Tags Installs
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /installs/defaults [post]
func (h *InstallHandler) InstallDefaults(c *fiber.Ctx) error {
	rows, err := h.Catalog.AutoInstallDefaultApps(c.UserContext(), middleware.CallerFrom(c))
	if err != nil {
		return serviceError(c, h.Logger, err, "Default apps not found", "installDefaults")
	}
	return utils.MutationSuccessResponse(c, rows, int64(len(rows)))
}
