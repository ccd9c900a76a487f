// routes.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-appstore/internal/middleware"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"go.uber.org/zap"
)

// Register mounts the catalog routes on router.
// Static paths are registered ahead of the parameterized ones they would otherwise match.
func Register(router fiber.Router, catalog *services.Catalog, validator services.SessionValidator, log *zap.Logger) {
	appHandler := &AppHandler{Catalog: catalog, Logger: log.Named("apps")}
	storeHandler := &StoreHandler{Catalog: catalog, Logger: log.Named("stores")}
	installHandler := &InstallHandler{Catalog: catalog, Logger: log.Named("installs")}

	router.Use(middleware.Identify(validator))
	subject := middleware.RequireSubject()

	// Apps
	apps := router.Group("/apps")
	apps.Get("/", appHandler.ListApps)
	apps.Post("/reorder", subject, appHandler.ReorderApps)
	apps.Put("/:id/extends", subject, appHandler.SetExtends)
	apps.Post("/:id/install", subject, appHandler.InstallApp)
	apps.Delete("/:id/install", subject, appHandler.UninstallApp)
	apps.Get("/:id", appHandler.GetApp)
	apps.Get("/:storeSlug/:appSlug", appHandler.GetAppBySlug)

	// Stores
	stores := router.Group("/stores")
	stores.Get("/", storeHandler.ListStores)
	stores.Get("/:id/ancestors", storeHandler.GetAncestors)
	stores.Post("/:id/install", subject, storeHandler.InstallStore)
	stores.Delete("/:id/install", subject, storeHandler.UninstallStore)
	stores.Get("/:slug", storeHandler.GetStore)

	// Home screen
	installs := router.Group("/installs", subject)
	installs.Get("/", installHandler.ListInstalls)
	installs.Post("/defaults", installHandler.InstallDefaults)
}
