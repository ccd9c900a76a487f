// stores.go
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
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-appstore/internal/middleware"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"go.uber.org/zap"
)

// StoreHandler handles store routes
type StoreHandler struct {
	Catalog *services.Catalog
	Logger  *zap.Logger
}

// AncestorsResponse is a store's ancestor chain, the store itself first
type AncestorsResponse struct {
	StoreID   string   `json:"storeId"`
	Ancestors []string `json:"ancestors"`
}

// ListStores handles GET /api/stores
// @Summary List stores
// @Description List the stores visible to the caller: own stores first, then newest.
// @Description With domain or appId set, resolve the single matching store instead.
// @Tags Stores
// @Produce json
// @Param parentStoreId query string false "Parent store ID"
// @Param ownerId query string false "Owner user or guest ID"
// @Param domain query string false "Domain the store serves"
// @Param appId query string false "Default app ID of the store"
// @Param depth query int false "Expansion depth, with domain or appId"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} services.StorePage
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /stores [get]
func (h *StoreHandler) ListStores(c *fiber.Ctx) error {
	if domain, appID := c.Query("domain"), c.Query("appId"); domain != "" || appID != "" {
		return h.resolveStore(c, domain, appID)
	}

	page, pageSize := parsePaging(c)
	filter := services.StoreFilter{
		ParentStoreID: c.Query("parentStoreId"),
		OwnerID:       c.Query("ownerId"),
	}

	result, err := h.Catalog.ListStores(c.UserContext(), filter, middleware.CallerFrom(c), page, pageSize)
	if err != nil {
		return serviceError(c, h.Logger, err, "Stores not found", "listStores")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *StoreHandler) resolveStore(c *fiber.Ctx, domain, appID string) error {
	lookup := services.StoreLookup{
		Domain: domain,
		AppID:  appID,
		Depth:  parseDepth(c),
	}

	result, err := h.Catalog.GetStore(c.UserContext(), lookup, middleware.CallerFrom(c))
	if err != nil {
		return serviceError(c, h.Logger, err, "Store not found", "resolveStore")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GetStore handles GET /api/stores/:slug
// @Summary Get store by slug
// @Description Get a store and its apps, expanded to the requested depth
// @Tags Stores
// @Produce json
// @Param slug path string true "Store slug"
// @Param depth query int false "Expansion depth"
// @Success 200 {object} services.StoreView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /stores/{slug} [get]
func (h *StoreHandler) GetStore(c *fiber.Ctx) error {
	slug := c.Params("slug")
	lookup := services.StoreLookup{
		Slug:  slug,
		Depth: parseDepth(c),
	}

	result, err := h.Catalog.GetStore(c.UserContext(), lookup, middleware.CallerFrom(c))
	if err != nil {
		return serviceError(c, h.Logger, err, fmt.Sprintf("Store '%s' not found", slug), "getStore")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GetAncestors handles GET /api/stores/:id/ancestors
// @Summary Get store ancestors
// @Tags Stores
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} AncestorsResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /stores/{id}/ancestors [get]
func (h *StoreHandler) GetAncestors(c *fiber.Ctx) error {
	id := c.Params("id")

	chain, err := h.Catalog.Ancestors(c.UserContext(), id)
	if err != nil {
		return serviceError(c, h.Logger, err, fmt.Sprintf("Store '%s' not found", id), "getAncestors")
	}
	return c.Status(fiber.StatusOK).JSON(AncestorsResponse{StoreID: id, Ancestors: chain})
}

// InstallStore handles POST /api/stores/:id/install
// @Summary Install a store
// @Tags Installs
// @Accept json
// @Produce json
// @Param id path string true "Store ID"
// @Param body body InstallInput false "Install options"
// @Success 200 {object} models.Install
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /stores/{id}/install [post]
func (h *StoreHandler) InstallStore(c *fiber.Ctx) error {
	return install(c, h.Catalog, h.Logger, services.StoreObject(c.Params("id")))
}

// UninstallStore handles DELETE /api/stores/:id/install
// @Summary Uninstall a store
// @Tags Installs
// @Produce json
// @Param id path string true "Store ID"
// @Success 200 {object} models.Install
// @Success 204 {string} string "Nothing was installed"
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /stores/{id}/install [delete]
func (h *StoreHandler) UninstallStore(c *fiber.Ctx) error {
	return uninstall(c, h.Catalog, h.Logger, services.StoreObject(c.Params("id")))
}
