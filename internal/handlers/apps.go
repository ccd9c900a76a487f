// apps.go
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
	"github.com/localnerve/jam-build-appstore/internal/types"
	"github.com/localnerve/jam-build-appstore/internal/utils"
	"go.uber.org/zap"
)

// AppHandler handles app routes
type AppHandler struct {
	Catalog *services.Catalog
	Logger  *zap.Logger
}

// InstallInput is the optional body of an install request
type InstallInput struct {
	Order    types.FlexInt `json:"order"`
	IsPinned bool          `json:"isPinned"`
	Platform string        `json:"platform,omitempty"`
	Source   string        `json:"source,omitempty"`
}

func (in InstallInput) options() services.InstallOptions {
	return services.InstallOptions{
		Order:    in.Order.Int(),
		IsPinned: in.IsPinned,
		Platform: in.Platform,
		Source:   in.Source,
	}
}

// ExtendsInput replaces an app's extends
type ExtendsInput struct {
	Extends types.IDList `json:"extends"`
}

// ReorderInput is a drag-to-reorder request
type ReorderInput struct {
	StoreID string             `json:"storeId,omitempty"`
	Apps    []ReorderItemInput `json:"apps"`
}

// ReorderItemInput positions one app
type ReorderItemInput struct {
	AppID       string        `json:"appId"`
	StoreID     string        `json:"storeId,omitempty"`
	Order       types.FlexInt `json:"order"`
	AutoInstall bool          `json:"autoInstall,omitempty"`
}

// ListApps handles GET /api/apps
// @Summary List apps
// @Description List the apps visible to the caller, in store listing order
// @Tags Apps
// @Produce json
// @Param storeId query string false "Store ID"
// @Param ownerId query string false "Owner user or guest ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} services.AppPage
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /apps [get]
func (h *AppHandler) ListApps(c *fiber.Ctx) error {
	page, pageSize := parsePaging(c)
	filter := services.AppFilter{
		StoreID: c.Query("storeId"),
		OwnerID: c.Query("ownerId"),
	}

	result, err := h.Catalog.ListApps(c.UserContext(), filter, middleware.CallerFrom(c), page, pageSize)
	if err != nil {
		return serviceError(c, h.Logger, err, "Apps not found", "listApps")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GetApp handles GET /api/apps/:id
// @Summary Get app by ID
// @Description Get an app by ID inside its effective store context. ID lookups are not access checked.
// @Tags Apps
// @Produce json
// @Param id path string true "App ID"
// @Param storeId query string false "Candidate store ID"
// @Param storeDomain query string false "Domain of the candidate store"
// @Param depth query int false "Store expansion depth"
// @Success 200 {object} services.AppView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /apps/{id} [get]
func (h *AppHandler) GetApp(c *fiber.Ctx) error {
	id := c.Params("id")
	lookup := services.AppLookup{
		ID:          id,
		StoreID:     c.Query("storeId"),
		StoreDomain: c.Query("storeDomain"),
		Depth:       parseDepth(c),
	}

	result, err := h.Catalog.GetApp(c.UserContext(), lookup, middleware.CallerFrom(c))
	if err != nil {
		return serviceError(c, h.Logger, err, fmt.Sprintf("App '%s' not found", id), "getApp")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GetAppBySlug handles GET /api/apps/:storeSlug/:appSlug
// @Summary Get app by slug
// @Description Get an app by slug within a store context. Apps the caller may not see are reported as not found.
// @Tags Apps
// @Produce json
// @Param storeSlug path string true "Store slug"
// @Param appSlug path string true "App slug"
// @Param depth query int false "Store expansion depth"
// @Success 200 {object} services.AppView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /apps/{storeSlug}/{appSlug} [get]
func (h *AppHandler) GetAppBySlug(c *fiber.Ctx) error {
	storeSlug := c.Params("storeSlug")
	appSlug := c.Params("appSlug")
	lookup := services.AppLookup{
		Slug:      appSlug,
		StoreSlug: storeSlug,
		Depth:     parseDepth(c),
	}

	result, err := h.Catalog.GetApp(c.UserContext(), lookup, middleware.CallerFrom(c))
	if err != nil {
		return serviceError(c, h.Logger, err, fmt.Sprintf("App '%s' not found in store '%s'", appSlug, storeSlug), "getAppBySlug")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// SetExtends handles PUT /api/apps/:id/extends
// @Summary Replace app extends
// @Description Replace the full set of apps this app extends. Owner only.
// @Tags Apps
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "App ID"
// @Param body body ExtendsInput true "Extended app IDs"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /apps/{id}/extends [put]
func (h *AppHandler) SetExtends(c *fiber.Ctx) error {
	id := c.Params("id")

	var input ExtendsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "setExtends")
	}

	edges, err := h.Catalog.SetExtends(c.UserContext(), middleware.CallerFrom(c), id, input.Extends.Strings())
	if err != nil {
		return serviceError(c, h.Logger, err, fmt.Sprintf("App '%s' not found", id), "setExtends")
	}
	return utils.MutationSuccessResponse(c, edges, int64(len(edges)))
}

// InstallApp handles POST /api/apps/:id/install
// @Summary Install an app
// @Description Add an app to the caller's home screen. Installing twice returns the existing install.
// @Tags Installs
// @Accept json
// @Produce json
// @Param id path string true "App ID"
// @Param body body InstallInput false "Install options"
// @Success 200 {object} models.Install
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /apps/{id}/install [post]
func (h *AppHandler) InstallApp(c *fiber.Ctx) error {
	return install(c, h.Catalog, h.Logger, services.AppObject(c.Params("id")))
}

// UninstallApp handles DELETE /api/apps/:id/install
// @Summary Uninstall an app
// @Tags Installs
// @Produce json
// @Param id path string true "App ID"
// @Success 200 {object} models.Install
// @Success 204 {string} string "Nothing was installed"
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /apps/{id}/install [delete]
func (h *AppHandler) UninstallApp(c *fiber.Ctx) error {
	return uninstall(c, h.Catalog, h.Logger, services.AppObject(c.Params("id")))
}

// ReorderApps handles POST /api/apps/reorder
// @Summary Reorder apps
// @Description Record the caller's custom order for apps, optionally installing them
// @Tags Apps
// @Accept json
// @Produce json
// @Param body body ReorderInput true "New positions"
// @Success 200 {object} services.ReorderResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /apps/reorder [post]
func (h *AppHandler) ReorderApps(c *fiber.Ctx) error {
	var input ReorderInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "reorderApps")
	}
	if len(input.Apps) == 0 {
		return utils.ErrorResponse(c, "apps is required", fiber.StatusBadRequest, "reorderApps")
	}

	items := make([]services.ReorderItem, len(input.Apps))
	for i, in := range input.Apps {
		items[i] = services.ReorderItem{
			AppID:       in.AppID,
			StoreID:     in.StoreID,
			Order:       in.Order.Int(),
			AutoInstall: in.AutoInstall,
		}
	}

	result, err := h.Catalog.ReorderApps(c.UserContext(), middleware.CallerFrom(c), input.StoreID, items)
	if err != nil {
		// partial success still reports what changed
		h.Logger.Warn("reorder incomplete", zap.Error(err))
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"ok":      false,
			"message": err.Error(),
			"result":  result,
		})
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func install(c *fiber.Ctx, catalog *services.Catalog, log *zap.Logger, object services.Object) error {
	var input InstallInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "install")
		}
	}

	row, err := catalog.Install(c.UserContext(), middleware.CallerFrom(c), object, input.options())
	if err != nil {
		return serviceError(c, log, err, "Install target not found", "install")
	}
	return c.Status(fiber.StatusOK).JSON(row)
}

func uninstall(c *fiber.Ctx, catalog *services.Catalog, log *zap.Logger, object services.Object) error {
	row, err := catalog.Uninstall(c.UserContext(), middleware.CallerFrom(c), object)
	if err != nil {
		return serviceError(c, log, err, "Install target not found", "uninstall")
	}
	if row == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusOK).JSON(row)
}
