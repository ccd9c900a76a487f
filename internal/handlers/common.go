// common.go
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
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"github.com/localnerve/jam-build-appstore/internal/utils"
	"go.uber.org/zap"
)

// parsePaging reads page and pageSize, applying the listing default page size
func parsePaging(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("pageSize", services.DefaultPageSize)
}

// parseDepth reads the expansion depth. The catalog clamps it.
func parseDepth(c *fiber.Ctx) int {
	return c.QueryInt("depth", 0)
}

// parseList collects a query parameter given as repeated keys and/or comma-separated values
func parseList(c *fiber.Ctx, name string) []string {
	seen := make(map[string]struct{})
	var list []string

	for _, value := range c.Context().QueryArgs().PeekMulti(name) {
		for _, v := range strings.Split(string(value), ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				list = append(list, v)
			}
		}
	}
	return list
}

// serviceError renders a service error, logging failures that are not the caller's fault
func serviceError(c *fiber.Ctx, log *zap.Logger, err error, notFoundMessage, errorType string) error {
	if errors.Is(err, types.ErrStorage) || types.StatusCode(err) >= fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("type", errorType),
			zap.String("url", c.OriginalURL()),
			zap.Error(err),
		)
	}
	return utils.KindResponse(c, err, notFoundMessage, errorType)
}

// ErrorHandler handles errors that escape handlers and middleware
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorType := "unknown"

		var fiberErr *fiber.Error
		var customErr *types.CustomError
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.As(err, &customErr):
			code = customErr.Code
			message = customErr.Message
			errorType = customErr.Type
		default:
			log.Error("unhandled error", zap.String("url", c.OriginalURL()), zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{
			"status":    code,
			"message":   message,
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
			"type":      errorType,
		})
	}
}

// NotFoundHandler answers any route that did not match
func NotFoundHandler(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}
