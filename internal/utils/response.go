package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-appstore/internal/types"
)

// ErrorResponse sends an error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// KindResponse renders a service error by its kind. A missing entity and a denied one
// produce the same 404 body so callers cannot learn whether a record exists.
func KindResponse(c *fiber.Ctx, err error, notFoundMessage, errorType string) error {
	switch {
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrAccessDenied):
		return NotFoundResponse(c, notFoundMessage)
	case errors.Is(err, types.ErrValidation):
		return ErrorResponse(c, err.Error(), fiber.StatusBadRequest, errorType)
	case errors.Is(err, types.ErrCycleDetected):
		return ErrorResponse(c, err.Error(), fiber.StatusConflict, errorType)
	}
	return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError, errorType)
}

// MutationSuccessResponse sends a success response for mutations (POST/PUT/DELETE)
func MutationSuccessResponse(c *fiber.Ctx, data interface{}, affectedRows int64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Success",
		"ok":           true,
		"data":         data,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"affectedRows": affectedRows,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message      string      `json:"message"`
	Ok           bool        `json:"ok"`
	Data         interface{} `json:"data"`
	Timestamp    string      `json:"timestamp"`
	AffectedRows int64       `json:"affectedRows"`
}
