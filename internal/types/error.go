// error.go
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
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every error returned by the services wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAccessDenied  = errors.New("access denied")
	ErrValidation    = errors.New("validation failed")
	ErrStorage       = errors.New("storage failure")
	ErrCycleDetected = errors.New("cycle detected")
)

// CustomError carries an HTTP status code and a response type alongside the error kind.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Kind    error  `json:"-"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Unwrap exposes the error kind to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Kind
}

// NotFound builds a not found error for the named entity.
func NotFound(format string, args ...interface{}) error {
	return &CustomError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf(format, args...),
		Type:    "notFound",
		Kind:    ErrNotFound,
	}
}

// AccessDenied builds an access denied error. Handlers render it exactly like NotFound.
func AccessDenied(format string, args ...interface{}) error {
	return &CustomError{
		Code:    http.StatusForbidden,
		Message: fmt.Sprintf(format, args...),
		Type:    "accessDenied",
		Kind:    ErrAccessDenied,
	}
}

// Validation builds a validation error for a malformed request.
func Validation(format string, args ...interface{}) error {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
		Type:    "validation",
		Kind:    ErrValidation,
	}
}

// CycleDetected builds an error for a parent chain or graph that loops back on itself.
func CycleDetected(format string, args ...interface{}) error {
	return &CustomError{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf(format, args...),
		Type:    "cycle",
		Kind:    ErrCycleDetected,
	}
}

// Storage wraps a failure from the database. A nil err returns nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &storageError{op: op, err: err}
}

type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

// Is reports the ErrStorage kind while still letting errors.Is see the driver error.
func (e *storageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *storageError) Unwrap() error {
	return e.err
}

// StatusCode maps an error kind to an HTTP status code.
func StatusCode(err error) int {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrCycleDetected):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
