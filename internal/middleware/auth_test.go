package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/localnerve/jam-build-appstore/internal/services"
	"github.com/localnerve/jam-build-appstore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatorFunc func(string) (string, error)

func (f validatorFunc) ValidateSession(cookie string) (string, error) {
	return f(cookie)
}

func newApp(validator services.SessionValidator, extra ...fiber.Handler) (*fiber.App, *services.Caller) {
	seen := &services.Caller{}
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var ce *types.CustomError
			if errors.As(err, &ce) {
				return c.SendStatus(ce.Code)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	handlers := append([]fiber.Handler{Identify(validator)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		*seen = CallerFrom(c)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/", handlers...)
	return app, seen
}

func TestIdentify(t *testing.T) {
	userID := uuid.NewString()
	guestID := uuid.NewString()
	validator := validatorFunc(func(cookie string) (string, error) {
		if cookie == "valid" {
			return userID, nil
		}
		return "", errors.New("bad session")
	})

	tests := []struct {
		name      string
		validator services.SessionValidator
		cookie    string
		guest     string
		status    int
		caller    services.Caller
	}{
		{name: "anonymous", validator: validator, status: http.StatusOK},
		{name: "member", validator: validator, cookie: "valid", status: http.StatusOK, caller: services.Caller{UserID: userID}},
		{name: "guest", validator: validator, guest: guestID, status: http.StatusOK, caller: services.Caller{GuestID: guestID}},
		{name: "member and guest", validator: validator, cookie: "valid", guest: guestID, status: http.StatusOK, caller: services.Caller{UserID: userID, GuestID: guestID}},
		{name: "invalid session", validator: validator, cookie: "expired", status: http.StatusForbidden},
		{name: "malformed guest", validator: validator, guest: "guest-1", status: http.StatusBadRequest},
		{name: "sessions disabled", cookie: "valid", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, seen := newApp(tt.validator)

			req := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.guest != "" {
				req.Header.Set(GuestHeader, tt.guest)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.caller, *seen)
			}
		})
	}
}

func TestRequireSubject(t *testing.T) {
	app, _ := newApp(nil, RequireSubject())

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(GuestHeader, uuid.NewString())
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCallerFromWithoutIdentify(t *testing.T) {
	app := fiber.New()
	var caller services.Caller
	app.Get("/", func(c *fiber.Ctx) error {
		caller = CallerFrom(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.True(t, caller.IsAnonymous())
}
