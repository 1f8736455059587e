package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aireviews/review-system/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A missing
// user id means the token was structurally valid but carries no usable
// subject, so the request is rejected before any service call.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)

	return ports.Identity{UserID: userID, Email: email, Role: role}, nil
}
