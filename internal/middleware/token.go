package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"wedding-invite/internal/dto"
)

// RequireTokenFormat rejects malformed invite tokens before any lookup runs.
// Format-only check here; whether the token resolves to a guest is decided
// downstream.
func RequireTokenFormat(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := uuid.Parse(c.Param("token")); err != nil {
			return c.JSON(http.StatusBadRequest, dto.Fail("invalid invite token"))
		}
		return next(c)
	}
}
