package middleware

import (
	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireAdmin must run after JWTMiddleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			if claims.Role != services.RoleAdmin {
				return common.SendForbiddenError(c)
			}
			return next(c)
		}
	}
}
