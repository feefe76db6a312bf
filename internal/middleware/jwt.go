package middleware

import (
	"context"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const claimsKey = "claims"

// RevocationChecker reports whether an access token was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTMiddleware handles JWT token validation. Valid tokens put the admin id
// into the request context and the claims into the echo context.
func JWTMiddleware(jwtSecret string, revocation RevocationChecker) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(jwtSecret),
		SigningMethod: echojwt.AlgorithmHS256,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.TokenClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return common.SendUnauthorizedError(c)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			claims, ok := token.Claims.(*services.TokenClaims)
			if !ok {
				return common.SendUnauthorizedError(c)
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return common.SendUnauthorizedError(c)
			}

			ctx := c.Request().Context()
			revoked, err := revocation.IsRevoked(ctx, claims.ID)
			if err != nil {
				log.Error().Err(err).Msg("Token revocation check failed")
				return common.SendServerError(c, "Internal server error")
			}
			if revoked {
				return common.SendUnauthorizedError(c)
			}

			c.Set(claimsKey, claims)
			c.SetRequest(c.Request().WithContext(context.WithValue(ctx, common.UserIDKey, userID)))
			return next(c)
		})
	}
}

// ClaimsFromContext returns the claims stored by JWTMiddleware.
func ClaimsFromContext(c echo.Context) (*services.TokenClaims, bool) {
	claims, ok := c.Get(claimsKey).(*services.TokenClaims)
	return claims, ok
}
