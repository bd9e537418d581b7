package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cur8tr/domain"
	"cur8tr/pkg/logger"
	"cur8tr/pkg/utils"

	jsonres "cur8tr/pkg/response"

	"github.com/labstack/echo/v4"
)

// TokenValidator checks that a token is still live in the session store
type TokenValidator interface {
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
}

type authError struct {
	status  int
	code    string
	message string
}

func (e *authError) respond(c echo.Context) error {
	return c.JSON(e.status, jsonres.Error(e.code, e.message, nil))
}

func unauthorized(message string) *authError {
	return &authError{status: http.StatusUnauthorized, code: "UNAUTHORIZED", message: message}
}

func authenticate(c echo.Context, tokenValidator TokenValidator, authHeader string) *authError {
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return unauthorized("Invalid authorization format")
	}

	tokenString := tokenParts[1]

	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		logger.Error("Failed to parse JWT", err)
		return unauthorized("Invalid token")
	}

	expAt, err := claims.GetExpirationTime()
	if err != nil || expAt == nil || time.Now().After(expAt.Time) {
		return unauthorized("Token expired")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := tokenValidator.ValidateTokenFromRedis(ctx, tokenString)
	if err != nil {
		logger.Error("Token not found in Redis", err)
		return unauthorized("Token expired or invalid")
	}

	if userID != claims.UserID {
		logger.Error("UserID mismatch between JWT and Redis")
		return unauthorized("Invalid token")
	}

	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("token", tokenString)

	return nil
}

// AuthMiddlewareWithRedis requires a bearer token that is both a valid JWT
// and present in redis.
func AuthMiddlewareWithRedis(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized("Missing authorization header").respond(c)
			}

			if aerr := authenticate(c, tokenValidator, authHeader); aerr != nil {
				return aerr.respond(c)
			}

			return next(c)
		}
	}
}

// OptionalAuth lets anonymous requests through. A token that is sent but
// invalid is still rejected.
func OptionalAuth(tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			if aerr := authenticate(c, tokenValidator, authHeader); aerr != nil {
				return aerr.respond(c)
			}

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, ok := c.Get("role").(string)
			if !ok || roleStr != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}
