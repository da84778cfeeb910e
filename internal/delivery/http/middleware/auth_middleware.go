package middleware

import (
	"strings"

	deliverycontext "bazar/internal/delivery/context"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	accessCookieSuffix  = "AccessToken"
	refreshCookieSuffix = "RefreshToken"
)

// AccessCookieName returns the per-role access token cookie name, e.g.
// "buyerAccessToken" or "storeAdminAccessToken".
func AccessCookieName(role string) string {
	return camelizeRole(role) + accessCookieSuffix
}

// RefreshCookieName returns the per-role refresh token cookie name.
func RefreshCookieName(role string) string {
	return camelizeRole(role) + refreshCookieSuffix
}

// RolePrefixOfRefreshCookie reports whether the cookie name is a
// per-role refresh cookie and returns the camelized role prefix.
func RolePrefixOfRefreshCookie(name string) (string, bool) {
	prefix := strings.TrimSuffix(name, refreshCookieSuffix)
	if prefix == name || prefix == "" {
		return "", false
	}

	return prefix, true
}

func camelizeRole(role string) string {
	parts := strings.Split(role, "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}

	return strings.Join(parts, "")
}

// AuthMiddleware validates access tokens and gates routes by role.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the access token from the Authorization header
// or any per-role access cookie and stores the claims on the request
// context for handlers and use cases.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			tokenString = accessCookieToken(c)
		}
		if tokenString == "" {
			return domainerrors.ErrUnauthorized
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized
		}

		ctx := deliverycontext.WithClaims(c.Request().Context(), claims)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole allows only ordinary user principals holding one of the
// listed roles. It must be used after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := deliverycontext.GetClaims(c.Request().Context())
			if claims == nil {
				return domainerrors.ErrUnauthorized
			}
			if claims.Kind != service.KindUser || !containsRole(roles, claims.Role) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// RequireAdmin allows only admin principals. With roles given, the admin
// must additionally hold one of them.
func (m *AuthMiddleware) RequireAdmin(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := deliverycontext.GetClaims(c.Request().Context())
			if claims == nil {
				return domainerrors.ErrUnauthorized
			}
			if claims.Kind != service.KindAdmin {
				return domainerrors.ErrForbidden
			}
			if len(roles) > 0 && !containsRole(roles, claims.Role) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}

	return false
}

func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}

	return tokenString
}

func accessCookieToken(c echo.Context) string {
	for _, cookie := range c.Cookies() {
		if strings.HasSuffix(cookie.Name, accessCookieSuffix) && cookie.Value != "" {
			return cookie.Value
		}
	}

	return ""
}
