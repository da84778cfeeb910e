package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bazar/config"
	deliverycontext "bazar/internal/delivery/context"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/service"
	"bazar/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return tokens
}

func TestCookieNames(t *testing.T) {
	assert.Equal(t, "buyerAccessToken", AccessCookieName("buyer"))
	assert.Equal(t, "storeAdminAccessToken", AccessCookieName("store-admin"))
	assert.Equal(t, "factoryAdminRefreshToken", RefreshCookieName("factory-admin"))
	assert.Equal(t, "superAdminRefreshToken", RefreshCookieName("super-admin"))

	prefix, ok := RolePrefixOfRefreshCookie("storeAdminRefreshToken")
	require.True(t, ok)
	assert.Equal(t, "storeAdmin", prefix)

	_, ok = RolePrefixOfRefreshCookie("storeAdminAccessToken")
	assert.False(t, ok)
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	m := NewAuthMiddleware(testTokenService(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := m.Authenticate(func(echo.Context) error { return nil })(c)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthMiddleware_AcceptsBearerAndCookie(t *testing.T) {
	tokens := testTokenService(t)
	m := NewAuthMiddleware(tokens)

	userID := uuid.New()
	accessToken, err := tokens.GenerateAccessToken(userID, "buyer@example.com", "Buyer", "buyer", service.KindUser)
	require.NoError(t, err)

	next := func(c echo.Context) error {
		claims := deliverycontext.GetClaims(c.Request().Context())
		require.NotNil(t, claims)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "buyer", claims.Role)

		return nil
	}

	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	c := e.NewContext(req, httptest.NewRecorder())
	require.NoError(t, m.Authenticate(next)(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName("buyer"), Value: accessToken})
	c = e.NewContext(req, httptest.NewRecorder())
	require.NoError(t, m.Authenticate(next)(c))
}

func TestAuthMiddleware_RoleGates(t *testing.T) {
	tokens := testTokenService(t)
	m := NewAuthMiddleware(tokens)

	buyerToken, err := tokens.GenerateAccessToken(uuid.New(), "buyer@example.com", "Buyer", "buyer", service.KindUser)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateAccessToken(uuid.New(), "admin@example.com", "Admin", "super-admin", service.KindAdmin)
	require.NoError(t, err)

	ok := func(echo.Context) error { return nil }
	e := echo.New()

	invoke := func(token string, mw echo.MiddlewareFunc) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		c := e.NewContext(req, httptest.NewRecorder())

		return m.Authenticate(mw(ok))(c)
	}

	assert.NoError(t, invoke(buyerToken, m.RequireRole("buyer")))
	assert.ErrorIs(t, invoke(buyerToken, m.RequireRole("store-admin")), domainerrors.ErrForbidden)

	// Admin principals never pass the user role gate, and vice versa.
	assert.ErrorIs(t, invoke(adminToken, m.RequireRole("buyer")), domainerrors.ErrForbidden)
	assert.ErrorIs(t, invoke(buyerToken, m.RequireAdmin()), domainerrors.ErrForbidden)

	assert.NoError(t, invoke(adminToken, m.RequireAdmin()))
	assert.NoError(t, invoke(adminToken, m.RequireAdmin("super-admin")))
	assert.ErrorIs(t, invoke(adminToken, m.RequireAdmin("admin-analyst")), domainerrors.ErrForbidden)
}
