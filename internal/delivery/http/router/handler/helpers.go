package handler

import (
	"net/http"
	"time"

	"bazar/config"
	deliverycontext "bazar/internal/delivery/context"
	custommiddleware "bazar/internal/delivery/http/middleware"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// principal returns the authenticated claims stored by the auth
// middleware, or Unauthorized when the request carries none.
func principal(c echo.Context) (*service.Claims, error) {
	claims := deliverycontext.GetClaims(c.Request().Context())
	if claims == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	return claims, nil
}

// pathUUID parses a uuid path parameter.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " parameter")
	}

	return id, nil
}

// optionalUUID parses a uuid form or JSON string field that may be empty.
func optionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid uuid: " + raw)
	}

	return &id, nil
}

// formUpload reads an optional multipart file field. A missing field is
// not an error; the upload is simply absent.
func formUpload(c echo.Context, field string) (*usecase.FileUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unreadable upload: " + field)
	}

	return &usecase.FileUpload{
		Content:     file,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Filename:    fileHeader.Filename,
	}, nil
}

func cookieSecure(cfg *config.Config) bool {
	return cfg.Env.Env == "production"
}

func newSessionCookie(name, value string, ttl time.Duration, httpOnly, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: httpOnly,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// setSessionCookies writes the per-role token pair. The access cookie is
// readable by the client, the refresh cookie is not.
func setSessionCookies(c echo.Context, cfg *config.Config, role, accessToken, refreshToken string) {
	secure := cookieSecure(cfg)
	c.SetCookie(newSessionCookie(custommiddleware.AccessCookieName(role), accessToken, cfg.Auth.AccessTokenTTL, false, secure))
	c.SetCookie(newSessionCookie(custommiddleware.RefreshCookieName(role), refreshToken, cfg.Auth.RefreshTokenTTL, true, secure))
}

// clearSessionCookies expires the per-role token pair.
func clearSessionCookies(c echo.Context, cfg *config.Config, role string) {
	secure := cookieSecure(cfg)
	c.SetCookie(newSessionCookie(custommiddleware.AccessCookieName(role), "", -time.Second, false, secure))
	c.SetCookie(newSessionCookie(custommiddleware.RefreshCookieName(role), "", -time.Second, true, secure))
}

// refreshTokenFromCookies finds the per-role refresh cookie and returns
// its value together with the matching access cookie name.
func refreshTokenFromCookies(c echo.Context) (accessCookieName, token string, err error) {
	for _, cookie := range c.Cookies() {
		if name, ok := custommiddleware.RolePrefixOfRefreshCookie(cookie.Name); ok && cookie.Value != "" {
			return name + "AccessToken", cookie.Value, nil
		}
	}

	return "", "", domainerrors.ErrUnauthorized
}
