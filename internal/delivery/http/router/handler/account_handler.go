// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"bazar/config"
	"bazar/internal/delivery/http/response"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler serves the user identity and profile endpoints.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, cfg *config.Config, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type sessionResponse struct {
	AccessToken string              `json:"accessToken"`
	User        *usecase.UserOutput `json:"user"`
}

// Register handles the user registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
		Address:  input.Address,
		Phone:    input.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Account registered, verification mail sent")
}

// VerifyEmail consumes the emailed verification token.
func (h *AccountHandler) VerifyEmail(c echo.Context) error {
	if err := h.uc.VerifyEmail(c.Request().Context(), c.Param("token")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email verified")
}

// Login handles the user login request and sets the session cookies.
func (h *AccountHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	setSessionCookies(c, h.cfg, output.User.Role, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, sessionResponse{
		AccessToken: output.AccessToken,
		User:        output.User,
	}, "Login successful")
}

// RefreshAccessToken exchanges the refresh cookie for a new access token.
func (h *AccountHandler) RefreshAccessToken(c echo.Context) error {
	accessCookieName, refreshToken, err := refreshTokenFromCookies(c)
	if err != nil {
		return err
	}

	accessToken, err := h.uc.RefreshAccessToken(c.Request().Context(), refreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(newSessionCookie(accessCookieName, accessToken, h.cfg.Auth.AccessTokenTTL, false, cookieSecure(h.cfg)))

	return response.Success(c, http.StatusOK, map[string]string{"accessToken": accessToken}, "Access token refreshed")
}

// Logout clears the stored refresh token and the session cookies.
func (h *AccountHandler) Logout(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.uc.Logout(c.Request().Context(), claims.UserID); err != nil {
		return errors.WithStack(err)
	}

	clearSessionCookies(c, h.cfg, claims.Role)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// ForgotPassword mails a reset link when the account exists.
func (h *AccountHandler) ForgotPassword(c echo.Context) error {
	var input forgotPasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid forgot password input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), input.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "If the account exists, a reset mail was sent")
}

// ResetPassword consumes the emailed reset token.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var input resetPasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset password input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	err := h.uc.ResetPassword(c.Request().Context(), usecase.ResetPasswordInput{
		Token:       c.Param("token"),
		NewPassword: input.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset")
}

// GetProfile returns the caller's own profile.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	output, err := h.uc.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Profile retrieved")
}

// ListUsers is the admin listing of all user accounts.
func (h *AccountHandler) ListUsers(c echo.Context) error {
	output, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Users retrieved")
}

// UpdateProfile updates the allow-listed profile fields.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input updateProfileRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), claims.UserID, usecase.UpdateProfileInput{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Profile updated")
}

// UpdateProfileImage replaces the caller's profile image.
func (h *AccountHandler) UpdateProfileImage(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	upload, err := formUpload(c, "image")
	if err != nil {
		return err
	}
	if upload == nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing image file")
	}

	output, err := h.uc.UpdateProfileImage(c.Request().Context(), claims.UserID, *upload)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Profile image updated")
}

// DeleteProfileImage removes the caller's profile image.
func (h *AccountHandler) DeleteProfileImage(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProfileImage(c.Request().Context(), claims.UserID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Profile image deleted")
}

// DeleteAccount removes the caller's account and any owned store or
// factory with all of its children.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), claims.UserID); err != nil {
		return errors.WithStack(err)
	}

	clearSessionCookies(c, h.cfg, claims.Role)

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}
