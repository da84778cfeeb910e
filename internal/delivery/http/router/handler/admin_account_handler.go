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

// AdminAccountHandler serves the admin identity endpoints, parallel to
// AccountHandler over the separate admin principal table.
type AdminAccountHandler struct {
	uc     usecase.AdminAccountUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewAdminAccountHandler is the constructor for AdminAccountHandler.
func NewAdminAccountHandler(uc usecase.AdminAccountUsecase, cfg *config.Config, logger *slog.Logger) *AdminAccountHandler {
	return &AdminAccountHandler{
		uc:     uc,
		cfg:    cfg,
		logger: logger,
	}
}

type adminSessionResponse struct {
	AccessToken string               `json:"accessToken"`
	Admin       *usecase.AdminOutput `json:"admin"`
}

// Register handles the admin registration request.
func (h *AdminAccountHandler) Register(c echo.Context) error {
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

	return response.Success(c, http.StatusCreated, output, "Admin registered, verification mail sent")
}

// VerifyEmail consumes the emailed verification token.
func (h *AdminAccountHandler) VerifyEmail(c echo.Context) error {
	if err := h.uc.VerifyEmail(c.Request().Context(), c.Param("token")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email verified")
}

// Login handles the admin login request and sets the session cookies.
func (h *AdminAccountHandler) Login(c echo.Context) error {
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

	setSessionCookies(c, h.cfg, output.Admin.Role, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, adminSessionResponse{
		AccessToken: output.AccessToken,
		Admin:       output.Admin,
	}, "Login successful")
}

// RefreshAccessToken exchanges the refresh cookie for a new access token.
func (h *AdminAccountHandler) RefreshAccessToken(c echo.Context) error {
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
func (h *AdminAccountHandler) Logout(c echo.Context) error {
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
func (h *AdminAccountHandler) ForgotPassword(c echo.Context) error {
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
func (h *AdminAccountHandler) ResetPassword(c echo.Context) error {
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

// GetProfile returns the caller's own admin profile.
func (h *AdminAccountHandler) GetProfile(c echo.Context) error {
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

// ListAdmins lists all admin accounts.
func (h *AdminAccountHandler) ListAdmins(c echo.Context) error {
	output, err := h.uc.ListAdmins(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Admins retrieved")
}

// UpdateProfile updates the allow-listed admin profile fields.
func (h *AdminAccountHandler) UpdateProfile(c echo.Context) error {
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
