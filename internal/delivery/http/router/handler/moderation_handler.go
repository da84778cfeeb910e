package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/response"
	"bazar/internal/domain/entity"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ModerationHandler serves the super-admin moderation endpoints.
type ModerationHandler struct {
	uc     usecase.ModerationUsecase
	logger *slog.Logger
}

// NewModerationHandler is the constructor for ModerationHandler.
func NewModerationHandler(uc usecase.ModerationUsecase, logger *slog.Logger) *ModerationHandler {
	return &ModerationHandler{
		uc:     uc,
		logger: logger,
	}
}

type moderationRequest struct {
	Notes string `json:"notes"`
}

// Apply performs one moderation verb on one target. The route carries
// the target kind, target id, and verb; the verb and kind combine into
// the action type, e.g. verify + store-product = verify-store-product.
func (h *ModerationHandler) Apply(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	targetID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	// Notes body is optional; an empty body falls back to defaults.
	var input moderationRequest
	_ = c.Bind(&input)

	action := entity.ActionType(c.Param("verb") + "-" + c.Param("target"))

	output, err := h.uc.Apply(c.Request().Context(), claims.UserID, usecase.ModerationInput{
		Action:   action,
		TargetID: targetID,
		Notes:    input.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Moderation action applied")
}

// ListActions returns the full audit trail, newest first.
func (h *ModerationHandler) ListActions(c echo.Context) error {
	output, err := h.uc.ListActions(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Actions retrieved")
}

// ListActionsForTarget returns the audit trail of one target.
func (h *ModerationHandler) ListActionsForTarget(c echo.Context) error {
	targetID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.ListActionsForTarget(c.Request().Context(), c.Param("target"), targetID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Actions retrieved")
}
