package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/response"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FactoryHandler serves the factory lifecycle endpoints, parallel to
// StoreHandler.
type FactoryHandler struct {
	uc     usecase.FactoryUsecase
	logger *slog.Logger
}

// NewFactoryHandler is the constructor for FactoryHandler.
func NewFactoryHandler(uc usecase.FactoryUsecase, logger *slog.Logger) *FactoryHandler {
	return &FactoryHandler{
		uc:     uc,
		logger: logger,
	}
}

type createFactoryRequest struct {
	Name          string `json:"name" form:"name" validate:"required"`
	Description   string `json:"description" form:"description"`
	CategoryID    string `json:"categoryId" form:"categoryId"`
	LicenseNumber string `json:"licenseNumber" form:"licenseNumber" validate:"required"`
}

// Create opens the caller's factory. Images arrive as multipart fields
// "logo", "cover" and "licenseImage".
func (h *FactoryHandler) Create(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input createFactoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid factory input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	categoryID, err := optionalUUID(input.CategoryID)
	if err != nil {
		return err
	}

	logo, err := formUpload(c, "logo")
	if err != nil {
		return err
	}
	cover, err := formUpload(c, "cover")
	if err != nil {
		return err
	}
	license, err := formUpload(c, "licenseImage")
	if err != nil {
		return err
	}

	output, err := h.uc.Create(c.Request().Context(), claims.UserID, usecase.CreateFactoryInput{
		Name:          input.Name,
		Description:   input.Description,
		CategoryID:    categoryID,
		LicenseNumber: input.LicenseNumber,
		Logo:          logo,
		Cover:         cover,
		LicenseImage:  license,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Factory created")
}

// GetMine returns the caller's own factory.
func (h *FactoryHandler) GetMine(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	output, err := h.uc.GetMine(c.Request().Context(), claims.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Factory retrieved")
}

// GetByID returns one factory, public read.
func (h *FactoryHandler) GetByID(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Factory retrieved")
}

// GetAll is the admin listing of all factories.
func (h *FactoryHandler) GetAll(c echo.Context) error {
	output, err := h.uc.GetAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Factories retrieved")
}

// Update changes the allow-listed factory fields and optionally replaces
// the logo or cover image.
func (h *FactoryHandler) Update(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input updateEntityRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid factory input")
	}

	categoryID, err := optionalUUID(input.CategoryID)
	if err != nil {
		return err
	}

	logo, err := formUpload(c, "logo")
	if err != nil {
		return err
	}
	cover, err := formUpload(c, "cover")
	if err != nil {
		return err
	}

	output, err := h.uc.Update(c.Request().Context(), claims.UserID, usecase.UpdateEntityInput{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  categoryID,
		Logo:        logo,
		Cover:       cover,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Factory updated")
}

// Delete removes the caller's factory and every child collection.
func (h *FactoryHandler) Delete(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), claims.UserID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Factory deleted")
}
