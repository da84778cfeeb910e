package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/response"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StoreHandler serves the store lifecycle endpoints.
type StoreHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler.
func NewStoreHandler(uc usecase.StoreUsecase, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		uc:     uc,
		logger: logger,
	}
}

type createStoreRequest struct {
	Name         string `json:"name" form:"name" validate:"required"`
	Description  string `json:"description" form:"description"`
	CategoryID   string `json:"categoryId" form:"categoryId"`
	IDCardNumber string `json:"idCardNumber" form:"idCardNumber" validate:"required"`
}

type updateEntityRequest struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	CategoryID  string  `json:"categoryId" form:"categoryId"`
}

// Create opens the caller's store. Images arrive as multipart fields
// "logo", "cover" and "idCardImage".
func (h *StoreHandler) Create(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input createStoreRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
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
	idCard, err := formUpload(c, "idCardImage")
	if err != nil {
		return err
	}

	output, err := h.uc.Create(c.Request().Context(), claims.UserID, usecase.CreateStoreInput{
		Name:         input.Name,
		Description:  input.Description,
		CategoryID:   categoryID,
		IDCardNumber: input.IDCardNumber,
		Logo:         logo,
		Cover:        cover,
		IDCardImage:  idCard,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Store created")
}

// GetMine returns the caller's own store.
func (h *StoreHandler) GetMine(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	output, err := h.uc.GetMine(c.Request().Context(), claims.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Store retrieved")
}

// GetByID returns one store, public read.
func (h *StoreHandler) GetByID(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Store retrieved")
}

// GetAll is the admin listing of all stores.
func (h *StoreHandler) GetAll(c echo.Context) error {
	output, err := h.uc.GetAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Stores retrieved")
}

// Update changes the allow-listed store fields and optionally replaces
// the logo or cover image.
func (h *StoreHandler) Update(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input updateEntityRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
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

	return response.Success(c, http.StatusOK, output, "Store updated")
}

// Delete removes the caller's store and every child collection.
func (h *StoreHandler) Delete(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), claims.UserID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Store deleted")
}
