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

// CategoryHandler serves the global, admin-curated category endpoints.
type CategoryHandler struct {
	uc     usecase.CategoryUsecase
	logger *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler.
func NewCategoryHandler(uc usecase.CategoryUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: logger,
	}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
	Kind string `json:"kind" validate:"required,oneof=store factory"`
}

// Create adds a global category.
func (h *CategoryHandler) Create(c echo.Context) error {
	var input categoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Create(c.Request().Context(), usecase.CategoryInput{
		Name: input.Name,
		Kind: entity.OwnerKind(input.Kind),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Category created")
}

// List returns the global categories, optionally filtered by kind.
func (h *CategoryHandler) List(c echo.Context) error {
	output, err := h.uc.GetAll(c.Request().Context(), entity.OwnerKind(c.QueryParam("kind")))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Categories retrieved")
}

// Update renames or rekinds a global category.
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input categoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	output, err := h.uc.Update(c.Request().Context(), id, usecase.CategoryInput{
		Name: input.Name,
		Kind: entity.OwnerKind(input.Kind),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Category updated")
}

// Delete removes a global category.
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted")
}
