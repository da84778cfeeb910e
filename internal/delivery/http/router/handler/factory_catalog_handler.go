package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/response"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FactoryCatalogHandler serves the wholesale product and product
// category endpoints, parallel to StoreCatalogHandler.
type FactoryCatalogHandler struct {
	uc     usecase.FactoryCatalogUsecase
	logger *slog.Logger
}

// NewFactoryCatalogHandler is the constructor for FactoryCatalogHandler.
func NewFactoryCatalogHandler(uc usecase.FactoryCatalogUsecase, logger *slog.Logger) *FactoryCatalogHandler {
	return &FactoryCatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

type factoryProductRequest struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Description string `json:"description" form:"description"`
	CategoryID  string `json:"categoryId" form:"categoryId"`
	UnitPrice   int64  `json:"unitPrice" form:"unitPrice" validate:"min=0"`
	MinOrderQty int    `json:"minOrderQty" form:"minOrderQty" validate:"min=1"`
	Stock       int    `json:"stock" form:"stock" validate:"min=0"`
}

type updateFactoryProductRequest struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	CategoryID  string  `json:"categoryId" form:"categoryId"`
	UnitPrice   *int64  `json:"unitPrice" form:"unitPrice"`
	MinOrderQty *int    `json:"minOrderQty" form:"minOrderQty"`
	Stock       *int    `json:"stock" form:"stock"`
}

// CreateProduct adds a wholesale product under the caller's factory.
func (h *FactoryCatalogHandler) CreateProduct(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input factoryProductRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	categoryID, err := optionalUUID(input.CategoryID)
	if err != nil {
		return err
	}

	image, err := formUpload(c, "image")
	if err != nil {
		return err
	}

	output, err := h.uc.CreateProduct(c.Request().Context(), claims.UserID, usecase.FactoryProductInput{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  categoryID,
		UnitPrice:   input.UnitPrice,
		MinOrderQty: input.MinOrderQty,
		Stock:       input.Stock,
		Image:       image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Product created")
}

// GetProduct returns one of the caller's products.
func (h *FactoryCatalogHandler) GetProduct(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetProduct(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Product retrieved")
}

// ListProducts lists the caller's own products.
func (h *FactoryCatalogHandler) ListProducts(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	output, err := h.uc.ListProducts(c.Request().Context(), claims.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Products retrieved")
}

// UpdateProduct changes one of the caller's products.
func (h *FactoryCatalogHandler) UpdateProduct(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input updateFactoryProductRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	categoryID, err := optionalUUID(input.CategoryID)
	if err != nil {
		return err
	}

	image, err := formUpload(c, "image")
	if err != nil {
		return err
	}

	output, err := h.uc.UpdateProduct(c.Request().Context(), claims.UserID, id, usecase.UpdateFactoryProductInput{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  categoryID,
		UnitPrice:   input.UnitPrice,
		MinOrderQty: input.MinOrderQty,
		Stock:       input.Stock,
		Image:       image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Product updated")
}

// DeleteProduct removes one of the caller's products.
func (h *FactoryCatalogHandler) DeleteProduct(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), claims.UserID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted")
}

// ListApprovedProducts is the public wholesale listing for one factory.
func (h *FactoryCatalogHandler) ListApprovedProducts(c echo.Context) error {
	factoryID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.ListApprovedProducts(c.Request().Context(), factoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Products retrieved")
}

// CreateCategory adds a product category under the caller's factory.
func (h *FactoryCatalogHandler) CreateCategory(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input productCategoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	logo, err := formUpload(c, "logo")
	if err != nil {
		return err
	}

	output, err := h.uc.CreateCategory(c.Request().Context(), claims.UserID, usecase.ProductCategoryInput{
		Name: input.Name,
		Logo: logo,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Category created")
}

// ListCategories lists the caller's product categories.
func (h *FactoryCatalogHandler) ListCategories(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	output, err := h.uc.ListCategories(c.Request().Context(), claims.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Categories retrieved")
}

// UpdateCategory renames one of the caller's product categories.
func (h *FactoryCatalogHandler) UpdateCategory(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input productCategoryRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	logo, err := formUpload(c, "logo")
	if err != nil {
		return err
	}

	output, err := h.uc.UpdateCategory(c.Request().Context(), claims.UserID, id, usecase.ProductCategoryInput{
		Name: input.Name,
		Logo: logo,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Category updated")
}

// DeleteCategory removes one of the caller's product categories.
func (h *FactoryCatalogHandler) DeleteCategory(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), claims.UserID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted")
}
