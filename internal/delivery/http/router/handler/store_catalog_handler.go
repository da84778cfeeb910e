package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/response"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StoreCatalogHandler serves the store product and product category
// endpoints. Every mutating route is scoped to the caller's own store.
type StoreCatalogHandler struct {
	uc     usecase.StoreCatalogUsecase
	logger *slog.Logger
}

// NewStoreCatalogHandler is the constructor for StoreCatalogHandler.
func NewStoreCatalogHandler(uc usecase.StoreCatalogUsecase, logger *slog.Logger) *StoreCatalogHandler {
	return &StoreCatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

type storeProductRequest struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Description string `json:"description" form:"description"`
	CategoryID  string `json:"categoryId" form:"categoryId"`
	Price       int64  `json:"price" form:"price" validate:"min=0"`
	Stock       int    `json:"stock" form:"stock" validate:"min=0"`
}

type updateStoreProductRequest struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	CategoryID  string  `json:"categoryId" form:"categoryId"`
	Price       *int64  `json:"price" form:"price"`
	Stock       *int    `json:"stock" form:"stock"`
	IsActive    *bool   `json:"isActive" form:"isActive"`
}

type productCategoryRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
}

// CreateProduct adds a retail product under the caller's store.
func (h *StoreCatalogHandler) CreateProduct(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input storeProductRequest
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

	output, err := h.uc.CreateProduct(c.Request().Context(), claims.UserID, usecase.StoreProductInput{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  categoryID,
		Price:       input.Price,
		Stock:       input.Stock,
		Image:       image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Product created")
}

// GetProduct returns one of the caller's products.
func (h *StoreCatalogHandler) GetProduct(c echo.Context) error {
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
func (h *StoreCatalogHandler) ListProducts(c echo.Context) error {
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
func (h *StoreCatalogHandler) UpdateProduct(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input updateStoreProductRequest
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

	output, err := h.uc.UpdateProduct(c.Request().Context(), claims.UserID, id, usecase.UpdateStoreProductInput{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  categoryID,
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    input.IsActive,
		Image:       image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Product updated")
}

// DeleteProduct removes one of the caller's products.
func (h *StoreCatalogHandler) DeleteProduct(c echo.Context) error {
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

// ListLiveProducts is the public storefront listing for one store.
func (h *StoreCatalogHandler) ListLiveProducts(c echo.Context) error {
	storeID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.ListLiveProducts(c.Request().Context(), storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Products retrieved")
}

// CreateCategory adds a product category under the caller's store.
func (h *StoreCatalogHandler) CreateCategory(c echo.Context) error {
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
func (h *StoreCatalogHandler) ListCategories(c echo.Context) error {
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
func (h *StoreCatalogHandler) UpdateCategory(c echo.Context) error {
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
func (h *StoreCatalogHandler) DeleteCategory(c echo.Context) error {
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
