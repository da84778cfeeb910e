package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/response"
	"bazar/internal/domain/entity"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler serves the order and payment endpoints for both scopes.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

type orderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Qty       int       `json:"qty" validate:"required,min=1"`
	UnitPrice int64     `json:"unitPrice" validate:"min=0"`
}

type createOrderRequest struct {
	Scope           string             `json:"scope" validate:"required,oneof=store factory"`
	ScopeID         uuid.UUID          `json:"scopeId" validate:"required"`
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total           int64              `json:"total" validate:"min=0"`
	ShippingAddress string             `json:"shippingAddress"`
	Phone           string             `json:"phone"`
}

type updateOrderStatusRequest struct {
	Status     string  `json:"status" validate:"required"`
	TrackingID *string `json:"trackingId"`
}

type payOrderRequest struct {
	CardHolder string `json:"cardHolder" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required"`
	CardExpiry string `json:"cardExpiry" validate:"required"`
	CardCVC    string `json:"cardCvc" validate:"required"`
}

// Create places an order. The supplied total must equal the recomputed
// sum of the line items at catalog prices.
func (h *OrderHandler) Create(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	var input createOrderRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	items := make([]usecase.OrderItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
		})
	}

	output, err := h.uc.Create(c.Request().Context(), claims.UserID, claims.Role, usecase.CreateOrderInput{
		Scope:           entity.OrderScope(input.Scope),
		ScopeID:         input.ScopeID,
		Items:           items,
		Total:           input.Total,
		ShippingAddress: input.ShippingAddress,
		Phone:           input.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Order created")
}

// GetByID returns one order.
func (h *OrderHandler) GetByID(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Order retrieved")
}

// ListMine lists the caller's own orders.
func (h *OrderHandler) ListMine(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	output, err := h.uc.ListMine(c.Request().Context(), claims.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Orders retrieved")
}

// ListStoreOrders lists the orders placed against one store.
func (h *OrderHandler) ListStoreOrders(c echo.Context) error {
	return h.listByScope(c, entity.ScopeStore, "storeId")
}

// ListFactoryOrders lists the orders placed against one factory.
func (h *OrderHandler) ListFactoryOrders(c echo.Context) error {
	return h.listByScope(c, entity.ScopeFactory, "factoryId")
}

func (h *OrderHandler) listByScope(c echo.Context, scope entity.OrderScope, param string) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	scopeID, err := pathUUID(c, param)
	if err != nil {
		return err
	}

	output, err := h.uc.ListByScope(c.Request().Context(), claims.UserID, scope, scopeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Orders retrieved")
}

// UpdateStatus advances fulfillment on one of the caller's orders.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input updateOrderStatusRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.UpdateStatus(c.Request().Context(), claims.UserID, id, usecase.UpdateOrderStatusInput{
		Status:     entity.OrderStatus(input.Status),
		TrackingID: input.TrackingID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Order updated")
}

// Delete removes one order.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted")
}

// Pay records a mock card transaction for the caller's order. The
// charged amount is always taken from the order itself.
func (h *OrderHandler) Pay(c echo.Context) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input payOrderRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Pay(c.Request().Context(), claims.UserID, usecase.CreateTransactionInput{
		OrderID:    orderID,
		CardHolder: input.CardHolder,
		CardNumber: input.CardNumber,
		CardExpiry: input.CardExpiry,
		CardCVC:    input.CardCVC,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Payment recorded")
}

// ListStoreTransactions lists the payments recorded against one store.
func (h *OrderHandler) ListStoreTransactions(c echo.Context) error {
	return h.listTransactions(c, entity.ScopeStore, "storeId")
}

// ListFactoryTransactions lists the payments recorded against one factory.
func (h *OrderHandler) ListFactoryTransactions(c echo.Context) error {
	return h.listTransactions(c, entity.ScopeFactory, "factoryId")
}

func (h *OrderHandler) listTransactions(c echo.Context, scope entity.OrderScope, param string) error {
	claims, err := principal(c)
	if err != nil {
		return err
	}

	scopeID, err := pathUUID(c, param)
	if err != nil {
		return err
	}

	output, err := h.uc.ListTransactions(c.Request().Context(), claims.UserID, scope, scopeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Transactions retrieved")
}
