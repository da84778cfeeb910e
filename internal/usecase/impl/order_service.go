package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Retries for order creation when a generated order number collides.
const orderNumberAttempts = 3

// orderService implements the OrderUsecase interface for both the
// retail and the wholesale scope.
type orderService struct {
	txManager          repository.TransactionManager
	orderRepo          repository.OrderRepository
	transactionRepo    repository.PaymentTransactionRepository
	storeRepo          repository.StoreRepository
	factoryRepo        repository.FactoryRepository
	storeProductRepo   repository.StoreProductRepository
	factoryProductRepo repository.FactoryProductRepository
	storage            service.ObjectStorage
	signTTL            time.Duration
	logger             *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager          repository.TransactionManager
	OrderRepo          repository.OrderRepository
	TransactionRepo    repository.PaymentTransactionRepository
	StoreRepo          repository.StoreRepository
	FactoryRepo        repository.FactoryRepository
	StoreProductRepo   repository.StoreProductRepository
	FactoryProductRepo repository.FactoryProductRepository
	Storage            service.ObjectStorage
	SignTTL            SignTTL
	Logger             *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:          params.TxManager,
		orderRepo:          params.OrderRepo,
		transactionRepo:    params.TransactionRepo,
		storeRepo:          params.StoreRepo,
		factoryRepo:        params.FactoryRepo,
		storeProductRepo:   params.StoreProductRepo,
		factoryProductRepo: params.FactoryProductRepo,
		storage:            params.Storage,
		signTTL:            time.Duration(params.SignTTL),
		logger:             params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create places an order. Retail orders are placed by buyers and
// wholesale orders by store owners. Every line item is resolved against
// the target scope's catalog, the total is recomputed from catalog
// prices and compared against the client's figure, and nothing is
// persisted on a mismatch.
func (srv *orderService) Create(ctx context.Context, userID uuid.UUID, userRole string, input usecase.CreateOrderInput) (*usecase.OrderOutput, error) {
	if !input.Scope.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order scope")
	}
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("order has no items")
	}

	switch input.Scope {
	case entity.ScopeStore:
		if userRole != entity.RoleBuyer.String() {
			return nil, domainerrors.ErrForbidden
		}
	case entity.ScopeFactory:
		if userRole != entity.RoleStoreAdmin.String() {
			return nil, domainerrors.ErrForbidden
		}
	}

	items, err := srv.resolveItems(ctx, input.Scope, input.ScopeID, input.Items)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		Scope:           input.Scope,
		ScopeID:         input.ScopeID,
		UserID:          userID,
		Status:          entity.OrderPending,
		PaymentStatus:   entity.PaymentPending,
		Total:           input.Total,
		ShippingAddress: input.ShippingAddress,
		Phone:           input.Phone,
		Items:           items,
	}

	if order.ItemsTotal() != input.Total {
		return nil, domainerrors.ErrTotalMismatch
	}

	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := newOrderNumber(time.Now())
		if err != nil {
			return nil, err
		}
		order.OrderNumber = number

		err = srv.orderRepo.Create(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrDuplicateKey) && attempt < orderNumberAttempts-1 {
			continue
		}

		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.log(ctx).Info("Order created",
		slog.Any("orderID", order.ID),
		slog.String("orderNumber", order.OrderNumber),
		slog.String("scope", string(order.Scope)))

	return srv.toOutput(ctx, order), nil
}

func (srv *orderService) GetByID(ctx context.Context, id uuid.UUID) (*usecase.OrderOutput, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return srv.toOutput(ctx, order), nil
}

// ListByScope lists the orders placed against the caller's own store or
// factory. A path id pointing at someone else's entity is Forbidden.
func (srv *orderService) ListByScope(ctx context.Context, ownerID uuid.UUID, scope entity.OrderScope, scopeID uuid.UUID) ([]*usecase.OrderOutput, error) {
	ownedID, err := srv.ownedScopeID(ctx, scope, ownerID)
	if err != nil {
		return nil, err
	}
	if ownedID != scopeID {
		return nil, domainerrors.ErrForbidden
	}

	orders, err := srv.orderRepo.FindByScope(ctx, scope, scopeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return srv.toOutputs(ctx, orders), nil
}

func (srv *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]*usecase.OrderOutput, error) {
	orders, err := srv.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return srv.toOutputs(ctx, orders), nil
}

// UpdateStatus moves the order through its fulfillment states. Only the
// owner of the store or factory the order was placed against may update.
func (srv *orderService) UpdateStatus(ctx context.Context, callerID, id uuid.UUID, input usecase.UpdateOrderStatusInput) (*usecase.OrderOutput, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status")
	}

	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	ownedID, err := srv.ownedScopeID(ctx, order.Scope, callerID)
	if err != nil {
		return nil, err
	}
	if ownedID != order.ScopeID {
		return nil, domainerrors.ErrForbidden
	}

	order.Status = input.Status
	if input.TrackingID != nil {
		order.TrackingID = *input.TrackingID
	}

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	return srv.toOutput(ctx, order), nil
}

func (srv *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := srv.orderRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find order")
	}

	if err := srv.orderRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}

// Pay records a mock card transaction. Amount and scope come from the
// order, never the caller; the transaction row and the order's payment
// status flip land in one database transaction.
func (srv *orderService) Pay(ctx context.Context, userID uuid.UUID, input usecase.CreateTransactionInput) (*usecase.TransactionOutput, error) {
	order, err := srv.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if order.UserID != userID {
		return nil, domainerrors.ErrForbidden
	}
	if order.PaymentStatus == entity.PaymentPaid {
		return nil, domainerrors.ErrConflict.WithDetails("order is already paid")
	}

	transaction := &entity.Transaction{
		Scope:      order.Scope,
		ScopeID:    order.ScopeID,
		OrderID:    order.ID,
		UserID:     userID,
		Status:     entity.TransactionSuccessful,
		Amount:     order.Total,
		CardHolder: input.CardHolder,
		CardNumber: input.CardNumber,
		CardExpiry: input.CardExpiry,
		CardCVC:    input.CardCVC,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewPaymentTransactionRepository().Create(ctx, transaction); err != nil {
			return errors.Wrap(err, "failed to create transaction")
		}

		order.PaymentStatus = entity.PaymentPaid
		if err := repoFactory.NewOrderRepository().Update(ctx, order); err != nil {
			return errors.Wrap(err, "failed to update order payment status")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute payment transaction")
	}

	srv.log(ctx).Info("Order paid",
		slog.Any("orderID", order.ID),
		slog.Any("transactionID", transaction.ID),
		slog.Int64("amount", transaction.Amount))

	return toTransactionOutput(transaction), nil
}

// ListTransactions lists the payments recorded against the caller's own
// store or factory.
func (srv *orderService) ListTransactions(ctx context.Context, ownerID uuid.UUID, scope entity.OrderScope, scopeID uuid.UUID) ([]*usecase.TransactionOutput, error) {
	ownedID, err := srv.ownedScopeID(ctx, scope, ownerID)
	if err != nil {
		return nil, err
	}
	if ownedID != scopeID {
		return nil, domainerrors.ErrForbidden
	}

	transactions, err := srv.transactionRepo.FindByScope(ctx, scope, scopeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	outputs := make([]*usecase.TransactionOutput, 0, len(transactions))
	for _, transaction := range transactions {
		outputs = append(outputs, toTransactionOutput(transaction))
	}

	return outputs, nil
}

// ownedScopeID resolves the store or factory owned by the caller.
// Owning none is Forbidden; the caller has no scope to act on.
func (srv *orderService) ownedScopeID(ctx context.Context, scope entity.OrderScope, ownerID uuid.UUID) (uuid.UUID, error) {
	switch scope {
	case entity.ScopeStore:
		store, err := srv.storeRepo.FindByUserID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return uuid.Nil, domainerrors.ErrForbidden
			}

			return uuid.Nil, errors.Wrap(err, "failed to find store")
		}

		return store.ID, nil
	case entity.ScopeFactory:
		factory, err := srv.factoryRepo.FindByUserID(ctx, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrFactoryNotFound) {
				return uuid.Nil, domainerrors.ErrForbidden
			}

			return uuid.Nil, errors.Wrap(err, "failed to find factory")
		}

		return factory.ID, nil
	default:
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("unknown order scope")
	}
}

// resolveItems loads every requested product from the scope's catalog
// and snapshots name, image and the catalog price. Factory orders also
// enforce each product's minimum order quantity.
func (srv *orderService) resolveItems(ctx context.Context, scope entity.OrderScope, scopeID uuid.UUID, inputs []usecase.OrderItemInput) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(inputs))

	switch scope {
	case entity.ScopeStore:
		if _, err := srv.storeRepo.FindByID(ctx, scopeID); err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return nil, domainerrors.ErrNotFound
			}

			return nil, errors.Wrap(err, "failed to find store")
		}

		for _, in := range inputs {
			if in.Qty < 1 {
				return nil, domainerrors.ErrValidationFailed.WithDetails("item quantity must be at least 1")
			}

			product, err := srv.storeProductRepo.FindByIDInStore(ctx, scopeID, in.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return nil, domainerrors.ErrNotFound
				}

				return nil, errors.Wrap(err, "failed to find store product")
			}

			items = append(items, entity.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Qty:       in.Qty,
				UnitPrice: product.Price,
				ImageKey:  product.ImageKey,
			})
		}
	case entity.ScopeFactory:
		if _, err := srv.factoryRepo.FindByID(ctx, scopeID); err != nil {
			if errors.Is(err, repository.ErrFactoryNotFound) {
				return nil, domainerrors.ErrNotFound
			}

			return nil, errors.Wrap(err, "failed to find factory")
		}

		for _, in := range inputs {
			if in.Qty < 1 {
				return nil, domainerrors.ErrValidationFailed.WithDetails("item quantity must be at least 1")
			}

			product, err := srv.factoryProductRepo.FindByIDInFactory(ctx, scopeID, in.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return nil, domainerrors.ErrNotFound
				}

				return nil, errors.Wrap(err, "failed to find factory product")
			}

			if in.Qty < product.MinOrderQty {
				return nil, domainerrors.ErrValidationFailed.WithDetails("quantity below the product's minimum order quantity")
			}

			items = append(items, entity.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Qty:       in.Qty,
				UnitPrice: product.UnitPrice,
				ImageKey:  product.ImageKey,
			})
		}
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order scope")
	}

	return items, nil
}

func (srv *orderService) toOutput(ctx context.Context, order *entity.Order) *usecase.OrderOutput {
	items := make([]usecase.OrderItemOutput, 0, len(order.Items))
	for _, it := range order.Items {
		item := usecase.OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
		}

		if it.ImageKey != "" {
			url, err := srv.storage.SignedURL(ctx, it.ImageKey, srv.signTTL)
			if err != nil {
				srv.log(ctx).Warn("Failed to sign item image url", slog.String("key", it.ImageKey), slog.Any("error", err))
			} else {
				item.ImageURL = url
			}
		}

		items = append(items, item)
	}

	return &usecase.OrderOutput{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Scope:           string(order.Scope),
		ScopeID:         order.ScopeID,
		UserID:          order.UserID,
		Status:          string(order.Status),
		PaymentStatus:   string(order.PaymentStatus),
		TrackingID:      order.TrackingID,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		Phone:           order.Phone,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}

func (srv *orderService) toOutputs(ctx context.Context, orders []*entity.Order) []*usecase.OrderOutput {
	outputs := make([]*usecase.OrderOutput, 0, len(orders))
	for _, order := range orders {
		outputs = append(outputs, srv.toOutput(ctx, order))
	}

	return outputs
}

func toTransactionOutput(t *entity.Transaction) *usecase.TransactionOutput {
	return &usecase.TransactionOutput{
		ID:        t.ID,
		OrderID:   t.OrderID,
		Status:    string(t.Status),
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	}
}
