package postgres

import (
	"context"

	"bazar/internal/domain/entity"
	"bazar/internal/domain/repository"
	"bazar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *orderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	return repo.findOne(ctx, "order_number = ?", orderNumber)
}

func (repo *orderRepository) findOne(ctx context.Context, cond string, value any) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Where(cond, value).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) FindByScope(ctx context.Context, scope entity.OrderScope, scopeID uuid.UUID) ([]*entity.Order, error) {
	return repo.findMany(repo.db.WithContext(ctx).Where("scope = ? AND scope_id = ?", string(scope), scopeID))
}

func (repo *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	return repo.findMany(repo.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (repo *orderRepository) findMany(query *gorm.DB) ([]*entity.Order, error) {
	var models []model.OrderModel
	if err := query.Preload("Items").Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(models))
	for i := range models {
		orders = append(orders, toOrderDomain(&models[i]))
	}

	return orders, nil
}

// Create persists the order together with its line items. A colliding
// order number surfaces as repository.ErrDuplicateKey.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := toOrderModel(order)
	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return errors.Wrap(err, "failed to create order")
	}

	*order = *toOrderDomain(orderM)

	return nil
}

// Update persists order header fields. Line items are immutable after
// creation, so only the orders row is written.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := toOrderModel(order)
	err := repo.db.WithContext(ctx).
		Omit("Items").
		Save(orderM).Error
	if err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	return nil
}

func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&model.OrderItemModel{}, "order_id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete order items")
	}
	if err := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}

func (repo *orderRepository) DeleteByScope(ctx context.Context, scope entity.OrderScope, scopeID uuid.UUID) error {
	// Items first, scoped through their parent orders.
	sub := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("id").
		Where("scope = ? AND scope_id = ?", string(scope), scopeID)
	if err := repo.db.WithContext(ctx).Delete(&model.OrderItemModel{}, "order_id IN (?)", sub).Error; err != nil {
		return errors.Wrap(err, "failed to delete order items")
	}

	err := repo.db.WithContext(ctx).
		Delete(&model.OrderModel{}, "scope = ? AND scope_id = ?", string(scope), scopeID).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete orders")
	}

	return nil
}

func toOrderDomain(m *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, entity.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			ImageKey:  it.ImageKey,
		})
	}

	return &entity.Order{
		ID:            m.ID,
		OrderNumber:   m.OrderNumber,
		Scope:         entity.OrderScope(m.Scope),
		ScopeID:       m.ScopeID,
		UserID:        m.UserID,
		Status:        entity.OrderStatus(m.Status),
		PaymentStatus: entity.PaymentStatus(m.PaymentStatus),
		TrackingID:    m.TrackingID,
		Total:         m.Total,

		ShippingAddress: m.ShippingAddress,
		Phone:           m.Phone,

		Items: items,

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toOrderModel(o *entity.Order) *model.OrderModel {
	items := make([]model.OrderItemModel, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, model.OrderItemModel{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			ImageKey:  it.ImageKey,
		})
	}

	return &model.OrderModel{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Scope:         string(o.Scope),
		ScopeID:       o.ScopeID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		TrackingID:    o.TrackingID,
		Total:         o.Total,

		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,

		Items: items,

		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
