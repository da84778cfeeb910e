package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderNumber   string    `gorm:"type:varchar(32);unique;not null"`
	Scope         string    `gorm:"type:varchar(16);not null;index:idx_orders_scope"`
	ScopeID       uuid.UUID `gorm:"type:uuid;not null;index:idx_orders_scope"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"type:varchar(16);not null;default:pending"`
	PaymentStatus string    `gorm:"type:varchar(16);not null;default:pending"`
	TrackingID    string    `gorm:"type:varchar(64)"`
	Total         int64     `gorm:"not null"`

	ShippingAddress string `gorm:"type:text"`
	Phone           string `gorm:"type:varchar(32)"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// BeforeCreate assigns the UUID primary key.
func (m *OrderModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// OrderItemModel mirrors the 'order_items' table. Name, price and image
// are snapshots taken at order time.
type OrderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Qty       int       `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
	ImageKey  string    `gorm:"type:varchar(512)"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// BeforeCreate assigns the UUID primary key.
func (m *OrderItemModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// TransactionModel mirrors the 'transactions' table of mock card payments.
type TransactionModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Scope   string    `gorm:"type:varchar(16);not null;index:idx_transactions_scope"`
	ScopeID uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_scope"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID  uuid.UUID `gorm:"type:uuid;not null"`
	Status  string    `gorm:"type:varchar(16);not null"`
	Amount  int64     `gorm:"not null"`

	CardHolder string `gorm:"type:varchar(100)"`
	CardNumber string `gorm:"type:varchar(32)"`
	CardExpiry string `gorm:"type:varchar(8)"`
	CardCVC    string `gorm:"type:varchar(8)"`

	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}

// BeforeCreate assigns the UUID primary key.
func (m *TransactionModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
