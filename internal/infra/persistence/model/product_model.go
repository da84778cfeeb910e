package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreProductModel mirrors the 'store_products' table. Prices are
// stored as integer cents.
type StoreProductModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	StoreID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"type:varchar(150);not null"`
	Description string     `gorm:"type:text"`
	CategoryID  *uuid.UUID `gorm:"type:uuid"`
	Price       int64      `gorm:"not null"`
	Stock       int        `gorm:"not null;default:0"`
	ImageKey    string     `gorm:"type:varchar(512)"`
	Status      string     `gorm:"type:varchar(16);not null;default:pending"`
	IsActive    bool       `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreProductModel) TableName() string {
	return "store_products"
}

// BeforeCreate assigns the UUID primary key.
func (m *StoreProductModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// FactoryProductModel mirrors the 'factory_products' table.
type FactoryProductModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	FactoryID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"type:varchar(150);not null"`
	Description string     `gorm:"type:text"`
	CategoryID  *uuid.UUID `gorm:"type:uuid"`
	UnitPrice   int64      `gorm:"not null"`
	MinOrderQty int        `gorm:"not null;default:1"`
	Stock       int        `gorm:"not null;default:0"`
	ImageKey    string     `gorm:"type:varchar(512)"`
	Status      string     `gorm:"type:varchar(16);not null;default:pending"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FactoryProductModel) TableName() string {
	return "factory_products"
}

// BeforeCreate assigns the UUID primary key.
func (m *FactoryProductModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// ProductCategoryModel mirrors the 'product_categories' table of
// owner-scoped classifications.
type ProductCategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	OwnerKind string    `gorm:"type:varchar(16);not null;index:idx_product_categories_owner"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_product_categories_owner"`
	Name      string    `gorm:"type:varchar(100);not null"`
	LogoKey   string    `gorm:"type:varchar(512)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductCategoryModel) TableName() string {
	return "product_categories"
}

// BeforeCreate assigns the UUID primary key.
func (m *ProductCategoryModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
