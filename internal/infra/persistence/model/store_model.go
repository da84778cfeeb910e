package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryModel mirrors the 'categories' table of global classifications.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Kind      string    `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// BeforeCreate assigns the UUID primary key.
func (m *CategoryModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// StoreModel mirrors the 'stores' table. The unique index on UserID is
// the authority for the one-store-per-user rule.
type StoreModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string     `gorm:"type:varchar(100);not null"`
	Description string     `gorm:"type:text"`
	LogoKey     string     `gorm:"type:varchar(512)"`
	CoverKey    string     `gorm:"type:varchar(512)"`
	CategoryID  *uuid.UUID `gorm:"type:uuid"`

	IDCardNumber   string `gorm:"type:varchar(64)"`
	IDCardImageKey string `gorm:"type:varchar(512)"`

	Status      string `gorm:"type:varchar(16);not null;default:pending"`
	IsBlocked   bool   `gorm:"not null;default:false"`
	IsSuspended bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}

// BeforeCreate assigns the UUID primary key.
func (m *StoreModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// FactoryModel mirrors the 'factories' table, with the same unique
// owner rule as stores.
type FactoryModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Name        string     `gorm:"type:varchar(100);not null"`
	Description string     `gorm:"type:text"`
	LogoKey     string     `gorm:"type:varchar(512)"`
	CoverKey    string     `gorm:"type:varchar(512)"`
	CategoryID  *uuid.UUID `gorm:"type:uuid"`

	LicenseNumber   string `gorm:"type:varchar(64)"`
	LicenseImageKey string `gorm:"type:varchar(512)"`

	Status      string `gorm:"type:varchar(16);not null;default:pending"`
	IsBlocked   bool   `gorm:"not null;default:false"`
	IsSuspended bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FactoryModel) TableName() string {
	return "factories"
}

// BeforeCreate assigns the UUID primary key.
func (m *FactoryModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
