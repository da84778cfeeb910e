package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdminActionModel mirrors the append-only 'admin_actions' audit table.
type AdminActionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	AdminID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"type:varchar(32);not null"`
	TargetTable string    `gorm:"type:varchar(32);not null;index:idx_admin_actions_target"`
	TargetID    uuid.UUID `gorm:"type:uuid;not null;index:idx_admin_actions_target"`
	Notes       string    `gorm:"type:text"`

	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminActionModel) TableName() string {
	return "admin_actions"
}

// BeforeCreate assigns the UUID primary key.
func (m *AdminActionModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// All lists every persistence model for schema migration.
func All() []any {
	return []any{
		&UserModel{},
		&AdminUserModel{},
		&CategoryModel{},
		&StoreModel{},
		&FactoryModel{},
		&StoreProductModel{},
		&FactoryProductModel{},
		&ProductCategoryModel{},
		&ReviewModel{},
		&FeedbackModel{},
		&OrderModel{},
		&OrderItemModel{},
		&TransactionModel{},
		&AdminActionModel{},
	}
}
