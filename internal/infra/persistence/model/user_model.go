// Package model holds the GORM persistence models. IDs are UUIDs
// assigned in BeforeCreate hooks so the same models run on PostgreSQL
// and on the in-memory SQLite used by tests.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Email           string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	Role            string    `gorm:"type:varchar(32);not null"`
	Address         string    `gorm:"type:text"`
	Phone           string    `gorm:"type:varchar(32)"`
	ProfileImageKey string    `gorm:"type:varchar(512)"`
	IsVerified      bool      `gorm:"not null;default:false"`
	IsActive        bool      `gorm:"not null;default:true"`

	VerificationTokenHash   string `gorm:"type:varchar(64);index"`
	VerificationTokenExpiry *time.Time
	ResetTokenHash          string `gorm:"type:varchar(64);index"`
	ResetTokenExpiry        *time.Time
	RefreshToken            string `gorm:"type:varchar(512);index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns the UUID primary key.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// AdminUserModel mirrors the 'admin_users' table, kept separate from
// ordinary users.
type AdminUserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Email           string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	Role            string    `gorm:"type:varchar(32);not null"`
	Address         string    `gorm:"type:text"`
	Phone           string    `gorm:"type:varchar(32)"`
	ProfileImageKey string    `gorm:"type:varchar(512)"`
	IsVerified      bool      `gorm:"not null;default:false"`

	VerificationTokenHash   string `gorm:"type:varchar(64);index"`
	VerificationTokenExpiry *time.Time
	ResetTokenHash          string `gorm:"type:varchar(64);index"`
	ResetTokenExpiry        *time.Time
	RefreshToken            string `gorm:"type:varchar(512);index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminUserModel) TableName() string {
	return "admin_users"
}

// BeforeCreate assigns the UUID primary key.
func (m *AdminUserModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
