package entity

import (
	"time"

	"github.com/google/uuid"
)

// ModerationStatus is the lifecycle field driven by the moderation
// component. It is independent of the IsBlocked/IsSuspended flags.
type ModerationStatus string

const (
	// StatusPending is the initial state of every moderated entity.
	StatusPending ModerationStatus = "pending"
	// StatusLive marks an approved store or product.
	StatusLive ModerationStatus = "live"
	// StatusApproved marks an approved factory.
	StatusApproved ModerationStatus = "approved"
	// StatusRejected marks a rejected entity.
	StatusRejected ModerationStatus = "rejected"
)

// Store is the selling entity owned by exactly one store-admin user.
// The one-store-per-user invariant is backed by a unique constraint on
// UserID at the storage layer.
type Store struct {
	ID          uuid.UUID
	UserID      uuid.UUID // Owning user; unique.
	Name        string
	Description string
	LogoKey     string
	CoverKey    string
	CategoryID  *uuid.UUID // Optional reference to a store-kind Category.

	IDCardNumber   string
	IDCardImageKey string

	Status      ModerationStatus // pending -> live | rejected
	IsBlocked   bool
	IsSuspended bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Factory is the manufacturing entity owned by exactly one factory-admin
// user. Mirrors Store but carries license info instead of id-card info and
// uses "approved" rather than "live" as its positive status.
type Factory struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	LogoKey     string
	CoverKey    string
	CategoryID  *uuid.UUID

	LicenseNumber   string
	LicenseImageKey string

	Status      ModerationStatus // pending -> approved | rejected
	IsBlocked   bool
	IsSuspended bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
