// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an ordinary principal: a buyer, store owner, or factory owner.
// It carries credential state (password hash, refresh token) and the
// single-use token fields used by the email verification and password
// reset flows. Only the SHA-256 hash of a single-use token is persisted;
// the cleartext exists solely inside the emailed link.
type User struct {
	ID              uuid.UUID
	Name            string
	Email           string // Unique login identifier.
	PasswordHash    string
	Role            Role
	Address         string
	Phone           string
	ProfileImageKey string // Object-storage key, never a raw URL.
	IsVerified      bool   // Unverified users cannot authenticate.
	IsActive        bool

	VerificationTokenHash   string
	VerificationTokenExpiry *time.Time
	ResetTokenHash          string
	ResetTokenExpiry        *time.Time
	RefreshToken            string // Current session's refresh credential, empty when logged out.

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdminUser is an administrative principal, kept in its own collection
// with the same verification gate as User.
type AdminUser struct {
	ID              uuid.UUID
	Name            string
	Email           string
	PasswordHash    string
	Role            AdminRole
	Address         string
	Phone           string
	ProfileImageKey string
	IsVerified      bool

	VerificationTokenHash   string
	VerificationTokenExpiry *time.Time
	ResetTokenHash          string
	ResetTokenExpiry        *time.Time
	RefreshToken            string

	CreatedAt time.Time
	UpdatedAt time.Time
}
