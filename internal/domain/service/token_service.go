package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PrincipalKind distinguishes ordinary user tokens from admin tokens.
type PrincipalKind string

const (
	// KindUser marks tokens issued to buyer/store-admin/factory-admin accounts.
	KindUser PrincipalKind = "user"
	// KindAdmin marks tokens issued to administrative accounts.
	KindAdmin PrincipalKind = "admin"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uuid.UUID     `json:"userId"`
	Email  string        `json:"email,omitempty"`
	Name   string        `json:"name,omitempty"`
	Role   string        `json:"role,omitempty"`
	Kind   PrincipalKind `json:"kind,omitempty"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a short-lived access token carrying
	// identity claims.
	GenerateAccessToken(userID uuid.UUID, email, name, role string, kind PrincipalKind) (string, error)

	// GenerateRefreshToken creates a long-lived refresh token carrying
	// only the subject.
	GenerateRefreshToken(userID uuid.UUID) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// GetAccessTokenDuration returns the configured access token lifetime.
	GetAccessTokenDuration() time.Duration

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}

// TempTokenService issues and hashes the single-use tokens mailed out
// for email verification and password reset. Only the hash is persisted;
// the cleartext exists solely inside the emailed link.
type TempTokenService interface {
	// Generate returns a fresh cleartext token, its hash, and the expiry.
	Generate() (cleartext string, hash string, expiry time.Time, err error)

	// HashOf maps a presented cleartext token to its stored hash form.
	HashOf(cleartext string) string
}
