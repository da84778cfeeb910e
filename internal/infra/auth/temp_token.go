package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"bazar/config"
	"bazar/internal/domain/service"
	"bazar/internal/errors"
)

const tempTokenBytes = 20

// tempTokenService issues the single-use tokens mailed for email
// verification and password reset. The cleartext is 20 random bytes hex
// encoded; only its SHA-256 hash is ever persisted.
type tempTokenService struct {
	ttl time.Duration
}

// NewTempTokenService is the constructor for tempTokenService.
func NewTempTokenService(cfg *config.Config) service.TempTokenService {
	return &tempTokenService{ttl: cfg.Auth.TempTokenTTL}
}

// Generate returns a fresh cleartext token, its hash, and the expiry.
func (s *tempTokenService) Generate() (string, string, time.Time, error) {
	buf := make([]byte, tempTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", time.Time{}, errors.Wrap(err, "read random bytes")
	}

	cleartext := hex.EncodeToString(buf)

	return cleartext, s.HashOf(cleartext), time.Now().Add(s.ttl), nil
}

// HashOf maps a presented cleartext token to its stored hash form.
func (s *tempTokenService) HashOf(cleartext string) string {
	sum := sha256.Sum256([]byte(cleartext))

	return hex.EncodeToString(sum[:])
}
