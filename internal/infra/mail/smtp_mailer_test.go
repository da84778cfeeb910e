package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The emailed links must match the mounted verification routes,
// GET /api/v1/auth/verify/:token and GET /api/v1/admin/verify/:token.
func TestVerificationLinks(t *testing.T) {
	base := "https://bazar.example.com"

	assert.Equal(t,
		"https://bazar.example.com/api/v1/auth/verify/abc123",
		verificationLink(base, "abc123"),
	)
	assert.Equal(t,
		"https://bazar.example.com/api/v1/admin/verify/abc123",
		adminVerificationLink(base, "abc123"),
	)
}
