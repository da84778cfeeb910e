package validator

import (
	"testing"

	domainerrors "bazar/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Email  string `validate:"required,email"`
	Rating int    `validate:"min=1,max=5"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sampleInput{Email: "a@example.com", Rating: 3}))

	err := v.Validate(&sampleInput{Email: "not-an-email", Rating: 9})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
