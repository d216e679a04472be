package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("missing field")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("gone")))
	assert.Equal(t, KindUnauthorized, KindOf(ErrUnauthorized))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("Client not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Client not found", MessageOf(err))
}

func TestMessageOfUnclassified(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, "connection refused", MessageOf(err))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("23505")
	err := Wrap(KindConflict, "A client with this email already exists", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "23505")
	assert.Equal(t, "A client with this email already exists", MessageOf(err))
}
