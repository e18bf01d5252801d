package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"slot-swapper-api/internal/store"
)

func TestErrorIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("respond: %w", New(InvalidState, "request already ACCEPTED"))

	assert.True(t, errors.Is(err, New(InvalidState, "")))
	assert.False(t, errors.Is(err, New(NotFound, "")))
	assert.Equal(t, InvalidState, CodeOf(err))
	assert.True(t, HasCode(err, InvalidState))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("boom")))
	assert.False(t, HasCode(nil, NotFound))
}

func TestErrorString(t *testing.T) {
	err := Newf(Forbidden, "event %s is not yours", "e1")
	assert.Equal(t, "FORBIDDEN: event e1 is not yours", err.Error())
}

func TestFromStore(t *testing.T) {
	assert.NoError(t, FromStore(nil, "x"))

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"not found", fmt.Errorf("lookup: %w", store.ErrNotFound), NotFound},
		{"duplicate", fmt.Errorf("%w: users_email_key", store.ErrDuplicate), Conflict},
		{"retryable", fmt.Errorf("commit: %w", store.ErrRetryable), Transient},
		{"unknown", errors.New("connection reset"), Transient},
		{"passthrough", New(InvalidState, "pending"), InvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(FromStore(tt.err, "event not found")))
		})
	}
}
