package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	tests := []struct {
		name        string
		userMessage string
		err         error
		expected    string
	}{
		{
			name:        "with wrapped error",
			userMessage: "unknown venue",
			err:         ErrInvalidVenue,
			expected:    "unknown venue: invalid venue",
		},
		{
			name:        "without wrapped error",
			userMessage: "something went wrong",
			err:         nil,
			expected:    "something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUserError(tt.userMessage, tt.err)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestUserErrorUnwrap(t *testing.T) {
	err := NewUserError("race number must be between 1 and 12", ErrInvalidRaceNumber)

	assert.ErrorIs(t, err, ErrInvalidRaceNumber)

	wrapped := fmt.Errorf("validating input: %w", err)
	var userErr *UserError
	assert.True(t, errors.As(wrapped, &userErr))
	assert.Equal(t, "race number must be between 1 and 12", userErr.UserMessage)
}
