package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthenticationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing", ErrMissingToken, true},
		{"malformed", ErrMalformedToken, true},
		{"signature", ErrInvalidSignature, true},
		{"expired wrapped", fmt.Errorf("verify: %w", ErrTokenExpired), true},
		{"unknown subject", ErrUnknownSubject, true},
		{"forbidden", ErrForbidden, false},
		{"credentials", ErrInvalidCredentials, false},
		{"other", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAuthenticationFailure(tt.err))
		})
	}
}
