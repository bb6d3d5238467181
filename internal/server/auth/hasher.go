package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// BcryptHasher hashes and verifies passwords with bcrypt. The salt is random
// per call and embedded in the encoded hash.
type BcryptHasher struct {
	cost   int
	logger logging.Logger
}

// NewBcryptHasher returns common.ErrInvalidConfig for a cost outside
// [bcrypt.MinCost, bcrypt.MaxCost]. A nil logger discards output.
func NewBcryptHasher(cost int, logger logging.Logger) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d out of range", common.ErrInvalidConfig, cost)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &BcryptHasher{cost: cost, logger: logger.With("module", "hasher")}, nil
}

// Hash returns the bcrypt encoding of plaintext. Empty input or input longer
// than MaxPasswordBytes fails with common.ErrInvalidInput.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if err := checkPassword(plaintext); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. It never fails: a malformed
// hash is logged and treated as a mismatch. bcrypt compares in constant time.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	if checkPassword(plaintext) != nil {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false
	default:
		h.logger.Error(context.Background(), "stored password hash is unusable", "error", err)
		return false
	}
}

func checkPassword(plaintext string) error {
	if plaintext == "" {
		return fmt.Errorf("%w: password must not be empty", common.ErrInvalidInput)
	}
	if len(plaintext) > MaxPasswordBytes {
		return fmt.Errorf("%w: password longer than %d bytes", common.ErrInvalidInput, MaxPasswordBytes)
	}
	return nil
}
