package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks access token signatures and expiry.
type Verifier struct {
	secret []byte
	leeway time.Duration
	now    func() time.Time
}

// NewVerifier fails with common.ErrInvalidConfig for an empty secret or a
// negative leeway.
func NewVerifier(secret []byte, opts ...Option) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: signing secret is empty", common.ErrInvalidConfig)
	}

	o := buildOptions(opts)
	if o.leeway < 0 {
		return nil, fmt.Errorf("%w: clock skew must not be negative, got %s", common.ErrInvalidConfig, o.leeway)
	}

	return &Verifier{
		secret: append([]byte(nil), secret...),
		leeway: o.leeway,
		now:    o.now,
	}, nil
}

// Verify parses token and returns its claims. Errors wrap one of
// common.ErrMalformedToken, common.ErrInvalidSignature or common.ErrTokenExpired.
// The signature is checked before expiry.
func (v *Verifier) Verify(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty token", common.ErrMalformedToken)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrMalformedToken)
	}
	if claims.IssuedAt != nil && !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return nil, fmt.Errorf("%w: expiry is not after issue time", common.ErrMalformedToken)
	}

	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", common.ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", common.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
}
