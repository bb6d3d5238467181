package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer creates signed, time-bounded access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer validates the signing secret and the default TTL and fails with
// common.ErrInvalidConfig when either is unusable. The secret is copied.
func NewIssuer(secret []byte, ttl time.Duration, opts ...Option) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: signing secret is empty", common.ErrInvalidConfig)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: token ttl must be positive, got %s", common.ErrInvalidConfig, ttl)
	}

	o := buildOptions(opts)
	return &Issuer{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    o.now,
	}, nil
}

// IssueAccessToken issues a token for subject with the default TTL.
func (i *Issuer) IssueAccessToken(subject string) (string, error) {
	return i.Issue(subject, i.ttl)
}

// Issue signs a token for subject valid for ttl. JWT timestamps have second
// precision, so ttl is rounded up to whole seconds to keep exp after iat.
func (i *Issuer) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", fmt.Errorf("%w: token ttl must be positive, got %s", common.ErrInvalidConfig, ttl)
	}
	if subject == "" {
		return "", fmt.Errorf("%w: token subject is empty", common.ErrInvalidInput)
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(roundUpToSecond(ttl))),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func roundUpToSecond(d time.Duration) time.Duration {
	if rem := d % time.Second; rem != 0 {
		d += time.Second - rem
	}
	return d
}
