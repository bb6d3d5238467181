package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/logging"
)

// Rejection is an authentication failure. Its message is the same for every
// cause; Reason keeps the precise cause for logs. Rejection matches
// common.ErrRejected but does not unwrap to Reason.
type Rejection struct {
	Reason error
}

func (r *Rejection) Error() string {
	return common.ErrRejected.Error()
}

func (r *Rejection) Is(target error) bool {
	return target == common.ErrRejected
}

// TokenVerifier checks a raw token.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// IdentityResolver maps claims to a live identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, claims *Claims) (*Identity, error)
}

// Guard authenticates requests from their Authorization header.
type Guard struct {
	verifier TokenVerifier
	resolver IdentityResolver
	logger   logging.Logger
}

func NewGuard(verifier TokenVerifier, resolver IdentityResolver, logger logging.Logger) *Guard {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Guard{
		verifier: verifier,
		resolver: resolver,
		logger:   logger.With("module", "guard"),
	}
}

// Authenticate runs the bearer token in authorization through the verifier
// and the resolver. Authentication failures come back as *Rejection; any
// other error, such as a failed user lookup, is returned as is.
func (g *Guard) Authenticate(ctx context.Context, authorization string) (*Identity, error) {
	token, err := BearerToken(authorization)
	if err != nil {
		return nil, g.reject(ctx, err)
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, g.reject(ctx, err)
	}

	identity, err := g.resolver.Resolve(ctx, claims)
	if err != nil {
		if common.IsAuthenticationFailure(err) {
			return nil, g.reject(ctx, err)
		}
		g.logger.Error(ctx, "identity lookup failed", "subject", claims.Subject, "error", err)
		return nil, err
	}

	g.logger.Debug(ctx, "request authenticated", "user_id", identity.UserID)
	return identity, nil
}

func (g *Guard) reject(ctx context.Context, reason error) error {
	g.logger.Warn(ctx, "request rejected", "reason", reason.Error())
	return &Rejection{Reason: reason}
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func BearerToken(authorization string) (string, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return "", common.ErrMissingToken
	}

	scheme, token, ok := strings.Cut(authorization, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", fmt.Errorf("%w: expected %s scheme", common.ErrMalformedToken, common.BearerScheme)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: empty bearer token", common.ErrMalformedToken)
	}
	return token, nil
}

// CheckOwnership returns common.ErrForbidden unless identity owns the
// resource. A nil identity is a rejection, not a forbidden access.
func CheckOwnership(identity *Identity, ownerID string) error {
	if identity == nil {
		return &Rejection{Reason: common.ErrMissingToken}
	}
	if identity.UserID != ownerID {
		return fmt.Errorf("%w: resource belongs to another user", common.ErrForbidden)
	}
	return nil
}

// RejectionReason returns the precise cause behind a rejection, or nil when
// err is not one.
func RejectionReason(err error) error {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason
	}
	return nil
}
