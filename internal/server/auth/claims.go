// Package auth implements authentication for the todo API: password hashing,
// access token issuance and verification, identity resolution and the
// request guard with its ownership check.
//
// Access tokens are HS256 JWTs signed with one process-wide secret. Rotating
// the secret invalidates every outstanding token.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an access token. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
}
