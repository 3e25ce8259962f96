// Package auth contains the token and password primitives of the service:
// JWT claim construction, signing and parsing, bcrypt password hashing, and
// the signup password policy.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prathm201999/auth-service/internal/common"
)

// nonceSize is the number of random bytes mixed into refresh-token claims.
// The nonce guarantees two tokens minted in the same second for the same
// subject are never byte-identical strings.
const nonceSize = 16

// Claims is the claim set carried by both token kinds. Access tokens use
// only the registered claims (sub, exp, iat); refresh tokens additionally
// carry a per-issuance nonce.
type Claims struct {
	jwt.RegisteredClaims
	Nonce string `json:"nonce,omitempty"`
}

// NewAccessClaims builds the claim set for an access token.
func NewAccessClaims(subject string, ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// NewRefreshClaims builds the claim set for a refresh token, including a
// cryptographically random nonce. It returns an error only if the random
// number generator fails.
func NewRefreshClaims(subject string, ttl time.Duration) (Claims, error) {
	nonce, err := common.MakeRandHexString(nonceSize)
	if err != nil {
		return Claims{}, fmt.Errorf("generating nonce: %w", err)
	}

	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Nonce: nonce,
	}, nil
}

// SignToken signs claims with the given secret and algorithm name.
func SignToken(claims Claims, secretKey []byte, algorithm string) (string, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return "", fmt.Errorf("unknown signing algorithm %q", algorithm)
	}

	tokenString, err := jwt.NewWithClaims(method, claims).SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and registered claims of tokenString.
// Only the configured algorithm is accepted; a token signed with any other
// method fails even if the signature would otherwise check out.
//
// Returns common.ErrTokenExpired for an expired token and
// common.ErrInvalidToken for every other verification failure.
func ParseToken(tokenString string, secretKey []byte, algorithm string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{algorithm}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
