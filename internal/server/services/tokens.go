// Package services implements the token lifecycle core: minting and
// verifying bearer credentials, and the session facade that orchestrates
// login, refresh, revoke, and identity lookup.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prathm201999/auth-service/internal/common"
	"github.com/prathm201999/auth-service/internal/server/auth"
	"github.com/prathm201999/auth-service/internal/server/config"
	"github.com/prathm201999/auth-service/internal/server/repositories/refreshtokens"
)

// TokenPair is what a successful login hands to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService mints and verifies signed tokens. The signing key, algorithm
// and lifetimes are copied from the immutable Config at construction and
// shared read-only across concurrent requests.
//
// Access tokens are stateless: verification is signature + expiry only.
// Refresh tokens are additionally recorded in the ledger, which is the
// authority that can revoke them before their signed expiry.
type TokenService struct {
	ledger     refreshtokens.Repository
	secretKey  []byte
	algorithm  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(ledger refreshtokens.Repository, cfg *config.Config) *TokenService {
	return &TokenService{
		ledger:     ledger,
		secretKey:  []byte(cfg.SecretKey),
		algorithm:  cfg.Algorithm,
		accessTTL:  cfg.AccessTokenValidityDuration,
		refreshTTL: cfg.RefreshTokenValidityDuration,
	}
}

// IssueAccessToken mints a signed access token for the subject. Pure
// function of the inputs and signing key; no I/O.
func (s *TokenService) IssueAccessToken(subject string) (string, error) {
	token, err := auth.SignToken(auth.NewAccessClaims(subject, s.accessTTL), s.secretKey, s.algorithm)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return token, nil
}

// IssueRefreshToken mints a signed refresh token and records it in the
// ledger before returning. Signing and persistence are one logical unit:
// if the ledger write fails, no token is handed out.
func (s *TokenService) IssueRefreshToken(ctx context.Context, subject string) (string, error) {
	claims, err := auth.NewRefreshClaims(subject, s.refreshTTL)
	if err != nil {
		return "", err
	}

	token, err := auth.SignToken(claims, s.secretKey, s.algorithm)
	if err != nil {
		return "", fmt.Errorf("signing refresh token: %w", err)
	}

	if err := s.ledger.Create(ctx, subject, token, claims.ExpiresAt.Time); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return "", common.ErrConflict
		}
		return "", fmt.Errorf("recording refresh token: %w", common.ErrUnavailable)
	}

	return token, nil
}

// VerifyAccessToken checks signature, algorithm and expiry, and returns the
// subject. It never consults the ledger or the user store: an access token
// stays valid until it expires, even if its owner was deleted or the
// owning refresh token was revoked.
//
// All verification failures collapse to common.ErrUnauthorized.
func (s *TokenService) VerifyAccessToken(tokenString string) (string, error) {
	claims, err := auth.ParseToken(tokenString, s.secretKey, s.algorithm)
	if err != nil {
		return "", common.ErrUnauthorized
	}
	return claims.Subject, nil
}

// VerifyRefreshToken checks signature, algorithm and the claim's expiry,
// then requires a live ledger row whose stored expiry has not passed. The
// row is the authority that can be revoked early; the signed expiry is a
// hard ceiling that holds even if the row were tampered with.
//
// Verification failures collapse to common.ErrUnauthorized. A ledger that
// cannot be reached surfaces as common.ErrUnavailable — "could not check
// revocation" is never reported as "not revoked".
func (s *TokenService) VerifyRefreshToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := auth.ParseToken(tokenString, s.secretKey, s.algorithm)
	if err != nil {
		return "", common.ErrUnauthorized
	}

	row, err := s.ledger.FindActive(ctx, tokenString)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", fmt.Errorf("checking refresh token: %w", common.ErrUnavailable)
	}

	if row.ExpiresAt.Before(time.Now()) {
		return "", common.ErrUnauthorized
	}

	return claims.Subject, nil
}
