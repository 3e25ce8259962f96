package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/prathm201999/auth-service/internal/common"
	"github.com/prathm201999/auth-service/internal/server/auth"
	"github.com/prathm201999/auth-service/internal/server/models"
	"github.com/prathm201999/auth-service/internal/server/repositories/refreshtokens"
	"github.com/prathm201999/auth-service/internal/server/repositories/users"
)

// AuthService is the session facade exposed to the transport layer. Its
// four token operations (Login, Refresh, Revoke, WhoAmI) plus SignUp and
// Sessions take and return plain data only.
type AuthService struct {
	users  users.Repository
	ledger refreshtokens.Repository
	tokens *TokenService
}

func NewAuthService(userRepo users.Repository, ledger refreshtokens.Repository, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  userRepo,
		ledger: ledger,
		tokens: tokens,
	}
}

// SignUp validates the email and password policy, then creates the user.
// The lookup before Create is advisory only: two near-simultaneous signups
// race past it, and the unique index on email is what actually rejects the
// second insert, surfaced as common.ErrConflict.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if err := auth.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrConflict
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", common.ErrUnavailable)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("creating user: %w", common.ErrUnavailable)
	}

	return user, nil
}

// authenticate composes lookup and password verification. The caller
// cannot distinguish a missing user from a wrong password.
func (s *AuthService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("looking up user: %w", common.ErrUnavailable)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

// Login verifies the credentials and mints one access token and one
// refresh token. The refresh token is live in the ledger before this
// returns.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(user.Email)
	if err != nil {
		return nil, common.ErrInternal
	}

	refreshToken, err := s.tokens.IssueRefreshToken(ctx, user.Email)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) || errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, common.ErrInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a live refresh token for a new access token. The
// presented refresh token is returned unchanged: there is no rotation, so
// its lifetime is bounded only by its TTL and explicit revocation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	subject, err := s.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(subject)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Revoke marks the refresh token revoked. Revoking an unknown or
// already-revoked token is not an error; already-issued access tokens
// remain valid until they expire.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) error {
	if err := s.ledger.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("revoking token: %w", common.ErrUnavailable)
	}
	return nil
}

// WhoAmI resolves an access token to the user it was issued for. A valid
// token whose subject no longer exists collapses to ErrUnauthorized; user
// existence is never leaked through this path.
func (s *AuthService) WhoAmI(ctx context.Context, accessToken string) (*models.User, error) {
	subject, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("looking up user: %w", common.ErrUnavailable)
	}

	return user, nil
}

// Sessions lists every ledger row ever recorded for the token's subject,
// revoked and expired ones included. The user record itself carries no
// token collection; the ledger is queried by email instead.
func (s *AuthService) Sessions(ctx context.Context, accessToken string) ([]*models.RefreshToken, error) {
	subject, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	sessions, err := s.ledger.ListForUser(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", common.ErrUnavailable)
	}

	return sessions, nil
}
