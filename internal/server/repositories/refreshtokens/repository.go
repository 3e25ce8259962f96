// Package refreshtokens declares the refresh-token ledger contract and its
// Postgres implementation. The ledger is the authority on token validity:
// the signed string carries its own claims, but only the ledger can say a
// token was revoked.
package refreshtokens

import (
	"context"
	"time"

	"github.com/prathm201999/auth-service/internal/server/models"
)

// Repository defines operations for recording, looking up, and revoking
// refresh tokens.
type Repository interface {
	// Create inserts a ledger row for a newly issued token with revoked=false.
	// It returns common.ErrConflict on a token-string collision. With random
	// nonces in the claims that is practically unreachable, but it is still
	// surfaced rather than swallowed.
	Create(ctx context.Context, userEmail string, token string, expiresAt time.Time) error

	// FindActive returns the row for token only if it exists and has not
	// been revoked; otherwise common.ErrNotFound. Expiry is not checked
	// here — the ledger stores the expiry value, the caller owns "now".
	FindActive(ctx context.Context, token string) (*models.RefreshToken, error)

	// Revoke flips the revoked flag for token. It is idempotent and
	// succeeds silently when the token string is unknown: revoke is always
	// safe to call.
	Revoke(ctx context.Context, token string) error

	// ListForUser returns every ledger row recorded for the user's email,
	// including revoked and expired ones. Rows are never physically
	// deleted, so this is the audit view of a user's sessions.
	ListForUser(ctx context.Context, userEmail string) ([]*models.RefreshToken, error)
}
