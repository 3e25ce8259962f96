package services

import (
	"context"
	"time"

	"github.com/prathm201999/auth-service/internal/common"
	"github.com/prathm201999/auth-service/internal/server/models"
)

// fakeLedger is an in-memory refreshtokens.Repository with injectable
// failures.
type fakeLedger struct {
	rows map[string]*models.RefreshToken

	createErr error
	findErr   error
	revokeErr error
	listErr   error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: make(map[string]*models.RefreshToken)}
}

func (f *fakeLedger) Create(ctx context.Context, userEmail string, token string, expiresAt time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.rows[token]; ok {
		return common.ErrConflict
	}
	f.rows[token] = &models.RefreshToken{
		ID:        token,
		UserEmail: userEmail,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeLedger) FindActive(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	row, ok := f.rows[token]
	if !ok || row.Revoked {
		return nil, common.ErrNotFound
	}
	return row, nil
}

func (f *fakeLedger) Revoke(ctx context.Context, token string) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	if row, ok := f.rows[token]; ok {
		row.Revoked = true
	}
	return nil
}

func (f *fakeLedger) ListForUser(ctx context.Context, userEmail string) ([]*models.RefreshToken, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.RefreshToken
	for _, row := range f.rows {
		if row.UserEmail == userEmail {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeUsersRepo is an in-memory users.Repository with injectable failures.
type fakeUsersRepo struct {
	byEmail map[string]*models.User

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: make(map[string]*models.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrConflict
	}
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}
