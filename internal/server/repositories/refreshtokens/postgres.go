package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prathm201999/auth-service/internal/common"
	"github.com/prathm201999/auth-service/internal/dbx"
	"github.com/prathm201999/auth-service/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userEmail string, token string, expiresAt time.Time) error {

	query :=
		`INSERT INTO refresh_tokens (user_email, token, expires_at)
         VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, userEmail, token, expiresAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindActive(ctx context.Context, token string) (*models.RefreshToken, error) {
	query :=
		`SELECT id, user_email, token, expires_at, revoked, created_at FROM refresh_tokens
		 WHERE token = $1 AND revoked = false
		 `

	row := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&row.ID, &row.UserEmail, &row.Token, &row.ExpiresAt, &row.Revoked, &row.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return row, nil
}

func (r *PostgresRepository) Revoke(ctx context.Context, token string) error {
	query :=
		`UPDATE refresh_tokens SET revoked = true
		 WHERE token = $1
		 `

	// zero affected rows is fine: revoking an unknown token is a no-op
	_, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userEmail string) ([]*models.RefreshToken, error) {
	query :=
		`SELECT id, user_email, token, expires_at, revoked, created_at FROM refresh_tokens
		 WHERE user_email = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userEmail)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var tokens []*models.RefreshToken
	for rows.Next() {
		row := &models.RefreshToken{}
		if err := rows.Scan(&row.ID, &row.UserEmail, &row.Token, &row.ExpiresAt, &row.Revoked, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tokens = append(tokens, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tokens, nil
}
