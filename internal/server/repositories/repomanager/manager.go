// Package repomanager wires the database connection to the repositories and
// runs schema migrations at startup.
package repomanager

import (
	"context"

	"github.com/prathm201999/auth-service/internal/server/repositories/refreshtokens"
	"github.com/prathm201999/auth-service/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Close() error
}
