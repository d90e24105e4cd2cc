// Package repomanager vends repository implementations over a shared DBTX
// seam and owns schema migration.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/chirpy/internal/dbx"
	"github.com/dmitrijs2005/chirpy/internal/server/repositories/chirps"
	"github.com/dmitrijs2005/chirpy/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/chirpy/internal/server/repositories/users"
)

// RepositoryManager binds each repository to a DBTX, letting services use
// the same repository code inside and outside transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Chirps(db dbx.DBTX) chirps.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
