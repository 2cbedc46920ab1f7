package repomanager

import (
	"context"
	"database/sql"

	"github.com/psemenov/passvault/internal/dbx"
	"github.com/psemenov/passvault/internal/server/repositories/categories"
	"github.com/psemenov/passvault/internal/server/repositories/items"
	"github.com/psemenov/passvault/internal/server/repositories/sharings"
	"github.com/psemenov/passvault/internal/server/repositories/users"
	"github.com/psemenov/passvault/internal/server/repositories/vaults"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can use
// the same repository code against either the pooled connection or an open
// transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Vaults(db dbx.DBTX) vaults.Repository
	Categories(db dbx.DBTX) categories.Repository
	Items(db dbx.DBTX) items.Repository
	Sharings(db dbx.DBTX) sharings.Repository
}
