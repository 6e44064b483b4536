package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/roomboard/internal/dbx"
	"github.com/dmitrijs2005/roomboard/internal/repositories/assignments"
	"github.com/dmitrijs2005/roomboard/internal/repositories/groups"
	"github.com/dmitrijs2005/roomboard/internal/repositories/images"
	"github.com/dmitrijs2005/roomboard/internal/repositories/tasks"
	"github.com/dmitrijs2005/roomboard/internal/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Groups(db dbx.DBTX) groups.Repository
	Users(db dbx.DBTX) users.Repository
	Images(db dbx.DBTX) images.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Assignments(db dbx.DBTX) assignments.Repository
}
