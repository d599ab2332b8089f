package repomanager

import (
	"context"
	"database/sql"

	"github.com/imorozov/carbook/internal/dbx"
	"github.com/imorozov/carbook/internal/server/repositories/bookings"
	"github.com/imorozov/carbook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Bookings(db dbx.DBTX) bookings.Repository
}
