package user

import (
	"database/sql"

	"github.com/google/wire"
)

func ProvideProvider(db *sql.DB) Provider {
	return NewUserPostgresStorage(db)
}

var Set = wire.NewSet(ProvideProvider)
