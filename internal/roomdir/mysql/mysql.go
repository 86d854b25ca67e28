package mysql

import (
	"database/sql"

	"go.uber.org/zap"
)

// Directory reads the membership/token tables from a self-hosted MySQL
// deployment instead of Supabase.
type Directory struct {
	db  *sql.DB
	log *zap.Logger
}

func New(db *sql.DB, logger *zap.Logger) *Directory {
	return &Directory{db: db, log: logger}
}
