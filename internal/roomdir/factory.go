package roomdir

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"roompush/internal/config"
	"roompush/internal/roomdir/memory"
	"roompush/internal/roomdir/mysql"
	"roompush/internal/roomdir/supabase"
)

// NewDirectory picks the backing store from configuration: Supabase when a
// project URL is set, MySQL when a DSN is set, otherwise an empty in-memory
// directory.
func NewDirectory(cfg *config.Config, logger *zap.Logger) (Directory, error) {
	if cfg.SupabaseURL != "" {
		return supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceKey, logger), nil
	}
	if cfg.MySQLDSN != "" {
		sqlDB, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			logger.Error("mysql open failed", zap.Error(err))
			return nil, err
		}
		if err := sqlDB.Ping(); err != nil {
			logger.Error("mysql ping failed", zap.Error(err))
			return nil, err
		}
		return mysql.New(sqlDB, logger), nil
	}
	logger.Warn("no membership store configured, using empty in-memory directory")
	return memory.New(logger), nil
}
