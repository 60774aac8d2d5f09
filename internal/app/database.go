package app

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// NewDB opens the configured database using sensible defaults. It returns nil
// when no database is configured.
func NewDB(cfg Config) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, nil
	}

	switch cfg.Driver {
	case DriverMySQL:
		db, err := sql.Open(DriverMySQL, cfg.DSN)
		if err != nil {
			return nil, err
		}
		db.SetConnMaxLifetime(1 * time.Hour)
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		return db, nil
	case DriverSQLite:
		db, err := sql.Open(DriverSQLite, cfg.DSN)
		if err != nil {
			return nil, err
		}
		// one writer at a time
		db.SetMaxOpenConns(1)
		return db, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}
