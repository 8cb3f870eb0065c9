package database

import (
	"database/sql"
	"fmt"

	"github.com/menucat/menu-service/internal/config"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Connect opens the PostgreSQL connection pool and verifies it with a ping.
func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}
