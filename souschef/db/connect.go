// Package db opens the embedded libsql recipe database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "github.com/tursodatabase/go-libsql"
)

// Connect opens (and if necessary creates) the embedded database file.
func Connect(path string, logger zerolog.Logger) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info().Str("path", path).Msg("database not found, creating a new one")
		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create database at %s: %w", path, err)
		}
		file.Close()
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=1&_journal_mode=WAL&_synchronous=NORMAL", path)
	conn, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open libsql connection: %w", err)
	}

	var probe int
	if err := conn.QueryRowContext(context.Background(), "SELECT 1").Scan(&probe); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connectivity check: %w", err)
	}

	return conn, nil
}

// EnsureSchema creates the recipes table and its ranking index when they
// do not exist yet. This is bootstrap only, not a migration system.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	ingredients TEXT NOT NULL DEFAULT '',
	instructions TEXT NOT NULL DEFAULT '',
	author_name TEXT NOT NULL DEFAULT '',
	likes_count INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_recipes_likes ON recipes (likes_count DESC);
`
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
