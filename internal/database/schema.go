package database

import (
	"context"
	"fmt"
	"log/slog"
)

// favorites.userId intentionally carries no foreign key to users.id;
// the original schema had none and favorites survive it.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	username     TEXT NOT NULL UNIQUE,
	passwordHash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS favorites (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	userId     INTEGER NOT NULL,
	recipeId   TEXT NOT NULL,
	recipeName TEXT NOT NULL
);
`

// EnsureSchema creates the users and favorites tables when missing.
// The statements are idempotent, so it is safe to run on every start.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if db == nil || db.Conn == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	if _, err := db.Conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	slog.Info("database schema ensured")
	return nil
}
