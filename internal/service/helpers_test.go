package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go-recipe-box/internal/database"
	"go-recipe-box/internal/repository"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

func newTestAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()

	db := newTestDB(t)
	users := repository.NewUserRepository(db.Conn)

	svc, err := NewAuthService("test-secret", 0, users)
	require.NoError(t, err)
	return svc, users
}
