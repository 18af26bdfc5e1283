package repository_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/nutritrack/nutritrack/internal/database"
	"github.com/nutritrack/nutritrack/internal/models"
	"github.com/nutritrack/nutritrack/internal/repository"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

var dbSeq atomic.Int64

// newTestDB opens a fresh in-memory database with the schema applied.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func seedUser(t *testing.T, users repository.Users, username, email string) *models.User {
	t.Helper()

	user, err := users.Create(context.Background(), &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test User",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	return user
}
