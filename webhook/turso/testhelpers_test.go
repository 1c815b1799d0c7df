//go:build integration

package turso

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/glebarez/go-sqlite"
	"github.com/stretchr/testify/require"
)

// SetupLocalSQLite opens an in-memory database sharing the libsql dialect
func SetupLocalSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)

	return db
}

// CreateTestSchema creates the full schema on the given handle
func CreateTestSchema(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()

	repo := &Repository{}
	repo.SetDB(db)
	require.NoError(t, repo.CreateTables(ctx))
}
