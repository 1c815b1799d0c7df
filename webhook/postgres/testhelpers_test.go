//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultDatabase = "telehook_test"
	defaultUser     = "testuser"
	defaultPassword = "testpass"
)

// PostgresContainer bundles the container and its connection
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *sql.DB
	ConnStr   string
}

// SetupPostgresContainer starts a real PostgreSQL container for the test
func SetupPostgresContainer(t *testing.T, ctx context.Context) (*PostgresContainer, func()) {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(defaultDatabase),
		postgres.WithUsername(defaultUser),
		postgres.WithPassword(defaultPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, db.PingContext(ctx))

	container := &PostgresContainer{
		Container: pgContainer,
		DB:        db,
		ConnStr:   connStr,
	}

	cleanup := func() {
		if db != nil {
			_ = db.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return container, cleanup
}

// CreateTestRepository opens a repository against the container
func CreateTestRepository(t *testing.T, connStr string) *Repository {
	t.Helper()

	repo, err := NewRepository(connStr)
	require.NoError(t, err)

	return repo
}

// PopulateSampleConfig inserts one bot, one webhook and the settings row
func PopulateSampleConfig(t *testing.T, ctx context.Context, db *sql.DB) {
	t.Helper()

	_, err := db.ExecContext(ctx,
		`INSERT INTO bots (name, token, chat_id) VALUES ($1, $2, $3)`,
		"notifier", "123:abc", "-100200")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO webhooks (public_id, name, bot_id, message_template, parse_mode, is_protected, secret_key)
		 VALUES ($1, $2, 1, $3, 2, TRUE, $4)`,
		"pub-7", "deploys", "Value: {{x}}", "tgh_secret")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (id, notifications_enabled, bot_token, chat_id)
		 VALUES (1, TRUE, $1, $2)`,
		"999:alert", "-100999")
	require.NoError(t, err)
}

// AssertLogCount checks the number of audit rows in the database
func AssertLogCount(t *testing.T, ctx context.Context, db *sql.DB, expected int) {
	t.Helper()

	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM webhook_logs").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expected, count)
}
