package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Caelestis94/telehook/webhook"
	_ "github.com/lib/pq" // PostgreSQL driver
)

/* PostgreSQL-backed configuration and audit store.
 *
 * Uses $1, $2 placeholders and RETURNING for generated ids. Request headers
 * are persisted as a JSONB column; processing time is stored in
 * milliseconds so the audit table stays portable across backends.
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository opens a PostgreSQL store with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig opens a PostgreSQL store with a custom pool.
// maxOpenConns 0 means unlimited; maxLifeMinutes bounds connection reuse.
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{DB: db}, nil
}

// GetWebhookByPublicID resolves the endpoint configuration for a trigger URL
func (r *Repository) GetWebhookByPublicID(ctx context.Context, publicID string) (webhook.Webhook, error) {
	query := `
		SELECT id, public_id, name, bot_id, message_template, parse_mode,
		       disable_web_page_preview, disable_notification, message_thread_id,
		       is_protected, secret_key, is_disabled, payload_sample,
		       created_at, updated_at
		FROM webhooks WHERE public_id = $1
	`

	var wh webhook.Webhook
	var threadID sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, publicID).Scan(
		&wh.ID,
		&wh.PublicID,
		&wh.Name,
		&wh.BotID,
		&wh.MessageTemplate,
		&wh.ParseMode,
		&wh.DisableWebPagePreview,
		&wh.DisableNotification,
		&threadID,
		&wh.IsProtected,
		&wh.SecretKey,
		&wh.IsDisabled,
		&wh.PayloadSample,
		&wh.CreatedAt,
		&wh.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return webhook.Webhook{}, webhook.ErrNotFound
	}
	if err != nil {
		return webhook.Webhook{}, fmt.Errorf("selecting webhook: %w", err)
	}

	if threadID.Valid {
		wh.MessageThreadID = &threadID.Int64
	}
	return wh, nil
}

// GetBot resolves the credential and target chat referenced by a webhook
func (r *Repository) GetBot(ctx context.Context, id int64) (webhook.Bot, error) {
	query := "SELECT id, name, token, chat_id, created_at FROM bots WHERE id = $1"

	var b webhook.Bot
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.Name,
		&b.Token,
		&b.ChatID,
		&b.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return webhook.Bot{}, webhook.ErrNotFound
	}
	if err != nil {
		return webhook.Bot{}, fmt.Errorf("selecting bot: %w", err)
	}

	return b, nil
}

// GetSettings reads the single-row operator notification configuration.
// A missing row means notifications were never configured and is not an
// error: the zero value disables them.
func (r *Repository) GetSettings(ctx context.Context) (webhook.Settings, error) {
	query := `
		SELECT notifications_enabled, bot_token, chat_id, message_thread_id
		FROM settings WHERE id = 1
	`

	var s webhook.Settings
	var threadID sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&s.NotificationsEnabled,
		&s.BotToken,
		&s.ChatID,
		&threadID,
	)

	if err == sql.ErrNoRows {
		return webhook.Settings{}, nil
	}
	if err != nil {
		return webhook.Settings{}, fmt.Errorf("selecting settings: %w", err)
	}

	if threadID.Valid {
		s.MessageThreadID = &threadID.Int64
	}
	return s, nil
}

// AppendLog inserts one audit record. Rows are append-only.
func (r *Repository) AppendLog(ctx context.Context, log webhook.Log) error {
	headers, err := json.Marshal(log.RequestHeaders)
	if err != nil {
		return fmt.Errorf("encoding request headers: %w", err)
	}

	query := `
		INSERT INTO webhook_logs (
			id, webhook_id, request_method, request_url, request_headers,
			request_body, response_status_code, message_text, render_error,
			telegram_sent, telegram_response, processing_time_ms, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.DB.ExecContext(ctx, query,
		log.ID,
		log.WebhookID,
		log.RequestMethod,
		log.RequestURL,
		string(headers),
		log.RequestBody,
		log.ResponseStatusCode,
		log.MessageText,
		log.RenderError,
		log.TelegramSent,
		log.TelegramResponse,
		log.ProcessingTime.Milliseconds(),
		log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting webhook log: %w", err)
	}

	return nil
}

// Close releases the connection pool
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTables creates the schema (useful for tests and first boot)
func (r *Repository) CreateTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS bots (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			token TEXT NOT NULL,
			chat_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS webhooks (
			id SERIAL PRIMARY KEY,
			public_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			bot_id INTEGER NOT NULL REFERENCES bots(id),
			message_template TEXT NOT NULL,
			parse_mode INTEGER NOT NULL,
			disable_web_page_preview BOOLEAN NOT NULL DEFAULT FALSE,
			disable_notification BOOLEAN NOT NULL DEFAULT FALSE,
			message_thread_id BIGINT,
			is_protected BOOLEAN NOT NULL DEFAULT FALSE,
			secret_key TEXT NOT NULL DEFAULT '',
			is_disabled BOOLEAN NOT NULL DEFAULT FALSE,
			payload_sample TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			notifications_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			bot_token TEXT NOT NULL DEFAULT '',
			chat_id TEXT NOT NULL DEFAULT '',
			message_thread_id BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS webhook_logs (
			id UUID PRIMARY KEY,
			webhook_id INTEGER NOT NULL REFERENCES webhooks(id),
			request_method TEXT NOT NULL,
			request_url TEXT NOT NULL,
			request_headers JSONB NOT NULL DEFAULT '{}',
			request_body TEXT NOT NULL DEFAULT '',
			response_status_code INTEGER NOT NULL,
			message_text TEXT NOT NULL DEFAULT '',
			render_error TEXT NOT NULL DEFAULT '',
			telegram_sent BOOLEAN NOT NULL,
			telegram_response TEXT NOT NULL DEFAULT '',
			processing_time_ms BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := r.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}

	return nil
}

// DropTables removes the schema (useful for tests)
func (r *Repository) DropTables(ctx context.Context) error {
	query := "DROP TABLE IF EXISTS webhook_logs, webhooks, settings, bots CASCADE"

	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("dropping tables: %w", err)
	}

	return nil
}
