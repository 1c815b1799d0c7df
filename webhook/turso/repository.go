package turso

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Caelestis94/telehook/webhook"
	"github.com/tursodatabase/go-libsql"
)

/* Turso-backed store using an embedded libsql replica. Reads hit the
 * local replica; writes sync back to the remote on the configured
 * interval. SQLite dialect: ? placeholders and AUTOINCREMENT ids.
 */

type Repository struct {
	DB        *sql.DB
	dir       string
	connector *libsql.Connector
}

const syncInterval = 30 * time.Second

// NewRepository opens an embedded replica of the remote Turso database
func NewRepository(dbName, url, authToken string) (*Repository, error) {
	dir, err := os.MkdirTemp("", "libsql-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbName)

	connector, err := libsql.NewEmbeddedReplicaConnector(dbPath, url,
		libsql.WithAuthToken(authToken),
		libsql.WithSyncInterval(syncInterval),
	)
	if err != nil {
		return nil, fmt.Errorf("creating connector: %w", err)
	}

	return &Repository{
		DB:        sql.OpenDB(connector),
		dir:       dir,
		connector: connector,
	}, nil
}

// SetDB swaps the database handle; used by tests to inject an in-memory db
func (r *Repository) SetDB(db *sql.DB) {
	r.DB = db
}

// GetWebhookByPublicID resolves the endpoint configuration for a trigger URL
func (r *Repository) GetWebhookByPublicID(ctx context.Context, publicID string) (webhook.Webhook, error) {
	query := `
		SELECT id, public_id, name, bot_id, message_template, parse_mode,
		       disable_web_page_preview, disable_notification, message_thread_id,
		       is_protected, secret_key, is_disabled, payload_sample,
		       created_at, updated_at
		FROM webhooks WHERE public_id = ?
	`

	rows, err := r.DB.QueryContext(ctx, query, publicID)
	if err != nil {
		return webhook.Webhook{}, fmt.Errorf("selecting webhook: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var wh webhook.Webhook
		var threadID sql.NullInt64

		if err := rows.Scan(
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
		); err != nil {
			return webhook.Webhook{}, fmt.Errorf("scanning webhook: %w", err)
		}

		if threadID.Valid {
			wh.MessageThreadID = &threadID.Int64
		}
		return wh, nil
	}
	if err := rows.Err(); err != nil {
		return webhook.Webhook{}, fmt.Errorf("iterating webhooks: %w", err)
	}

	return webhook.Webhook{}, webhook.ErrNotFound
}

// GetBot resolves the credential and target chat referenced by a webhook
func (r *Repository) GetBot(ctx context.Context, id int64) (webhook.Bot, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, token, chat_id, created_at FROM bots WHERE id = ?", id)
	if err != nil {
		return webhook.Bot{}, fmt.Errorf("selecting bot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b webhook.Bot
		if err := rows.Scan(&b.ID, &b.Name, &b.Token, &b.ChatID, &b.CreatedAt); err != nil {
			return webhook.Bot{}, fmt.Errorf("scanning bot: %w", err)
		}
		return b, nil
	}
	if err := rows.Err(); err != nil {
		return webhook.Bot{}, fmt.Errorf("iterating bots: %w", err)
	}

	return webhook.Bot{}, webhook.ErrNotFound
}

// GetSettings reads the single-row operator notification configuration.
// A missing row disables notifications instead of failing.
func (r *Repository) GetSettings(ctx context.Context) (webhook.Settings, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT notifications_enabled, bot_token, chat_id, message_thread_id FROM settings WHERE id = 1")
	if err != nil {
		return webhook.Settings{}, fmt.Errorf("selecting settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s webhook.Settings
		var threadID sql.NullInt64
		if err := rows.Scan(&s.NotificationsEnabled, &s.BotToken, &s.ChatID, &threadID); err != nil {
			return webhook.Settings{}, fmt.Errorf("scanning settings: %w", err)
		}
		if threadID.Valid {
			s.MessageThreadID = &threadID.Int64
		}
		return s, nil
	}
	if err := rows.Err(); err != nil {
		return webhook.Settings{}, fmt.Errorf("iterating settings: %w", err)
	}

	return webhook.Settings{}, nil
}

// AppendLog inserts one audit record. Rows are append-only.
func (r *Repository) AppendLog(ctx context.Context, log webhook.Log) error {
	headers, err := json.Marshal(log.RequestHeaders)
	if err != nil {
		return fmt.Errorf("encoding request headers: %w", err)
	}

	stmt, err := r.DB.PrepareContext(ctx, `
		INSERT INTO webhook_logs (
			id, webhook_id, request_method, request_url, request_headers,
			request_body, response_status_code, message_text, render_error,
			telegram_sent, telegram_response, processing_time_ms, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}

	_, err = stmt.ExecContext(ctx,
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
		return fmt.Errorf("executing statement: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("closing statement: %w", err)
	}

	return nil
}

// CreateTables creates the schema (useful for tests and first boot)
func (r *Repository) CreateTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS bots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			token TEXT NOT NULL,
			chat_id TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS webhooks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			public_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			bot_id INTEGER NOT NULL REFERENCES bots(id),
			message_template TEXT NOT NULL,
			parse_mode INTEGER NOT NULL,
			disable_web_page_preview INTEGER NOT NULL DEFAULT 0,
			disable_notification INTEGER NOT NULL DEFAULT 0,
			message_thread_id INTEGER,
			is_protected INTEGER NOT NULL DEFAULT 0,
			secret_key TEXT NOT NULL DEFAULT '',
			is_disabled INTEGER NOT NULL DEFAULT 0,
			payload_sample TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			notifications_enabled INTEGER NOT NULL DEFAULT 0,
			bot_token TEXT NOT NULL DEFAULT '',
			chat_id TEXT NOT NULL DEFAULT '',
			message_thread_id INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS webhook_logs (
			id TEXT PRIMARY KEY,
			webhook_id INTEGER NOT NULL REFERENCES webhooks(id),
			request_method TEXT NOT NULL,
			request_url TEXT NOT NULL,
			request_headers TEXT NOT NULL DEFAULT '{}',
			request_body TEXT NOT NULL DEFAULT '',
			response_status_code INTEGER NOT NULL,
			message_text TEXT NOT NULL DEFAULT '',
			render_error TEXT NOT NULL DEFAULT '',
			telegram_sent INTEGER NOT NULL,
			telegram_response TEXT NOT NULL DEFAULT '',
			processing_time_ms INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := r.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}

	return nil
}

// Close releases the local replica and its temporary directory
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		if err := r.DB.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}
	if r.connector != nil {
		if err := r.connector.Close(); err != nil {
			return fmt.Errorf("closing connector: %w", err)
		}
	}
	if r.dir != "" {
		if err := os.RemoveAll(r.dir); err != nil {
			return fmt.Errorf("removing temporary directory: %w", err)
		}
	}
	return nil
}
