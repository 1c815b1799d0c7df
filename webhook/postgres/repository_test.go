//go:build !integration

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Caelestis94/telehook/telegram"
	"github.com/Caelestis94/telehook/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* Unit tests against sqlmock: no real database, no containers. Fast
 * enough for every CI run; the integration tests cover real PostgreSQL
 * behavior behind the integration build tag.
 */

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Repository{DB: db}, mock
}

var webhookColumns = []string{
	"id", "public_id", "name", "bot_id", "message_template", "parse_mode",
	"disable_web_page_preview", "disable_notification", "message_thread_id",
	"is_protected", "secret_key", "is_disabled", "payload_sample",
	"created_at", "updated_at",
}

func TestRepository_GetWebhookByPublicID_Unit(t *testing.T) {
	ctx := context.Background()

	t.Run("existing webhook", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		now := time.Now().UTC()
		rows := sqlmock.NewRows(webhookColumns).
			AddRow(7, "pub-7", "deploys", 3, "Value: {{x}}", 2,
				false, true, nil,
				true, "tgh_secret", false, `{"x": 5}`,
				now, now)

		mock.ExpectQuery(regexp.QuoteMeta("FROM webhooks WHERE public_id = $1")).
			WithArgs("pub-7").WillReturnRows(rows)

		wh, err := repo.GetWebhookByPublicID(ctx, "pub-7")

		require.NoError(t, err)
		assert.Equal(t, int64(7), wh.ID)
		assert.Equal(t, "deploys", wh.Name)
		assert.Equal(t, telegram.MarkdownV2, wh.ParseMode)
		assert.True(t, wh.DisableNotification)
		assert.Nil(t, wh.MessageThreadID)
		assert.True(t, wh.IsProtected)
		assert.Equal(t, "tgh_secret", wh.SecretKey)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("thread id round-trips", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		now := time.Now().UTC()
		rows := sqlmock.NewRows(webhookColumns).
			AddRow(7, "pub-7", "deploys", 3, "hi", 3,
				false, false, int64(42),
				false, "", false, "",
				now, now)

		mock.ExpectQuery(regexp.QuoteMeta("FROM webhooks WHERE public_id = $1")).
			WithArgs("pub-7").WillReturnRows(rows)

		wh, err := repo.GetWebhookByPublicID(ctx, "pub-7")

		require.NoError(t, err)
		require.NotNil(t, wh.MessageThreadID)
		assert.Equal(t, int64(42), *wh.MessageThreadID)
		assert.Equal(t, telegram.HTML, wh.ParseMode)
	})

	t.Run("unknown public id returns ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM webhooks WHERE public_id = $1")).
			WithArgs("missing").WillReturnRows(sqlmock.NewRows(webhookColumns))

		_, err := repo.GetWebhookByPublicID(ctx, "missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetBot_Unit(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bot", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := sqlmock.NewRows([]string{"id", "name", "token", "chat_id", "created_at"}).
			AddRow(3, "notifier", "123:abc", "-100200", time.Now().UTC())

		mock.ExpectQuery(regexp.QuoteMeta("FROM bots WHERE id = $1")).
			WithArgs(int64(3)).WillReturnRows(rows)

		b, err := repo.GetBot(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, "notifier", b.Name)
		assert.Equal(t, "123:abc", b.Token)
		assert.Equal(t, "-100200", b.ChatID)
	})

	t.Run("unknown bot returns ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM bots WHERE id = $1")).
			WithArgs(int64(999)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "token", "chat_id", "created_at"}))

		_, err := repo.GetBot(ctx, 999)

		require.Error(t, err)
		assert.ErrorIs(t, err, webhook.ErrNotFound)
	})
}

func TestRepository_GetSettings_Unit(t *testing.T) {
	ctx := context.Background()

	t.Run("configured settings", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := sqlmock.NewRows([]string{"notifications_enabled", "bot_token", "chat_id", "message_thread_id"}).
			AddRow(true, "999:alert", "-100999", nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM settings WHERE id = 1")).
			WillReturnRows(rows)

		s, err := repo.GetSettings(ctx)

		require.NoError(t, err)
		assert.True(t, s.NotificationsEnabled)
		assert.Equal(t, "999:alert", s.BotToken)
	})

	t.Run("missing row disables notifications", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM settings WHERE id = 1")).
			WillReturnRows(sqlmock.NewRows([]string{"notifications_enabled", "bot_token", "chat_id", "message_thread_id"}))

		s, err := repo.GetSettings(ctx)

		require.NoError(t, err)
		assert.False(t, s.NotificationsEnabled)
	})
}

func TestRepository_AppendLog_Unit(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts one row", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		log := webhook.Log{
			ID:                 "4f3a2b10-0000-0000-0000-000000000001",
			WebhookID:          7,
			RequestMethod:      "POST",
			RequestURL:         "/api/trigger/pub-7",
			RequestHeaders:     map[string]string{"Content-Type": "application/json"},
			RequestBody:        `{"x": 5}`,
			ResponseStatusCode: 200,
			MessageText:        "Value: 5",
			TelegramSent:       true,
			TelegramResponse:   `{"ok":true}`,
			ProcessingTime:     125 * time.Millisecond,
			CreatedAt:          time.Now().UTC(),
		}

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO webhook_logs")).
			WithArgs(
				log.ID, log.WebhookID, log.RequestMethod, log.RequestURL,
				`{"Content-Type":"application/json"}`,
				log.RequestBody, log.ResponseStatusCode, log.MessageText, "",
				log.TelegramSent, log.TelegramResponse, int64(125), log.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AppendLog(ctx, log)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure is wrapped", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO webhook_logs")).
			WillReturnError(errors.New("connection reset"))

		err := repo.AppendLog(ctx, webhook.Log{ID: "x", CreatedAt: time.Now()})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "inserting webhook log")
	})
}

func TestRepository_CreateTables_Unit(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bots").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS webhooks").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS settings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS webhook_logs").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CreateTables(ctx)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
