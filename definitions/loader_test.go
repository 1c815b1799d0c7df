package definitions_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Caelestis94/telehook/definitions"
	"github.com/Caelestis94/telehook/telegram"
	"github.com/Caelestis94/telehook/webhook"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDefinitions = `
bots:
  - id: 1
    name: notifier
    token: "123:abc"
    chat_id: "-100200"

webhooks:
  - id: 1
    public_id: pub-7
    name: deploys
    bot_id: 1
    message_template: "Value: {{x}}"
    parse_mode: MarkdownV2
    is_protected: true
    secret_key: tgh_testsecret
  - id: 2
    public_id: pub-8
    name: alerts
    bot_id: 1
    message_template: "<b>{{level}}</b>"
    parse_mode: HTML
    message_thread_id: 42
    is_disabled: true

settings:
  notifications_enabled: true
  bot_token: "999:alert"
  chat_id: "-100999"
`

func writeDefinitions(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "webhooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func loadDefinitions(t *testing.T, content string) *definitions.Loader {
	t.Helper()

	loader := definitions.NewLoader(zerolog.Nop())
	require.NoError(t, loader.Load(writeDefinitions(t, content)))
	return loader
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves webhooks and bots", func(t *testing.T) {
		loader := loadDefinitions(t, sampleDefinitions)

		wh, err := loader.GetWebhookByPublicID(ctx, "pub-7")
		require.NoError(t, err)
		assert.Equal(t, "deploys", wh.Name)
		assert.Equal(t, telegram.MarkdownV2, wh.ParseMode)
		assert.True(t, wh.IsProtected)
		assert.Equal(t, "tgh_testsecret", wh.SecretKey)

		disabled, err := loader.GetWebhookByPublicID(ctx, "pub-8")
		require.NoError(t, err)
		assert.True(t, disabled.IsDisabled)
		assert.Equal(t, telegram.HTML, disabled.ParseMode)
		require.NotNil(t, disabled.MessageThreadID)
		assert.Equal(t, int64(42), *disabled.MessageThreadID)

		bot, err := loader.GetBot(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "123:abc", bot.Token)

		settings, err := loader.GetSettings(ctx)
		require.NoError(t, err)
		assert.True(t, settings.NotificationsEnabled)
		assert.Equal(t, "999:alert", settings.BotToken)
	})

	t.Run("unknown ids return ErrNotFound", func(t *testing.T) {
		loader := loadDefinitions(t, sampleDefinitions)

		_, err := loader.GetWebhookByPublicID(ctx, "missing")
		assert.ErrorIs(t, err, webhook.ErrNotFound)

		_, err = loader.GetBot(ctx, 99)
		assert.ErrorIs(t, err, webhook.ErrNotFound)
	})

	t.Run("parse mode defaults to MarkdownV2", func(t *testing.T) {
		loader := loadDefinitions(t, `
bots:
  - {id: 1, name: b, token: "t", chat_id: "c"}
webhooks:
  - {id: 1, public_id: p, name: w, bot_id: 1, message_template: hi}
`)

		wh, err := loader.GetWebhookByPublicID(ctx, "p")
		require.NoError(t, err)
		assert.Equal(t, telegram.MarkdownV2, wh.ParseMode)
	})

	t.Run("missing file", func(t *testing.T) {
		loader := definitions.NewLoader(zerolog.Nop())
		err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading definitions file")
	})

	t.Run("append log succeeds without storage", func(t *testing.T) {
		loader := loadDefinitions(t, sampleDefinitions)

		err := loader.AppendLog(ctx, webhook.Log{ID: "x", WebhookID: 1})
		assert.NoError(t, err)
	})
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "bots: [",
			wantErr: "parsing definitions YAML",
		},
		{
			name: "duplicate public id",
			content: `
bots:
  - {id: 1, name: b, token: t, chat_id: c}
webhooks:
  - {id: 1, public_id: p, name: w1, bot_id: 1, message_template: hi}
  - {id: 2, public_id: p, name: w2, bot_id: 1, message_template: hi}
`,
			wantErr: `duplicate public_id "p"`,
		},
		{
			name: "unknown bot reference",
			content: `
bots:
  - {id: 1, name: b, token: t, chat_id: c}
webhooks:
  - {id: 1, public_id: p, name: w, bot_id: 9, message_template: hi}
`,
			wantErr: "references unknown bot_id 9",
		},
		{
			name: "protected without secret",
			content: `
bots:
  - {id: 1, name: b, token: t, chat_id: c}
webhooks:
  - {id: 1, public_id: p, name: w, bot_id: 1, message_template: hi, is_protected: true}
`,
			wantErr: "is_protected requires secret_key",
		},
		{
			name: "secret without protection",
			content: `
bots:
  - {id: 1, name: b, token: t, chat_id: c}
webhooks:
  - {id: 1, public_id: p, name: w, bot_id: 1, message_template: hi, secret_key: tgh_x}
`,
			wantErr: "secret_key set but is_protected is false",
		},
		{
			name: "secret without prefix",
			content: `
bots:
  - {id: 1, name: b, token: t, chat_id: c}
webhooks:
  - {id: 1, public_id: p, name: w, bot_id: 1, message_template: hi, is_protected: true, secret_key: nope}
`,
			wantErr: "secret_key must start with tgh_",
		},
		{
			name: "unknown parse mode",
			content: `
bots:
  - {id: 1, name: b, token: t, chat_id: c}
webhooks:
  - {id: 1, public_id: p, name: w, bot_id: 1, message_template: hi, parse_mode: Markdown3}
`,
			wantErr: `unknown parse_mode "Markdown3"`,
		},
		{
			name: "notifications enabled without credentials",
			content: `
settings:
  notifications_enabled: true
`,
			wantErr: "requires bot_token and chat_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := definitions.Parse([]byte(tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
