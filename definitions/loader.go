package definitions

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Caelestis94/telehook/telegram"
	"github.com/Caelestis94/telehook/webhook"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

/* Loader reads a definitions file into memory and serves the pipeline's
 * config reads from the parsed maps. The file store has no table to
 * append audit rows to, so AppendLog emits the record through the
 * structured logger instead; the store still satisfies the full
 * Repository so the wiring does not care which backend is active.
 */
type Loader struct {
	webhooks map[string]webhook.Webhook // keyed by public id
	bots     map[int64]webhook.Bot
	settings webhook.Settings
	logger   zerolog.Logger
}

// NewLoader creates an empty loader; call Load before serving reads
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		webhooks: make(map[string]webhook.Webhook),
		bots:     make(map[int64]webhook.Bot),
		logger:   logger,
	}
}

// Load reads and validates the definitions YAML file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading definitions file: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, b := range doc.Bots {
		l.bots[b.ID] = webhook.Bot{
			ID:        b.ID,
			Name:      b.Name,
			Token:     b.Token,
			ChatID:    b.ChatID,
			CreatedAt: now,
		}
	}

	for _, w := range doc.Webhooks {
		l.webhooks[w.PublicID] = webhook.Webhook{
			ID:                    w.ID,
			PublicID:              w.PublicID,
			Name:                  w.Name,
			BotID:                 w.BotID,
			MessageTemplate:       w.MessageTemplate,
			ParseMode:             telegram.NewParseMode(w.ParseMode),
			DisableWebPagePreview: w.DisableWebPagePreview,
			DisableNotification:   w.DisableNotification,
			MessageThreadID:       w.MessageThreadID,
			IsProtected:           w.IsProtected,
			SecretKey:             w.SecretKey,
			IsDisabled:            w.IsDisabled,
			PayloadSample:         w.PayloadSample,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
	}

	if doc.Settings != nil {
		l.settings = webhook.Settings{
			NotificationsEnabled: doc.Settings.NotificationsEnabled,
			BotToken:             doc.Settings.BotToken,
			ChatID:               doc.Settings.ChatID,
			MessageThreadID:      doc.Settings.MessageThreadID,
		}
	}

	return nil
}

/* Parse decodes and validates a definitions document. Shared by the
 * loader and the standalone linter.
 */
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing definitions YAML: %w", err)
	}

	botIDs := make(map[int64]bool, len(doc.Bots))
	botNames := make(map[string]bool, len(doc.Bots))
	for _, b := range doc.Bots {
		if err := b.Validate(); err != nil {
			return Document{}, fmt.Errorf("validating bot: %w", err)
		}
		if botIDs[b.ID] {
			return Document{}, fmt.Errorf("duplicate bot id %d", b.ID)
		}
		if botNames[b.Name] {
			return Document{}, fmt.Errorf("duplicate bot name %q", b.Name)
		}
		botIDs[b.ID] = true
		botNames[b.Name] = true
	}

	webhookIDs := make(map[int64]bool, len(doc.Webhooks))
	publicIDs := make(map[string]bool, len(doc.Webhooks))
	for _, w := range doc.Webhooks {
		if err := w.Validate(); err != nil {
			return Document{}, fmt.Errorf("validating webhook: %w", err)
		}
		if webhookIDs[w.ID] {
			return Document{}, fmt.Errorf("duplicate webhook id %d", w.ID)
		}
		if publicIDs[w.PublicID] {
			return Document{}, fmt.Errorf("duplicate public_id %q", w.PublicID)
		}
		if !botIDs[w.BotID] {
			return Document{}, fmt.Errorf("webhook %q references unknown bot_id %d", w.PublicID, w.BotID)
		}
		webhookIDs[w.ID] = true
		publicIDs[w.PublicID] = true
	}

	if doc.Settings != nil && doc.Settings.NotificationsEnabled {
		if doc.Settings.BotToken == "" || doc.Settings.ChatID == "" {
			return Document{}, fmt.Errorf("settings: notifications_enabled requires bot_token and chat_id")
		}
	}

	return doc, nil
}

// GetWebhookByPublicID resolves the endpoint configuration for a trigger URL
func (l *Loader) GetWebhookByPublicID(ctx context.Context, publicID string) (webhook.Webhook, error) {
	wh, ok := l.webhooks[publicID]
	if !ok {
		return webhook.Webhook{}, webhook.ErrNotFound
	}
	return wh, nil
}

// GetBot resolves the credential and target chat referenced by a webhook
func (l *Loader) GetBot(ctx context.Context, id int64) (webhook.Bot, error) {
	b, ok := l.bots[id]
	if !ok {
		return webhook.Bot{}, webhook.ErrNotFound
	}
	return b, nil
}

// GetSettings returns the notification configuration from the file
func (l *Loader) GetSettings(ctx context.Context) (webhook.Settings, error) {
	return l.settings, nil
}

// AppendLog emits the audit record through the structured logger; the
// file store has nowhere durable to put it
func (l *Loader) AppendLog(ctx context.Context, log webhook.Log) error {
	l.logger.Info().
		Str("log_id", log.ID).
		Int64("webhook_id", log.WebhookID).
		Str("method", log.RequestMethod).
		Str("url", log.RequestURL).
		Int("status", log.ResponseStatusCode).
		Bool("telegram_sent", log.TelegramSent).
		Dur("processing_time", log.ProcessingTime).
		Msg("webhook request")
	return nil
}

// Close is a no-op; the file was consumed at load time
func (l *Loader) Close(ctx context.Context) error {
	return nil
}

// Webhooks lists the loaded webhooks; used by the linter
func (l *Loader) Webhooks() []webhook.Webhook {
	out := make([]webhook.Webhook, 0, len(l.webhooks))
	for _, wh := range l.webhooks {
		out = append(out, wh)
	}
	return out
}
