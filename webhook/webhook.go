package webhook

import (
	"time"

	"github.com/Caelestis94/telehook/telegram"
)

/* Webhook represents one configured inbound endpoint and how its messages
 * are formatted and delivered. Uses value semantics as it represents data,
 * not behavior.
 *
 * The management layer (out of scope here) enforces at write time that
 * SecretKey is set if and only if IsProtected is set; the pipeline assumes
 * that invariant holds.
 */
type Webhook struct {
	ID       int64
	PublicID string // opaque id used in the public trigger URL
	Name     string
	BotID    int64

	MessageTemplate string
	ParseMode       telegram.ParseMode

	DisableWebPagePreview bool
	DisableNotification   bool
	MessageThreadID       *int64

	IsProtected bool
	SecretKey   string
	IsDisabled  bool

	// PayloadSample is an authoring aid only; the pipeline never reads it
	PayloadSample string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bot holds the credential and target chat a webhook delivers through.
// Owned independently of webhooks; many webhooks may reference one bot.
type Bot struct {
	ID        int64
	Name      string
	Token     string
	ChatID    string
	CreatedAt time.Time
}

// Settings is the operator notification configuration, read-only input to
// the failure notifier
type Settings struct {
	NotificationsEnabled bool
	BotToken             string
	ChatID               string
	MessageThreadID      *int64
}
