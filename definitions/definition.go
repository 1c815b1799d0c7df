package definitions

import (
	"fmt"
	"strings"

	"github.com/Caelestis94/telehook/webhook/secret"
)

/* Definitions are the file-backed counterpart of the database config:
 * a single YAML document declaring bots, webhooks and the notification
 * settings. Loaded once at startup, read-only afterward.
 */

// Document is the structure of a definitions YAML file
type Document struct {
	Bots     []BotDef     `yaml:"bots"`
	Webhooks []WebhookDef `yaml:"webhooks"`
	Settings *SettingsDef `yaml:"settings"`
}

// BotDef declares one bot credential and its target chat
type BotDef struct {
	ID     int64  `yaml:"id"`
	Name   string `yaml:"name"`
	Token  string `yaml:"token"`
	ChatID string `yaml:"chat_id"`
}

// WebhookDef declares one inbound endpoint
type WebhookDef struct {
	ID       int64  `yaml:"id"`
	PublicID string `yaml:"public_id"`
	Name     string `yaml:"name"`
	BotID    int64  `yaml:"bot_id"`

	MessageTemplate string `yaml:"message_template"`
	// ParseMode is the dialect name: Markdown, MarkdownV2 or HTML.
	// Empty defaults to MarkdownV2.
	ParseMode string `yaml:"parse_mode"`

	DisableWebPagePreview bool   `yaml:"disable_web_page_preview"`
	DisableNotification   bool   `yaml:"disable_notification"`
	MessageThreadID       *int64 `yaml:"message_thread_id"`

	IsProtected bool   `yaml:"is_protected"`
	SecretKey   string `yaml:"secret_key"`
	IsDisabled  bool   `yaml:"is_disabled"`

	PayloadSample string `yaml:"payload_sample"`
}

// SettingsDef declares the operator notification configuration
type SettingsDef struct {
	NotificationsEnabled bool   `yaml:"notifications_enabled"`
	BotToken             string `yaml:"bot_token"`
	ChatID               string `yaml:"chat_id"`
	MessageThreadID      *int64 `yaml:"message_thread_id"`
}

// Validate checks one bot declaration
func (b BotDef) Validate() error {
	if b.ID <= 0 {
		return fmt.Errorf("bot id must be positive (got %d)", b.ID)
	}
	if b.Name == "" {
		return fmt.Errorf("bot %d: name cannot be empty", b.ID)
	}
	if b.Token == "" {
		return fmt.Errorf("bot %q: token cannot be empty", b.Name)
	}
	if b.ChatID == "" {
		return fmt.Errorf("bot %q: chat_id cannot be empty", b.Name)
	}
	return nil
}

// Validate checks one webhook declaration
func (w WebhookDef) Validate() error {
	if w.ID <= 0 {
		return fmt.Errorf("webhook id must be positive (got %d)", w.ID)
	}
	if w.PublicID == "" {
		return fmt.Errorf("webhook %d: public_id cannot be empty", w.ID)
	}
	if w.Name == "" {
		return fmt.Errorf("webhook %q: name cannot be empty", w.PublicID)
	}
	if w.BotID <= 0 {
		return fmt.Errorf("webhook %q: bot_id must be positive", w.PublicID)
	}
	if w.MessageTemplate == "" {
		return fmt.Errorf("webhook %q: message_template cannot be empty", w.PublicID)
	}
	switch w.ParseMode {
	case "", "Markdown", "markdown", "MarkdownV2", "markdownv2", "HTML", "html":
	default:
		return fmt.Errorf("webhook %q: unknown parse_mode %q", w.PublicID, w.ParseMode)
	}
	// the secret must exist exactly when protection is on
	if w.IsProtected && w.SecretKey == "" {
		return fmt.Errorf("webhook %q: is_protected requires secret_key", w.PublicID)
	}
	if !w.IsProtected && w.SecretKey != "" {
		return fmt.Errorf("webhook %q: secret_key set but is_protected is false", w.PublicID)
	}
	if w.SecretKey != "" && !strings.HasPrefix(w.SecretKey, secret.KeyPrefix) {
		return fmt.Errorf("webhook %q: secret_key must start with %s", w.PublicID, secret.KeyPrefix)
	}
	return nil
}
