package webhook

import (
	"context"
	"errors"

	"github.com/Caelestis94/telehook/telegram"
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// ErrNotFound is returned by config readers when no webhook or bot matches
var ErrNotFound = errors.New("not found")

// ConfigReader provides read access to webhook, bot and notification
// configuration
type ConfigReader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	GetWebhookByPublicID(ctx context.Context, publicID string) (Webhook, error)
	GetBot(ctx context.Context, id int64) (Bot, error)
	GetSettings(ctx context.Context) (Settings, error)
}

// LogWriter appends audit records. Append-only: rows are never updated.
type LogWriter interface {
	AppendLog(ctx context.Context, log Log) error
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	ConfigReader
	LogWriter
	Close(ctx context.Context) error
}

/* StatRecorder applies one event to the daily counters. Concurrent events
 * for the same (day, webhook) bucket must not lose updates: the
 * implementation upserts with an atomic increment.
 */
type StatRecorder interface {
	Record(ctx context.Context, event StatEvent) error
}

// StatReader reads daily counter buckets back, for metrics export
type StatReader interface {
	GetStat(ctx context.Context, day string, webhookID int64) (Stat, error)
	ListWebhookIDs(ctx context.Context, day string) ([]int64, error)
}

// Renderer is the black-box template engine: template plus decoded JSON in,
// text or a structured rendering error out
type Renderer interface {
	Render(tmpl string, data map[string]any) (string, error)
}

// Dispatcher is the outbound Telegram boundary consumed by the pipeline
type Dispatcher interface {
	SendMessage(ctx context.Context, token string, msg telegram.Message) telegram.Outcome
}

// Notifier delivers operator alerts about failed requests
type Notifier interface {
	NotifyFailure(ctx context.Context, settings Settings, failure Failure) error
}
