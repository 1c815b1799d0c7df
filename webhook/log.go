package webhook

import "time"

/* Log is the audit record of one inbound request: created once at the end
 * of the pipeline, never mutated afterward. Exactly one row per request
 * that resolved a webhook; unmatched requests leave no row because there
 * is no webhook id to attach one to.
 */
type Log struct {
	ID        string
	WebhookID int64

	RequestMethod  string
	RequestURL     string
	RequestHeaders map[string]string
	RequestBody    string

	ResponseStatusCode int

	// MessageText is the escaped message handed to the dispatch client
	MessageText string
	RenderError string

	TelegramSent     bool
	TelegramResponse string

	ProcessingTime time.Duration
	CreatedAt      time.Time
}
