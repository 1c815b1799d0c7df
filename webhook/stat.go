package webhook

import "time"

// DayFormat is the key format of a daily stat bucket (UTC)
const DayFormat = "2006-01-02"

/* StatEvent is one request's contribution to the daily counters. The
 * recorder applies it to both the per-webhook and the global bucket with
 * an atomic increment-or-create; counters only ever go up.
 */
type StatEvent struct {
	WebhookID      int64
	Day            string
	Success        bool
	ValidationFail bool
	TelegramFail   bool
	ProcessingTime time.Duration
}

// NewStatEvent builds the event for a finished request
func NewStatEvent(webhookID int64, at time.Time, success, validationFail, telegramFail bool, elapsed time.Duration) StatEvent {
	return StatEvent{
		WebhookID:      webhookID,
		Day:            at.UTC().Format(DayFormat),
		Success:        success,
		ValidationFail: validationFail,
		TelegramFail:   telegramFail,
		ProcessingTime: elapsed,
	}
}

// Stat is one daily counter bucket; WebhookID 0 is the global rollup
type Stat struct {
	Day       string
	WebhookID int64

	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	ValidationFailures int64
	TelegramFailures   int64

	MinProcessingMs   int64
	MaxProcessingMs   int64
	TotalProcessingMs int64
}

// AvgProcessingMs derives the mean processing time of the bucket
func (s Stat) AvgProcessingMs() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.TotalProcessingMs) / float64(s.TotalRequests)
}
