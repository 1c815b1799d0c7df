package metrics

import (
	"context"
	"time"

	"github.com/Caelestis94/telehook/webhook"
)

// Snapshot is the current day's delivery counters across all webhooks
type Snapshot struct {
	// Global is the rollup bucket across every webhook
	Global webhook.Stat `json:"global"`

	// PerWebhook holds today's bucket for each webhook that saw traffic
	PerWebhook []webhook.Stat `json:"per_webhook"`

	// Timestamp when the snapshot was collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector gathers the current day's counters from the stat store
type Collector interface {
	Collect(ctx context.Context) (Snapshot, error)
}
