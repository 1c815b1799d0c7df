package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/Caelestis94/telehook/webhook"
)

// StatsCollector reads today's buckets from the stat store
type StatsCollector struct {
	reader webhook.StatReader

	// now is swappable so tests can pin the day
	now func() time.Time
}

// NewStatsCollector creates a collector over the given stat store
func NewStatsCollector(reader webhook.StatReader) *StatsCollector {
	return &StatsCollector{
		reader: reader,
		now:    time.Now,
	}
}

// Collect reads the global rollup and every per-webhook bucket for today
func (c *StatsCollector) Collect(ctx context.Context) (Snapshot, error) {
	day := c.now().UTC().Format(webhook.DayFormat)

	global, err := c.reader.GetStat(ctx, day, 0)
	if err != nil {
		return Snapshot{}, fmt.Errorf("getting global stat: %w", err)
	}

	ids, err := c.reader.ListWebhookIDs(ctx, day)
	if err != nil {
		return Snapshot{}, fmt.Errorf("listing webhook ids: %w", err)
	}

	perWebhook := make([]webhook.Stat, 0, len(ids))
	for _, id := range ids {
		stat, err := c.reader.GetStat(ctx, day, id)
		if err != nil {
			return Snapshot{}, fmt.Errorf("getting stat for webhook %d: %w", id, err)
		}
		perWebhook = append(perWebhook, stat)
	}

	return Snapshot{
		Global:     global,
		PerWebhook: perWebhook,
		Timestamp:  c.now(),
	}, nil
}
