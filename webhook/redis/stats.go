package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Caelestis94/telehook/webhook"
	"github.com/redis/go-redis/v9"
)

/* Redis-backed daily counters.
 *
 * One hash per (day, webhook) bucket plus a global rollup hash under
 * webhook id 0. A request updates both buckets through a Lua script so
 * concurrent requests never lose increments and the min/max
 * compare-and-set stays race-free. Buckets expire after the retention
 * window; the date is part of the key, so expiry is just TTL.
 */

const (
	statPrefix = "telehook:stats" // key naming: telehook:stats:{day}:{webhook_id}

	// globalBucket is the rollup across all webhooks
	globalBucket int64 = 0
)

// retention keeps roughly three months of daily buckets
const retention = 92 * 24 * time.Hour

/* statUpsert applies one event to a bucket hash atomically.
 * KEYS[1] bucket key; ARGV: success, validationFail, telegramFail (0/1),
 * elapsed ms, ttl seconds.
 */
var statUpsert = redis.NewScript(`
local key = KEYS[1]
local success = tonumber(ARGV[1])
local vfail = tonumber(ARGV[2])
local tfail = tonumber(ARGV[3])
local ms = tonumber(ARGV[4])
local ttl = tonumber(ARGV[5])

redis.call('HINCRBY', key, 'total_requests', 1)
if success == 1 then
  redis.call('HINCRBY', key, 'successful_requests', 1)
else
  redis.call('HINCRBY', key, 'failed_requests', 1)
end
if vfail == 1 then
  redis.call('HINCRBY', key, 'validation_failures', 1)
end
if tfail == 1 then
  redis.call('HINCRBY', key, 'telegram_failures', 1)
end

redis.call('HINCRBY', key, 'total_processing_ms', ms)

local min = redis.call('HGET', key, 'min_processing_ms')
if not min or ms < tonumber(min) then
  redis.call('HSET', key, 'min_processing_ms', ms)
end
local max = redis.call('HGET', key, 'max_processing_ms')
if not max or ms > tonumber(max) then
  redis.call('HSET', key, 'max_processing_ms', ms)
end

redis.call('EXPIRE', key, ttl)
return redis.status_reply('OK')
`)

type Stats struct {
	client *redis.Client
}

// NewStats connects to Redis and verifies the connection
func NewStats(addr, password string, db int) (*Stats, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Stats{client: client}, nil
}

// NewStatsWithClient wraps an existing client; used by tests
func NewStatsWithClient(client *redis.Client) *Stats {
	return &Stats{client: client}
}

func statKey(day string, webhookID int64) string {
	return fmt.Sprintf("%s:%s:%d", statPrefix, day, webhookID)
}

// Record applies one event to the per-webhook bucket and the global rollup
func (s *Stats) Record(ctx context.Context, event webhook.StatEvent) error {
	args := []interface{}{
		boolArg(event.Success),
		boolArg(event.ValidationFail),
		boolArg(event.TelegramFail),
		event.ProcessingTime.Milliseconds(),
		int64(retention.Seconds()),
	}

	for _, id := range []int64{event.WebhookID, globalBucket} {
		key := statKey(event.Day, id)
		if err := statUpsert.Run(ctx, s.client, []string{key}, args...).Err(); err != nil {
			return fmt.Errorf("updating stat bucket %s: %w", key, err)
		}
	}

	return nil
}

// GetStat reads one daily bucket; a missing bucket is all zeroes, not an error
func (s *Stats) GetStat(ctx context.Context, day string, webhookID int64) (webhook.Stat, error) {
	data, err := s.client.HGetAll(ctx, statKey(day, webhookID)).Result()
	if err != nil {
		return webhook.Stat{}, fmt.Errorf("getting stat bucket: %w", err)
	}

	stat := webhook.Stat{Day: day, WebhookID: webhookID}
	if len(data) == 0 {
		return stat, nil
	}

	stat.TotalRequests = hashInt(data, "total_requests")
	stat.SuccessfulRequests = hashInt(data, "successful_requests")
	stat.FailedRequests = hashInt(data, "failed_requests")
	stat.ValidationFailures = hashInt(data, "validation_failures")
	stat.TelegramFailures = hashInt(data, "telegram_failures")
	stat.MinProcessingMs = hashInt(data, "min_processing_ms")
	stat.MaxProcessingMs = hashInt(data, "max_processing_ms")
	stat.TotalProcessingMs = hashInt(data, "total_processing_ms")

	return stat, nil
}

// ListWebhookIDs scans the buckets of one day, excluding the global rollup
func (s *Stats) ListWebhookIDs(ctx context.Context, day string) ([]int64, error) {
	pattern := fmt.Sprintf("%s:%s:*", statPrefix, day)
	prefix := fmt.Sprintf("%s:%s:", statPrefix, day)

	var ids []int64
	var cursor uint64
	for {
		keys, nextCursor, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning stat keys: %w", err)
		}

		for _, key := range keys {
			id, err := strconv.ParseInt(key[len(prefix):], 10, 64)
			if err != nil || id == globalBucket {
				continue
			}
			ids = append(ids, id)
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return ids, nil
}

// Close releases the Redis connection
func (s *Stats) Close() error {
	return s.client.Close()
}

func boolArg(b bool) int {
	if b {
		return 1
	}
	return 0
}

func hashInt(data map[string]string, field string) int64 {
	v, err := strconv.ParseInt(data[field], 10, 64)
	if err != nil {
		return 0
	}
	return v
}
