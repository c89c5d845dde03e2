// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/config"
	"github.com/jason-s-yu/monopoly/internal/event"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultQueueName is the Redis list (queue) name for match events.
const DefaultQueueName = "monopoly_events"

// EventRecord holds the minimal info needed by the historian to persist one event.
type EventRecord struct {
	EventID   uuid.UUID       `json:"event_id"`
	GameID    uuid.UUID       `json:"game_id"`
	Seq       int             `json:"seq"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// NewEventRecord flattens ev for the queue.
func NewEventRecord(ev event.Event) (EventRecord, error) {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return EventRecord{}, fmt.Errorf("failed to marshal %s payload: %w", ev.Type, err)
	}
	return EventRecord{
		EventID:   ev.ID,
		GameID:    ev.GameID,
		Seq:       ev.Seq,
		Type:      string(ev.Type),
		Payload:   payload,
		Timestamp: ev.Timestamp,
	}, nil
}

// Pusher is the slice of the Redis API the sink needs.
type Pusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// ConnectRedis creates a client and pings it.
func ConnectRedis(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// PublishEvent serializes the given record to JSON, then pushes it to the Redis queue.
func PublishEvent(ctx context.Context, rdb Pusher, queue string, record EventRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal EventRecord: %w", err)
	}
	if err := rdb.RPush(ctx, queue, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queue, err)
	}
	return nil
}

// EventSink forwards every delivered event to the historian queue. Push failures are
// logged and dropped; the match keeps running.
type EventSink struct {
	rdb     Pusher
	queue   string
	timeout time.Duration
	log     *logrus.Logger
}

func NewEventSink(rdb Pusher, queue string, logger *logrus.Logger) *EventSink {
	if queue == "" {
		queue = DefaultQueueName
	}
	return &EventSink{rdb: rdb, queue: queue, timeout: 2 * time.Second, log: logger}
}

func (s *EventSink) Deliver(ev event.Event) {
	rec, err := NewEventRecord(ev)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		err = PublishEvent(ctx, s.rdb, s.queue, rec)
		cancel()
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{"game_id": ev.GameID, "seq": ev.Seq}).Errorf("history sink: %v", err)
	}
}
