// internal/historian/adapters.go
package historian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/jason-s-yu/monopoly/internal/database"
	"github.com/redis/go-redis/v9"
)

// Popper is the slice of the Redis API RedisQueue needs.
type Popper interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// RedisQueue pops records pushed by cache.EventSink.
type RedisQueue struct {
	rdb  Popper
	name string
}

func NewRedisQueue(rdb Popper, name string) *RedisQueue {
	if name == "" {
		name = cache.DefaultQueueName
	}
	return &RedisQueue{rdb: rdb, name: name}
}

func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) (cache.EventRecord, bool, error) {
	res, err := q.rdb.BLPop(ctx, timeout, q.name).Result()
	if errors.Is(err, redis.Nil) {
		return cache.EventRecord{}, false, nil
	}
	if err != nil {
		return cache.EventRecord{}, false, fmt.Errorf("BLPop: %w", err)
	}
	// res[0] is the queue name and res[1] the payload.
	if len(res) < 2 {
		return cache.EventRecord{}, false, nil
	}
	var rec cache.EventRecord
	if err := json.Unmarshal([]byte(res[1]), &rec); err != nil {
		return cache.EventRecord{}, false, fmt.Errorf("invalid event record: %w", err)
	}
	return rec, true, nil
}

// PostgresStore writes batches through pgx.
type PostgresStore struct {
	db database.TxBeginner
}

func NewPostgresStore(db database.TxBeginner) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) SaveBatch(ctx context.Context, recs []cache.EventRecord) error {
	return database.BeginTxFunc(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range recs {
			if err := database.UpsertGameTx(ctx, tx, rec.GameID, rec.Seq); err != nil {
				return fmt.Errorf("upsert game %s: %w", rec.GameID, err)
			}
			if err := database.InsertEventTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insert event %s/%d: %w", rec.GameID, rec.Seq, err)
			}
		}
		return nil
	})
}

func (p *PostgresStore) MarkAbandoned(ctx context.Context, gameID uuid.UUID) error {
	_, err := database.MarkGameAbandoned(ctx, p.db, gameID)
	return err
}
