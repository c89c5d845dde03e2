// internal/database/game.go
package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jason-s-yu/monopoly/internal/cache"
)

// UpsertGameTx records activity for a game, creating its row on first sight.
func UpsertGameTx(ctx context.Context, tx pgx.Tx, gameID uuid.UUID, seq int) error {
	q := `
		INSERT INTO games (id, status, start_time, last_seq)
		VALUES ($1, 'in_progress', NOW(), $2)
		ON CONFLICT (id)
		DO UPDATE SET last_seq = GREATEST(games.last_seq, EXCLUDED.last_seq)
	`
	_, err := tx.Exec(ctx, q, gameID, seq)
	return err
}

// InsertEventTx appends one event. Records already stored are skipped.
func InsertEventTx(ctx context.Context, tx pgx.Tx, rec cache.EventRecord) error {
	q := `
		INSERT INTO game_events (event_id, game_id, seq, event_type, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
	`
	_, err := tx.Exec(ctx, q,
		rec.EventID, rec.GameID, rec.Seq, rec.Type, []byte(rec.Payload), time.UnixMilli(rec.Timestamp),
	)
	return err
}

// MarkGameAbandoned marks a game as 'abandoned' if it was still in progress. It reports
// whether a row changed.
func MarkGameAbandoned(ctx context.Context, db TxBeginner, gameID uuid.UUID) (bool, error) {
	var changed bool
	err := BeginTxFunc(ctx, db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		q := `
			UPDATE games
			SET status = 'abandoned', end_time = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`
		tag, e := tx.Exec(ctx, q, gameID)
		if e != nil {
			return e
		}
		changed = tag.RowsAffected() > 0
		return nil
	})
	return changed, err
}
