// internal/database/schema.go
package database

// Schema is the history store. game_events is append-only; event_id makes re-delivered
// records a no-op.
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	id          UUID PRIMARY KEY,
	status      TEXT NOT NULL DEFAULT 'in_progress',
	start_time  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	end_time    TIMESTAMPTZ,
	last_seq    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS game_events (
	event_id    UUID PRIMARY KEY,
	game_id     UUID NOT NULL REFERENCES games(id),
	seq         INTEGER NOT NULL,
	event_type  TEXT NOT NULL,
	payload     JSONB,
	occurred_at TIMESTAMPTZ NOT NULL,
	UNIQUE (game_id, seq)
);
`
