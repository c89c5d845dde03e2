// internal/historian/historian.go
package historian

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/cache"
	"github.com/jason-s-yu/monopoly/internal/config"
	"github.com/sirupsen/logrus"
)

// Queue yields event records. ok is false when timeout passed with nothing to pop.
type Queue interface {
	Pop(ctx context.Context, timeout time.Duration) (rec cache.EventRecord, ok bool, err error)
}

// Store persists batches and closes out idle games.
type Store interface {
	SaveBatch(ctx context.Context, recs []cache.EventRecord) error
	MarkAbandoned(ctx context.Context, gameID uuid.UUID) error
}

// Service drains the event queue into the store in batches and marks games abandoned
// after a period with no events. Run owns all state; nothing else touches it.
type Service struct {
	queue Queue
	store Store
	cfg   config.Historian
	log   *logrus.Logger

	batch        []cache.EventRecord
	lastActivity map[uuid.UUID]time.Time
	now          func() time.Time
}

func New(queue Queue, store Store, cfg config.Historian, logger *logrus.Logger) *Service {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 500 * time.Millisecond
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		queue:        queue,
		store:        store,
		cfg:          cfg,
		log:          logger,
		batch:        make([]cache.EventRecord, 0, cfg.BatchSize),
		lastActivity: make(map[uuid.UUID]time.Time),
		now:          time.Now,
	}
}

// Run pops until ctx is cancelled, then flushes what it holds and returns.
func (s *Service) Run(ctx context.Context) {
	flushTick := time.NewTicker(s.cfg.FlushInterval)
	defer flushTick.Stop()
	sweepTick := time.NewTicker(s.cfg.SweepInterval)
	defer sweepTick.Stop()

	s.log.Info("historian started")
	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.flush(shutdownCtx)
			cancel()
			s.log.Info("historian stopped")
			return

		case <-flushTick.C:
			s.flush(ctx)

		case <-sweepTick.C:
			s.sweep(ctx)

		default:
			rec, ok, err := s.queue.Pop(ctx, s.cfg.PopTimeout)
			if err != nil {
				if ctx.Err() == nil {
					s.log.Errorf("pop: %v", err)
				}
				continue
			}
			if ok {
				s.append(ctx, rec)
			}
		}
	}
}

func (s *Service) append(ctx context.Context, rec cache.EventRecord) {
	s.lastActivity[rec.GameID] = s.now()
	s.batch = append(s.batch, rec)
	if len(s.batch) >= s.cfg.BatchSize {
		s.flush(ctx)
	}
}

// flush writes the batch in one transaction. On failure the batch is kept for the next
// attempt; re-inserting stored events is a no-op.
func (s *Service) flush(ctx context.Context) {
	if len(s.batch) == 0 {
		return
	}
	if err := s.store.SaveBatch(ctx, s.batch); err != nil {
		s.log.WithField("pending", len(s.batch)).Errorf("flush batch: %v", err)
		return
	}
	s.log.Debugf("flushed %d events", len(s.batch))
	s.batch = s.batch[:0]
}

// sweep marks games abandoned once they have been quiet for longer than the timeout.
func (s *Service) sweep(ctx context.Context) {
	now := s.now()
	for gameID, last := range s.lastActivity {
		if now.Sub(last) <= s.cfg.InactivityTimeout {
			continue
		}
		if err := s.store.MarkAbandoned(ctx, gameID); err != nil {
			s.log.WithField("game_id", gameID).Errorf("mark abandoned: %v", err)
			continue
		}
		s.log.WithField("game_id", gameID).Info("game marked abandoned due to inactivity")
		delete(s.lastActivity, gameID)
	}
}
