// internal/cache/redis_test.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/event"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePusher struct {
	pushed map[string][][]byte
	err    error
}

func (f *fakePusher) RPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	if f.pushed == nil {
		f.pushed = make(map[string][][]byte)
	}
	for _, v := range values {
		f.pushed[key] = append(f.pushed[key], v.([]byte))
	}
	return redis.NewIntResult(int64(len(f.pushed[key])), nil)
}

func TestEventSinkPushesRecords(t *testing.T) {
	p := &fakePusher{}
	sink := NewEventSink(p, "", logrus.New())
	ev := event.Event{
		ID:        uuid.New(),
		GameID:    uuid.New(),
		Seq:       4,
		Type:      event.TypeDiceRoll,
		Timestamp: 1700000000000,
		Payload:   event.DiceRoll{Dice1: 3, Dice2: 5},
	}
	sink.Deliver(ev)

	require.Len(t, p.pushed[DefaultQueueName], 1)
	var rec EventRecord
	require.NoError(t, json.Unmarshal(p.pushed[DefaultQueueName][0], &rec))
	assert.Equal(t, ev.ID, rec.EventID)
	assert.Equal(t, ev.GameID, rec.GameID)
	assert.Equal(t, 4, rec.Seq)
	assert.Equal(t, "dice_roll", rec.Type)
	assert.JSONEq(t, `{"dice_1":3,"dice_2":5}`, string(rec.Payload))
}

func TestPublishEventError(t *testing.T) {
	p := &fakePusher{err: errors.New("connection refused")}
	err := PublishEvent(context.Background(), p, "q", EventRecord{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RPush")

	// the sink only logs
	NewEventSink(p, "q", logrus.New()).Deliver(event.Event{Type: event.TypeMove})
}
