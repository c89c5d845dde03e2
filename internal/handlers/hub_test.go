// internal/handlers/hub_test.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/jason-s-yu/monopoly/internal/event"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	frames [][]byte
	closed websocket.StatusCode
	err    error
}

func (f *fakeConn) Write(_ context.Context, _ websocket.MessageType, p []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, p)
	return nil
}

func (f *fakeConn) Close(code websocket.StatusCode, _ string) error {
	f.closed = code
	return nil
}

func TestHubBroadcasts(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := NewHub(uuid.New(), logger)
	a, b, broken := &fakeConn{}, &fakeConn{}, &fakeConn{err: errors.New("gone")}
	h.Add(a, 0)
	h.Add(b, 1)
	h.Add(broken, 2)
	require.Equal(t, 3, h.Count())

	h.Deliver(event.Event{Seq: 1, Type: event.TypeCurrentPlayer, Payload: event.Player{PlayerID: 1}})

	for _, c := range []*fakeConn{a, b} {
		require.Len(t, c.frames, 1)
		var ev map[string]interface{}
		require.NoError(t, json.Unmarshal(c.frames[0], &ev))
		assert.Equal(t, "current_player", ev["type"])
		assert.Equal(t, float64(1), ev["seq"])
	}

	h.Remove(b)
	h.Deliver(event.Event{Seq: 2, Type: event.TypeWaitForRoll})
	assert.Len(t, a.frames, 2)
	assert.Len(t, b.frames, 1)

	h.CloseAll(GameClosedError, "bye")
	assert.Equal(t, websocket.StatusCode(GameClosedError), a.closed)
	assert.Equal(t, 0, h.Count())
}
