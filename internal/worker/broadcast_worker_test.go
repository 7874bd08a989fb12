package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/stemsi/roster-mahasiswa/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	mu   sync.Mutex
	msgs []websocket.SnapshotResponse
}

func (f *fakeBroadcaster) Broadcast(v interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, v.(websocket.SnapshotResponse))
}

func (f *fakeBroadcaster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func event(t model.RosterEventType, total int) model.RosterEvent {
	return model.RosterEvent{Type: t, Snapshot: model.RosterSnapshot{Stats: model.RosterStats{Total: total}}}
}

func TestBroadcastWorkerDelivers(t *testing.T) {
	out := &fakeBroadcaster{}
	w := NewBroadcastWorker(out, 4, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Publish(event(model.RosterEventAdded, 1))
	w.Publish(event(model.RosterEventRemoved, 0))

	require.Eventually(t, func() bool { return out.count() == 2 }, time.Second, 5*time.Millisecond)
	out.mu.Lock()
	defer out.mu.Unlock()
	assert.Equal(t, model.RosterEventAdded, out.msgs[0].Cause)
	assert.Equal(t, model.RosterEventRemoved, out.msgs[1].Cause)
	assert.Equal(t, websocket.EventSnapshot, out.msgs[1].Event)
}

func TestBroadcastWorkerDropsWhenFull(t *testing.T) {
	out := &fakeBroadcaster{}
	w := NewBroadcastWorker(out, 1, zerolog.Nop())

	w.Publish(event(model.RosterEventAdded, 1))
	w.Publish(event(model.RosterEventAdded, 2))

	assert.Len(t, w.events, 1)
}

func TestBroadcastWorkerDrainsOnStop(t *testing.T) {
	out := &fakeBroadcaster{}
	w := NewBroadcastWorker(out, 4, zerolog.Nop())
	w.Publish(event(model.RosterEventAdded, 1))
	w.Publish(event(model.RosterEventCleared, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	assert.Equal(t, 2, out.count())
}
