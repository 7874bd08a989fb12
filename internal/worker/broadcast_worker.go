package worker

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/stemsi/roster-mahasiswa/internal/websocket"
)

// Broadcaster delivers a message to every live viewer.
type Broadcaster interface {
	Broadcast(v interface{})
}

// BroadcastWorker consumes roster events and pushes snapshots to live viewers.
// It implements service.Publisher.
type BroadcastWorker struct {
	events chan model.RosterEvent
	out    Broadcaster
	log    zerolog.Logger
}

// NewBroadcastWorker creates a new BroadcastWorker with a queue of size buffer.
func NewBroadcastWorker(out Broadcaster, buffer int, log zerolog.Logger) *BroadcastWorker {
	if buffer < 1 {
		buffer = 1
	}
	return &BroadcastWorker{
		events: make(chan model.RosterEvent, buffer),
		out:    out,
		log:    log.With().Str("component", "broadcast_worker").Logger(),
	}
}

// Publish enqueues event without blocking the caller. When the queue is full
// the event is dropped; the next one carries the full roster anyway.
func (w *BroadcastWorker) Publish(event model.RosterEvent) {
	select {
	case w.events <- event:
	default:
		w.log.Warn().Str("type", string(event.Type)).Msg("Event queue full, dropping event")
	}
}

// Start begins the worker loop. Call in a goroutine.
func (w *BroadcastWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain()
			w.log.Info().Msg("Worker stopped")
			return
		case event := <-w.events:
			w.deliver(event)
		}
	}
}

func (w *BroadcastWorker) deliver(event model.RosterEvent) {
	w.out.Broadcast(websocket.NewSnapshot(event.Type, event.Snapshot))
}

// drain delivers whatever is still queued before shutdown.
func (w *BroadcastWorker) drain() {
	drained := 0
	for {
		select {
		case event := <-w.events:
			w.deliver(event)
			drained++
		default:
			if drained > 0 {
				w.log.Info().Int("count", drained).Msg("Drained remaining events")
			}
			return
		}
	}
}
