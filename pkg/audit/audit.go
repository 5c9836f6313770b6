// Package audit records administrative catalog changes. Events are handed to
// an actor that writes them to a Sink one at a time, off the request path.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

type Event struct {
	Action   string
	Entity   string
	EntityID string
	Data     map[string]interface{}
	At       time.Time
}

type Sink interface {
	Write(ctx context.Context, e Event) error
}

// Recorder owns the actor system hosting the writer actor.
type Recorder struct {
	system *actor.ActorSystem
	pid    *actor.PID
	logger *zap.Logger

	// mu orders sends before the poison pill queued by Stop.
	mu      sync.RWMutex
	stopped bool
}

func NewRecorder(sink Sink, logger *zap.Logger) *Recorder {
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return &writerActor{sink: sink, logger: logger}
	})

	return &Recorder{
		system: system,
		pid:    system.Root.Spawn(props),
		logger: logger,
	}
}

// Record queues e for writing and returns immediately. Events recorded
// after Stop are dropped.
func (r *Recorder) Record(e Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		r.logger.Warn("Audit event dropped after stop",
			zap.String("action", e.Action),
			zap.String("entity", e.Entity))
		return
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	r.system.Root.Send(r.pid, &e)
}

// Stop waits for queued events to be written, then shuts the system down.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	if err := r.system.Root.PoisonFuture(r.pid).Wait(); err != nil {
		r.logger.Warn("Audit actor did not stop cleanly", zap.Error(err))
	}
	r.system.Shutdown()
}

type writerActor struct {
	sink   Sink
	logger *zap.Logger
}

func (a *writerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *Event:
		wctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := a.sink.Write(wctx, *msg); err != nil {
			a.logger.Error("Failed to write audit event",
				zap.String("action", msg.Action),
				zap.String("entity", msg.Entity),
				zap.String("entity_id", msg.EntityID),
				zap.Error(err))
		}

	case *actor.Started:
		a.logger.Debug("Audit actor started")

	case *actor.Stopping:
		a.logger.Debug("Audit actor stopping")
	}
}
