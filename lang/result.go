package lang

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ardnew/ams/log"
)

// Listener is notified once when a [Result] finishes.
// A returned error is logged and does not affect other listeners.
type Listener[T any] func(*Result[T]) error

// Result is the value produced by an [Executor].
//
// A Result is finished exactly once. Listeners added before it finishes run
// when it finishes; listeners added afterwards run immediately. Each listener
// runs exactly once, and a listener that fails or panics does not prevent the
// others from running.
type Result[T any] struct {
	value     T
	stop      *Node
	logger    log.Logger
	id        uuid.UUID
	listeners []Listener[T]
	mu        sync.Mutex
	finished  bool
}

func newResult[T any](logger log.Logger) *Result[T] {
	return &Result[T]{id: uuid.New(), logger: logger}
}

// ID identifies the execution that produced r.
func (r *Result[T]) ID() uuid.UUID { return r.id }

// Value returns the rendered value. It is the zero value until r finishes.
func (r *Result[T]) Value() T {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.value
}

// Stop returns the Stop that ended evaluation, or nil if evaluation ran to
// completion.
func (r *Result[T]) Stop() *Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stop
}

// Finished reports whether r has finished.
func (r *Result[T]) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.finished
}

// AddListener registers l. If r is already finished, l runs immediately.
func (r *Result[T]) AddListener(l Listener[T]) {
	if l == nil {
		return
	}

	r.mu.Lock()
	if !r.finished {
		r.listeners = append(r.listeners, l)
		r.mu.Unlock()

		return
	}
	r.mu.Unlock()

	r.notify(context.Background(), l)
}

// Finish stores the value and stop of r and notifies every pending
// listener. Only the first call has any effect.
func (r *Result[T]) Finish(ctx context.Context, value T, stop *Node) {
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()

		return
	}

	r.value, r.stop, r.finished = value, stop, true
	pending := r.listeners
	r.listeners = nil
	r.mu.Unlock()

	for _, l := range pending {
		r.notify(ctx, l)
	}
}

func (r *Result[T]) notify(ctx context.Context, l Listener[T]) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.WarnContext(
				ctx,
				"listener panicked",
				slog.String("result", r.id.String()),
				slog.Any("error", ErrListener.Wrap(fmt.Errorf("%v", p))),
			)
		}
	}()

	if err := l(r); err != nil {
		r.logger.WarnContext(
			ctx,
			"listener failed",
			slog.String("result", r.id.String()),
			slog.Any("error", ErrListener.Wrap(err)),
		)
	}
}
