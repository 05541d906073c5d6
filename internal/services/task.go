package services

import (
	"context"
	"sync"

	"alfredoptarigan/career-architect/internal/models"
)

// Task is a cancellable future for one unit of asynchronous work.
type Task[T any] struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	value T
	err   error
}

type AnalysisTask = Task[*models.ArchitectResponse]

func NewTask[T any](parent context.Context) *Task[T] {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Task[T]{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Go starts fn in its own goroutine.
func Go[T any](parent context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	t := NewTask[T](parent)
	go t.Run(fn)
	return t
}

// Run executes fn on the calling goroutine. Only the first call has any
// effect.
func (t *Task[T]) Run(fn func(ctx context.Context) (T, error)) {
	t.once.Do(func() {
		defer close(t.done)
		defer t.cancel()
		t.value, t.err = fn(t.ctx)
	})
}

func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

func (t *Task[T]) Cancel() {
	t.cancel()
}

// Wait blocks until the task settles or ctx ends. Giving up on the wait
// does not cancel the task.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Settled reports whether the task has finished.
func (t *Task[T]) Settled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
