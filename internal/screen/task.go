package screen

import "context"

// Task is one unit of background work that produces a value exactly once.
type Task[T any] struct {
	done  chan struct{}
	value T
}

// Go starts fn on its own goroutine and returns a handle to its result.
func Go[T any](ctx context.Context, fn func(context.Context) T) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.value = fn(ctx)
	}()
	return t
}

// Done is closed once the task's value is available.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx is cancelled.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then schedules k on loop with the task's value once the task finishes.
// k runs at most once, and never if the loop stops first.
func (t *Task[T]) Then(loop *Loop, k func(T)) {
	go func() {
		select {
		case <-t.done:
		case <-loop.Done():
			return
		}
		loop.Post(func() { k(t.value) })
	}()
}
