package screen

import (
	"context"
	"sync"
)

// Loop is a single-goroutine executor. Everything posted to it runs in order
// on the goroutine that called Run, so it plays the role of a UI thread:
// display widgets are only touched from inside posted functions.
type Loop struct {
	queue    chan func()
	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop whose queue holds up to buffer pending functions
// before Post blocks.
func NewLoop(buffer int) *Loop {
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. It returns false if the loop has already stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted functions until ctx is cancelled. Functions still
// queued at that point are dropped.
func (l *Loop) Run(ctx context.Context) {
	defer l.doneOnce.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
