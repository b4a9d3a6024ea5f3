package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/didyoufeelit/internal/domain"
	"github.com/couchcryptid/didyoufeelit/internal/observability"
)

// RequestURL queries the USGS feed for earthquakes felt by at least 50
// people with magnitude 5 or more between 2016-01-01 and 2016-05-02.
const RequestURL = "https://earthquake.usgs.gov/fdsnws/event/1/query?format=geojson&starttime=2016-01-01&endtime=2016-05-02&minfelt=50&minmagnitude=5"

// Fetcher retrieves one earthquake. Failures come back inside the Result and
// are expected to be logged by the fetcher.
type Fetcher interface {
	FetchResult(ctx context.Context, rawURL string) domain.Result
}

// Sink receives the event once the screen has shown it.
type Sink interface {
	Publish(ctx context.Context, event domain.Event) error
}

// State is the screen's lifecycle position.
type State string

const (
	StatePending State = "pending"
	StateSettled State = "settled"
)

// Status describes the screen at one point in time.
type Status struct {
	State     State     `json:"state"`
	Shown     bool      `json:"shown"`
	Reason    string    `json:"reason,omitempty"`
	SettledAt time.Time `json:"settled_at,omitzero"`
}

// Controller runs the single fetch behind the screen and copies its result
// onto the display from the UI loop.
type Controller struct {
	fetcher Fetcher
	display Display
	loop    *Loop
	sink    Sink
	logger  *slog.Logger
	metrics *observability.Metrics

	started   atomic.Bool
	settled   chan struct{}
	published chan struct{}

	mu     sync.Mutex
	status Status
}

// New creates a Controller. Pass a nil sink to disable publishing.
func New(f Fetcher, d Display, loop *Loop, sink Sink, logger *slog.Logger, metrics *observability.Metrics) *Controller {
	return &Controller{
		fetcher:   f,
		display:   d,
		loop:      loop,
		sink:      sink,
		logger:    logger,
		metrics:   metrics,
		settled:   make(chan struct{}),
		published: make(chan struct{}),
		status:    Status{State: StatePending},
	}
}

// Start launches the fetch in the background and returns immediately. Only
// the first call does anything; it reports whether this call started it.
func (c *Controller) Start(ctx context.Context) bool {
	if !c.started.CompareAndSwap(false, true) {
		return false
	}
	c.metrics.ScreenSettled.Set(0)
	c.logger.Info("screen started", "url", RequestURL)

	task := Go(ctx, func(ctx context.Context) domain.Result {
		return c.fetcher.FetchResult(ctx, RequestURL)
	})
	task.Then(c.loop, func(r domain.Result) {
		c.settle(ctx, r)
	})
	return true
}

// settle runs on the UI loop.
func (c *Controller) settle(ctx context.Context, r domain.Result) {
	if r.OK() {
		c.updateUI(r.Event)
	}

	st := Status{
		State:     StateSettled,
		Shown:     r.OK(),
		SettledAt: r.SettledAt,
	}
	if !r.OK() {
		st.Reason = domain.Reason(r.Err)
	}
	c.mu.Lock()
	c.status = st
	c.mu.Unlock()

	c.metrics.ScreenSettled.Set(1)
	c.logger.Info("screen settled", "shown", r.OK(), "reason", domain.Reason(r.Err))
	close(c.settled)

	if !r.OK() || c.sink == nil {
		close(c.published)
		return
	}
	go func() {
		defer close(c.published)
		c.publish(ctx, r.Event)
	}()
}

func (c *Controller) updateUI(ev domain.Event) {
	c.display.SetTitle(ev.Title)
	c.display.SetNumberOfPeople(fmt.Sprintf(NumPeopleFeltIt, ev.NumOfPeople))
	c.display.SetPerceivedStrength(ev.PerceivedStrength)
}

func (c *Controller) publish(ctx context.Context, ev domain.Event) {
	if err := c.sink.Publish(ctx, ev); err != nil {
		c.metrics.PublishTotal.WithLabelValues("error").Inc()
		c.logger.Warn("publish event failed", "title", ev.Title, "error", err)
		return
	}
	c.metrics.PublishTotal.WithLabelValues("success").Inc()
}

// Settled is closed once the fetch has completed and the display has been
// updated (or deliberately left alone).
func (c *Controller) Settled() <-chan struct{} {
	return c.settled
}

// Published is closed once the shown event has been handed to the sink and
// the sink has returned. It is also closed at settle time when there is
// nothing to publish. Close the sink only after this fires.
func (c *Controller) Published() <-chan struct{} {
	return c.published
}

// Status returns the current screen status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// CheckReadiness returns nil once the screen has settled.
func (c *Controller) CheckReadiness(_ context.Context) error {
	select {
	case <-c.settled:
		return nil
	default:
		return errors.New("screen has not settled yet")
	}
}
