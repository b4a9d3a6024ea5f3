package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/didyoufeelit/internal/adapter/usgs"
	"github.com/couchcryptid/didyoufeelit/internal/domain"
	"github.com/couchcryptid/didyoufeelit/internal/observability"
	"github.com/couchcryptid/didyoufeelit/internal/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usgsOrigin = "https://earthquake.usgs.gov"

const feltResponse = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"title": "M 5.0 - 10km SSE of X", "felt": "256", "cdi": "6"}},
    {"type": "Feature", "properties": {"title": "M 6.1 - somewhere else", "felt": "12", "cdi": "3"}}
  ]
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// redirectFetcher points the fixed USGS request URL at a local fake.
type redirectFetcher struct {
	client *usgs.Client
	base   string
}

func (f redirectFetcher) FetchResult(ctx context.Context, rawURL string) domain.Result {
	return f.client.FetchResult(ctx, strings.Replace(rawURL, usgsOrigin, f.base, 1))
}

func fakeUSGS(t *testing.T, status int, body string) (*httptest.Server, *atomic.Value) {
	t.Helper()
	gotQuery := &atomic.Value{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Path + "?" + r.URL.RawQuery)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, gotQuery
}

func runScreen(t *testing.T, srv *httptest.Server, defaults screen.LabelSnapshot) (*screen.Controller, *screen.Labels) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	client := usgs.NewClient(time.Second, time.Second, metrics, discardLogger())
	labels := screen.NewLabels(defaults)
	loop := screen.NewLoop(4)

	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})

	c := screen.New(redirectFetcher{client: client, base: srv.URL}, labels, loop, nil, discardLogger(), metrics)
	require.True(t, c.Start(ctx))

	select {
	case <-c.Settled():
	case <-time.After(5 * time.Second):
		t.Fatal("screen did not settle")
	}
	return c, labels
}

func TestScreenEndToEnd_ShowsFirstFeature(t *testing.T) {
	srv, gotQuery := fakeUSGS(t, http.StatusOK, feltResponse)

	c, labels := runScreen(t, srv, screen.LabelSnapshot{})

	assert.Equal(t, "/fdsnws/event/1/query?format=geojson&starttime=2016-01-01&endtime=2016-05-02&minfelt=50&minmagnitude=5", gotQuery.Load())
	assert.Equal(t, screen.LabelSnapshot{
		Title:             "M 5.0 - 10km SSE of X",
		NumberOfPeople:    "Number of people who felt it: 256",
		PerceivedStrength: "6",
	}, labels.Snapshot())
	assert.True(t, c.Status().Shown)
}

func TestScreenEndToEnd_FailureKeepsDefaults(t *testing.T) {
	defaults := screen.LabelSnapshot{Title: "Title", NumberOfPeople: "", PerceivedStrength: "?"}
	srv, _ := fakeUSGS(t, http.StatusBadGateway, feltResponse)

	c, labels := runScreen(t, srv, defaults)

	assert.Equal(t, defaults, labels.Snapshot())
	assert.False(t, c.Status().Shown)
	assert.Equal(t, "status", c.Status().Reason)
}
