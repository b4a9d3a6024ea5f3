// Command quakecheck runs the fetch-and-parse step once and reports what the
// screen would show, or why it would show nothing.
//
// Usage:
//
//	go run ./cmd/quakecheck                      # live USGS query
//	go run ./cmd/quakecheck -url <query url>
//	go run ./cmd/quakecheck -file testdata/response.geojson
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/didyoufeelit/internal/adapter/usgs"
	"github.com/couchcryptid/didyoufeelit/internal/domain"
	"github.com/couchcryptid/didyoufeelit/internal/observability"
	"github.com/couchcryptid/didyoufeelit/internal/screen"
)

func main() {
	rawURL := flag.String("url", screen.RequestURL, "USGS query URL to fetch")
	file := flag.String("file", "", "parse a saved GeoJSON response instead of fetching")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	os.Exit(run(os.Stdout, *rawURL, *file, *timeout))
}

func run(w io.Writer, rawURL, file string, timeout time.Duration) int {
	event, err := check(rawURL, file, timeout)
	if err != nil {
		fmt.Fprintf(w, "no result (%s): %v\n", domain.Reason(err), err)
		return 1
	}

	d := screen.NewTerminalDisplay(w)
	d.SetTitle(event.Title)
	d.SetNumberOfPeople(fmt.Sprintf(screen.NumPeopleFeltIt, event.NumOfPeople))
	d.SetPerceivedStrength(event.PerceivedStrength)
	return 0
}

func check(rawURL, file string, timeout time.Duration) (domain.Event, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return domain.Event{}, err
		}
		if len(data) == 0 {
			return domain.Event{}, domain.ErrEmptyBody
		}
		return usgs.ParseFeature(data)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := usgs.NewClient(15*time.Second, 10*time.Second, observability.NewMetricsForTesting(), logger)
	return client.Fetch(ctx, rawURL)
}
