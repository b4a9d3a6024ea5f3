package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	ev := NewEvent("M 5.0 - 10km SSE of X", "256", "6")

	assert.Equal(t, "M 5.0 - 10km SSE of X", ev.Title)
	assert.Equal(t, "256", ev.NumOfPeople)
	assert.Equal(t, "6", ev.PerceivedStrength)
	assert.Equal(t, ev, NewEvent("M 5.0 - 10km SSE of X", "256", "6"))
}

func TestResult_SettledAtUsesClock(t *testing.T) {
	at := time.Date(2016, time.April, 16, 23, 58, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })

	ok := Succeeded(NewEvent("t", "1", "2"))
	assert.True(t, ok.OK())
	assert.Equal(t, at, ok.SettledAt)

	failed := Failed(ErrEmptyBody)
	assert.False(t, failed.OK())
	assert.Equal(t, at, failed.SettledAt)
	assert.Equal(t, Event{}, failed.Event)
}

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"malformed url", fmt.Errorf("create url: %w", ErrMalformedURL), "malformed_url"},
		{"network", fmt.Errorf("%w: dial tcp: refused", ErrNetwork), "network"},
		{"status", fmt.Errorf("%w: 503", ErrStatus), "status"},
		{"empty body", ErrEmptyBody, "empty_body"},
		{"no features", ErrNoFeatures, "no_features"},
		{"parse", fmt.Errorf("%w: unexpected EOF", ErrParse), "parse"},
		{"missing field wins over parse", fmt.Errorf("%w: %w: cdi", ErrParse, ErrMissingField), "missing_field"},
		{"unknown", errors.New("boom"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reason(tt.err))
		})
	}
}
