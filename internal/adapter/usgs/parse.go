package usgs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/couchcryptid/didyoufeelit/internal/domain"
)

// GeoJSON response types. Only the first feature's properties are read, so
// everything below the feature list stays raw until needed.

type featureCollection struct {
	Features *[]json.RawMessage `json:"features"`
}

type feature struct {
	Properties map[string]json.RawMessage `json:"properties"`
}

// ParseFeature extracts an Event from the first feature of a GeoJSON
// FeatureCollection. Features after the first are never decoded.
func ParseFeature(body []byte) (domain.Event, error) {
	var fc featureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		return domain.Event{}, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	if fc.Features == nil {
		return domain.Event{}, fmt.Errorf("%w: no features array", domain.ErrParse)
	}
	if len(*fc.Features) == 0 {
		return domain.Event{}, domain.ErrNoFeatures
	}

	var first feature
	if err := json.Unmarshal((*fc.Features)[0], &first); err != nil {
		return domain.Event{}, fmt.Errorf("%w: first feature: %w", domain.ErrParse, err)
	}
	if first.Properties == nil {
		return domain.Event{}, fmt.Errorf("%w: %w: properties", domain.ErrParse, domain.ErrMissingField)
	}

	title, err := propertyText(first.Properties, "title")
	if err != nil {
		return domain.Event{}, err
	}
	felt, err := propertyText(first.Properties, "felt")
	if err != nil {
		return domain.Event{}, err
	}
	cdi, err := propertyText(first.Properties, "cdi")
	if err != nil {
		return domain.Event{}, err
	}

	return domain.NewEvent(title, felt, cdi), nil
}

// propertyText returns a property as text. Strings are unquoted; numbers and
// booleans keep their literal JSON spelling; objects and arrays are compacted.
func propertyText(props map[string]json.RawMessage, key string) (string, error) {
	raw, ok := props[key]
	raw = bytes.TrimSpace(raw)
	if !ok || len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("%w: %w: %s", domain.ErrParse, domain.ErrMissingField, key)
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: %s: %w", domain.ErrParse, key, err)
		}
		return s, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", fmt.Errorf("%w: %s: %w", domain.ErrParse, key, err)
		}
		return buf.String(), nil
	default:
		return string(raw), nil
	}
}
