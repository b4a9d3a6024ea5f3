package domain

import "errors"

var (
	ErrMalformedURL = errors.New("malformed url")
	ErrNetwork      = errors.New("network failure")
	ErrStatus       = errors.New("unexpected response status")
	ErrEmptyBody    = errors.New("empty response body")
	ErrParse        = errors.New("parse response")
	ErrNoFeatures   = errors.New("no features in response")
	ErrMissingField = errors.New("missing feature property")
)

// reasons is ordered so that the most specific sentinel wins when an error
// wraps more than one.
var reasons = []struct {
	err   error
	label string
}{
	{ErrMalformedURL, "malformed_url"},
	{ErrNetwork, "network"},
	{ErrStatus, "status"},
	{ErrEmptyBody, "empty_body"},
	{ErrNoFeatures, "no_features"},
	{ErrMissingField, "missing_field"},
	{ErrParse, "parse"},
}

// Reason returns a short, stable label for err. It returns "ok" for nil and
// "unknown" for errors outside the taxonomy.
func Reason(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.label
		}
	}
	return "unknown"
}
