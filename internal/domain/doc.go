// Package domain models a single felt-earthquake record from the USGS
// earthquake catalog.
//
// # Data Source
//
// Records come from the USGS FDSN event web service, queried in GeoJSON
// format (https://earthquake.usgs.gov/fdsnws/event/1/). The response is a
// FeatureCollection. Each feature is one earthquake, and the fields of
// interest live under "properties":
//
//	title  "M 5.0 - 10km SSE of X"  human-readable summary
//	felt   256                      number of "Did You Feel It?" responses
//	cdi    6.1                      Community Decimal Intensity
//
// # Text Conventions
//
// felt and cdi are numbers on the wire but are carried as text. Numbers keep
// their literal JSON spelling, so a cdi of 6.0 stays "6.0" and is never
// reformatted as "6". A null or absent property is treated as missing and
// fails the parse with [ErrMissingField]. This is stricter than a lenient
// string getter, which would render a JSON null as the four-letter text
// "null"; a label reading "null" is never produced.
//
// # Failure Reasons
//
// A fetch either yields an [Event] or fails with one of the sentinel errors
// declared in errors.go. [Reason] maps any such error to a short label used
// in logs and metrics. Failures are never shown to the user; the screen just
// keeps its default labels.
package domain
