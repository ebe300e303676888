// Package timefmt converts server-supplied UTC instants into the viewer's
// local display form. Conversion happens only at render time; the wire
// representation stays UTC everywhere else.
package timefmt

import (
	"strconv"
	"time"
)

// displayLayout matches the original presentation: numeric date, 24-hour
// clock, minute precision.
const displayLayout = "2/1/2006, 15:04"

var wireLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
}

// Normalizer formats wire instants in a fixed location. The zero value is
// not usable; construct with New.
type Normalizer struct {
	loc *time.Location
}

// New returns a Normalizer rendering into loc. A nil loc means the
// process-local timezone. The location is injected so tests stay
// deterministic regardless of the host timezone.
func New(loc *time.Location) Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return Normalizer{loc: loc}
}

// ToLocalDisplay converts a UTC wire instant to its local display string.
// Accepted wire forms are RFC3339 (with or without fractional seconds or
// zone suffix) and unix milliseconds. Malformed input is returned verbatim
// rather than failing: a bad timestamp must never take down the rendering
// pipeline.
func (n Normalizer) ToLocalDisplay(instant string) string {
	for _, layout := range wireLayouts {
		if t, err := time.ParseInLocation(layout, instant, time.UTC); err == nil {
			return t.In(n.loc).Format(displayLayout)
		}
	}

	if ms, err := strconv.ParseInt(instant, 10, 64); err == nil {
		return time.UnixMilli(ms).In(n.loc).Format(displayLayout)
	}

	return instant
}

// NowWire returns the current instant in the wire representation. Used for
// the optimistic local echo of an outgoing message.
func NowWire() string {
	return time.Now().UTC().Format(time.RFC3339)
}
