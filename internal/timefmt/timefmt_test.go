package timefmt

import (
	"strings"
	"testing"
	"time"
)

func TestToLocalDisplayConvertsIntoLocation(t *testing.T) {
	n := New(time.FixedZone("UTC+3", 3*60*60))

	got := n.ToLocalDisplay("2024-01-01T00:00:00Z")
	if got != "1/1/2024, 03:00" {
		t.Fatalf("unexpected display form: %q", got)
	}
}

func TestToLocalDisplayDropsSeconds(t *testing.T) {
	n := New(time.FixedZone("UTC-5", -5*60*60))

	got := n.ToLocalDisplay("2024-06-15T19:45:30Z")
	if got != "15/6/2024, 14:45" {
		t.Fatalf("unexpected display form: %q", got)
	}
	if strings.Contains(got, "45:30") {
		t.Fatalf("seconds leaked into display form: %q", got)
	}
}

func TestToLocalDisplayWireVariants(t *testing.T) {
	n := New(time.UTC)

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"rfc3339 offset", "2024-03-10T12:30:00+00:00", "10/3/2024, 12:30"},
		{"fractional", "2024-03-10T12:30:00.123456Z", "10/3/2024, 12:30"},
		{"no zone suffix", "2024-03-10T12:30:00", "10/3/2024, 12:30"},
		{"unix millis", "1710073800000", "10/3/2024, 12:30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := n.ToLocalDisplay(tc.in); got != tc.want {
				t.Fatalf("ToLocalDisplay(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestToLocalDisplayMalformedFallsBackVerbatim(t *testing.T) {
	n := New(time.UTC)

	for _, in := range []string{"not-a-time", "2024-13-45T99:99:99Z", "garbage 12:00"} {
		got := n.ToLocalDisplay(in)
		if got != in {
			t.Fatalf("expected verbatim fallback for %q, got %q", in, got)
		}
		if got == "" {
			t.Fatal("fallback must be a non-empty string")
		}
	}
}

func TestToLocalDisplayIsDeterministic(t *testing.T) {
	n := New(time.FixedZone("UTC+1", 60*60))

	first := n.ToLocalDisplay("2024-01-01T10:00:00Z")
	for i := 0; i < 5; i++ {
		if got := n.ToLocalDisplay("2024-01-01T10:00:00Z"); got != first {
			t.Fatalf("non-deterministic output: %q vs %q", got, first)
		}
	}
}

func TestNowWireIsParseableUTC(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, NowWire())
	if err != nil {
		t.Fatalf("NowWire produced unparseable instant: %v", err)
	}
	if time.Since(ts) > time.Minute {
		t.Fatalf("NowWire too far in the past: %v", ts)
	}
}
