package server

import (
	"errors"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxNameLength caps display names, in runes.
const MaxNameLength = 50

// ErrEmptyName is returned when nothing survives scrubbing.
var ErrEmptyName = errors.New("name is required")

// namePolicy strips all markup; display names are plain text only.
var namePolicy = bluemonday.StrictPolicy()

// ScrubName normalizes a submitted display name: markup removed, entities
// decoded first so nothing sneaks through pre-escaped, trimmed, uppercased
// and length-capped. Room codes and names are uppercase by convention.
func ScrubName(name string) (string, error) {
	decoded := html.UnescapeString(name)
	scrubbed := strings.TrimSpace(namePolicy.Sanitize(decoded))
	scrubbed = strings.ToUpper(scrubbed)

	if runes := []rune(scrubbed); len(runes) > MaxNameLength {
		scrubbed = string(runes[:MaxNameLength])
	}
	if scrubbed == "" {
		return "", ErrEmptyName
	}
	return scrubbed, nil
}
