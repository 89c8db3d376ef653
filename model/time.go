package model

import (
	"fmt"
	"strings"
	"time"
)

// Granule metadata sources do not agree on one datetime format; the XML sidecar
// and the file attributes each use several. Parsing here is lenient and always
// yields UTC.

var granuleTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseGranuleTime is a drop-in replacement for time.Parse, matching against every known granule time format
func ParseGranuleTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range granuleTimeLayouts {
		if output, err := time.Parse(layout, value); err == nil {
			return output.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date could not be parsed by any expected time format: `%s`", ErrMalformedMetadata, value)
}

// FormatGranuleTime formats a datetime for output
func FormatGranuleTime(t time.Time) string {
	return t.UTC().Format(DatetimeFormat)
}
