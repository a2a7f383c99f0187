package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format for date-only fields
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returning the default on error
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a date-only string in DateLayout
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
