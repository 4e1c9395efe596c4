package helpers

import (
	"time"

	"github.com/yigit/institute/internal/pkg/logger"
)

// ParseDuration parses s, falling back to def (with a warning) when s is malformed
func ParseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Warn().Err(err).Str("value", s).Dur("default", def).Msg("Invalid duration, using default")
		return def
	}
	return d
}
