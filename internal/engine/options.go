package engine

import "github.com/vantling/shipforge/internal/logging"

type config struct {
	log *logging.Logger
}

func defaultConfig() config {
	return config{log: logging.Null}
}

// Option configures an Engine at creation time.
type Option func(*config)

// WithLogger sets the diagnostics logger for the engine and its parts.
func WithLogger(log *logging.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}
