package internal

import "github.com/starford/daybook/internal/clock"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	clock  clock.Clock
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithClock overrides the time source. Defaults to the system clock.
func WithClock(c clock.Clock) Option {
	return func(a *application) {
		a.clock = c
	}
}
