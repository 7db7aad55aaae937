package elm

import (
	"time"

	"go.uber.org/zap"
)

// Config tunes the engine and the initialization sequence. The zero value is
// usable; setDefaults fills in conservative constants.
type Config struct {
	// ReadTimeout is the per-attempt deadline for observing the prompt.
	ReadTimeout time.Duration
	// Attempts is the total number of send attempts (first try included).
	Attempts uint
	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration
	// SettleDelay is how long the interpreter is given to come back up after
	// a reset before the next command is sent.
	SettleDelay time.Duration
	// Headers selects whether ECU headers are kept in responses (ATH1).
	Headers bool
	// Logger receives wire-level traffic at debug level.
	Logger *zap.Logger
}

func (c *Config) setDefaults() {
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 500 * time.Millisecond
	}
	if c.Attempts == 0 {
		c.Attempts = 3
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = 100 * time.Millisecond
	}
	if c.SettleDelay == 0 {
		c.SettleDelay = 500 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}
