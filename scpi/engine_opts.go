package scpi

import (
	"time"

	"github.com/instrhub/go-scpi/logger"
)

// EngineOption customizes an Engine at construction time.
type EngineOption func(*Engine)

// WithLogger sets the logger used by the engine.
// The default is the package-level logger.
func WithLogger(l logger.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

type sendOptions struct {
	safe     bool
	timeout  time.Duration
	interval time.Duration
}

func newSendOptions(opts []SendOption) sendOptions {
	o := sendOptions{
		safe:     true,
		timeout:  DefaultCompletionTimeout,
		interval: DefaultPollInterval,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// SendOption customizes a single Send or Query invocation.
type SendOption func(*sendOptions)

// Unsafe skips the completion handshake; the operation returns as soon as the
// command bytes are written (and, for queries, the response is read).
func Unsafe() SendOption {
	return func(o *sendOptions) {
		o.safe = false
	}
}

// WithTimeout sets the wall-clock limit for the completion handshake.
// A zero duration disables the limit and polls until completion or error.
func WithTimeout(d time.Duration) SendOption {
	return func(o *sendOptions) {
		o.timeout = d
	}
}

// WithInterval sets the sleep between status register polls.
func WithInterval(d time.Duration) SendOption {
	return func(o *sendOptions) {
		if d > 0 {
			o.interval = d
		}
	}
}
