package transport

import (
	"errors"
	"time"

	"github.com/instrhub/go-scpi/logger"
	"github.com/instrhub/go-scpi/scpi"
)

// DefaultTimeout is the connection and per-operation I/O timeout used when
// WithTimeout is not given.
const DefaultTimeout = 1 * time.Second

// Default line terminators per transport variant.
const (
	DefaultSerialTerminator = scpi.TermCRLF
	DefaultSocketTerminator = scpi.TermLF
	DefaultVisaTerminator   = scpi.TermLF
)

// config holds the parameters common to all transport variants.
type config struct {
	timeout    time.Duration
	terminator string
	logger     logger.Logger
}

func newConfig(terminator string) config {
	return config{
		timeout:    DefaultTimeout,
		terminator: terminator,
		logger:     logger.GetLogger(),
	}
}

// Option represents a functional option for configuring a transport variant.
type Option interface {
	apply(*config) error
}

type optFunc struct {
	name      string
	applyFunc func(*config) error
}

func (o *optFunc) apply(cfg *config) error { return o.applyFunc(cfg) }

func newOptFunc(name string, f func(*config) error) *optFunc {
	return &optFunc{name: name, applyFunc: f}
}

// WithTimeout sets the I/O timeout applied to connect, write, and read
// operations. It must be positive.
//
// The default is DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return newOptFunc("WithTimeout", func(cfg *config) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d

		return nil
	})
}

// WithTerminator sets the line terminator appended to outgoing commands and
// used to delimit incoming responses. The logical names "CR", "LF", "CRLF"
// and "LFCR" are normalized to their byte sequences; any other string is used
// literally.
func WithTerminator(term string) Option {
	return newOptFunc("WithTerminator", func(cfg *config) error {
		if term == "" {
			return errors.New("terminator must not be empty")
		}
		cfg.terminator = scpi.ParseTerminator(term)

		return nil
	})
}

// WithLogger sets the logger used by the transport.
//
// The default is the package-level logger.
func WithLogger(l logger.Logger) Option {
	return newOptFunc("WithLogger", func(cfg *config) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		cfg.logger = l

		return nil
	})
}
