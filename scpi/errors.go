package scpi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClosed indicates that an operation was attempted on a transport
	// that is not connected.
	ErrClosed = errors.New("connection closed")

	// ErrTimeout indicates that the transport backend reported a deadline
	// exceeded while connecting, writing, or reading.
	ErrTimeout = errors.New("operation timed out")

	// ErrIO indicates a transport backend failure other than a timeout.
	ErrIO = errors.New("i/o failure")

	// ErrProtocol indicates malformed data at the protocol layer, such as
	// an event status register reply that cannot be parsed.
	ErrProtocol = errors.New("protocol error")
)

// ErrCompletionTimeout indicates that the completion handshake did not
// observe the operation-complete bit within the configured timeout.
var ErrCompletionTimeout = errors.New("command did not complete in time")

// StatusError reports that the instrument raised one or more event status
// register error conditions while a safe operation was waiting for completion.
type StatusError struct {
	// Value is the raw 8-bit event status register value reported by the instrument.
	Value byte
	// Flags contains the decoded names of all conditions set in Value, lowest bit first.
	Flags []string
}

// NewStatusError creates a StatusError from a raw event status register value,
// decoding it into the named conditions.
func NewStatusError(value byte) *StatusError {
	return &StatusError{Value: value, Flags: DecodeESR(value)}
}

func (e *StatusError) Error() string {
	if len(e.Flags) == 0 {
		return fmt.Sprintf("scpi status error: ESR=%d (no error flags set)", e.Value)
	}

	return fmt.Sprintf("scpi status error: ESR=%d (flags: %s)", e.Value, strings.Join(e.Flags, ", "))
}

// ParseError reports that an event status register reply could not be parsed
// as an integer. Raw preserves the reply text as received.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse ESR value: %q", e.Raw)
}

// Unwrap makes ParseError match ErrProtocol with errors.Is.
func (e *ParseError) Unwrap() error {
	return ErrProtocol
}
