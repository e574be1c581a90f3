package scpi

import "errors"

// Transport is a stateful handle to a line-oriented communication channel
// connecting the host to one instrument.
//
// A Transport is owned by exactly one logical caller at a time; it is NOT
// safe for concurrent use. Multiple instruments are modeled as independent
// Transport instances, each usable from its own goroutine without
// coordination between them.
type Transport interface {
	// Connect opens the underlying channel using the stored endpoint and
	// timeout parameters. It is a no-op if the channel is already open.
	// On backend failure it returns an error matching ErrIO and leaves the
	// handle fully closed, never partially open.
	Connect() error

	// Disconnect closes the channel if open. It is always safe to call,
	// including when never connected or already disconnected. The handle is
	// considered released afterwards even if the close itself failed; the
	// failure is still returned.
	Disconnect() error

	// Write appends the configured terminator to command and sends the bytes.
	// It returns ErrClosed when not connected, and an error matching
	// ErrTimeout or ErrIO on backend failure.
	Write(command string) error

	// Read blocks, accumulating bytes until the terminator sequence is seen
	// at the tail of the buffer or the channel reports end-of-stream, then
	// strips trailing whitespace and returns the decoded string. Bytes that
	// cannot be interpreted as text are dropped rather than failing the read.
	Read() (string, error)

	// Query performs Write followed immediately by Read. It is not atomic
	// across concurrent callers; the owner must serialize access.
	Query(command string) (string, error)

	// IsConnected reports whether the channel is open. It performs no I/O.
	IsConnected() bool
}

// WithConnection connects t, invokes fn, and disconnects on every exit path.
// The disconnect error, if any, is joined with fn's error.
func WithConnection(t Transport, fn func() error) (err error) {
	if err = t.Connect(); err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, t.Disconnect())
	}()

	return fn()
}
