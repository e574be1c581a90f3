// Package transport provides the concrete scpi.Transport implementations:
// a serial line (Serial), a TCP socket (Socket), and a VISA-style resource
// (Visa) carried over a raw TCP session.
//
// All three variants share the same behavior contract:
//   - Connect is idempotent and never leaves the handle partially open;
//     a failed open closes everything before returning.
//   - Disconnect is always safe to call and releases the handle even when
//     the underlying close fails.
//   - Write appends the configured terminator; Read accumulates bytes until
//     the terminator is seen at the tail of the buffer or the channel reports
//     end-of-stream, then strips trailing whitespace.
//   - Backend faults map onto the scpi error taxonomy: scpi.ErrClosed when
//     not connected, scpi.ErrTimeout on deadline expiry, scpi.ErrIO otherwise.
//
// A transport instance is owned by one logical caller at a time and is not
// safe for concurrent use. Each instrument gets its own instance.
package transport
