// Package scpi provides the core building blocks for controlling laboratory
// instruments that speak SCPI (Standard Commands for Programmable Instruments)
// over a line-oriented text channel.
//
// Key Features:
//   - Transport Contract: a uniform connect/disconnect/write/read/query interface
//     implemented by the serial, socket, and VISA transports in the transport package.
//   - Protocol Engine: the standard IEEE 488.2 common command set (*IDN?, *RST,
//     *CLS, *TRG, ...) plus safe send/query operations that block until the
//     instrument confirms command completion via the *OPC / *ESR? handshake.
//   - Error Taxonomy: sentinel errors for connection-level faults (ErrClosed,
//     ErrTimeout, ErrIO, ErrProtocol) and typed errors for protocol-level faults
//     (StatusError with decoded event-status flags, ParseError for malformed
//     register replies).
//   - Status Register Decoding: translation of the 8-bit event status register
//     into the named conditions defined by IEEE 488.2.
//
// Usage Example:
//
//	func main() {
//	    sock, err := transport.NewSocket("192.168.1.50", 5025)
//	    // ... handle error ...
//	    engine := scpi.NewEngine(sock)
//
//	    err = scpi.WithConnection(sock, func() error {
//	        idn, err := engine.IDN()
//	        // ... handle error ...
//	        fmt.Println(idn)
//
//	        // Blocks until the instrument reports operation complete.
//	        return engine.Send("TRIG:SOUR BUS")
//	    })
//	    // ... handle error ...
//	}
package scpi
