package transport

import (
	"errors"
	"fmt"

	"go.bug.st/serial"

	"github.com/instrhub/go-scpi/logger"
	"github.com/instrhub/go-scpi/scpi"
)

// DefaultBaudRate is the serial baud rate used when none is configured.
const DefaultBaudRate = 9600

// Serial is a scpi.Transport over a serial line.
type Serial struct {
	cfg      config
	portName string
	baudRate int
	logger   logger.Logger
	metrics  Metrics

	port serial.Port
}

var _ scpi.Transport = (*Serial)(nil)

// NewSerial creates a serial transport for the given port identifier
// (e.g. "/dev/ttyACM0" or "COM3") and baud rate. A baud rate of 0 selects
// DefaultBaudRate. The channel is not opened until Connect is called.
func NewSerial(portName string, baudRate int, opts ...Option) (*Serial, error) {
	if portName == "" {
		return nil, errors.New("serial port identifier is empty")
	}

	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if baudRate < 0 {
		return nil, fmt.Errorf("invalid baud rate %d", baudRate)
	}

	cfg := newConfig(DefaultSerialTerminator)
	for _, opt := range opts {
		if err := opt.apply(&cfg); err != nil {
			return nil, err
		}
	}

	return &Serial{
		cfg:      cfg,
		portName: portName,
		baudRate: baudRate,
		logger:   cfg.logger.With("transport", "serial", "port", portName),
	}, nil
}

// Metrics returns the transport I/O metrics.
func (s *Serial) Metrics() *Metrics {
	return &s.metrics
}

// Connect opens the serial port. It is a no-op when already connected.
func (s *Serial) Connect() error {
	if s.port != nil {
		return nil
	}

	port, err := serial.Open(s.portName, &serial.Mode{BaudRate: s.baudRate})
	if err != nil {
		return fmt.Errorf("%w: open serial port %s: %v", scpi.ErrIO, s.portName, err)
	}

	if err := port.SetReadTimeout(s.cfg.timeout); err != nil {
		_ = port.Close()
		return fmt.Errorf("%w: set serial read timeout: %v", scpi.ErrIO, err)
	}

	s.port = port
	s.metrics.incConnectCount()
	s.logger.Debug("serial port opened", "baud_rate", s.baudRate)

	return nil
}

// Disconnect closes the serial port. The handle is released even when the
// close fails; the failure is still returned.
func (s *Serial) Disconnect() error {
	if s.port == nil {
		return nil
	}

	err := s.port.Close()
	s.port = nil

	if err != nil {
		return fmt.Errorf("%w: close serial port: %v", scpi.ErrIO, err)
	}

	s.logger.Debug("serial port closed")

	return nil
}

// IsConnected reports whether the serial port is open.
func (s *Serial) IsConnected() bool {
	return s.port != nil
}

// Write sends command with the configured terminator appended.
func (s *Serial) Write(command string) error {
	if s.port == nil {
		return fmt.Errorf("%w: serial port %s", scpi.ErrClosed, s.portName)
	}

	n, err := s.port.Write([]byte(command + s.cfg.terminator))
	if err != nil {
		s.metrics.incWriteErrCount()
		return wrapIOErr(err, "serial write")
	}
	s.metrics.addBytesWritten(n)

	return nil
}

// Read accumulates bytes until the terminator is seen at the tail of the
// buffer or the port stops delivering data.
//
// The backend reports a read timeout as a zero-length read: with nothing
// accumulated this surfaces as scpi.ErrTimeout, while a partial line is
// returned trimmed, matching line-read semantics on a timed serial port.
func (s *Serial) Read() (string, error) {
	if s.port == nil {
		return "", fmt.Errorf("%w: serial port %s", scpi.ErrClosed, s.portName)
	}

	var buf []byte
	chunk := make([]byte, 256)

	for {
		n, err := s.port.Read(chunk)
		if err != nil {
			s.metrics.incReadErrCount()
			return "", wrapIOErr(err, "serial read")
		}

		if n == 0 {
			if len(buf) == 0 {
				s.metrics.incReadErrCount()
				return "", fmt.Errorf("%w: serial read on %s", scpi.ErrTimeout, s.portName)
			}

			break
		}

		buf = append(buf, chunk[:n]...)
		s.metrics.addBytesRead(n)

		if hasTerminator(buf, s.cfg.terminator) {
			break
		}
	}

	return decodeLine(buf), nil
}

// Query performs Write followed immediately by Read.
func (s *Serial) Query(command string) (string, error) {
	if err := s.Write(command); err != nil {
		return "", err
	}

	return s.Read()
}
