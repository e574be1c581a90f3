package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/instrhub/go-scpi/logger"
	"github.com/instrhub/go-scpi/scpi"
)

// Visa is a scpi.Transport addressed by a VISA resource string and carried
// over a raw TCP session, so no vendor VISA runtime is required.
//
// Supported resource forms:
//
//	TCPIP[board]::<host>::<port>::SOCKET
//	<host>:<port>
//
// The configured timeout is stored in seconds and converted to the backend's
// native unit, integer milliseconds, at connect time.
type Visa struct {
	cfg     config
	address string
	logger  logger.Logger
	metrics Metrics

	timeoutMs int
	conn      net.Conn
	reader    *bufio.Reader
}

var _ scpi.Transport = (*Visa)(nil)

// NewVisa creates a VISA resource transport for the given resource address.
// The resource is not opened until Connect is called.
func NewVisa(address string, opts ...Option) (*Visa, error) {
	if address == "" {
		return nil, errors.New("resource address is empty")
	}

	cfg := newConfig(DefaultVisaTerminator)
	for _, opt := range opts {
		if err := opt.apply(&cfg); err != nil {
			return nil, err
		}
	}

	return &Visa{
		cfg:     cfg,
		address: address,
		logger:  cfg.logger.With("transport", "visa", "address", address),
	}, nil
}

// Metrics returns the transport I/O metrics.
func (v *Visa) Metrics() *Metrics {
	return &v.metrics
}

// parseResource extracts host and TCP port from a VISA resource address.
func parseResource(address string) (string, int, error) {
	if strings.Contains(address, "::") {
		parts := strings.Split(address, "::")
		if len(parts) == 4 &&
			strings.HasPrefix(strings.ToUpper(parts[0]), "TCPIP") &&
			strings.EqualFold(parts[3], "SOCKET") {
			port, err := strconv.Atoi(parts[2])
			if err != nil || port < 1 || port > 65535 {
				return "", 0, fmt.Errorf("invalid port in VISA resource %q", address)
			}

			return parts[1], port, nil
		}

		return "", 0, fmt.Errorf("unsupported VISA resource %q, expected TCPIP[board]::<host>::<port>::SOCKET", address)
	}

	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return "", 0, fmt.Errorf("invalid resource address %q: %v", address, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port in resource address %q", address)
	}

	return host, port, nil
}

// Connect resolves the resource address and dials the instrument.
// It is a no-op when already connected.
func (v *Visa) Connect() error {
	if v.conn != nil {
		return nil
	}

	host, port, err := parseResource(v.address)
	if err != nil {
		return fmt.Errorf("%w: %v", scpi.ErrIO, err)
	}

	// backend-native unit
	v.timeoutMs = int(v.cfg.timeout.Milliseconds())

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), v.opTimeout())
	if err != nil {
		return wrapIOErr(err, "open resource "+v.address)
	}

	v.conn = conn
	v.reader = bufio.NewReader(conn)
	v.metrics.incConnectCount()
	v.logger.Debug("visa resource opened", "timeout_ms", v.timeoutMs)

	return nil
}

func (v *Visa) opTimeout() time.Duration {
	return time.Duration(v.timeoutMs) * time.Millisecond
}

// Disconnect closes the resource session. The handle is released even when
// the close fails; the failure is still returned.
func (v *Visa) Disconnect() error {
	if v.conn == nil {
		return nil
	}

	err := v.conn.Close()
	v.conn = nil
	v.reader = nil

	if err != nil {
		return fmt.Errorf("%w: close resource: %v", scpi.ErrIO, err)
	}

	v.logger.Debug("visa resource closed")

	return nil
}

// IsConnected reports whether the resource session is open.
func (v *Visa) IsConnected() bool {
	return v.conn != nil
}

// Write sends command with the configured terminator appended.
func (v *Visa) Write(command string) error {
	if v.conn == nil {
		return fmt.Errorf("%w: resource %s", scpi.ErrClosed, v.address)
	}

	if err := v.conn.SetWriteDeadline(time.Now().Add(v.opTimeout())); err != nil {
		return wrapIOErr(err, "set write deadline")
	}

	n, err := v.conn.Write([]byte(command + v.cfg.terminator))
	if err != nil {
		v.metrics.incWriteErrCount()
		return wrapIOErr(err, "resource write")
	}
	v.metrics.addBytesWritten(n)

	return nil
}

// Read accumulates bytes until the terminator is seen at the tail of the
// buffer or the instrument closes the stream.
func (v *Visa) Read() (string, error) {
	if v.conn == nil {
		return "", fmt.Errorf("%w: resource %s", scpi.ErrClosed, v.address)
	}

	if err := v.conn.SetReadDeadline(time.Now().Add(v.opTimeout())); err != nil {
		return "", wrapIOErr(err, "set read deadline")
	}

	var buf []byte
	for {
		b, err := v.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			v.metrics.incReadErrCount()

			return "", wrapIOErr(err, "resource read")
		}

		buf = append(buf, b)
		v.metrics.addBytesRead(1)

		if hasTerminator(buf, v.cfg.terminator) {
			break
		}
	}

	return decodeLine(buf), nil
}

// Query performs Write followed immediately by Read.
func (v *Visa) Query(command string) (string, error) {
	if err := v.Write(command); err != nil {
		return "", err
	}

	return v.Read()
}
