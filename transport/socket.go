package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/instrhub/go-scpi/logger"
	"github.com/instrhub/go-scpi/scpi"
)

// Socket is a scpi.Transport over a TCP connection.
type Socket struct {
	cfg     config
	host    string
	port    int
	logger  logger.Logger
	metrics Metrics

	conn   net.Conn
	reader *bufio.Reader
}

var _ scpi.Transport = (*Socket)(nil)

// NewSocket creates a TCP socket transport for the given host and port.
// The connection is not established until Connect is called.
func NewSocket(host string, port int, opts ...Option) (*Socket, error) {
	if host == "" {
		return nil, errors.New("host is empty")
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("port %d is out of range [1, 65535]", port)
	}

	cfg := newConfig(DefaultSocketTerminator)
	for _, opt := range opts {
		if err := opt.apply(&cfg); err != nil {
			return nil, err
		}
	}

	return &Socket{
		cfg:    cfg,
		host:   host,
		port:   port,
		logger: cfg.logger.With("transport", "socket", "host", host, "port", port),
	}, nil
}

// Metrics returns the transport I/O metrics.
func (s *Socket) Metrics() *Metrics {
	return &s.metrics
}

func (s *Socket) addr() string {
	return net.JoinHostPort(s.host, strconv.Itoa(s.port))
}

// Connect dials the remote endpoint. It is a no-op when already connected.
func (s *Socket) Connect() error {
	if s.conn != nil {
		return nil
	}

	conn, err := net.DialTimeout("tcp", s.addr(), s.cfg.timeout)
	if err != nil {
		return wrapIOErr(err, "dial "+s.addr())
	}

	s.conn = conn
	s.reader = bufio.NewReader(conn)
	s.metrics.incConnectCount()
	s.logger.Debug("socket connected")

	return nil
}

// Disconnect closes the connection. The handle is released even when the
// close fails; the failure is still returned.
func (s *Socket) Disconnect() error {
	if s.conn == nil {
		return nil
	}

	err := s.conn.Close()
	s.conn = nil
	s.reader = nil

	if err != nil {
		return fmt.Errorf("%w: close socket: %v", scpi.ErrIO, err)
	}

	s.logger.Debug("socket disconnected")

	return nil
}

// IsConnected reports whether the connection is established.
func (s *Socket) IsConnected() bool {
	return s.conn != nil
}

// Write sends command with the configured terminator appended, under a write
// deadline derived from the configured timeout.
func (s *Socket) Write(command string) error {
	if s.conn == nil {
		return fmt.Errorf("%w: socket %s", scpi.ErrClosed, s.addr())
	}

	if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.timeout)); err != nil {
		return wrapIOErr(err, "set write deadline")
	}

	n, err := s.conn.Write([]byte(command + s.cfg.terminator))
	if err != nil {
		s.metrics.incWriteErrCount()
		return wrapIOErr(err, "socket write")
	}
	s.metrics.addBytesWritten(n)

	return nil
}

// Read accumulates bytes until the terminator is seen at the tail of the
// buffer or the peer closes the stream. The configured timeout bounds the
// whole read as a deadline on the connection.
func (s *Socket) Read() (string, error) {
	if s.conn == nil {
		return "", fmt.Errorf("%w: socket %s", scpi.ErrClosed, s.addr())
	}

	if err := s.conn.SetReadDeadline(time.Now().Add(s.cfg.timeout)); err != nil {
		return "", wrapIOErr(err, "set read deadline")
	}

	var buf []byte
	for {
		b, err := s.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			s.metrics.incReadErrCount()

			return "", wrapIOErr(err, "socket read")
		}

		buf = append(buf, b)
		s.metrics.addBytesRead(1)

		if hasTerminator(buf, s.cfg.terminator) {
			break
		}
	}

	return decodeLine(buf), nil
}

// Query performs Write followed immediately by Read.
func (s *Socket) Query(command string) (string, error) {
	if err := s.Write(command); err != nil {
		return "", err
	}

	return s.Read()
}
