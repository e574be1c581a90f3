package transport

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/instrhub/go-scpi/scpi"
)

func TestParseResource(t *testing.T) {
	require := require.New(t)

	t.Run("SocketResource", func(t *testing.T) {
		host, port, err := parseResource("TCPIP0::192.168.1.50::5025::SOCKET")
		require.NoError(err)
		require.Equal("192.168.1.50", host)
		require.Equal(5025, port)
	})

	t.Run("NoBoardIndex", func(t *testing.T) {
		host, port, err := parseResource("TCPIP::scope.lab.local::5025::SOCKET")
		require.NoError(err)
		require.Equal("scope.lab.local", host)
		require.Equal(5025, port)
	})

	t.Run("LowercaseSuffix", func(t *testing.T) {
		_, port, err := parseResource("TCPIP0::192.168.1.50::5025::socket")
		require.NoError(err)
		require.Equal(5025, port)
	})

	t.Run("BareHostPort", func(t *testing.T) {
		host, port, err := parseResource("192.168.1.50:5025")
		require.NoError(err)
		require.Equal("192.168.1.50", host)
		require.Equal(5025, port)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, _, err := parseResource("TCPIP0::192.168.1.50::INSTR")
		require.Error(err)

		_, _, err = parseResource("GPIB0::7::INSTR")
		require.Error(err)

		_, _, err = parseResource("TCPIP0::192.168.1.50::notaport::SOCKET")
		require.Error(err)

		_, _, err = parseResource("just-a-host")
		require.Error(err)
	})
}

func TestVisa(t *testing.T) {
	require := require.New(t)

	t.Run("QueryRoundtrip", func(t *testing.T) {
		host, port := startServer(t, lineEcho("ACME,MODEL1,SN42,1.0\n"))

		v, err := NewVisa(fmt.Sprintf("TCPIP0::%s::%d::SOCKET", host, port))
		require.NoError(err)

		require.NoError(v.Connect())
		require.True(v.IsConnected())
		defer v.Disconnect() //nolint:errcheck

		resp, err := v.Query("*IDN?")
		require.NoError(err)
		require.Equal("ACME,MODEL1,SN42,1.0", resp)
	})

	t.Run("TimeoutConvertedToMilliseconds", func(t *testing.T) {
		host, port := startServer(t, lineEcho("ok\n"))

		v, err := NewVisa(fmt.Sprintf("%s:%d", host, port), WithTimeout(2500*time.Millisecond))
		require.NoError(err)

		require.NoError(v.Connect())
		defer v.Disconnect() //nolint:errcheck

		require.Equal(2500, v.timeoutMs)
	})

	t.Run("ConnectIdempotent", func(t *testing.T) {
		host, port := startServer(t, lineEcho("ok\n"))

		v, err := NewVisa(fmt.Sprintf("%s:%d", host, port))
		require.NoError(err)

		require.NoError(v.Connect())
		require.NoError(v.Connect())
		require.Equal(uint64(1), v.Metrics().ConnectCount.Load())
		require.NoError(v.Disconnect())
	})

	t.Run("BadResourceOnConnect", func(t *testing.T) {
		v, err := NewVisa("GPIB0::7::INSTR")
		require.NoError(err)

		err = v.Connect()
		require.ErrorIs(err, scpi.ErrIO)
		require.False(v.IsConnected())
	})

	t.Run("NotConnected", func(t *testing.T) {
		v, err := NewVisa("TCPIP0::127.0.0.1::5025::SOCKET")
		require.NoError(err)

		require.ErrorIs(v.Write("*RST"), scpi.ErrClosed)

		_, err = v.Read()
		require.ErrorIs(err, scpi.ErrClosed)
	})

	t.Run("DisconnectNeverConnected", func(t *testing.T) {
		v, err := NewVisa("TCPIP0::127.0.0.1::5025::SOCKET")
		require.NoError(err)
		require.NoError(v.Disconnect())
		require.False(v.IsConnected())
	})

	t.Run("EmptyAddress", func(t *testing.T) {
		_, err := NewVisa("")
		require.Error(err)
	})
}
