package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDeviceConfig(t *testing.T) {
	require := require.New(t)

	t.Run("YAML", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "config.yaml", `
method: serial
serial_params:
  port: /dev/ttyUSB0
  baudrate: 9600
  timeout: 1.0
  terminator: CRLF
`)

		cfg, err := LoadDeviceConfig(path)
		require.NoError(err)
		require.Equal(MethodSerial, cfg.Method)

		port, ok := cfg.SerialParams["port"]
		require.True(ok)
		require.Equal("/dev/ttyUSB0", port)
	})

	t.Run("JSONParsesAsYAML", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "config.json",
			`{"method": "socket", "socket_params": {"host": "127.0.0.1", "port": 5025, "timeout": 0.5}}`)

		cfg, err := LoadDeviceConfig(path)
		require.NoError(err)
		require.Equal(MethodSocket, cfg.Method)
		require.Equal(5025, cfg.SocketParams["port"])
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := LoadDeviceConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(err, ErrConfig)
	})

	t.Run("Malformed", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "config.yaml", "method: [unclosed")

		_, err := LoadDeviceConfig(path)
		require.ErrorIs(err, ErrConfig)
	})
}

func TestParamsFor(t *testing.T) {
	require := require.New(t)

	cfg := &DeviceConfig{
		Method:       MethodSocket,
		SerialParams: Params{"port": "/dev/ttyUSB0"},
		SocketParams: Params{"host": "10.0.0.2"},
		VisaParams:   Params{"address": "TCPIP0::10.0.0.2::5025::SOCKET"},
	}

	require.Equal(Params{"port": "/dev/ttyUSB0"}, cfg.ParamsFor(MethodSerial))
	require.Equal(Params{"host": "10.0.0.2"}, cfg.ParamsFor(MethodSocket))
	require.Equal(Params{"address": "TCPIP0::10.0.0.2::5025::SOCKET"}, cfg.ParamsFor(MethodVisa))
	require.Nil(cfg.ParamsFor("bogus"))
}

func TestMergeParams(t *testing.T) {
	require := require.New(t)

	t.Run("OverrideWins", func(t *testing.T) {
		base := Params{"baudrate": 9600, "port": "/dev/ttyUSB0"}
		merged := mergeParams(base, Params{"baudrate": 115200})

		require.Equal(115200, merged["baudrate"])
		require.Equal("/dev/ttyUSB0", merged["port"])
		// base untouched
		require.Equal(9600, base["baudrate"])
	})

	t.Run("TerminatorNormalized", func(t *testing.T) {
		merged := mergeParams(Params{"terminator": "CRLF"}, nil)
		require.Equal("\r\n", merged["terminator"])

		merged = mergeParams(nil, Params{"terminator": "lf"})
		require.Equal("\n", merged["terminator"])

		// unrecognized terminators pass through unchanged
		merged = mergeParams(nil, Params{"terminator": ";"})
		require.Equal(";", merged["terminator"])
	})

	t.Run("NilBlocks", func(t *testing.T) {
		require.Empty(mergeParams(nil, nil))
	})
}
