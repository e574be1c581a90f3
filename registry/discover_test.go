package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePlugin(t *testing.T, root, device, manifest, content string) {
	t.Helper()

	dir := filepath.Join(root, device)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeFile(t, dir, manifest, content)
}

func TestDiscover(t *testing.T) {
	require := require.New(t)

	root := t.TempDir()

	writePlugin(t, root, "plz164w", "config.yaml", `
method: serial
serial_params:
  port: /dev/ttyUSB0
  baudrate: 9600
`)
	writePlugin(t, root, "IM3590", "config.json",
		`{"method": "socket", "socket_params": {"host": "10.0.0.2", "port": 5025}}`)
	writePlugin(t, root, "broken", "config.yaml", "method: [unclosed")

	// a subdirectory without a manifest is not a device
	require.NoError(os.MkdirAll(filepath.Join(root, "noconfig"), 0o755))
	// plain files in the plugins directory are ignored
	writeFile(t, root, "README.md", "plugins")

	r := NewRegistry()
	r.RegisterConstructor("plz164w", newTestDevice)

	require.NoError(r.Discover(root))

	t.Run("RegisteredDevices", func(t *testing.T) {
		// the broken candidate is skipped, the others registered
		require.Equal([]string{"im3590", "plz164w"}, r.Devices())
	})

	t.Run("ConstructorFromTable", func(t *testing.T) {
		desc, err := r.Lookup("plz164w")
		require.NoError(err)
		require.Equal(MethodSerial, desc.Config.Method)

		dev, err := r.Connect("plz164w")
		require.NoError(err)
		require.IsType(&testDevice{}, dev)
	})

	t.Run("GenericFallback", func(t *testing.T) {
		dev, err := r.Connect("im3590")
		require.NoError(err)
		require.IsType(&GenericDevice{}, dev)
	})

	t.Run("Rediscovery", func(t *testing.T) {
		// second scan leaves existing registrations untouched
		require.NoError(r.Discover(root))
		require.Equal([]string{"im3590", "plz164w"}, r.Devices())
	})
}

func TestDiscoverMissingDirectory(t *testing.T) {
	require := require.New(t)

	r := NewRegistry()
	err := r.Discover(filepath.Join(t.TempDir(), "does-not-exist"))
	require.ErrorIs(err, ErrConfig)
}

func TestDiscoverDoesNotOverrideExplicitRegistration(t *testing.T) {
	require := require.New(t)

	root := t.TempDir()
	writePlugin(t, root, "plz164w", "config.yaml", "method: socket\n")

	r := NewRegistry()
	static := &DeviceConfig{Method: MethodSerial, SerialParams: Params{"port": "/dev/ttyUSB1"}}
	require.True(r.Register("plz164w", newTestDevice, static))

	require.NoError(r.Discover(root))

	desc, err := r.Lookup("plz164w")
	require.NoError(err)
	require.Same(static, desc.Config)
}
