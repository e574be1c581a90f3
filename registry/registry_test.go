package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/instrhub/go-scpi/scpi"
)

type testDevice struct {
	engine *scpi.Engine
}

func newTestDevice(engine *scpi.Engine) Device {
	return &testDevice{engine: engine}
}

func (d *testDevice) SCPI() *scpi.Engine {
	return d.engine
}

func TestRegistryRegister(t *testing.T) {
	require := require.New(t)

	t.Run("FirstRegistrationWins", func(t *testing.T) {
		r := NewRegistry()

		require.True(r.Register("PLZ164W", newTestDevice, nil))
		// duplicate registration is a no-op, not an error
		require.False(r.Register("plz164w", NewGenericDevice, &DeviceConfig{Method: MethodSocket}))

		desc, err := r.Lookup("plz164w")
		require.NoError(err)
		require.Equal("plz164w", desc.Name)
		require.Nil(desc.Config)
	})

	t.Run("NameNormalized", func(t *testing.T) {
		r := NewRegistry()
		require.True(r.Register("  IM3590 ", nil, nil))

		desc, err := r.Lookup("im3590")
		require.NoError(err)
		require.Equal("im3590", desc.Name)
	})

	t.Run("NilConstructorFallsBackToGeneric", func(t *testing.T) {
		r := NewRegistry()
		require.True(r.Register("im3590", nil, nil))

		desc, err := r.Lookup("im3590")
		require.NoError(err)

		dev := desc.New(scpi.NewEngine(scpi.NewMockTransport()))
		require.IsType(&GenericDevice{}, dev)
	})

	t.Run("EmptyName", func(t *testing.T) {
		r := NewRegistry()
		require.False(r.Register("", nil, nil))
		require.Empty(r.Devices())
	})
}

func TestRegistryLookup(t *testing.T) {
	require := require.New(t)

	r := NewRegistry()
	require.True(r.Register("plz164w", newTestDevice, nil))
	require.True(r.Register("im3590", nil, nil))

	t.Run("Known", func(t *testing.T) {
		desc, err := r.Lookup("PLZ164W")
		require.NoError(err)
		require.Equal("plz164w", desc.Name)
	})

	t.Run("NotFoundEnumeratesKnownNames", func(t *testing.T) {
		_, err := r.Lookup("dmm6500")
		require.ErrorIs(err, ErrConfig)

		var notFound *NotFoundError
		require.ErrorAs(err, &notFound)
		require.Equal("dmm6500", notFound.Name)
		require.Equal([]string{"im3590", "plz164w"}, notFound.Known)
		require.Contains(err.Error(), "im3590")
		require.Contains(err.Error(), "plz164w")
	})
}

func TestRegistryDevices(t *testing.T) {
	require := require.New(t)

	r := NewRegistry()
	require.Empty(r.Devices())

	r.Register("zeta", nil, nil)
	r.Register("alpha", nil, nil)
	r.Register("mid", nil, nil)

	require.Equal([]string{"alpha", "mid", "zeta"}, r.Devices())
}
