package registry

import (
	"github.com/instrhub/go-scpi/scpi"
)

// Device is the contract every registered wrapper satisfies: access to the
// protocol engine carrying the standard command set. Wrapper types add their
// instrument-specific commands on top.
type Device interface {
	SCPI() *scpi.Engine
}

// NewDeviceFunc constructs a device wrapper around a protocol engine.
type NewDeviceFunc func(*scpi.Engine) Device

// GenericDevice is the wrapper used for devices discovered without a
// registered constructor; it exposes the standard command set only.
type GenericDevice struct {
	engine *scpi.Engine
}

// NewGenericDevice wraps an engine in a GenericDevice.
func NewGenericDevice(engine *scpi.Engine) Device {
	return &GenericDevice{engine: engine}
}

// SCPI returns the protocol engine.
func (d *GenericDevice) SCPI() *scpi.Engine {
	return d.engine
}
