package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/instrhub/go-scpi/scpi"
)

// Method selects the transport variant a device talks over.
type Method string

const (
	MethodSerial Method = "serial"
	MethodSocket Method = "socket"
	MethodVisa   Method = "visa"
)

// Params is a per-method transport parameter block. Values come from a device
// configuration file or from caller-supplied overrides.
type Params map[string]any

// DeviceConfig is the stored transport configuration of a device: the default
// method plus one parameter block per method.
//
// Config files may be YAML or JSON; JSON documents parse as YAML.
type DeviceConfig struct {
	Method       Method `yaml:"method"`
	SerialParams Params `yaml:"serial_params"`
	SocketParams Params `yaml:"socket_params"`
	VisaParams   Params `yaml:"visa_params"`
}

// ParamsFor returns the parameter block matching method, or nil for an
// unknown method.
func (c *DeviceConfig) ParamsFor(method Method) Params {
	switch method {
	case MethodSerial:
		return c.SerialParams
	case MethodSocket:
		return c.SocketParams
	case MethodVisa:
		return c.VisaParams
	default:
		return nil
	}
}

// LoadDeviceConfig reads and parses a device configuration file.
func LoadDeviceConfig(path string) (*DeviceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read config %s: %v", ErrConfig, path, err)
	}

	var cfg DeviceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse config %s: %v", ErrConfig, path, err)
	}

	return &cfg, nil
}

// mergeParams overlays overrides onto base; an override wins on key
// collision. A terminator value among the merged parameters is normalized
// through the logical-name table.
func mergeParams(base, overrides Params) Params {
	merged := make(Params, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}

	if term, ok := merged["terminator"].(string); ok {
		merged["terminator"] = scpi.ParseTerminator(term)
	}

	return merged
}
