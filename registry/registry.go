package registry

import (
	"sort"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/instrhub/go-scpi/logger"
)

// Descriptor associates a device name with its wrapper constructor and stored
// transport configuration. Descriptors are immutable after registration.
type Descriptor struct {
	// Name is the lowercased unique device name.
	Name string
	// New constructs the device wrapper around a protocol engine.
	New NewDeviceFunc
	// Config is the stored transport configuration; nil when the device was
	// registered without one.
	Config *DeviceConfig
}

// Registry holds the known devices. It is read-mostly after registration and
// discovery complete, and safe for concurrent lookups.
type Registry struct {
	logger       logger.Logger
	constructors *xsync.MapOf[string, NewDeviceFunc]
	devices      *xsync.MapOf[string, *Descriptor]
}

// RegistryOption customizes a Registry at construction time.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for registration and discovery events.
// The default is the package-level logger.
func WithLogger(l logger.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger:       logger.GetLogger(),
		constructors: xsync.NewMapOf[string, NewDeviceFunc](),
		devices:      xsync.NewMapOf[string, *Descriptor](),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// normalizeName lowercases a device name; names are case-insensitive keys.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterConstructor adds a wrapper constructor to the registration table
// without creating a device entry. Discover uses the table to bind on-disk
// configurations to wrapper types.
func (r *Registry) RegisterConstructor(name string, fn NewDeviceFunc) {
	if fn == nil {
		return
	}

	r.constructors.LoadOrStore(normalizeName(name), fn)
}

// Register adds a device descriptor under the given name. The first
// registration wins; registering an already-known name is a no-op and
// returns false. A nil constructor registers a generic engine-only device.
func (r *Registry) Register(name string, fn NewDeviceFunc, cfg *DeviceConfig) bool {
	key := normalizeName(name)
	if key == "" {
		return false
	}

	if fn == nil {
		fn = NewGenericDevice
	}

	desc := &Descriptor{Name: key, New: fn, Config: cfg}

	if _, loaded := r.devices.LoadOrStore(key, desc); loaded {
		r.logger.Debug("device already registered, ignoring", "device", key)
		return false
	}

	r.constructors.LoadOrStore(key, fn)

	return true
}

// Lookup returns the descriptor registered under name. An unknown name yields
// a NotFoundError enumerating the currently known device names.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	desc, ok := r.devices.Load(normalizeName(name))
	if !ok {
		return nil, &NotFoundError{Name: name, Known: r.Devices()}
	}

	return desc, nil
}

// Devices returns the sorted list of registered device names.
func (r *Registry) Devices() []string {
	names := make([]string, 0, r.devices.Size())
	r.devices.Range(func(name string, _ *Descriptor) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)

	return names
}
