package registry

import (
	"fmt"
	"strings"

	"github.com/instrhub/go-scpi/internal/util"
	"github.com/instrhub/go-scpi/scpi"
	"github.com/instrhub/go-scpi/transport"
)

type connectOptions struct {
	method    Method
	overrides Params
}

// ConnectOption customizes a single Connect invocation.
type ConnectOption func(*connectOptions)

// WithMethod overrides the transport method stored in the device
// configuration.
func WithMethod(m Method) ConnectOption {
	return func(o *connectOptions) {
		o.method = m
	}
}

// WithOverride overrides one transport parameter; it wins over the stored
// configuration on key collision.
func WithOverride(key string, value any) ConnectOption {
	return func(o *connectOptions) {
		o.overrides[key] = value
	}
}

// WithOverrides overrides multiple transport parameters at once.
func WithOverrides(params Params) ConnectOption {
	return func(o *connectOptions) {
		for k, v := range params {
			o.overrides[k] = v
		}
	}
}

// Connect resolves the named device, builds the transport from its stored
// configuration merged with the caller's overrides, and constructs the device
// wrapper around a protocol engine bound to that transport.
//
// The transport is returned unopened; callers connect it explicitly, usually
// through scpi.WithConnection.
func (r *Registry) Connect(name string, opts ...ConnectOption) (Device, error) {
	desc, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	o := connectOptions{overrides: Params{}}
	for _, opt := range opts {
		opt(&o)
	}

	method := o.method
	if method == "" && desc.Config != nil {
		method = desc.Config.Method
	}

	var base Params
	if desc.Config != nil {
		base = desc.Config.ParamsFor(method)
	}

	tr, err := NewTransport(method, mergeParams(base, o.overrides))
	if err != nil {
		return nil, err
	}

	engine := scpi.NewEngine(tr, scpi.WithLogger(r.logger.With("device", desc.Name)))

	return desc.New(engine), nil
}

// NewTransport constructs the transport variant matching method from a merged
// parameter block. It is also the raw connection path for callers that want a
// transport without any device configuration.
func NewTransport(method Method, params Params) (scpi.Transport, error) {
	switch Method(strings.ToLower(string(method))) {
	case MethodSerial:
		return newSerialTransport(params)
	case MethodSocket:
		return newSocketTransport(params)
	case MethodVisa:
		return newVisaTransport(params)
	default:
		return nil, &UnknownMethodError{Method: method}
	}
}

// transportOptions converts the common parameters shared by all methods.
func transportOptions(params Params) []transport.Option {
	var opts []transport.Option

	if d, ok := util.GetSeconds(params, "timeout"); ok {
		opts = append(opts, transport.WithTimeout(d))
	}
	if term, ok := util.GetString(params, "terminator"); ok {
		opts = append(opts, transport.WithTerminator(term))
	}

	return opts
}

func newSerialTransport(params Params) (scpi.Transport, error) {
	port, ok := util.GetString(params, "port")
	if !ok || port == "" {
		return nil, fmt.Errorf("%w: serial transport requires a port parameter", ErrConfig)
	}

	baudRate, _ := util.GetInt(params, "baudrate")

	t, err := transport.NewSerial(port, baudRate, transportOptions(params)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return t, nil
}

func newSocketTransport(params Params) (scpi.Transport, error) {
	host, ok := util.GetString(params, "host")
	if !ok || host == "" {
		return nil, fmt.Errorf("%w: socket transport requires a host parameter", ErrConfig)
	}

	port, ok := util.GetInt(params, "port")
	if !ok {
		return nil, fmt.Errorf("%w: socket transport requires a port parameter", ErrConfig)
	}

	t, err := transport.NewSocket(host, port, transportOptions(params)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return t, nil
}

func newVisaTransport(params Params) (scpi.Transport, error) {
	address, ok := util.GetString(params, "address")
	if !ok || address == "" {
		return nil, fmt.Errorf("%w: visa transport requires an address parameter", ErrConfig)
	}

	t, err := transport.NewVisa(address, transportOptions(params)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return t, nil
}
