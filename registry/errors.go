package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig indicates a registry or factory configuration fault, as opposed
// to a runtime I/O fault from the scpi error taxonomy.
var ErrConfig = errors.New("configuration error")

// NotFoundError reports a lookup for a device name that is not registered.
// Known enumerates the currently registered device names.
type NotFoundError struct {
	Name  string
	Known []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("device %q not found in registry, available devices: [%s]", e.Name, strings.Join(e.Known, ", "))
}

// Unwrap makes NotFoundError match ErrConfig with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrConfig
}

// UnknownMethodError reports a transport method outside the known set.
type UnknownMethodError struct {
	Method Method
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown transport method %q, must be %q, %q, or %q", e.Method, MethodSerial, MethodSocket, MethodVisa)
}

// Unwrap makes UnknownMethodError match ErrConfig with errors.Is.
func (e *UnknownMethodError) Unwrap() error {
	return ErrConfig
}
