package serial

import (
	"errors"
	"fmt"
	"io/fs"

	"go.bug.st/serial"
)

// OpenErrorKind classifies failures opening a port.
type OpenErrorKind int

// Open error kinds
const (
	OpenFailed OpenErrorKind = iota
	PortNotFound
	AccessDenied
)

// OpenError is returned when the port can't be opened or configured.
type OpenError struct {
	Port string
	Kind OpenErrorKind
	Err  error
}

// Error implements error.
func (e *OpenError) Error() string {
	switch e.Kind {
	case PortNotFound:
		return fmt.Sprintf("serial port not found: make sure %q is the right port name, "+
			"try closing all programs using the device and unplugging the device, or try rebooting", e.Port)
	case AccessDenied:
		return fmt.Sprintf("access denied to %q: try closing all other programs that are using the device", e.Port)
	}
	return fmt.Sprintf("unable to open serial port %q: %v", e.Port, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpenError) Unwrap() error {
	return e.Err
}

func openError(name string, err error) *OpenError {
	e := &OpenError{Port: name, Kind: OpenFailed, Err: err}
	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortNotFound:
			e.Kind = PortNotFound
		case serial.PortBusy, serial.PermissionDenied:
			e.Kind = AccessDenied
		}
		return e
	}
	// on Linux a missing device comes back as a plain errno.
	switch {
	case errors.Is(err, fs.ErrNotExist):
		e.Kind = PortNotFound
	case errors.Is(err, fs.ErrPermission):
		e.Kind = AccessDenied
	}
	return e
}
