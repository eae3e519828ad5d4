package serial

import "time"

// Config defines how the jrk command port is opened.
type Config struct {
	// PortName is the name of the jrk's command port,
	// e.g. /dev/ttyACM0 or COM5.
	PortName string `toml:"port"`
	// BaudRate doesn't matter when the jrk is in USB Dual Port mode.
	BaudRate int `toml:"baud"`
	// ReadTimeout bounds the wait for a reply.
	ReadTimeout time.Duration `toml:"read_timeout"`
}

// Defaults
const (
	DefaultPortName    = "/dev/ttyACM0"
	DefaultBaudRate    = 9600
	DefaultReadTimeout = time.Second
)

// DefaultConfig returns a Config with defaults.
func DefaultConfig() Config {
	return Config{
		PortName:    DefaultPortName,
		BaudRate:    DefaultBaudRate,
		ReadTimeout: DefaultReadTimeout,
	}
}
