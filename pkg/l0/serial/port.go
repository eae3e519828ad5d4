package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// device is the part of serial.Port used here.
type device interface {
	io.ReadWriteCloser
	SetReadTimeout(time.Duration) error
	ResetInputBuffer() error
}

// Port is an opened jrk command port.
// It implements jrk.Channel.
type Port struct {
	name        string
	dev         device
	readTimeout time.Duration
}

var openPort = func(name string, mode *serial.Mode) (device, error) {
	return serial.Open(name, mode)
}

// Open opens the port.
func (c Config) Open() (*Port, error) {
	if c.PortName == "" {
		return nil, &OpenError{Kind: PortNotFound, Err: fmt.Errorf("port name is empty")}
	}
	baud := c.BaudRate
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	timeout := c.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	dev, err := openPort(c.PortName, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, openError(c.PortName, err)
	}
	p, err := newPort(c.PortName, dev, timeout)
	if err != nil {
		dev.Close()
		return nil, &OpenError{Port: c.PortName, Err: err}
	}
	glog.V(2).Infof("opened %s at %d baud", c.PortName, baud)
	return p, nil
}

func newPort(name string, dev device, timeout time.Duration) (*Port, error) {
	// reads are chunked so the deadline is checked between them.
	chunk := timeout
	if chunk > 100*time.Millisecond {
		chunk = 100 * time.Millisecond
	}
	if err := dev.SetReadTimeout(chunk); err != nil {
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	// bytes received from the device earlier would break framing.
	if err := dev.ResetInputBuffer(); err != nil {
		return nil, fmt.Errorf("flush input: %w", err)
	}
	return &Port{name: name, dev: dev, readTimeout: timeout}, nil
}

// Name returns the port name.
func (p *Port) Name() string {
	return p.name
}

// Write implements jrk.Channel.
func (p *Port) Write(b []byte) (int, error) {
	return p.dev.Write(b)
}

// Read implements jrk.Channel. It returns when len(b) bytes are
// received or the read timeout expires, whichever comes first.
func (p *Port) Read(b []byte) (int, error) {
	deadline := time.Now().Add(p.readTimeout)
	read := 0
	for read < len(b) {
		n, err := p.dev.Read(b[read:])
		read += n
		if err != nil {
			return read, err
		}
		if n == 0 && !time.Now().Before(deadline) {
			break
		}
	}
	return read, nil
}

// Close implements io.Closer.
func (p *Port) Close() error {
	glog.V(2).Infof("closing %s", p.name)
	return p.dev.Close()
}
