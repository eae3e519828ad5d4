// Package jrksim simulates a jrk motor controller on the command port.
package jrksim

import (
	"errors"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("device closed")

// DefaultSpeed is the default slew rate in counts per second.
const DefaultSpeed = 2000

// Device is an in-memory jrk. It implements jrk.Channel and io.Closer.
// Feedback moves toward target at Speed counts per second.
type Device struct {
	// Speed is the slew rate, 0 means feedback follows target immediately.
	Speed float64
	// Silent drops all replies, like a jrk whose serial mode
	// doesn't answer on the command port.
	Silent bool
	// WriteLimit limits bytes accepted per write, 0 for no limit.
	WriteLimit int
	// Clock provides the time, time.Now if nil.
	Clock func() time.Time

	parser   jrk.Parser
	feedback float64
	target   jrk.SensorValue
	updated  time.Time
	output   []byte
	closed   bool
	lock     sync.Mutex
}

// NewDevice creates a Device resting at pos.
func NewDevice(pos jrk.SensorValue) *Device {
	return &Device{
		Speed:    DefaultSpeed,
		feedback: float64(pos),
		target:   pos,
	}
}

func (d *Device) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

// Write implements jrk.Channel.
func (d *Device) Write(p []byte) (int, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.closed {
		return 0, ErrClosed
	}
	n := len(p)
	if d.WriteLimit > 0 && n > d.WriteLimit {
		n = d.WriteLimit
	}
	for _, b := range p[:n] {
		r := d.parser.Parse(b)
		if r.Err != nil {
			glog.Warningf("sim: %v", r.Err)
		}
		if r.Command != nil {
			d.execute(r.Command)
		}
	}
	return n, nil
}

// Read implements jrk.Channel. It never blocks, replies are produced
// by Write, so anything missing would never arrive.
func (d *Device) Read(p []byte) (int, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.closed {
		return 0, ErrClosed
	}
	n := copy(p, d.output)
	d.output = d.output[n:]
	return n, nil
}

// Close implements io.Closer.
func (d *Device) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.closed = true
	return nil
}

// SetSilent changes Silent while the Device is in use.
func (d *Device) SetSilent(silent bool) {
	d.lock.Lock()
	d.Silent = silent
	d.lock.Unlock()
}

// Feedback returns the current simulated feedback.
func (d *Device) Feedback() jrk.SensorValue {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.update()
	return jrk.SensorValue(d.feedback + 0.5)
}

// Target returns the current target.
func (d *Device) Target() jrk.SensorValue {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.target
}

func (d *Device) execute(cmd jrk.Command) {
	d.update()
	switch c := cmd.(type) {
	case jrk.GetVariable:
		var v jrk.SensorValue
		switch c {
		case jrk.Feedback:
			v = jrk.SensorValue(d.feedback + 0.5)
		case jrk.Target:
			v = d.target
		}
		if !d.Silent {
			d.output = append(d.output, byte(v), byte(v>>8))
		}
	case jrk.SetTargetCommand:
		d.target = jrk.SensorValue(c)
		if d.Speed <= 0 {
			d.feedback = float64(d.target)
		}
	}
}

func (d *Device) update() {
	now := d.now()
	if d.updated.IsZero() {
		d.updated = now
		return
	}
	dt := now.Sub(d.updated).Seconds()
	d.updated = now
	if d.Speed <= 0 || dt <= 0 {
		return
	}
	diff, step := float64(d.target)-d.feedback, d.Speed*dt
	switch {
	case diff > step:
		d.feedback += step
	case diff < -step:
		d.feedback -= step
	default:
		d.feedback = float64(d.target)
	}
}

// Session returns a connection to the Device whose Close doesn't
// close the Device, so the simulated state survives across sessions.
func (d *Device) Session() *Conn {
	return &Conn{Device: d}
}

// Conn is a session with a shared Device.
type Conn struct {
	*Device
}

// Close implements io.Closer without closing the Device.
func (c *Conn) Close() error {
	return nil
}
