// Package target provides sources of target values for a jrk.
package target

import (
	"errors"
	"fmt"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
)

// ErrOutsideBand indicates a target outside the accepted band.
var ErrOutsideBand = errors.New("target outside accepted band")

// Calibration maps degrees to targets:
//
//   target = (degrees + Offset) * 4095 / Span
//
// and accepts only targets in [Min, Max].
type Calibration struct {
	Offset int `toml:"offset"`
	Span   int `toml:"span"`
	Min    int `toml:"min"`
	Max    int `toml:"max"`
}

// DefaultCalibration moves 0 degrees to the rudder center.
var DefaultCalibration = Calibration{
	Offset: 125,
	Span:   270,
	Min:    500,
	Max:    3500,
}

// BandError rejects a target computed from Degrees.
type BandError struct {
	Degrees int
	Target  int
	Min     int
	Max     int
}

// Error implements error.
func (e *BandError) Error() string {
	return fmt.Sprintf("%d degrees gives target %d not in [%d, %d]", e.Degrees, e.Target, e.Min, e.Max)
}

// Unwrap returns ErrOutsideBand.
func (e *BandError) Unwrap() error {
	return ErrOutsideBand
}

// Validate checks the calibration is usable.
func (c Calibration) Validate() error {
	if c.Span == 0 {
		return fmt.Errorf("calibration span must not be zero")
	}
	if c.Min > c.Max {
		return fmt.Errorf("calibration band [%d, %d] is empty", c.Min, c.Max)
	}
	if c.Min < 0 || c.Max > int(jrk.MaxSensorValue) {
		return fmt.Errorf("calibration band [%d, %d] exceeds [0, %d]", c.Min, c.Max, jrk.MaxSensorValue)
	}
	return nil
}

// Target converts degrees into a target.
func (c Calibration) Target(degrees int) (jrk.SensorValue, error) {
	v := (degrees + c.Offset) * int(jrk.MaxSensorValue) / c.Span
	if v < c.Min || v > c.Max {
		return 0, &BandError{Degrees: degrees, Target: v, Min: c.Min, Max: c.Max}
	}
	return jrk.NewSensorValue(v)
}

// Degrees converts a target back to degrees.
func (c Calibration) Degrees(v jrk.SensorValue) float64 {
	return float64(v)*float64(c.Span)/float64(jrk.MaxSensorValue) - float64(c.Offset)
}
