package jrk

import "fmt"

// SensorValue is a 12-bit jrk variable (feedback or target).
type SensorValue uint16

// MaxSensorValue is the largest value representable in 12 bits.
const MaxSensorValue SensorValue = 4095

// NewSensorValue checks v is in range and converts it.
func NewSensorValue(v int) (SensorValue, error) {
	if v < 0 || v > int(MaxSensorValue) {
		return 0, &RangeError{Value: v}
	}
	return SensorValue(v), nil
}

// Valid indicates the value fits in 12 bits.
// A non-conforming device may report values which don't.
func (v SensorValue) Valid() bool {
	return v <= MaxSensorValue
}

// String implements fmt.Stringer.
func (v SensorValue) String() string {
	return fmt.Sprintf("%d", uint16(v))
}

// EncodeTarget encodes the Set Target command for v.
// Only the low 12 bits of v are used, larger values wrap.
func EncodeTarget(v uint16) [2]byte {
	return [2]byte{0xc0 | byte(v&0x1f), byte(v>>5) & 0x7f}
}

// DecodeTarget recovers the target from an encoded Set Target command.
func DecodeTarget(b0, b1 byte) SensorValue {
	return SensorValue(uint16(b0&0x1f) | uint16(b1&0x7f)<<5)
}

// DecodeValue decodes a 2-byte reply, low byte first.
// The result is not clamped to MaxSensorValue.
func DecodeValue(lo, hi byte) SensorValue {
	return SensorValue(uint16(lo) + 256*uint16(hi))
}
