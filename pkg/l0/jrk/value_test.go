package jrk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeTarget(t *testing.T) {
	testCases := []struct {
		name   string
		value  uint16
		expect [2]byte
	}{
		{"zero", 0, [2]byte{0xc0, 0x00}},
		{"max", 4095, [2]byte{0xdf, 0x7f}},
		{"low bits", 0x1f, [2]byte{0xdf, 0x00}},
		{"high bits", 0x20, [2]byte{0xc0, 0x01}},
		{"middle", 2048, [2]byte{0xc0, 0x40}},
		{"wraps", 4096, [2]byte{0xc0, 0x00}},
		{"wraps keep low bits", 4096 + 3000, EncodeTarget(3000)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, EncodeTarget(tc.value))
		})
	}
}

func TestTargetRoundTrip(t *testing.T) {
	for v := 0; v <= int(MaxSensorValue); v++ {
		b := EncodeTarget(uint16(v))
		require.Equal(t, byte(0xc0), b[0]&0xe0, "marker of %d", v)
		require.Zero(t, b[1]&0x80, "data byte of %d", v)
		require.Equal(t, SensorValue(v), DecodeTarget(b[0], b[1]))
	}
}

func TestDecodeValue(t *testing.T) {
	for hi := 0; hi <= 15; hi++ {
		for lo := 0; lo <= 0xff; lo++ {
			v := DecodeValue(byte(lo), byte(hi))
			require.Equal(t, SensorValue(lo+256*hi), v)
			require.True(t, v.Valid())
		}
	}
	v := DecodeValue(0xff, 0xff)
	require.Equal(t, SensorValue(0xffff), v)
	require.False(t, v.Valid())
}

func TestNewSensorValue(t *testing.T) {
	for _, v := range []int{0, 1, 2048, 4095} {
		sv, err := NewSensorValue(v)
		require.NoError(t, err)
		require.Equal(t, SensorValue(v), sv)
	}
	for _, v := range []int{-1, 4096, 65535} {
		_, err := NewSensorValue(v)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrOutOfRange))
		var rangeErr *RangeError
		require.True(t, errors.As(err, &rangeErr))
		require.Equal(t, v, rangeErr.Value)
	}
}
