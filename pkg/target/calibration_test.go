package target

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
)

func TestCalibrationTarget(t *testing.T) {
	c := DefaultCalibration
	testCases := []struct {
		degrees int
		target  jrk.SensorValue
	}{
		{0, 1895},
		{-45, 1213},
		{45, 2578},
		{-92, 500},
		{105, 3488},
	}
	for _, tc := range testCases {
		v, err := c.Target(tc.degrees)
		require.NoError(t, err, "degrees %d", tc.degrees)
		require.Equal(t, tc.target, v, "degrees %d", tc.degrees)
	}
}

func TestCalibrationOutsideBand(t *testing.T) {
	c := DefaultCalibration
	for _, degrees := range []int{-93, 106, -125, 200} {
		_, err := c.Target(degrees)
		require.True(t, errors.Is(err, ErrOutsideBand), "degrees %d", degrees)
		var bandErr *BandError
		require.True(t, errors.As(err, &bandErr))
		require.Equal(t, degrees, bandErr.Degrees)
	}
}

func TestCalibrationDegrees(t *testing.T) {
	c := DefaultCalibration
	for _, degrees := range []int{-45, 0, 45} {
		v, err := c.Target(degrees)
		require.NoError(t, err)
		require.InDelta(t, float64(degrees), c.Degrees(v), 0.1)
	}
}

func TestCalibrationValidate(t *testing.T) {
	require.NoError(t, DefaultCalibration.Validate())
	require.Error(t, Calibration{Span: 0, Min: 0, Max: 1}.Validate())
	require.Error(t, Calibration{Span: 1, Min: 2, Max: 1}.Validate())
	require.Error(t, Calibration{Span: 1, Min: 0, Max: 4096}.Validate())
}
