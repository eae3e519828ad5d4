package servo

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
	"github.com/robotalks/jrk.go/pkg/sim/jrksim"
	"github.com/robotalks/jrk.go/pkg/target"
)

func newSimServo(pos jrk.SensorValue) (*Servo, *jrksim.Device) {
	dev := jrksim.NewDevice(pos)
	dev.Speed = 0
	return New(dev), dev
}

func TestServoReadWrite(t *testing.T) {
	s, dev := newSimServo(2000)
	v, err := s.Feedback()
	require.NoError(t, err)
	require.Equal(t, jrk.SensorValue(2000), v)

	require.NoError(t, s.SetTarget(3000))
	v, err = s.Target()
	require.NoError(t, err)
	require.Equal(t, jrk.SensorValue(3000), v)
	require.Equal(t, jrk.SensorValue(3000), dev.Target())
}

func TestServoSetAngle(t *testing.T) {
	s, dev := newSimServo(2000)
	v, err := s.SetAngle(0)
	require.NoError(t, err)
	require.Equal(t, jrk.SensorValue(1895), v)
	require.Equal(t, v, dev.Target())

	_, err = s.SetAngle(300)
	require.True(t, errors.Is(err, target.ErrOutsideBand))
	require.Equal(t, jrk.SensorValue(1895), dev.Target())
}

func TestServoState(t *testing.T) {
	s, dev := newSimServo(1500)
	st := s.State()
	require.NoError(t, st.Err)
	require.Equal(t, jrk.SensorValue(1500), st.Feedback)
	require.Equal(t, jrk.SensorValue(1500), st.Target)
	require.False(t, st.Time.IsZero())
	msg := st.Message()
	require.Equal(t, uint32(1500), msg.Feedback)
	require.Empty(t, msg.Error)

	dev.Silent = true
	st = s.State()
	require.True(t, jrk.IsTimeout(st.Err))
	require.Zero(t, st.Feedback)
	require.NotEmpty(t, st.Message().Error)
}

func TestServoConcurrent(t *testing.T) {
	s, _ := newSimServo(100)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				assert.NoError(t, s.SetTarget(jrk.SensorValue(i*100+n)))
				assert.NoError(t, s.State().Err)
			}
		}(i)
	}
	wg.Wait()
}
