package servo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
	"github.com/robotalks/jrk.go/pkg/l1/msgs"
)

func TestCommander(t *testing.T) {
	s, dev := newSimServo(1000)
	c := &Commander{Servo: s}

	reply := c.HandleCommand(&msgs.ServoSetTarget{Target: 2500})
	require.Equal(t, &msgs.ServoTargetReply{Target: 2500}, reply)
	require.Equal(t, jrk.SensorValue(2500), dev.Target())

	reply = c.HandleCommand(&msgs.ServoSetTarget{Target: 5000})
	require.IsType(t, &msgs.CommandErr{}, reply)
	require.Equal(t, jrk.SensorValue(2500), dev.Target())

	reply = c.HandleCommand(&msgs.ServoSetTarget{Target: 4096 + 7, Raw: true})
	require.Equal(t, &msgs.ServoTargetReply{Target: 7}, reply)
	require.Equal(t, jrk.SensorValue(7), dev.Target())

	reply = c.HandleCommand(&msgs.ServoSetAngle{Degrees: 45})
	require.Equal(t, &msgs.ServoTargetReply{Target: 2578}, reply)

	reply = c.HandleCommand(&msgs.ServoSetAngle{Degrees: -120})
	require.IsType(t, &msgs.CommandErr{}, reply)

	reply = c.HandleCommand(&msgs.ServoStateQuery{})
	stateReply, ok := reply.(*msgs.ServoStateReply)
	require.True(t, ok)
	require.Equal(t, uint32(2578), stateReply.State.Target)
	require.Equal(t, uint32(2578), stateReply.State.Feedback)

	reply = c.HandleCommand(&msgs.CommandOK{})
	require.Equal(t, msgs.ErrUnsupportedCommand.Error(), reply.(*msgs.CommandErr).Message)

	dev.Silent = true
	reply = c.HandleCommand(&msgs.ServoStateQuery{})
	require.IsType(t, &msgs.CommandErr{}, reply)
}
