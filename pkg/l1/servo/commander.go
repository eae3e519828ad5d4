package servo

import (
	"github.com/golang/glog"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
	"github.com/robotalks/jrk.go/pkg/l1/msgs"
)

// CommandHandler executes a command and returns the reply.
type CommandHandler interface {
	HandleCommand(msgs.Message) msgs.Message
}

// Commander executes servo commands.
type Commander struct {
	Servo *Servo
}

// HandleCommand implements CommandHandler.
func (c *Commander) HandleCommand(msg msgs.Message) msgs.Message {
	switch m := msg.(type) {
	case *msgs.ServoStateQuery:
		st := c.Servo.State()
		if st.Err != nil {
			return msgs.NewCommandErr(st.Err)
		}
		return &msgs.ServoStateReply{State: st.Message()}
	case *msgs.ServoSetTarget:
		v := jrk.SensorValue(m.Target)
		if m.Raw {
			v &= jrk.MaxSensorValue
		} else if m.Target > uint32(jrk.MaxSensorValue) {
			return msgs.NewCommandErr(&jrk.RangeError{Value: int(m.Target)})
		}
		if err := c.Servo.SetTarget(v); err != nil {
			return msgs.NewCommandErr(err)
		}
		glog.V(2).Infof("target set to %d", v)
		return &msgs.ServoTargetReply{Target: uint32(v)}
	case *msgs.ServoSetAngle:
		v, err := c.Servo.SetAngle(int(m.Degrees))
		if err != nil {
			return msgs.NewCommandErr(err)
		}
		glog.V(2).Infof("target set to %d (%d degrees)", v, m.Degrees)
		return &msgs.ServoTargetReply{Target: uint32(v)}
	}
	return msgs.NewCommandErr(msgs.ErrUnsupportedCommand)
}
