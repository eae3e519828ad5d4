// Package servo exposes a jrk as an L1 controller.
package servo

import (
	"sync"
	"time"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
	"github.com/robotalks/jrk.go/pkg/l1/msgs"
	"github.com/robotalks/jrk.go/pkg/target"
)

// Servo serializes exchanges with a jrk over one channel.
// jrk.Channel can't be shared, every exchange holds the lock until
// the reply is read.
type Servo struct {
	Calibration target.Calibration

	ch   jrk.Channel
	lock sync.Mutex
}

// State is a snapshot of a jrk.
type State struct {
	Feedback jrk.SensorValue
	Target   jrk.SensorValue
	Time     time.Time
	// Err is set if the snapshot couldn't be read, Feedback and
	// Target are not valid then.
	Err error
}

// New creates a Servo on ch.
func New(ch jrk.Channel) *Servo {
	return &Servo{Calibration: target.DefaultCalibration, ch: ch}
}

// Feedback reads the feedback.
func (s *Servo) Feedback() (jrk.SensorValue, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return jrk.GetFeedback(s.ch)
}

// Target reads the target.
func (s *Servo) Target() (jrk.SensorValue, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return jrk.GetTarget(s.ch)
}

// SetTarget sets the target. Values above jrk.MaxSensorValue wrap.
func (s *Servo) SetTarget(v jrk.SensorValue) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return jrk.SetTarget(s.ch, v)
}

// SetAngle sets the target from degrees using the calibration.
func (s *Servo) SetAngle(degrees int) (jrk.SensorValue, error) {
	v, err := s.Calibration.Target(degrees)
	if err != nil {
		return 0, err
	}
	return v, s.SetTarget(v)
}

// State reads feedback and target together.
func (s *Servo) State() (st State) {
	s.lock.Lock()
	defer s.lock.Unlock()
	st.Time = time.Now()
	if st.Feedback, st.Err = jrk.GetFeedback(s.ch); st.Err != nil {
		st.Feedback = 0
		return
	}
	if st.Target, st.Err = jrk.GetTarget(s.ch); st.Err != nil {
		st.Feedback, st.Target = 0, 0
	}
	return
}

// Message converts the state into a message.
func (st State) Message() *msgs.ServoState {
	m := &msgs.ServoState{
		Feedback:  uint32(st.Feedback),
		Target:    uint32(st.Target),
		Timestamp: st.Time.UnixNano(),
	}
	if st.Err != nil {
		m.Error = st.Err.Error()
	}
	return m
}
