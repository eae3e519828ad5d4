package servo

import (
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
	"github.com/robotalks/jrk.go/pkg/target"
)

// Conn is an opened channel to a jrk.
type Conn interface {
	jrk.Channel
	io.Closer
}

// OpenFunc opens a Conn.
type OpenFunc func() (Conn, error)

// Report is the outcome of a Cycle.
type Report struct {
	Feedback  jrk.SensorValue
	Target    jrk.SensorValue
	NewTarget jrk.SensorValue
}

// Cycle opens the jrk, reads feedback and target, asks Source for
// a new target and sets it. The Conn is closed on every path.
type Cycle struct {
	Open   OpenFunc
	Source target.Source
	// Observe, if set, is called with the current values before
	// Source is asked.
	Observe func(feedback, target jrk.SensorValue)
}

// RunCycle runs a Cycle without Observe.
func RunCycle(open OpenFunc, src target.Source) (Report, error) {
	c := Cycle{Open: open, Source: src}
	return c.Run()
}

// Run runs the cycle once.
func (c *Cycle) Run() (r Report, err error) {
	conn, err := c.Open()
	if err != nil {
		return r, err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			glog.Warningf("close: %v", cerr)
		}
	}()
	if r.Feedback, err = jrk.GetFeedback(conn); err != nil {
		return r, err
	}
	if r.Target, err = jrk.GetTarget(conn); err != nil {
		return r, err
	}
	if c.Observe != nil {
		c.Observe(r.Feedback, r.Target)
	}
	if r.NewTarget, err = c.Source.NextTarget(); err != nil {
		return r, fmt.Errorf("next target: %w", err)
	}
	if err = jrk.SetTarget(conn, r.NewTarget); err != nil {
		return r, err
	}
	return r, nil
}
