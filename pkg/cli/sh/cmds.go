package sh

import (
	"fmt"
	"io"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
	"github.com/robotalks/jrk.go/pkg/l1/servo"
	"github.com/robotalks/jrk.go/pkg/target"
)

// Value is a printed sensor value.
type Value struct {
	Name  string          `json:"-"`
	Value jrk.SensorValue `json:"value"`
}

func (v Value) String() string {
	return fmt.Sprintf("%s %d", v.Name, v.Value)
}

// StateResult is the printed state.
type StateResult struct {
	Feedback jrk.SensorValue `json:"feedback"`
	Target   jrk.SensorValue `json:"target"`
	Degrees  float64         `json:"degrees"`
}

func (r StateResult) String() string {
	return fmt.Sprintf("Feedback %d Target %d (%.1f degrees)", r.Feedback, r.Target, r.Degrees)
}

type contextWriter struct {
	c *ishell.Context
}

func (w contextWriter) Write(p []byte) (int, error) {
	w.c.Print(string(p))
	return len(p), nil
}

// LinePrompter prints the question to out and reads the answer with
// readLine. Read errors (EOF, interrupt) are returned so loops stop.
func LinePrompter(readLine func() (string, error), out io.Writer) target.Prompter {
	return target.PromptFunc(func(msg string) (string, error) {
		fmt.Fprintln(out, msg)
		return readLine()
	})
}

var commands = []*ishell.Cmd{
	&RunCmd,
	&OpenCmd,
	&CloseCmd,
	&FeedbackCmd,
	&TargetCmd,
	&SetCmd,
	&AngleCmd,
	&StateCmd,
}

// MustBeOpen wraps command func requires an open servo.
func MustBeOpen(fn func(c *ishell.Context, s *servo.Servo)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		srv, err := ShellFrom(c).Servo()
		if err != nil {
			c.Err(err)
			return
		}
		fn(c, srv)
	}
}

func readValue(name string, read func() (jrk.SensorValue, error)) func(c *ishell.Context, s *servo.Servo) {
	return func(c *ishell.Context, s *servo.Servo) {
		v, err := read()
		if err != nil {
			c.Err(err)
			return
		}
		ShellFrom(c).Print(c, Value{Name: name, Value: v})
	}
}

var (
	// RunCmd runs the interactive motor loop.
	RunCmd = ishell.Cmd{
		Name: "run",
		Help: "ask for angles and move the motor",
		Func: func(c *ishell.Context) {
			out := contextWriter{c}
			if err := ShellFrom(c).RunLoop(LinePrompter(c.ReadLineErr, out), out); err != nil {
				c.Err(err)
			}
		},
	}

	// OpenCmd opens the serial port.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "open the serial port",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Connect(); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the serial port.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Help: "close the serial port",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// FeedbackCmd reads the feedback.
	FeedbackCmd = ishell.Cmd{
		Name:    "feedback",
		Aliases: []string{"fb"},
		Help:    "read feedback",
		Func: MustBeOpen(func(c *ishell.Context, s *servo.Servo) {
			readValue("Feedback", s.Feedback)(c, s)
		}),
	}

	// TargetCmd reads the target.
	TargetCmd = ishell.Cmd{
		Name: "target",
		Help: "read target",
		Func: MustBeOpen(func(c *ishell.Context, s *servo.Servo) {
			readValue("Target", s.Target)(c, s)
		}),
	}

	// SetCmd sets the target.
	SetCmd = ishell.Cmd{
		Name: "set",
		Help: "[-raw] VALUE",
		Func: MustBeOpen(func(c *ishell.Context, s *servo.Servo) {
			args, raw := c.Args, false
			if len(args) > 0 && args[0] == "-raw" {
				args, raw = args[1:], true
			}
			if len(args) != 1 {
				c.Err(fmt.Errorf("target value expected"))
				return
			}
			v, err := ParseTarget(args[0], raw)
			if err != nil {
				c.Err(err)
				return
			}
			if err := s.SetTarget(v); err != nil {
				c.Err(err)
				return
			}
			ShellFrom(c).Print(c, Value{Name: "Target", Value: v})
		}),
	}

	// AngleCmd sets the target in degrees.
	AngleCmd = ishell.Cmd{
		Name:    "angle",
		Aliases: []string{"a"},
		Help:    "DEGREES",
		Func: MustBeOpen(func(c *ishell.Context, s *servo.Servo) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("degrees expected"))
				return
			}
			degrees, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid degrees %q", c.Args[0]))
				return
			}
			v, err := s.SetAngle(degrees)
			if err != nil {
				c.Err(err)
				return
			}
			ShellFrom(c).Print(c, Value{Name: "Target", Value: v})
		}),
	}

	// StateCmd reads feedback and target.
	StateCmd = ishell.Cmd{
		Name:    "state",
		Aliases: []string{"s"},
		Help:    "read feedback and target",
		Func: MustBeOpen(func(c *ishell.Context, s *servo.Servo) {
			st := s.State()
			if st.Err != nil {
				c.Err(st.Err)
				return
			}
			ShellFrom(c).Print(c, StateResult{
				Feedback: st.Feedback,
				Target:   st.Target,
				Degrees:  s.Calibration.Degrees(st.Target),
			})
		}),
	}
)
