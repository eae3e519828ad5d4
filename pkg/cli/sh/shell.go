// Package sh provides the interactive jrk shell.
package sh

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
	"github.com/robotalks/jrk.go/pkg/l1/env"
	"github.com/robotalks/jrk.go/pkg/l1/servo"
	"github.com/robotalks/jrk.go/pkg/target"
)

// RunPrompt is asked before every cycle of run.
const RunPrompt = "Do you wish to run the motor? (1/0)"

// ErrNotOpen is returned by commands requiring an open port.
var ErrNotOpen = errors.New("port not open, use open first")

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Config *env.Config
	// Open opens the jrk, default opens Config.Serial.
	Open servo.OpenFunc

	conn  servo.Conn
	servo *servo.Servo
}

const (
	shellKey     = "$shell"
	closedPrompt = "[closed] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Open = func() (servo.Conn, error) {
		port, err := conf.Serial.Open()
		if err != nil {
			return nil, err
		}
		return port, nil
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(closedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Servo returns the opened servo, or ErrNotOpen.
func (s *Shell) Servo() (*servo.Servo, error) {
	if s.servo == nil {
		return nil, ErrNotOpen
	}
	return s.servo, nil
}

// Connect opens the jrk and keeps it open for other commands.
func (s *Shell) Connect() error {
	s.Disconnect()
	conn, err := s.Open()
	if err != nil {
		return err
	}
	s.conn = conn
	s.servo = servo.New(conn)
	s.servo.Calibration = s.Config.Calibration
	s.setPrompt(fmt.Sprintf("[%s] > ", s.Config.Serial.PortName))
	return nil
}

// Disconnect closes the jrk if opened.
func (s *Shell) Disconnect() {
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			glog.Warningf("close: %v", err)
		}
		s.conn, s.servo = nil, nil
		s.setPrompt(closedPrompt)
	}
}

func (s *Shell) setPrompt(prompt string) {
	if s.Shell != nil {
		s.Shell.SetPrompt(prompt)
	}
}

// RunLoop asks whether to run and runs a Cycle on "1", until "0" or a
// Prompter error. Other answers are asked again. Every cycle opens and
// closes the jrk.
func (s *Shell) RunLoop(p target.Prompter, out io.Writer) error {
	if s.conn != nil {
		return errors.New("port is open, use close first")
	}
	src := &target.AngleSource{
		Prompter:    p,
		Calibration: s.Config.Calibration,
		OnReject: func(answer string, err error) {
			fmt.Fprintf(out, "Rejected %q: %v\n", answer, err)
		},
	}
	cycle := &servo.Cycle{
		Open:   s.Open,
		Source: src,
		Observe: func(feedback, target jrk.SensorValue) {
			fmt.Fprintf(out, "Current Feedback is %d.\n", feedback)
			fmt.Fprintf(out, "Current Target is %d.\n", target)
		},
	}
	for {
		answer, err := p.Prompt(RunPrompt)
		if err != nil {
			return err
		}
		switch strings.TrimSpace(answer) {
		case "0":
			return nil
		case "1":
		default:
			continue
		}
		r, err := cycle.Run()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Setting Target to %d.\n", r.NewTarget)
	}
}

// Print writes a result as text or JSON.
func (s *Shell) Print(c *ishell.Context, v fmt.Stringer) {
	if !s.OutputJSON {
		c.Println(v.String())
		return
	}
	out, err := json.Marshal(v)
	if err != nil {
		c.Err(err)
		return
	}
	c.Println(string(out))
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Disconnect()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// ParseTarget parses a target value. Unless raw, values outside
// [0, 4095] are rejected, otherwise they are truncated to 12 bits.
func ParseTarget(str string, raw bool) (jrk.SensorValue, error) {
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("invalid target %q", str)
	}
	if raw {
		return jrk.SensorValue(uint16(n)) & jrk.MaxSensorValue, nil
	}
	return jrk.NewSensorValue(n)
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.MustLoad()).Run(flag.Args()...)
}
