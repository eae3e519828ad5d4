package sh

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
	"github.com/robotalks/jrk.go/pkg/l1/env"
	"github.com/robotalks/jrk.go/pkg/l1/servo"
	"github.com/robotalks/jrk.go/pkg/sim/jrksim"
	"github.com/robotalks/jrk.go/pkg/target"
)

type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) Prompt(msg string) (string, error) {
	p.asked = append(p.asked, msg)
	if len(p.answers) == 0 {
		return "", io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func newSimShell(dev *jrksim.Device) (*Shell, *int) {
	opened := 0
	conf := env.NewConfig()
	conf.Calibration = target.DefaultCalibration
	return &Shell{
		Config: conf,
		Open: func() (servo.Conn, error) {
			opened++
			return dev.Session(), nil
		},
	}, &opened
}

func TestRunLoop(t *testing.T) {
	dev := jrksim.NewDevice(1000)
	dev.Speed = 0
	s, opened := newSimShell(dev)
	p := &scriptedPrompter{answers: []string{"1", "0", "1", "abc", "-45", "0"}}
	var out bytes.Buffer
	require.NoError(t, s.RunLoop(p, &out))
	require.Equal(t, 2, *opened)
	require.Equal(t, jrk.SensorValue(1213), dev.Target())
	require.Equal(t, []string{
		RunPrompt, target.AnglePrompt,
		RunPrompt, target.AnglePrompt, target.AnglePrompt,
		RunPrompt,
	}, p.asked)
	require.Contains(t, out.String(), "Current Feedback is 1000.")
	require.Contains(t, out.String(), "Setting Target to 1895.")
	require.Contains(t, out.String(), "Setting Target to 1213.")
	require.Contains(t, out.String(), `Rejected "abc"`)
}

func TestRunLoopStopsOnError(t *testing.T) {
	dev := jrksim.NewDevice(1000)
	dev.Silent = true
	s, _ := newSimShell(dev)
	err := s.RunLoop(&scriptedPrompter{answers: []string{"1"}}, io.Discard)
	var readErr *jrk.ReadIncompleteError
	require.True(t, errors.As(err, &readErr))
}

func TestRunLoopEOF(t *testing.T) {
	s, opened := newSimShell(jrksim.NewDevice(0))
	require.Equal(t, io.EOF, s.RunLoop(&scriptedPrompter{}, io.Discard))
	require.Zero(t, *opened)
}

func TestConnect(t *testing.T) {
	dev := jrksim.NewDevice(1000)
	s, _ := newSimShell(dev)
	_, err := s.Servo()
	require.Equal(t, ErrNotOpen, err)

	require.NoError(t, s.Connect())
	srv, err := s.Servo()
	require.NoError(t, err)
	v, err := srv.Feedback()
	require.NoError(t, err)
	require.Equal(t, jrk.SensorValue(1000), v)
	require.Error(t, s.RunLoop(&scriptedPrompter{}, io.Discard))

	s.Disconnect()
	_, err = s.Servo()
	require.Equal(t, ErrNotOpen, err)
}

func TestParseTarget(t *testing.T) {
	testCases := []struct {
		str   string
		raw   bool
		value jrk.SensorValue
		err   bool
	}{
		{"2000", false, 2000, false},
		{"4095", false, 4095, false},
		{"4096", false, 0, true},
		{"-1", false, 0, true},
		{"x", false, 0, true},
		{"4096", true, 0, false},
		{"5000", true, 904, false},
		{"x", true, 0, true},
	}
	for _, tc := range testCases {
		v, err := ParseTarget(tc.str, tc.raw)
		if tc.err {
			require.Error(t, err, tc.str)
			continue
		}
		require.NoError(t, err, tc.str)
		require.Equal(t, tc.value, v, tc.str)
	}
}

func TestRunLoopReasksUntilOneOrZero(t *testing.T) {
	dev := jrksim.NewDevice(1000)
	s, opened := newSimShell(dev)
	p := &scriptedPrompter{answers: []string{"", "yes", "2", " 0 "}}
	require.NoError(t, s.RunLoop(p, io.Discard))
	require.Zero(t, *opened)
	require.Equal(t, []string{RunPrompt, RunPrompt, RunPrompt, RunPrompt}, p.asked)
}

func TestRunLoopStopsOnReadError(t *testing.T) {
	testCases := []struct {
		name    string
		answers []string
	}{
		{"at run prompt", nil},
		{"at angle prompt", []string{"1"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newSimShell(jrksim.NewDevice(1000))
			answers, reads := tc.answers, 0
			readLine := func() (string, error) {
				reads++
				if len(answers) == 0 {
					return "", io.EOF
				}
				answer := answers[0]
				answers = answers[1:]
				return answer, nil
			}
			var out bytes.Buffer
			errCh := make(chan error, 1)
			go func() {
				errCh <- s.RunLoop(LinePrompter(readLine, &out), io.Discard)
			}()
			select {
			case err := <-errCh:
				require.True(t, errors.Is(err, io.EOF))
			case <-time.After(time.Second):
				t.Fatal("run loop didn't stop after EOF")
			}
			require.Equal(t, len(tc.answers)+1, reads)
			require.Contains(t, out.String(), RunPrompt)
		})
	}
}
