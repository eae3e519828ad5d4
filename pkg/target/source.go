package target

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robotalks/jrk.go/pkg/l0/jrk"
)

// ErrTooManyAttempts is returned when no acceptable answer was given.
var ErrTooManyAttempts = errors.New("too many attempts")

// Source provides the next target to set.
type Source interface {
	NextTarget() (jrk.SensorValue, error)
}

// SourceFunc is func form of Source.
type SourceFunc func() (jrk.SensorValue, error)

// NextTarget implements Source.
func (f SourceFunc) NextTarget() (jrk.SensorValue, error) {
	return f()
}

// Fixed always returns the same target.
type Fixed jrk.SensorValue

// NextTarget implements Source.
func (f Fixed) NextTarget() (jrk.SensorValue, error) {
	return jrk.SensorValue(f), nil
}

// Sequence returns targets in order, then io.EOF.
type Sequence struct {
	Targets []jrk.SensorValue
	next    int
}

// NextTarget implements Source.
func (s *Sequence) NextTarget() (jrk.SensorValue, error) {
	if s.next >= len(s.Targets) {
		return 0, io.EOF
	}
	v := s.Targets[s.next]
	s.next++
	return v, nil
}

// Prompter asks a human for a line of input.
type Prompter interface {
	Prompt(message string) (string, error)
}

// PromptFunc is func form of Prompter.
type PromptFunc func(string) (string, error)

// Prompt implements Prompter.
func (f PromptFunc) Prompt(message string) (string, error) {
	return f(message)
}

// AnglePrompt is the question asked by AngleSource.
const AnglePrompt = "Insert a target value from -45 to 45 degrees"

// AngleSource asks for an angle in degrees until it maps to a target
// inside the calibration band.
type AngleSource struct {
	Prompter    Prompter
	Calibration Calibration
	// MaxAttempts limits the questions, 0 asks forever.
	MaxAttempts int
	// OnReject is called with every rejected answer, if set.
	OnReject func(answer string, err error)
}

// NextTarget implements Source.
func (s *AngleSource) NextTarget() (jrk.SensorValue, error) {
	for n := 0; s.MaxAttempts <= 0 || n < s.MaxAttempts; n++ {
		answer, err := s.Prompter.Prompt(AnglePrompt)
		if err != nil {
			return 0, err
		}
		v, err := s.parse(answer)
		if err == nil {
			return v, nil
		}
		if s.OnReject != nil {
			s.OnReject(answer, err)
		}
	}
	return 0, ErrTooManyAttempts
}

func (s *AngleSource) parse(answer string) (jrk.SensorValue, error) {
	degrees, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return 0, fmt.Errorf("invalid degrees %q", answer)
	}
	return s.Calibration.Target(degrees)
}
