package jrk

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a value doesn't fit in 12 bits.
	ErrOutOfRange = errors.New("value out of range")
	// ErrIncompleteFrame indicates a command was interrupted by another
	// command byte before its data arrived.
	ErrIncompleteFrame = errors.New("incomplete frame")
	// ErrUnexpectedData indicates a data byte without a command.
	ErrUnexpectedData = errors.New("unexpected data byte")
)

// RangeError rejects a value outside [0, MaxSensorValue].
type RangeError struct {
	Value int
}

// Error implements error.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%d not in [0, %d]: %v", e.Value, MaxSensorValue, ErrOutOfRange)
}

// Unwrap returns ErrOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}

// WriteIncompleteError indicates the channel accepted fewer bytes
// than the command length. Err is the error returned with the short
// write, if any.
type WriteIncompleteError struct {
	Command  Command
	Expected int
	Actual   int
	Err      error
}

// Error implements error.
func (e *WriteIncompleteError) Error() string {
	msg := fmt.Sprintf("%v: expected to write %d bytes but only wrote %d",
		e.Command, e.Expected, e.Actual)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the error returned with the short write.
func (e *WriteIncompleteError) Unwrap() error {
	return e.Err
}

// WriteError wraps a channel error during write.
type WriteError struct {
	Command Command
	Err     error
}

// Error implements error.
func (e *WriteError) Error() string {
	return fmt.Sprintf("%v: unable to write command: %v", e.Command, e.Err)
}

// Unwrap returns the channel error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// ReadIncompleteError indicates the reply didn't fully arrive before
// the channel timed out. This almost always means the jrk isn't in a
// serial mode which answers on the command port.
type ReadIncompleteError struct {
	Command  Command
	Expected int
	Actual   int
}

// Error implements error.
func (e *ReadIncompleteError) Error() string {
	return fmt.Sprintf("%v: expected to read %d bytes but only read %d (timeout), "+
		"make sure the jrk's serial mode is USB Dual Port or USB Chained",
		e.Command, e.Expected, e.Actual)
}

// ReadError wraps a channel error during read.
type ReadError struct {
	Command Command
	Err     error
}

// Error implements error.
func (e *ReadError) Error() string {
	return fmt.Sprintf("%v: unable to read reply: %v", e.Command, e.Err)
}

// Unwrap returns the channel error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// UnknownCommandError is reported by Parser for unsupported opcodes.
type UnknownCommandError struct {
	Code byte
}

// Error implements error.
func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %02x", e.Code)
}

// IsTimeout indicates err is a reply which didn't arrive in time.
func IsTimeout(err error) bool {
	var e *ReadIncompleteError
	return errors.As(err, &e)
}
