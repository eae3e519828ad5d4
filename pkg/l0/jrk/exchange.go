package jrk

import "github.com/golang/glog"

// Channel is the byte stream carrying the protocol.
type Channel interface {
	// Write writes p and returns the number of bytes accepted.
	// A short write is reported as WriteIncompleteError whether or not
	// an error comes with it, a write accepting nothing with an error
	// as WriteError.
	Write(p []byte) (int, error)
	// Read reads up to len(p) bytes and returns what arrived before
	// the channel's timeout. A short count with nil error is a timeout.
	Read(p []byte) (int, error)
}

// Send writes a command. The whole command must be accepted.
// See Channel.Write for how failed writes are reported.
func Send(ch Channel, cmd Command) error {
	b := cmd.Bytes()
	glog.V(4).Infof("TX % x", b)
	n, err := ch.Write(b)
	if n > 0 && n < len(b) {
		return &WriteIncompleteError{Command: cmd, Expected: len(b), Actual: n, Err: err}
	}
	if err != nil {
		return &WriteError{Command: cmd, Err: err}
	}
	if n != len(b) {
		return &WriteIncompleteError{Command: cmd, Expected: len(b), Actual: n}
	}
	return nil
}

// Exchange sends a command and reads its reply.
// Nothing is read if the command has no reply or the write fails.
func Exchange(ch Channel, cmd Command) ([]byte, error) {
	if err := Send(ch, cmd); err != nil {
		return nil, err
	}
	size := cmd.ReplyLen()
	if size == 0 {
		return nil, nil
	}
	reply := make([]byte, size)
	n, err := ch.Read(reply)
	if err != nil {
		return nil, &ReadError{Command: cmd, Err: err}
	}
	glog.V(4).Infof("RX % x", reply[:n])
	if n != size {
		return nil, &ReadIncompleteError{Command: cmd, Expected: size, Actual: n}
	}
	return reply, nil
}

// ReadVariable reads a 2-byte variable.
func ReadVariable(ch Channel, cmd GetVariable) (SensorValue, error) {
	reply, err := Exchange(ch, cmd)
	if err != nil {
		return 0, err
	}
	return DecodeValue(reply[0], reply[1]), nil
}

// GetFeedback reads the Feedback variable (0-4095).
func GetFeedback(ch Channel) (SensorValue, error) {
	return ReadVariable(ch, Feedback)
}

// GetTarget reads the Target variable (0-4095).
func GetTarget(ch Channel) (SensorValue, error) {
	return ReadVariable(ch, Target)
}

// SetTarget sets the Target variable.
// Values above MaxSensorValue wrap, use NewSensorValue to reject them.
// No reply is read, see the package doc.
func SetTarget(ch Channel, target SensorValue) error {
	return Send(ch, SetTargetCommand(target))
}
