package jrk

import "fmt"

// Command is a request sent to the jrk.
type Command interface {
	// Bytes returns encoded bytes for sending.
	Bytes() []byte
	// ReplyLen is the number of bytes the jrk answers with.
	ReplyLen() int
}

// GetVariable is a command reading a 2-byte variable.
// The value is the opcode.
type GetVariable byte

// Variables which can be read.
const (
	Feedback GetVariable = 0xa5
	Target   GetVariable = 0xa3
)

// Bytes implements Command.
func (c GetVariable) Bytes() []byte {
	return []byte{byte(c)}
}

// ReplyLen implements Command.
func (c GetVariable) ReplyLen() int {
	return 2
}

// String implements fmt.Stringer.
func (c GetVariable) String() string {
	switch c {
	case Feedback:
		return "Get Feedback"
	case Target:
		return "Get Target"
	}
	return fmt.Sprintf("Get Variable %02x", byte(c))
}

// SetTargetCommand is the command setting the target.
// Values above MaxSensorValue are masked to 12 bits when encoded.
type SetTargetCommand SensorValue

// Bytes implements Command.
func (c SetTargetCommand) Bytes() []byte {
	b := EncodeTarget(uint16(c))
	return b[:]
}

// ReplyLen implements Command. Set Target is never answered.
func (c SetTargetCommand) ReplyLen() int {
	return 0
}

// String implements fmt.Stringer.
func (c SetTargetCommand) String() string {
	return fmt.Sprintf("Set Target %d", uint16(c))
}

// Opcodes for Set Target occupy c0..df, the low 5 bits carry data.
const (
	setTargetOpcode byte = 0xc0
	setTargetMask   byte = 0xe0
)

func isCommandByte(b byte) bool {
	return b&0x80 != 0
}
