package msgs

import (
	"github.com/golang/protobuf/proto"
)

// TypeID Groups
const (
	GroupCommand uint32 = 0x00000000
	GroupServo   uint32 = 0x00030000
)

// TypeIDs
const (
	CommandOKTypeID        uint32 = GroupCommand | TypeIDMaskReply | 0x0000
	CommandErrTypeID       uint32 = GroupCommand | TypeIDMaskReply | 0x0001
	ServoStateTypeID       uint32 = GroupServo | TypeIDKindEvent | 0x0000
	ServoStateQueryTypeID  uint32 = GroupServo | 0x0000
	ServoStateReplyTypeID  uint32 = ServoStateQueryTypeID | TypeIDMaskReply
	ServoSetTargetTypeID   uint32 = GroupServo | 0x0001
	ServoSetAngleTypeID    uint32 = GroupServo | 0x0002
	ServoTargetReplyTypeID uint32 = ServoSetTargetTypeID | TypeIDMaskReply
)

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
}

// NewMessage implements Message.
func (m *CommandOK) NewMessage() Message { return &CommandOK{} }

// TypeID implements Message.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// ProtoMessage implements proto.Message.
func (m *CommandOK) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandOK) Reset() { *m = CommandOK{} }

// String implements proto.Message.
func (m *CommandOK) String() string { return proto.CompactTextString(m) }

// CommandErr is the generic reply representing command error.
type CommandErr struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return &CommandErr{Message: err.Error()}
}

// NewMessage implements Message.
func (m *CommandErr) NewMessage() Message { return &CommandErr{} }

// TypeID implements Message.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// ProtoMessage implements proto.Message.
func (m *CommandErr) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CommandErr) Reset() { *m = CommandErr{} }

// String implements proto.Message.
func (m *CommandErr) String() string { return proto.CompactTextString(m) }

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// ServoState is an event reporting feedback and target.
// Error is set when the servo couldn't be read, the values are
// meaningless then.
type ServoState struct {
	Feedback  uint32 `protobuf:"varint,1,opt,name=feedback,proto3" json:"feedback"`
	Target    uint32 `protobuf:"varint,2,opt,name=target,proto3" json:"target"`
	Timestamp int64  `protobuf:"varint,3,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Error     string `protobuf:"bytes,4,opt,name=error,proto3" json:"error,omitempty"`
}

// NewMessage implements Message.
func (m *ServoState) NewMessage() Message { return &ServoState{} }

// TypeID implements Message.
func (m *ServoState) TypeID() uint32 { return ServoStateTypeID }

// ProtoMessage implements proto.Message.
func (m *ServoState) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoState) Reset() { *m = ServoState{} }

// String implements proto.Message.
func (m *ServoState) String() string { return proto.CompactTextString(m) }

// ServoStateQuery reads the state now.
type ServoStateQuery struct {
}

// NewMessage implements Message.
func (m *ServoStateQuery) NewMessage() Message { return &ServoStateQuery{} }

// TypeID implements Message.
func (m *ServoStateQuery) TypeID() uint32 { return ServoStateQueryTypeID }

// ProtoMessage implements proto.Message.
func (m *ServoStateQuery) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoStateQuery) Reset() { *m = ServoStateQuery{} }

// String implements proto.Message.
func (m *ServoStateQuery) String() string { return proto.CompactTextString(m) }

// ServoStateReply is the reply for ServoStateQuery.
type ServoStateReply struct {
	State *ServoState `protobuf:"bytes,1,opt,name=state,proto3" json:"state,omitempty"`
}

// NewMessage implements Message.
func (m *ServoStateReply) NewMessage() Message { return &ServoStateReply{} }

// TypeID implements Message.
func (m *ServoStateReply) TypeID() uint32 { return ServoStateReplyTypeID }

// ProtoMessage implements proto.Message.
func (m *ServoStateReply) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoStateReply) Reset() { *m = ServoStateReply{} }

// String implements proto.Message.
func (m *ServoStateReply) String() string { return proto.CompactTextString(m) }

// ServoSetTarget sets the target.
// Out of range targets are rejected unless Raw is set, then they wrap.
type ServoSetTarget struct {
	Target uint32 `protobuf:"varint,1,opt,name=target,proto3" json:"target"`
	Raw    bool   `protobuf:"varint,2,opt,name=raw,proto3" json:"raw,omitempty"`
}

// NewMessage implements Message.
func (m *ServoSetTarget) NewMessage() Message { return &ServoSetTarget{} }

// TypeID implements Message.
func (m *ServoSetTarget) TypeID() uint32 { return ServoSetTargetTypeID }

// ProtoMessage implements proto.Message.
func (m *ServoSetTarget) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoSetTarget) Reset() { *m = ServoSetTarget{} }

// String implements proto.Message.
func (m *ServoSetTarget) String() string { return proto.CompactTextString(m) }

// ServoSetAngle sets the target from degrees using the calibration.
type ServoSetAngle struct {
	Degrees int32 `protobuf:"varint,1,opt,name=degrees,proto3" json:"degrees"`
}

// NewMessage implements Message.
func (m *ServoSetAngle) NewMessage() Message { return &ServoSetAngle{} }

// TypeID implements Message.
func (m *ServoSetAngle) TypeID() uint32 { return ServoSetAngleTypeID }

// ProtoMessage implements proto.Message.
func (m *ServoSetAngle) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoSetAngle) Reset() { *m = ServoSetAngle{} }

// String implements proto.Message.
func (m *ServoSetAngle) String() string { return proto.CompactTextString(m) }

// ServoTargetReply is the reply for ServoSetTarget and ServoSetAngle
// with the target written. The jrk doesn't acknowledge, so this only
// confirms the command was sent.
type ServoTargetReply struct {
	Target uint32 `protobuf:"varint,1,opt,name=target,proto3" json:"target"`
}

// NewMessage implements Message.
func (m *ServoTargetReply) NewMessage() Message { return &ServoTargetReply{} }

// TypeID implements Message.
func (m *ServoTargetReply) TypeID() uint32 { return ServoTargetReplyTypeID }

// ProtoMessage implements proto.Message.
func (m *ServoTargetReply) ProtoMessage() {}

// Reset implements proto.Message.
func (m *ServoTargetReply) Reset() { *m = ServoTargetReply{} }

// String implements proto.Message.
func (m *ServoTargetReply) String() string { return proto.CompactTextString(m) }
