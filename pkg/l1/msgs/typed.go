package msgs

import (
	"errors"
	"fmt"

	"github.com/golang/protobuf/proto"
)

// TypeID masks
const (
	TypeIDMaskKind  uint32 = 0x80000000
	TypeIDMaskGroup uint32 = 0x7fff0000
	TypeIDMaskID    uint32 = 0x0000ffff
	TypeIDMaskReply uint32 = 0x00008000
)

// Message Kinds
const (
	TypeIDKindCommand uint32 = 0x00000000
	TypeIDKindEvent   uint32 = 0x80000000
)

// Message is a serializable message with a registered type.
type Message interface {
	proto.Message
	// NewMessage creates an empty message of the same type.
	NewMessage() Message
	TypeID() uint32
}

// Typed wraps an encoded message with type information.
type Typed struct {
	TypeId   uint32 `protobuf:"varint,1,opt,name=type_id,proto3" json:"type_id,omitempty"`
	Sequence uint32 `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Message  []byte `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

// ProtoMessage implements proto.Message.
func (p *Typed) ProtoMessage() {}

// Reset implements proto.Message.
func (p *Typed) Reset() { *p = Typed{} }

// String implements proto.Message.
func (p *Typed) String() string { return proto.CompactTextString(p) }

// ErrUnknownType indicates unknown type id.
type ErrUnknownType struct {
	TypeID uint32
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %x", e.TypeID)
}

// ErrUnsupportedCommand indicates the command is unsupported.
var ErrUnsupportedCommand = errors.New("unsupported command")

// MessageTypes maps type IDs to messages.
var MessageTypes = map[uint32]Message{
	CommandOKTypeID:        (*CommandOK)(nil),
	CommandErrTypeID:       (*CommandErr)(nil),
	ServoStateTypeID:       (*ServoState)(nil),
	ServoStateQueryTypeID:  (*ServoStateQuery)(nil),
	ServoStateReplyTypeID:  (*ServoStateReply)(nil),
	ServoSetTargetTypeID:   (*ServoSetTarget)(nil),
	ServoSetAngleTypeID:    (*ServoSetAngle)(nil),
	ServoTargetReplyTypeID: (*ServoTargetReply)(nil),
}

// TypedFrom encodes a message into Typed.
func TypedFrom(msg Message) (*Typed, error) {
	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Typed{TypeId: msg.TypeID(), Message: data}, nil
}

// Encode encodes a message with a sequence number to bytes.
func Encode(msg Message, seq uint32) ([]byte, error) {
	typed, err := TypedFrom(msg)
	if err != nil {
		return nil, err
	}
	typed.Sequence = seq
	return typed.Encode()
}

// Decode decodes the wrapped message.
func (p *Typed) Decode() (Message, error) {
	msgType, ok := MessageTypes[p.TypeId]
	if !ok {
		return nil, &ErrUnknownType{TypeID: p.TypeId}
	}
	msg := msgType.NewMessage()
	if err := proto.Unmarshal(p.Message, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Encode encodes the Typed to bytes.
func (p *Typed) Encode() ([]byte, error) {
	return proto.Marshal(p)
}

// Kind gets message kind from type ID.
func (p *Typed) Kind() uint32 {
	return p.TypeId & TypeIDMaskKind
}

// IsCommand determines if the message is a command or a reply.
func (p *Typed) IsCommand() bool {
	return p.Kind() == TypeIDKindCommand
}

// IsReply determines if the message is a reply to a command.
func (p *Typed) IsReply() bool {
	return p.IsCommand() && p.TypeId&TypeIDMaskReply != 0
}

// IsEvent determines if the message is an event.
func (p *Typed) IsEvent() bool {
	return p.Kind() == TypeIDKindEvent
}

// DecodeTyped decodes bytes into Typed.
func DecodeTyped(data []byte) (*Typed, error) {
	var typed Typed
	if err := proto.Unmarshal(data, &typed); err != nil {
		return nil, err
	}
	return &typed, nil
}
