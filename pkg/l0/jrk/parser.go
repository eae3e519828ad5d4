package jrk

// Parser decodes commands from bytes received by a jrk.
// It is the device side of the protocol and is used by simulators.
type Parser struct {
	state  parseState
	opcode byte
}

type parseState int

const (
	parseIdle parseState = iota
	parseTargetHigh
)

// ParseResult is the result after one parsing step.
// Command is set when a command completes. Err reports bytes which
// were dropped, it may come together with a Command when a partial
// frame is interrupted by a complete one.
type ParseResult struct {
	Command Command
	Err     error
}

// Reset drops any partially received command.
func (p *Parser) Reset() {
	p.state, p.opcode = parseIdle, 0
}

// Pending indicates a command is partially received.
func (p *Parser) Pending() bool {
	return p.state != parseIdle
}

// Parse parses a single byte.
func (p *Parser) Parse(b byte) ParseResult {
	if p.state == parseTargetHigh {
		p.state = parseIdle
		if !isCommandByte(b) {
			return ParseResult{Command: SetTargetCommand(DecodeTarget(p.opcode, b))}
		}
		r := p.Parse(b)
		if r.Err == nil {
			r.Err = ErrIncompleteFrame
		}
		return r
	}
	switch {
	case !isCommandByte(b):
		return ParseResult{Err: ErrUnexpectedData}
	case b == byte(Feedback) || b == byte(Target):
		return ParseResult{Command: GetVariable(b)}
	case b&setTargetMask == setTargetOpcode:
		p.state, p.opcode = parseTargetHigh, b
		return ParseResult{}
	}
	return ParseResult{Err: &UnknownCommandError{Code: b}}
}
