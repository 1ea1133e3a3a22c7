package vm

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrTruncatedHeader  = errors.New("vm: program too short to hold a header")
	ErrTruncatedOperand = errors.New("vm: program ends inside an inline operand")

	// ErrHalted is returned by Invoke when a handler hook stops the walk.
	// The handler is expected to have reported the reason itself.
	ErrHalted = errors.New("vm: decoding stopped by handler")
)

// Handler receives the decoded header fields and instructions of a program.
// Every hook reports whether decoding should continue; a false return stops
// the walk immediately and no later hooks are called. Returning true from
// ProcessInstUnknown resumes decoding at the next byte.
type Handler interface {
	PrepareEnvironment() bool
	ProcessMagicNumber(number int32) bool
	ProcessMemorySize(value int32) bool
	BeforeCodeExecution() bool
	AfterCodeExecution() bool

	ProcessInstLOAD() bool
	ProcessInstSTORE() bool
	ProcessInstCONST_1B(value int8) bool
	ProcessInstCONST_2B(value int16) bool
	ProcessInstCONST_4B(value int32) bool
	ProcessInstCONST_0() bool
	ProcessInstCONST_1() bool
	ProcessInstADD() bool
	ProcessInstSUB() bool
	ProcessInstMUL() bool
	ProcessInstDIV() bool
	ProcessInstSWAP() bool
	ProcessInstPRINT() bool
	ProcessInstUnknown(inst byte) bool
}

// NopHandler implements every Handler hook as an accepting no-op. Embed it
// when a handler only cares about a subset of the hooks.
type NopHandler struct{}

func (NopHandler) PrepareEnvironment() bool { return true }
func (NopHandler) ProcessMagicNumber(int32) bool { return true }
func (NopHandler) ProcessMemorySize(int32) bool { return true }
func (NopHandler) BeforeCodeExecution() bool { return true }
func (NopHandler) AfterCodeExecution() bool { return true }
func (NopHandler) ProcessInstLOAD() bool { return true }
func (NopHandler) ProcessInstSTORE() bool { return true }
func (NopHandler) ProcessInstCONST_1B(int8) bool { return true }
func (NopHandler) ProcessInstCONST_2B(int16) bool { return true }
func (NopHandler) ProcessInstCONST_4B(int32) bool { return true }
func (NopHandler) ProcessInstCONST_0() bool { return true }
func (NopHandler) ProcessInstCONST_1() bool { return true }
func (NopHandler) ProcessInstADD() bool { return true }
func (NopHandler) ProcessInstSUB() bool { return true }
func (NopHandler) ProcessInstMUL() bool { return true }
func (NopHandler) ProcessInstDIV() bool { return true }
func (NopHandler) ProcessInstSWAP() bool { return true }
func (NopHandler) ProcessInstPRINT() bool { return true }
func (NopHandler) ProcessInstUnknown(byte) bool { return true }

// Decoder walks a compiled program exactly once, front to back. It validates
// the header, advances the program counter past each opcode and its inline
// operands, and dispatches to the Handler. While an instruction hook runs,
// PC reports the offset of the opcode byte, not its operands.
type Decoder struct {
	handler Handler
	program []byte
	pc      int
}

// NewDecoder creates a decoder dispatching to h.
func NewDecoder(h Handler) *Decoder {
	return &Decoder{handler: h}
}

// PC returns the program counter of the instruction currently dispatched.
func (d *Decoder) PC() int {
	return d.pc
}

// PCAtEnd returns the index of the final byte of the program.
func (d *Decoder) PCAtEnd() int {
	return len(d.program) - 1
}

// ProgramSize returns the program size in bytes.
func (d *Decoder) ProgramSize() int {
	return len(d.program)
}

// Invoke decodes program. It returns ErrHalted when a hook stops the walk,
// a format error when the stream is structurally broken, and nil when the
// whole program decodes cleanly.
func (d *Decoder) Invoke(program []byte) error {
	d.program = program
	d.pc = 0

	if !d.handler.PrepareEnvironment() {
		return ErrHalted
	}
	if len(program) < HeaderSize {
		return ErrTruncatedHeader
	}

	magic := int32(binary.BigEndian.Uint32(program[0:4]))
	if !d.handler.ProcessMagicNumber(magic) {
		return ErrHalted
	}
	memSize := int32(binary.BigEndian.Uint32(program[4:8]))
	if !d.handler.ProcessMemorySize(memSize) {
		return ErrHalted
	}
	if !d.handler.BeforeCodeExecution() {
		return ErrHalted
	}

	d.pc = HeaderSize
	for d.pc < len(d.program) {
		op := Op(d.program[d.pc])
		advance := 1

		var ok bool
		switch op {
		case OP_LOAD:
			ok = d.handler.ProcessInstLOAD()
		case OP_STORE:
			ok = d.handler.ProcessInstSTORE()
		case OP_CONST_1B:
			operand, err := d.operand(1)
			if err != nil {
				return err
			}
			ok = d.handler.ProcessInstCONST_1B(int8(operand[0]))
			advance = 2
		case OP_CONST_2B:
			operand, err := d.operand(2)
			if err != nil {
				return err
			}
			ok = d.handler.ProcessInstCONST_2B(int16(binary.BigEndian.Uint16(operand)))
			advance = 3
		case OP_CONST_4B:
			operand, err := d.operand(4)
			if err != nil {
				return err
			}
			ok = d.handler.ProcessInstCONST_4B(int32(binary.BigEndian.Uint32(operand)))
			advance = 5
		case OP_CONST_0:
			ok = d.handler.ProcessInstCONST_0()
		case OP_CONST_1:
			ok = d.handler.ProcessInstCONST_1()
		case OP_ADD:
			ok = d.handler.ProcessInstADD()
		case OP_SUB:
			ok = d.handler.ProcessInstSUB()
		case OP_MUL:
			ok = d.handler.ProcessInstMUL()
		case OP_DIV:
			ok = d.handler.ProcessInstDIV()
		case OP_SWAP:
			ok = d.handler.ProcessInstSWAP()
		case OP_PRINT:
			ok = d.handler.ProcessInstPRINT()
		default:
			ok = d.handler.ProcessInstUnknown(byte(op))
		}

		if !ok {
			return ErrHalted
		}
		d.pc += advance
	}

	if !d.handler.AfterCodeExecution() {
		return ErrHalted
	}
	return nil
}

// operand returns the n bytes following the opcode at the current program
// counter without advancing it.
func (d *Decoder) operand(n int) ([]byte, error) {
	if d.pc+n >= len(d.program) {
		return nil, fmt.Errorf("%w: %s at offset %d", ErrTruncatedOperand, Op(d.program[d.pc]), d.pc)
	}
	return d.program[d.pc+1 : d.pc+1+n], nil
}
