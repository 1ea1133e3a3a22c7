package emitter

import (
	"errors"
	"math"

	"github.com/ceelang/cee/pkg/vm"
)

var (
	ErrHeaderEmitted = errors.New("emitter: header already emitted")
)

// Listing accumulates the code stream of a compiled program. The header is
// the magic number followed by the number of memory locations, both 4-byte
// big-endian; everything after it is opcode bytes and inline big-endian
// literal operands.
//
// Opcodes and literal operands are appended through distinct methods, so a
// raw byte literal is never conflated with an opcode of the same value.
type Listing struct {
	code               []byte
	numMemoryLocations int32
	headerEmitted      bool
}

// NewListing creates an empty code listing.
func NewListing() *Listing {
	return &Listing{}
}

// SetNumMemoryLocations records how many memory locations the program uses.
// It must be called before EmitHeader.
func (l *Listing) SetNumMemoryLocations(n int) error {
	if l.headerEmitted {
		return ErrHeaderEmitted
	}
	l.numMemoryLocations = int32(n)
	return nil
}

// EmitHeader writes the magic number and the memory location count.
func (l *Listing) EmitHeader() error {
	if l.headerEmitted {
		return ErrHeaderEmitted
	}
	l.appendInt32(vm.MagicNumber)
	l.appendInt32(l.numMemoryLocations)
	l.headerEmitted = true
	return nil
}

// AppendInstruction appends one opcode byte.
func (l *Listing) AppendInstruction(op vm.Op) {
	l.code = append(l.code, byte(op))
}

// AppendInt8 appends a 1-byte literal operand.
func (l *Listing) AppendInt8(v int8) {
	l.code = append(l.code, byte(v))
}

// AppendInt16 appends a 2-byte literal operand in big-endian order.
func (l *Listing) AppendInt16(v int16) {
	l.code = append(l.code, byte(uint16(v)>>8), byte(v))
}

// AppendInt32 appends a 4-byte literal operand in big-endian order.
func (l *Listing) AppendInt32(v int32) {
	l.appendInt32(v)
}

func (l *Listing) appendInt32(v int32) {
	u := uint32(v)
	l.code = append(l.code, byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

// Code returns the accumulated bytes.
func (l *Listing) Code() []byte {
	return l.code
}

// FitsInInt8 reports whether v can be encoded as a signed byte.
func FitsInInt8(v int32) bool {
	return v >= math.MinInt8 && v <= math.MaxInt8
}

// FitsInInt16 reports whether v can be encoded as a signed 2-byte value.
func FitsInInt16(v int32) bool {
	return v >= math.MinInt16 && v <= math.MaxInt16
}

// SwapEndian16 flips the byte order of a 16-bit value.
func SwapEndian16(v uint16) uint16 {
	return v>>8 | v<<8
}

// SwapEndian32 flips the byte order of a 32-bit value.
func SwapEndian32(v uint32) uint32 {
	return v<<24 | (v&0x0000ff00)<<8 | (v>>8)&0x0000ff00 | v>>24
}
