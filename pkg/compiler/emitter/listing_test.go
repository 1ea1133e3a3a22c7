package emitter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceelang/cee/pkg/vm"
)

func TestListing_Header(t *testing.T) {
	l := NewListing()
	require.NoError(t, l.SetNumMemoryLocations(2))
	require.NoError(t, l.EmitHeader())

	require.Equal(t, []byte{0x13, 0x37, 0xD0, 0x0D, 0x00, 0x00, 0x00, 0x02}, l.Code())
}

func TestListing_HeaderDisciplines(t *testing.T) {
	l := NewListing()
	require.NoError(t, l.EmitHeader())

	require.ErrorIs(t, l.EmitHeader(), ErrHeaderEmitted)
	require.ErrorIs(t, l.SetNumMemoryLocations(1), ErrHeaderEmitted)
}

func TestListing_Appenders(t *testing.T) {
	l := NewListing()
	l.AppendInstruction(vm.OP_CONST_1B)
	l.AppendInt8(-2)
	l.AppendInstruction(vm.OP_CONST_2B)
	l.AppendInt16(-259)
	l.AppendInstruction(vm.OP_CONST_4B)
	l.AppendInt32(0x01020304)

	require.Equal(t, []byte{
		3, 0xFE,
		4, 0xFE, 0xFD,
		5, 0x01, 0x02, 0x03, 0x04,
	}, l.Code())
}

func TestListing_OpcodeAndLiteralAreDistinct(t *testing.T) {
	// Appending the CONST_1B opcode and appending the literal byte 3 are
	// different operations even though both produce the byte 0x03.
	l := NewListing()
	l.AppendInstruction(vm.OP_CONST_1B)
	l.AppendInt8(3)

	require.Equal(t, []byte{3, 3}, l.Code())
}

func TestFitsHelpers(t *testing.T) {
	tests := []struct {
		v       int32
		inInt8  bool
		inInt16 bool
	}{
		{0, true, true},
		{127, true, true},
		{128, false, true},
		{-128, true, true},
		{-129, false, true},
		{32767, false, true},
		{32768, false, false},
		{-32768, false, true},
		{-32769, false, false},
		{2147483647, false, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.inInt8, FitsInInt8(tt.v), "FitsInInt8(%d)", tt.v)
		require.Equal(t, tt.inInt16, FitsInInt16(tt.v), "FitsInInt16(%d)", tt.v)
	}
}

func TestSwapEndian_Involution(t *testing.T) {
	for _, v := range []uint16{0, 1, 0x1234, 0xFFFF, 0x00FF} {
		require.Equal(t, v, SwapEndian16(SwapEndian16(v)))
	}
	for _, v := range []uint32{0, 1, 0x12345678, 0xFFFFFFFF, 0x0000FFFF} {
		require.Equal(t, v, SwapEndian32(SwapEndian32(v)))
	}
}

func TestSwapEndian_Values(t *testing.T) {
	require.Equal(t, uint16(0x3412), SwapEndian16(0x1234))
	require.Equal(t, uint32(0x78563412), SwapEndian32(0x12345678))
}
