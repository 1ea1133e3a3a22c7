package vm

// Op is a single-byte instruction identifier in the code stream.
type Op byte

// The instruction set. Stack effects are written top-first, so the left-most
// value is the first one popped.
const (
	OP_LOAD     Op = 1  // idx -- mem[idx]
	OP_STORE    Op = 2  // idx value --
	OP_CONST_1B Op = 3  // -- v (sign-extended 1-byte inline operand)
	OP_CONST_2B Op = 4  // -- v (sign-extended 2-byte big-endian inline operand)
	OP_CONST_4B Op = 5  // -- v (4-byte big-endian inline operand)
	OP_ADD      Op = 6  // v2 v1 -- v1+v2
	OP_SUB      Op = 7  // v2 v1 -- v1-v2
	OP_MUL      Op = 8  // v2 v1 -- v1*v2
	OP_DIV      Op = 9  // v2 v1 -- v1/v2
	OP_SWAP     Op = 10 // v1 v2 -- v2 v1
	OP_PRINT    Op = 11 // v --
	OP_CONST_0  Op = 12 // -- 0
	OP_CONST_1  Op = 13 // -- 1
)

// MagicNumber is the 4-byte signature identifying a compiled program.
const MagicNumber int32 = 0x1337D00D

// HeaderSize is the number of bytes before the code stream: the magic number
// followed by the memory location count, both big-endian.
const HeaderSize = 8

var opNames = map[Op]string{
	OP_LOAD:     "LOAD",
	OP_STORE:    "STORE",
	OP_CONST_1B: "CONST_1B",
	OP_CONST_2B: "CONST_2B",
	OP_CONST_4B: "CONST_4B",
	OP_ADD:      "ADD",
	OP_SUB:      "SUB",
	OP_MUL:      "MUL",
	OP_DIV:      "DIV",
	OP_SWAP:     "SWAP",
	OP_PRINT:    "PRINT",
	OP_CONST_0:  "CONST_0",
	OP_CONST_1:  "CONST_1",
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}
