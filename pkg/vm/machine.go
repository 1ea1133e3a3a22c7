package vm

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ceelang/cee/pkg/report"
)

// Machine is a stack-based virtual machine for compiled programs. It
// specializes the decoder with an operand stack and a main memory of 32-bit
// signed integers, sized by the program header. Arithmetic wraps with
// two's-complement semantics; division truncates toward zero.
type Machine struct {
	NopHandler
	dec    *Decoder
	stack  []int32
	memory []int32
	out    io.Writer
	rep    *report.Reporter

	failure error
}

// NewMachine creates a machine printing to standard output and reporting
// diagnostics through the default reporter.
func NewMachine() *Machine {
	m := &Machine{
		out: os.Stdout,
		rep: report.Default(),
	}
	m.dec = NewDecoder(m)
	return m
}

// SetOutput redirects PRINT output to w.
func (m *Machine) SetOutput(w io.Writer) {
	m.out = w
}

// SetReporter redirects diagnostics to r.
func (m *Machine) SetReporter(r *report.Reporter) {
	m.rep = r
}

// Execute runs a program until it reaches the end of the stream or faults.
// A fault is reported through the reporter and returned.
func (m *Machine) Execute(program []byte) error {
	m.failure = nil
	err := m.dec.Invoke(program)
	if m.failure != nil {
		return m.failure
	}
	if err != nil {
		m.rep.Error(err)
	}
	return err
}

// fault records a runtime failure, reports it, and stops the decoder.
func (m *Machine) fault(format string, args ...any) bool {
	m.failure = fmt.Errorf(format, args...)
	m.rep.Error(m.failure)
	return false
}

func (m *Machine) push(v int32) {
	m.stack = append(m.stack, v)
}

func (m *Machine) pop() (int32, bool) {
	if len(m.stack) == 0 {
		return 0, false
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, true
}

func (m *Machine) underflow(inst Op) bool {
	return m.fault("Stack underflow in %s at pc %d", inst, m.dec.PC())
}

func (m *Machine) checkIndex(idx int32) bool {
	return idx >= 0 && int(idx) < len(m.memory)
}

func (m *Machine) PrepareEnvironment() bool {
	m.stack = m.stack[:0]
	m.memory = nil
	return true
}

func (m *Machine) ProcessMagicNumber(number int32) bool {
	if number != MagicNumber {
		return m.fault("Bad magic number 0x%08x; this is not a compiled program", uint32(number))
	}
	return true
}

// ProcessMemorySize allocates the main memory. Its initial contents are
// unspecified.
func (m *Machine) ProcessMemorySize(value int32) bool {
	if value < 0 {
		return m.fault("Invalid memory size %d", value)
	}
	m.memory = make([]int32, value)
	return true
}

func (m *Machine) ProcessInstLOAD() bool {
	idx, ok := m.pop()
	if !ok {
		return m.underflow(OP_LOAD)
	}
	if !m.checkIndex(idx) {
		return m.fault("Memory index %d out of bounds in LOAD at pc %d", idx, m.dec.PC())
	}
	m.push(m.memory[idx])
	return true
}

func (m *Machine) ProcessInstSTORE() bool {
	idx, ok := m.pop()
	if !ok {
		return m.underflow(OP_STORE)
	}
	value, ok := m.pop()
	if !ok {
		return m.underflow(OP_STORE)
	}
	if !m.checkIndex(idx) {
		return m.fault("Memory index %d out of bounds in STORE at pc %d", idx, m.dec.PC())
	}
	m.memory[idx] = value
	return true
}

func (m *Machine) ProcessInstCONST_1B(value int8) bool {
	m.push(int32(value))
	return true
}

func (m *Machine) ProcessInstCONST_2B(value int16) bool {
	m.push(int32(value))
	return true
}

func (m *Machine) ProcessInstCONST_4B(value int32) bool {
	m.push(value)
	return true
}

func (m *Machine) ProcessInstCONST_0() bool {
	m.push(0)
	return true
}

func (m *Machine) ProcessInstCONST_1() bool {
	m.push(1)
	return true
}

// pop2 pops the two top-most values. v1 is the second value popped, so the
// arithmetic instructions compute v1 OP v2.
func (m *Machine) pop2(inst Op) (v1, v2 int32, ok bool) {
	v2, ok = m.pop()
	if !ok {
		m.underflow(inst)
		return
	}
	v1, ok = m.pop()
	if !ok {
		m.underflow(inst)
		return
	}
	return
}

func (m *Machine) ProcessInstADD() bool {
	v1, v2, ok := m.pop2(OP_ADD)
	if !ok {
		return false
	}
	m.push(v1 + v2)
	return true
}

func (m *Machine) ProcessInstSUB() bool {
	v1, v2, ok := m.pop2(OP_SUB)
	if !ok {
		return false
	}
	m.push(v1 - v2)
	return true
}

func (m *Machine) ProcessInstMUL() bool {
	v1, v2, ok := m.pop2(OP_MUL)
	if !ok {
		return false
	}
	m.push(v1 * v2)
	return true
}

func (m *Machine) ProcessInstDIV() bool {
	v1, v2, ok := m.pop2(OP_DIV)
	if !ok {
		return false
	}
	if v2 == 0 {
		return m.fault("Division by zero at pc %d", m.dec.PC())
	}
	// MinInt32 / -1 overflows; the result wraps back to MinInt32.
	if v1 == math.MinInt32 && v2 == -1 {
		m.push(v1)
		return true
	}
	m.push(v1 / v2)
	return true
}

func (m *Machine) ProcessInstSWAP() bool {
	v1, ok := m.pop()
	if !ok {
		return m.underflow(OP_SWAP)
	}
	v2, ok := m.pop()
	if !ok {
		return m.underflow(OP_SWAP)
	}
	m.push(v1)
	m.push(v2)
	return true
}

func (m *Machine) ProcessInstPRINT() bool {
	v, ok := m.pop()
	if !ok {
		return m.underflow(OP_PRINT)
	}
	fmt.Fprintln(m.out, v)
	return true
}

func (m *Machine) ProcessInstUnknown(inst byte) bool {
	return m.fault("Unknown instruction (0x%02x) at pc %d", inst, m.dec.PC())
}
