package vm

import (
	"fmt"
	"strconv"

	"github.com/ceelang/cee/pkg/report"
)

// ListingPrinter is a decoder client that renders a compiled program as an
// annotated instruction listing instead of executing it. Unknown bytes are
// reported and skipped, so a partially corrupt program still prints.
type ListingPrinter struct {
	NopHandler
	dec *Decoder
	rep *report.Reporter
}

// NewListingPrinter creates a printer reporting through r.
func NewListingPrinter(r *report.Reporter) *ListingPrinter {
	p := &ListingPrinter{rep: r}
	p.dec = NewDecoder(p)
	return p
}

// Print renders program as a listing.
func (p *ListingPrinter) Print(program []byte) error {
	return p.dec.Invoke(program)
}

func (p *ListingPrinter) PrepareEnvironment() bool {
	p.rep.Infof("PROGRAM INFO:")
	p.rep.Infof("Total code size: %d bytes", p.dec.ProgramSize())
	return true
}

func (p *ListingPrinter) ProcessMagicNumber(number int32) bool {
	p.rep.Infof("Magic value: 0x%x", uint32(number))
	return true
}

func (p *ListingPrinter) ProcessMemorySize(value int32) bool {
	p.rep.Infof("Memory size (number of 4-byte values): %d", value)
	return true
}

func (p *ListingPrinter) BeforeCodeExecution() bool {
	p.rep.Infof("")
	p.rep.Infof("CODE:")
	return true
}

// line prints one instruction with its program counter right-aligned to the
// width of the last program counter.
func (p *ListingPrinter) line(text string) bool {
	width := len(strconv.Itoa(p.dec.PCAtEnd()))
	p.rep.Infof("%*d: %s", width, p.dec.PC(), text)
	return true
}

func (p *ListingPrinter) ProcessInstLOAD() bool { return p.line("LOAD") }
func (p *ListingPrinter) ProcessInstSTORE() bool { return p.line("STORE") }

func (p *ListingPrinter) ProcessInstCONST_1B(value int8) bool {
	return p.line(fmt.Sprintf("CONST_1B (%d)", value))
}

func (p *ListingPrinter) ProcessInstCONST_2B(value int16) bool {
	return p.line(fmt.Sprintf("CONST_2B (%d)", value))
}

func (p *ListingPrinter) ProcessInstCONST_4B(value int32) bool {
	return p.line(fmt.Sprintf("CONST_4B (%d)", value))
}

func (p *ListingPrinter) ProcessInstCONST_0() bool { return p.line("CONST_0") }
func (p *ListingPrinter) ProcessInstCONST_1() bool { return p.line("CONST_1") }
func (p *ListingPrinter) ProcessInstADD() bool { return p.line("ADD") }
func (p *ListingPrinter) ProcessInstSUB() bool { return p.line("SUB") }
func (p *ListingPrinter) ProcessInstMUL() bool { return p.line("MUL") }
func (p *ListingPrinter) ProcessInstDIV() bool { return p.line("DIV") }
func (p *ListingPrinter) ProcessInstSWAP() bool { return p.line("SWAP") }
func (p *ListingPrinter) ProcessInstPRINT() bool { return p.line("PRINT") }

func (p *ListingPrinter) ProcessInstUnknown(inst byte) bool {
	return p.line(fmt.Sprintf("Unknown instruction (0x%02x)", inst))
}
