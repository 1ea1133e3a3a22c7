package emitter

import (
	"strconv"

	"github.com/ceelang/cee/pkg/compiler/ast"
	"github.com/ceelang/cee/pkg/compiler/symtab"
	"github.com/ceelang/cee/pkg/vm"
)

// Generator lowers a program tree to stack-machine code. All emission
// happens in PostVisit, so a node's code always follows its children's,
// matching the machine's bottom-up evaluation order.
//
// The target of an assignment is an L-value: only its memory index is
// emitted. Every other variable mention is an R-value: its index is emitted
// followed by LOAD.
type Generator struct {
	ast.DefaultVisitor
	listing *Listing
	table   *symtab.SymbolTable
	lvalue  bool
}

// NewGenerator creates a code generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate emits code for the program, resolving variable names through
// table. On error the partial code is discarded.
func (g *Generator) Generate(program *ast.Program, table *symtab.SymbolTable) ([]byte, error) {
	g.listing = NewListing()
	g.table = table
	g.lvalue = false

	if err := g.listing.SetNumMemoryLocations(table.Size()); err != nil {
		return nil, err
	}
	if err := g.listing.EmitHeader(); err != nil {
		return nil, err
	}
	if err := program.Accept(g); err != nil {
		return nil, err
	}
	return g.listing.Code(), nil
}

func (g *Generator) PreVisit(n ast.Node) error {
	if _, ok := n.(*ast.Assignment); ok {
		g.lvalue = true
	}
	return nil
}

func (g *Generator) BetweenChildren(n ast.Node) error {
	if _, ok := n.(*ast.Assignment); ok {
		g.lvalue = false
	}
	return nil
}

func (g *Generator) PostVisit(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Number:
		value, err := strconv.ParseInt(n.Lexeme, 10, 32)
		if err != nil {
			return ast.Errorf("Malformed number literal at %d:%d; %q does not fit a 32-bit signed integer",
				n.Line(), n.Column(), n.Lexeme)
		}
		g.emitLiteral(int32(value))

	case *ast.Variable:
		record := g.table.LookUp(n.Name)
		if record == nil {
			return ast.Errorf("No symbol table record for variable %q at %d:%d",
				n.Name, n.Line(), n.Column())
		}
		g.emitIndex(int32(record.MemoryIndex))
		if !g.lvalue {
			g.listing.AppendInstruction(vm.OP_LOAD)
		}

	case *ast.UnaryExpr:
		switch n.Op {
		case ast.Plus:
			// Unary plus is the identity; the operand's code suffices.
		case ast.Minus:
			// Negation is computed as 0 - operand.
			g.listing.AppendInstruction(vm.OP_CONST_0)
			g.listing.AppendInstruction(vm.OP_SWAP)
			g.listing.AppendInstruction(vm.OP_SUB)
		default:
			return ast.Errorf("Invalid unary operator %q at %d:%d", n.Op, n.Line(), n.Column())
		}

	case *ast.BinaryExpr:
		// The left operand is emitted first and thus popped second, which
		// is exactly the v1 slot of the arithmetic instructions.
		switch n.Op {
		case ast.Plus:
			g.listing.AppendInstruction(vm.OP_ADD)
		case ast.Minus:
			g.listing.AppendInstruction(vm.OP_SUB)
		case ast.Mul:
			g.listing.AppendInstruction(vm.OP_MUL)
		case ast.Div:
			g.listing.AppendInstruction(vm.OP_DIV)
		}

	case *ast.Assignment:
		// The stack holds the index below the value; STORE wants the index
		// on top.
		g.listing.AppendInstruction(vm.OP_SWAP)
		g.listing.AppendInstruction(vm.OP_STORE)

	case *ast.Print:
		g.listing.AppendInstruction(vm.OP_PRINT)
	}
	return nil
}

// emitLiteral emits the narrowest encoding of a source literal.
func (g *Generator) emitLiteral(v int32) {
	switch {
	case v == 0:
		g.listing.AppendInstruction(vm.OP_CONST_0)
	case v == 1:
		g.listing.AppendInstruction(vm.OP_CONST_1)
	default:
		g.emitSized(v)
	}
}

// emitIndex emits a memory index constant. Indices use the width-selection
// rules but never the CONST_0/CONST_1 shorthand, so index 0 is a CONST_1B.
func (g *Generator) emitIndex(v int32) {
	g.emitSized(v)
}

// emitSized emits the narrowest of the three sized constant encodings.
func (g *Generator) emitSized(v int32) {
	switch {
	case FitsInInt8(v):
		g.listing.AppendInstruction(vm.OP_CONST_1B)
		g.listing.AppendInt8(int8(v))
	case FitsInInt16(v):
		g.listing.AppendInstruction(vm.OP_CONST_2B)
		g.listing.AppendInt16(int16(v))
	default:
		g.listing.AppendInstruction(vm.OP_CONST_4B)
		g.listing.AppendInt32(v)
	}
}
