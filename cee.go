// Package cee wires the compiler passes and the virtual machine into a
// single pipeline: source text is scanned and parsed into a tree, checked
// against the symbol table rules, and lowered to stack-machine code; the
// code can then be executed or pretty-printed.
package cee

import (
	"io"

	"github.com/ceelang/cee/pkg/compiler/ast"
	"github.com/ceelang/cee/pkg/compiler/emitter"
	"github.com/ceelang/cee/pkg/compiler/lexer"
	"github.com/ceelang/cee/pkg/compiler/parser"
	"github.com/ceelang/cee/pkg/compiler/symtab"
	"github.com/ceelang/cee/pkg/report"
	"github.com/ceelang/cee/pkg/vm"
)

// Compile translates source text into a compiled program image.
func Compile(source []byte) ([]byte, error) {
	program, table, err := Analyze(source)
	if err != nil {
		return nil, err
	}
	return emitter.NewGenerator().Generate(program, table)
}

// Analyze runs the front-end passes only: parse the source and build its
// symbol table. On error the returned tree and table must be discarded.
func Analyze(source []byte) (*ast.Program, *symtab.SymbolTable, error) {
	p := parser.NewParser(lexer.NewScanner(source))
	program, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}
	table := symtab.New()
	if err := symtab.NewBuilder().Build(program, table); err != nil {
		return nil, nil, err
	}
	return program, table, nil
}

// Run executes a compiled program. PRINT output goes to out, diagnostics to
// rep.
func Run(program []byte, out io.Writer, rep *report.Reporter) error {
	m := vm.NewMachine()
	m.SetOutput(out)
	m.SetReporter(rep)
	return m.Execute(program)
}
