package main

import (
	"io"
	"os"

	"github.com/ceelang/cee/pkg/compiler/ast"
	"github.com/ceelang/cee/pkg/compiler/lexer"
	"github.com/ceelang/cee/pkg/compiler/parser"
	"github.com/ceelang/cee/pkg/report"
)

// Parser harness: reads source text from standard input and prints the
// parsed program back in fully parenthesized form.
func main() {
	out := report.Default()

	if len(os.Args) > 1 {
		out.Errorf("This program takes no arguments; it reads from standard input.")
		os.Exit(1)
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		out.Errorf("Failed to read input: %v", err)
		os.Exit(1)
	}

	p := parser.NewParser(lexer.NewScanner(source))
	program, err := p.Parse()
	if err != nil {
		out.Error(err)
		os.Exit(0)
	}

	rendered, err := ast.NewPrinter().Render(program)
	if err != nil {
		out.Error(err)
		os.Exit(0)
	}
	os.Stdout.WriteString(rendered)
}
