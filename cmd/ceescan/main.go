package main

import (
	"io"
	"os"

	"github.com/ceelang/cee/pkg/compiler/lexer"
	"github.com/ceelang/cee/pkg/report"
)

// Scanner harness: reads source text from standard input and prints one line
// per token.
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

	s := lexer.NewScanner(source)
	for {
		tok := s.Next()
		if tok.Kind == lexer.KindEOF {
			break
		}
		out.Infof("%d:%d\t%s\t%q", tok.Line, tok.Column, tok.Kind, tok.Lexeme)
	}
}
