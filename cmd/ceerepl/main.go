package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/ceelang/cee"
	"github.com/ceelang/cee/pkg/report"
	"github.com/ceelang/cee/pkg/vm"
)

const historyFile = ".cee_history"

// The REPL keeps the statements entered so far and recompiles the whole
// program after each new one. A statement is kept only when the extended
// program both compiles and runs; output already shown is not repeated.
func main() {
	out := report.Default()

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var statements []string
	shown := 0

	for {
		input, err := ln.Prompt("cee> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return
		}
		if err != nil {
			out.Errorf("Failed to read input: %v", err)
			return
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(input)

		candidate := make([]string, len(statements), len(statements)+1)
		copy(candidate, statements)
		candidate = append(candidate, input)

		program, err := cee.Compile([]byte(strings.Join(candidate, "\n")))
		if err != nil {
			out.Error(err)
			continue
		}

		var buf bytes.Buffer
		m := vm.NewMachine()
		m.SetOutput(&buf)
		m.SetReporter(out)
		if err := m.Execute(program); err != nil {
			// The machine has already reported the fault; the offending
			// statement is dropped.
			continue
		}

		statements = candidate
		os.Stdout.Write(buf.Bytes()[shown:])
		shown = buf.Len()
	}
}
