package main

import (
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/ceelang/cee"
	"github.com/ceelang/cee/pkg/report"
)

var options struct {
	Output string `short:"o" default:"program.o" description:"output file" value-name:"OUTPUT_FILE"`
}

func main() {
	out := report.Default()

	args, err := flags.Parse(&options)
	if err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		out.Errorf("Invalid option. Use \"-h\" for help.")
		os.Exit(1)
	}
	if len(args) > 0 {
		out.Errorf("Too many arguments. Use \"-h\" for help.")
		os.Exit(1)
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		out.Errorf("Failed to read input: %v", err)
		os.Exit(1)
	}

	// A rejected program is not a toolchain failure: report it, write
	// nothing, and exit cleanly.
	program, err := cee.Compile(source)
	if err != nil {
		out.Error(err)
		os.Exit(0)
	}

	if err := os.WriteFile(options.Output, program, 0644); err != nil {
		out.Errorf("Failed to write output file: %v", err)
		os.Exit(1)
	}
}
