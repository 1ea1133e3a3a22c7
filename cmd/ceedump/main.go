package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/ceelang/cee/pkg/report"
	"github.com/ceelang/cee/pkg/vm"
)

var options struct {
	Args struct {
		Input string `positional-arg-name:"INPUT_FILE" required:"yes"`
	} `positional-args:"yes"`
}

func main() {
	out := report.Default()

	if _, err := flags.Parse(&options); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		out.Errorf("Invalid arguments. Use \"-h\" for help.")
		os.Exit(1)
	}

	program, err := os.ReadFile(options.Args.Input)
	if err != nil {
		out.Errorf("Failed to read input file: %v", err)
		os.Exit(1)
	}

	printer := vm.NewListingPrinter(out)
	if err := printer.Print(program); err != nil {
		out.Error(err)
	}
}
