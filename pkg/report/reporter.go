package report

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Reporter is the sink for all human-readable toolchain output. Informational
// lines are written verbatim; error lines carry an "[ERROR] " prefix. All
// output goes to a single writer, standard output by default.
type Reporter struct {
	w io.Writer
}

// New creates a reporter bound to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

var (
	defaultOnce sync.Once
	defaultRep  *Reporter
)

// Default returns the process-wide reporter bound to standard output.
func Default() *Reporter {
	defaultOnce.Do(func() {
		defaultRep = New(os.Stdout)
	})
	return defaultRep
}

// Infof writes one informational line.
func (r *Reporter) Infof(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Errorf writes one error line.
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.w, "[ERROR] "+format+"\n", args...)
}

// Error writes an error produced by a failed pass.
func (r *Reporter) Error(err error) {
	r.Errorf("%s", err)
}
