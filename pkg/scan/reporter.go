package scan

import (
	"fmt"
	"io"

	"github.com/firmtools/hexlint/pkg/ihex"
)

// Result is the outcome of parsing one line of input.
type Result struct {
	Line   int         // 1-based line number
	Raw    string      // stripped line text
	Record ihex.Record // decoded record when Err is nil
	Err    error       // parse failure for this line
}

// Reporter consumes per-line outcomes during a scan.
type Reporter interface {
	Report(Result)
}

// Console writes the human-readable report stream: for a valid line the
// record's type name, for an invalid line the error description followed by
// the raw line text so rejected lines stay visible next to the reason.
type Console struct {
	w io.Writer
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Report writes the outcome of one line.
func (c *Console) Report(result Result) {
	if result.Err != nil {
		fmt.Fprintln(c.w, result.Err)
		fmt.Fprintln(c.w, result.Raw)
		return
	}

	fmt.Fprintln(c.w, result.Record.Type)
}

// Collector retains every result in order, for callers that post-process
// outcomes instead of streaming them.
type Collector struct {
	Results []Result
}

// Report appends the result.
func (c *Collector) Report(result Result) {
	c.Results = append(c.Results, result)
}

// Discard drops every result. Stats-only scans use it.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Report(Result) {}
