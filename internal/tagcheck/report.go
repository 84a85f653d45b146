package tagcheck

import (
	"fmt"
	"io"
)

// Report prints one finding in the classic two-line checker shape:
//
//	Bad tag: x
//	From line 3: 'hola/s mundo/x'
func Report(w io.Writer, f Finding) {
	switch f.Kind {
	case KindBadTag:
		fmt.Fprintf(w, "Bad tag: %s\n", f.Detail)
	default:
		fmt.Fprintln(w, f.Detail)
	}
	fmt.Fprintf(w, "From line %d: '%s'\n", f.Line, f.Text)
}

// ReportAll prints findings in order and returns how many there were.
func ReportAll(w io.Writer, findings []Finding) int {
	for _, f := range findings {
		Report(w, f)
	}
	return len(findings)
}
