// Package reporter formats diagnostics for the CLI driver: a pretty,
// terminal-oriented form and a JSON form, plus the driver-level
// max-errors truncation (spec §6, SPEC_FULL §C).
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/wren-lang/wren-analyzer/core/diag"
	"github.com/wren-lang/wren-analyzer/core/source"
)

// Truncate returns at most max diagnostics from diags. max <= 0 means
// unlimited. This is purely a reporting-layer concern; it never feeds
// back into analysis.
func Truncate(diags []diag.Diagnostic, max int) []diag.Diagnostic {
	if max <= 0 || len(diags) <= max {
		return diags
	}
	return diags[:max]
}

// WritePretty writes diags against buf's source in the form
// "[path line:col] Severity: message", followed by the offending source
// line and a caret underline of length max(1, span.length) under
// column span.start.
func WritePretty(w io.Writer, buf *source.Buffer, diags []diag.Diagnostic) {
	for _, d := range diags {
		line := buf.Line(d.Span.Start)
		col := buf.Column(d.Span.Start)
		fmt.Fprintf(w, "[%s %d:%d] %s: %s\n", buf.Path(), line, col, severityLabel(d.Severity), d.Message)

		text := buf.LineText(line)
		fmt.Fprintln(w, text)

		length := d.Span.Length
		if length < 1 {
			length = 1
		}
		fmt.Fprintln(w, strings.Repeat(" ", col-1)+strings.Repeat("^", length))
	}
}

func severityLabel(s diag.Severity) string {
	switch s {
	case diag.Error:
		return "Error"
	case diag.Warning:
		return "Warning"
	default:
		return "Info"
	}
}

// WriteJSON writes diags as a single JSON array, in pipeline order.
func WriteJSON(w io.Writer, diags []diag.Diagnostic) error {
	if diags == nil {
		diags = []diag.Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}
