package wrenanalyzer

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/wren-lang/wren-analyzer/core/source"
)

// expectation is one "// expect warning|error [line N]" marker resolved
// to a concrete (line, severity) pair.
type expectation struct {
	Line     int
	Severity string
}

var expectRe = regexp.MustCompile(`//\s*expect\s+(warning|error)(?:\s+line\s+(\d+))?`)

// parseExpectations walks every line of a fixture and collects its
// expected-diagnostic markers (spec §6), resolving "line N" markers to
// the line they target and defaulting to the marker's own line
// otherwise. It also reports whether the fixture opts out of execution
// via "// skip:" or "// nontest".
func parseExpectations(text string) (expectations []expectation, skip bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.Contains(line, "// skip:") || strings.Contains(line, "// nontest") {
			skip = true
		}
		m := expectRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		target := i + 1
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err == nil {
				target = n
			}
		}
		expectations = append(expectations, expectation{Line: target, Severity: m[1]})
	}
	return expectations, skip
}

func byLineThenSeverity(e []expectation) []expectation {
	sorted := append([]expectation(nil), e...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].Severity < sorted[j].Severity
	})
	return sorted
}

// TestFixtures runs every testdata/*.wren fixture through Analyze and
// checks that the diagnostics it produces land on exactly the lines and
// severities its "// expect" markers name (spec §6).
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.wren")
	require.NoError(t, err)
	require.NotEmpty(t, paths, "expected at least one fixture under testdata/")

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			contents, err := os.ReadFile(path)
			require.NoError(t, err)
			text := string(contents)

			want, skip := parseExpectations(text)
			if skip {
				t.Skip("fixture marked // skip: or // nontest")
			}

			result := Analyze(text, path)
			buf := source.New(path, text)

			got := make([]expectation, 0, len(result.Diagnostics))
			for _, d := range result.Diagnostics {
				got = append(got, expectation{
					Line:     buf.Line(d.Span.Start),
					Severity: string(d.Severity),
				})
			}

			if diff := cmp.Diff(byLineThenSeverity(want), byLineThenSeverity(got)); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s\nactual diagnostics: %+v", diff, result.Diagnostics)
			}
		})
	}
}
