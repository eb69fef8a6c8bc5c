package wrenanalyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wren-lang/wren-analyzer/core/diag"
)

func TestAnalyzeRunsAllStagesInOrder(t *testing.T) {
	result := Analyze(`var x: Num = "hi"`, "fixture.wren")
	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, diag.Warning, result.Diagnostics[0].Severity)
	require.Equal(t, diag.CodeTypeMismatch, result.Diagnostics[0].Code)
}

func TestAnalyzeSkipsTypecheckWhenParserHasErrors(t *testing.T) {
	result := Analyze(`var = `, "fixture.wren")
	require.NotEmpty(t, result.Diagnostics)
	for _, d := range result.Diagnostics {
		require.Equal(t, diag.CodeParseError, d.Code)
	}
}

func TestParseOnlyReturnsOnlyParserDiagnostics(t *testing.T) {
	result := ParseOnly("x", "fixture.wren")
	require.Empty(t, result.Diagnostics)
	require.NotNil(t, result.Module)
}

func TestAnalyzeUndefinedVariable(t *testing.T) {
	result := Analyze("x", "fixture.wren")
	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, diag.CodeUndefinedVariable, result.Diagnostics[0].Code)
}
