package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wren-lang/wren-analyzer/core/diag"
	"github.com/wren-lang/wren-analyzer/core/source"
	"github.com/wren-lang/wren-analyzer/runtime/parser"
)

func resolve(t *testing.T, text string) []diag.Diagnostic {
	t.Helper()
	buf := source.New("test.wren", text)
	mod, parseDiags := parser.ParseModule(buf)
	require.Empty(t, parseDiags.All())
	return Resolve(mod).All()
}

func codes(diags []diag.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestDeclareThenUseHasNoDiagnostic(t *testing.T) {
	require.Empty(t, resolve(t, "var x\nx"))
}

func TestUndeclaredNameIsUndefined(t *testing.T) {
	diags := resolve(t, "x")
	require.Equal(t, []string{diag.CodeUndefinedVariable}, codes(diags))
}

func TestSelfReferentialInitializerResolvesAgainstItsOwnDeclaration(t *testing.T) {
	require.Empty(t, resolve(t, "var x = x"))
}

func TestRedeclarationIsDuplicate(t *testing.T) {
	diags := resolve(t, "var x\nvar x")
	require.Equal(t, []string{diag.CodeDuplicateVariable}, codes(diags))
}

func TestClassBodyUnresolvedLowercaseNameIsUndefined(t *testing.T) {
	diags := resolve(t, "class Foo { bar() { baz } }")
	require.Equal(t, []string{diag.CodeUndefinedVariable}, codes(diags))
}

func TestClassBodyForwardReferenceSuppressedByBareImport(t *testing.T) {
	diags := resolve(t, "import \"m\"\nclass Foo { bar() { Baz } }")
	require.Empty(t, diags)
}

func TestClassBodyUppercaseResolvesAtModuleScope(t *testing.T) {
	diags := resolve(t, "class Bar {}\nclass Foo { bar() { Bar } }")
	require.Empty(t, diags)
}

func TestForLoopVariableIsScoped(t *testing.T) {
	diags := resolve(t, "for (i in list) { i }")
	// `list` is an undeclared bare name; `i` resolves fine as the loop var.
	require.Equal(t, []string{diag.CodeUndefinedVariable}, codes(diags))
}

func TestUndefinedVariableSuggestsCloseName(t *testing.T) {
	diags := resolve(t, "var count\ncout")
	require.Len(t, diags, 1)
	require.Contains(t, diags[0].Message, "count")
}
