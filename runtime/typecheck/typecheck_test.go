package typecheck

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wren-lang/wren-analyzer/core/diag"
	"github.com/wren-lang/wren-analyzer/core/source"
	"github.com/wren-lang/wren-analyzer/runtime/parser"
)

func check(t *testing.T, text string) []diag.Diagnostic {
	t.Helper()
	buf := source.New("test.wren", text)
	mod, parseDiags := parser.ParseModule(buf)
	require.Empty(t, parseDiags.All())
	return Check(mod).All()
}

func TestVarAnnotationMismatchWarnsTypeMismatch(t *testing.T) {
	diags := check(t, `var x: Num = "hello"`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.CodeTypeMismatch, diags[0].Code)
	require.Contains(t, diags[0].Message, "Num")
	require.Contains(t, diags[0].Message, "String")
}

func TestAssignmentMismatchWarnsOnce(t *testing.T) {
	diags := check(t, "var x: Num = 42\nx = \"oops\"")
	require.Len(t, diags, 1)
	require.Equal(t, diag.CodeTypeMismatch, diags[0].Code)
}

func TestUnknownStaticMethodWarns(t *testing.T) {
	diags := check(t, "class Foo {\n  construct new() {}\n  static bar() { 1 }\n}\nFoo.baz()")
	require.Len(t, diags, 1)
	require.Equal(t, diag.CodeUnknownMethod, diags[0].Code)
	require.Contains(t, diags[0].Message, "Foo")
	require.Contains(t, diags[0].Message, "baz")
}

func TestKnownCoreStaticMethodIsSilent(t *testing.T) {
	require.Empty(t, check(t, `System.print("x")`))
}

func TestUnknownCoreStaticMethodWarns(t *testing.T) {
	diags := check(t, "System.foo()")
	require.Len(t, diags, 1)
	require.Equal(t, diag.CodeUnknownMethod, diags[0].Code)
}

func TestKnownInstanceMethodOnUserClassIsSilent(t *testing.T) {
	diags := check(t, `class Foo {
  construct new() {}
  bar() { "" }
}
var f: Foo = Foo.new()
f.bar()`)
	require.Empty(t, diags)
}

func TestUnknownInstanceMethodOnUserClassWarns(t *testing.T) {
	diags := check(t, `class Foo {
  construct new() {}
  baz() { "" }
}
var f: Foo = Foo.new()
f.bar()`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.CodeUnknownMethod, diags[0].Code)
}

func TestKnownCoreInstanceMethodIsSilent(t *testing.T) {
	require.Empty(t, check(t, `var s = "hello"
s.contains("h")`))
}

func TestUnknownCoreInstanceMethodWarns(t *testing.T) {
	diags := check(t, `var s = "hello"
s.nonsense()`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.CodeUnknownMethod, diags[0].Code)
	require.Contains(t, diags[0].Message, "String")
	require.Contains(t, diags[0].Message, "nonsense")
}

func TestVarAnnotationWithoutInitializerWarns(t *testing.T) {
	diags := check(t, "var x: Num")
	require.Len(t, diags, 1)
	require.Equal(t, diag.CodeTypeMismatch, diags[0].Code)
}

func TestVarAnnotationNullWithoutInitializerIsSilent(t *testing.T) {
	require.Empty(t, check(t, "var x: Null"))
}
