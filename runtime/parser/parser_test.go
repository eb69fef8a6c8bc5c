package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wren-lang/wren-analyzer/core/ast"
	"github.com/wren-lang/wren-analyzer/core/source"
)

func parse(t *testing.T, text string) *ast.Module {
	t.Helper()
	buf := source.New("test.wren", text)
	mod, diags := ParseModule(buf)
	require.Empty(t, diags.All(), "unexpected parse diagnostics")
	return mod
}

func TestVarNoAnnotationNoInitializer(t *testing.T) {
	mod := parse(t, "var x")
	require.Len(t, mod.Statements, 1)
	v := mod.Statements[0].(*ast.VarStmt)
	require.Nil(t, v.Annotation)
	require.Nil(t, v.Initializer)
}

func TestVarAnnotationNoInitializer(t *testing.T) {
	mod := parse(t, "var x: Num")
	v := mod.Statements[0].(*ast.VarStmt)
	require.NotNil(t, v.Annotation)
	require.Equal(t, "Num", v.Annotation.Name.Text)
	require.Nil(t, v.Initializer)
}

func TestVarInitializerNoAnnotation(t *testing.T) {
	mod := parse(t, "var x = 42")
	v := mod.Statements[0].(*ast.VarStmt)
	require.Nil(t, v.Annotation)
	require.NotNil(t, v.Initializer)
	num, ok := v.Initializer.(*ast.Num)
	require.True(t, ok)
	require.Equal(t, "42", num.Token.Text)
}

func TestVarAnnotationAndInitializer(t *testing.T) {
	mod := parse(t, "var x: Num = 42")
	v := mod.Statements[0].(*ast.VarStmt)
	require.NotNil(t, v.Annotation)
	require.NotNil(t, v.Initializer)
}

func callChainDepth(e ast.Expr) int {
	depth := 0
	for {
		call, ok := e.(*ast.Call)
		if !ok || call.Receiver == nil {
			break
		}
		depth++
		e = call.Receiver
	}
	return depth
}

func TestDotChainAcrossNewlinesMatchesAdjacent(t *testing.T) {
	adjacent := parse(t, "a.b")
	oneNewline := parse(t, "a\n.b")
	manyNewlines := parse(t, "a\n\n  .b")

	for _, mod := range []*ast.Module{adjacent, oneNewline, manyNewlines} {
		require.Len(t, mod.Statements, 1)
		stmt := mod.Statements[0].(*ast.ExprStmt)
		call, ok := stmt.Expression.(*ast.Call)
		require.True(t, ok)
		require.Equal(t, "b", call.Name.Text)
		require.Equal(t, 1, callChainDepth(call))
	}
}

func TestDotChainIgnoresNewlineAfterDot(t *testing.T) {
	mod := parse(t, "a.\n  b")
	require.Len(t, mod.Statements, 1)
	stmt := mod.Statements[0].(*ast.ExprStmt)
	call, ok := stmt.Expression.(*ast.Call)
	require.True(t, ok)
	require.Equal(t, "b", call.Name.Text)
}

func TestMethodReturnArrowIgnoresNewlineBeforeType(t *testing.T) {
	mod := parse(t, "class Foo {\n  bar() ->\n    String { \"hi\" }\n}")
	cls := mod.Statements[0].(*ast.ClassStmt)
	require.Len(t, cls.Methods, 1)
	require.NotNil(t, cls.Methods[0].ReturnType)
	require.Equal(t, "String", cls.Methods[0].ReturnType.Name.Text)
}

func TestExpressionSpanWithinParentSpan(t *testing.T) {
	mod := parse(t, "var x = 1 + 2 * 3")
	v := mod.Statements[0].(*ast.VarStmt)
	start, end := v.Initializer.Span()
	pStart, pEnd := v.Span()
	require.GreaterOrEqual(t, start, pStart)
	require.LessOrEqual(t, end, pEnd)
}

func TestClassWithMethodsAndSuperclass(t *testing.T) {
	mod := parse(t, `class Foo is Bar {
  construct new() {}
  static bar() { 1 }
  baz(a, b) { a + b }
  +(other) { this }
  !() { false }
  [i] { i }
  [i]=(v) {}
  name=(v) {}
}`)
	cls := mod.Statements[0].(*ast.ClassStmt)
	require.Equal(t, "Foo", cls.Name.Text)
	require.NotNil(t, cls.Superclass)
	require.Equal(t, "Bar", cls.Superclass.Text)
	require.Len(t, cls.Methods, 8)

	require.True(t, cls.Methods[0].Construct)
	require.True(t, cls.Methods[1].Static)
	require.Equal(t, "baz", cls.Methods[2].Name)
	require.Len(t, cls.Methods[2].Parameters, 2)
	require.Equal(t, "+", cls.Methods[3].Name)
	require.Equal(t, "!", cls.Methods[4].Name)
	require.True(t, cls.Methods[5].IsSubscript)
	require.True(t, cls.Methods[6].IsSubscript)
	require.True(t, cls.Methods[6].IsSetter)
	require.Equal(t, "name=", cls.Methods[7].RegistryName())
}

func TestImportWithForAndAlias(t *testing.T) {
	mod := parse(t, `import "module" for Foo, Bar as Baz`)
	imp := mod.Statements[0].(*ast.ImportStmt)
	require.True(t, imp.HasFor)
	require.Len(t, imp.Names, 2)
	require.Equal(t, "Foo", imp.Names[0].Name.Text)
	require.Nil(t, imp.Names[0].Alias)
	require.Equal(t, "Bar", imp.Names[1].Name.Text)
	require.Equal(t, "Baz", imp.Names[1].Alias.Text)
}

func TestBareImportHasNoFor(t *testing.T) {
	mod := parse(t, `import "module"`)
	imp := mod.Statements[0].(*ast.ImportStmt)
	require.False(t, imp.HasFor)
	require.Empty(t, imp.Names)
}

func TestIfElseAndWhile(t *testing.T) {
	mod := parse(t, "if (true) { 1 } else { 2 }\nwhile (true) { break }")
	require.Len(t, mod.Statements, 2)
	ifStmt := mod.Statements[0].(*ast.IfStmt)
	require.NotNil(t, ifStmt.Else)
	whileStmt := mod.Statements[1].(*ast.WhileStmt)
	block := whileStmt.Body.(*ast.BlockStmt)
	_, ok := block.Statements[0].(*ast.BreakStmt)
	require.True(t, ok)
}

func TestForWithAnnotation(t *testing.T) {
	mod := parse(t, "for (x: Num in range) { x }")
	forStmt := mod.Statements[0].(*ast.ForStmt)
	require.NotNil(t, forStmt.Annotation)
	require.Equal(t, "Num", forStmt.Annotation.Name.Text)
}

func TestBlockArgumentWithPipeParameters(t *testing.T) {
	mod := parse(t, "list.each { |x| x }")
	stmt := mod.Statements[0].(*ast.ExprStmt)
	call := stmt.Expression.(*ast.Call)
	require.NotNil(t, call.BlockArgument)
	require.Len(t, call.BlockArgument.Parameters, 1)
	require.Equal(t, "x", call.BlockArgument.Parameters[0].Name.Text)
}

func TestMethodReturnTypeAnnotation(t *testing.T) {
	mod := parse(t, "class Foo { bar() -> Num { 1 } }")
	cls := mod.Statements[0].(*ast.ClassStmt)
	require.NotNil(t, cls.Methods[0].ReturnType)
	require.Equal(t, "Num", cls.Methods[0].ReturnType.Name.Text)
}
