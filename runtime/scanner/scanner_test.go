package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wren-lang/wren-analyzer/core/source"
	"github.com/wren-lang/wren-analyzer/core/token"
)

func scanAll(t *testing.T, text string) []token.Token {
	t.Helper()
	buf := source.New("test.wren", text)
	s := New(buf)
	var toks []token.Token
	for {
		tok := s.ReadToken()
		toks = append(toks, tok)
		if tok.Kind == token.Eof {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenTextMatchesSourceSubstring(t *testing.T) {
	text := "var x = 1 + 2\nclass Foo {}\n"
	buf := source.New("test.wren", text)
	for _, tok := range scanAll(t, text) {
		require.Equal(t, buf.Substring(tok.Start, tok.Length), tok.Text)
	}
}

func TestHexNumberIsOneToken(t *testing.T) {
	toks := scanAll(t, "0xFF")
	require.Equal(t, []token.Kind{token.Number, token.Eof}, kinds(toks))
	require.Equal(t, "0xFF", toks[0].Text)
}

func TestDecimalNumberIsOneToken(t *testing.T) {
	toks := scanAll(t, "3.14")
	require.Equal(t, []token.Kind{token.Number, token.Eof}, kinds(toks))
	require.Equal(t, "3.14", toks[0].Text)
}

func TestRangeDoesNotConsumeIntoDecimal(t *testing.T) {
	toks := scanAll(t, "1..2")
	require.Equal(t, []token.Kind{token.Number, token.DotDot, token.Number, token.Eof}, kinds(toks))
}

func TestStringInterpolation(t *testing.T) {
	toks := scanAll(t, `"hello %(name)"`)
	require.Equal(t, []token.Kind{token.Interpolation, token.Name, token.String, token.Eof}, kinds(toks))
	require.Equal(t, `"hello %(`, toks[0].Text)
	require.Equal(t, "name", toks[1].Text)
	require.Equal(t, `)"`, toks[2].Text)
}

func TestNestedInterpolation(t *testing.T) {
	toks := scanAll(t, `"%(a + "%(b)")"`)
	require.Equal(t, []token.Kind{
		token.Interpolation, token.Name, token.Plus, token.Interpolation, token.Name, token.String, token.String, token.Eof,
	}, kinds(toks))
}

func TestNestedBlockComment(t *testing.T) {
	toks := scanAll(t, "/* a /* b */ c */ 1")
	require.Equal(t, []token.Kind{token.Number, token.Eof}, kinds(toks))
	require.Equal(t, "1", toks[0].Text)
}

func TestMinusVersusArrow(t *testing.T) {
	toks := scanAll(t, "- ->")
	require.Equal(t, []token.Kind{token.Minus, token.Arrow, token.Eof}, kinds(toks))
}

func TestLineTokenProduced(t *testing.T) {
	toks := scanAll(t, "var x\nvar y")
	require.Equal(t, []token.Kind{
		token.Var, token.Name, token.Line, token.Var, token.Name, token.Eof,
	}, kinds(toks))
}

func TestFieldAndStaticFieldClasses(t *testing.T) {
	toks := scanAll(t, "_foo __bar baz")
	require.Equal(t, []token.Kind{token.Field, token.StaticField, token.Name, token.Eof}, kinds(toks))
}

func TestRawString(t *testing.T) {
	toks := scanAll(t, `"""multi
line"""`)
	require.Equal(t, []token.Kind{token.String, token.Eof}, kinds(toks))
}
