// Package token defines Wren's lexical token model: the kind enumeration,
// the keyword table, and the Token record produced by the scanner and
// consumed by the parser.
package token

import "github.com/wren-lang/wren-analyzer/core/source"

// Kind enumerates every lexical token kind the scanner can produce.
type Kind int

const (
	// Sentinels
	Error Kind = iota
	Eof

	// Significant newline
	Line

	// Punctuators
	LeftParen    // (
	RightParen   // )
	LeftBracket  // [
	RightBracket // ]
	LeftBrace    // {
	RightBrace   // }
	Colon        // :
	Comma        // ,
	Dot          // .
	DotDot       // ..
	DotDotDot    // ...
	Minus        // -
	Plus         // +
	Slash        // /
	Star         // *
	Percent      // %
	Bang         // !
	BangEqual    // !=
	Equal        // =
	EqualEqual   // ==
	Greater      // >
	GreaterEqual // >=
	GreaterGreater
	Less      // <
	LessEqual // <=
	LessLess
	Pipe       // |
	PipePipe   // ||
	Amp        // &
	AmpAmp     // &&
	Caret      // ^
	Tilde      // ~
	Question   // ?
	Arrow      // ->

	// Keywords
	Break
	ClassKw
	Construct
	Else
	False
	For
	Foreign
	If
	Import
	In
	Is
	Null
	Return
	Static
	Super
	This
	True
	Var
	While

	// Literals
	Number
	String
	Interpolation

	// Identifier classes
	Name
	Field
	StaticField
)

var kindNames = map[Kind]string{
	Error: "Error", Eof: "Eof", Line: "Line",
	LeftParen: "LeftParen", RightParen: "RightParen",
	LeftBracket: "LeftBracket", RightBracket: "RightBracket",
	LeftBrace: "LeftBrace", RightBrace: "RightBrace",
	Colon: "Colon", Comma: "Comma", Dot: "Dot", DotDot: "DotDot", DotDotDot: "DotDotDot",
	Minus: "Minus", Plus: "Plus", Slash: "Slash", Star: "Star", Percent: "Percent",
	Bang: "Bang", BangEqual: "BangEqual", Equal: "Equal", EqualEqual: "EqualEqual",
	Greater: "Greater", GreaterEqual: "GreaterEqual", GreaterGreater: "GreaterGreater",
	Less: "Less", LessEqual: "LessEqual", LessLess: "LessLess",
	Pipe: "Pipe", PipePipe: "PipePipe", Amp: "Amp", AmpAmp: "AmpAmp",
	Caret: "Caret", Tilde: "Tilde", Question: "Question", Arrow: "Arrow",
	Break: "Break", ClassKw: "Class", Construct: "Construct", Else: "Else", False: "False",
	For: "For", Foreign: "Foreign", If: "If", Import: "Import", In: "In", Is: "Is",
	Null: "Null", Return: "Return", Static: "Static", Super: "Super", This: "This",
	True: "True", Var: "Var", While: "While",
	Number: "Number", String: "String", Interpolation: "Interpolation",
	Name: "Name", Field: "Field", StaticField: "StaticField",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Keywords maps every reserved word to its keyword Kind.
var Keywords = map[string]Kind{
	"break":     Break,
	"class":     ClassKw,
	"construct": Construct,
	"else":      Else,
	"false":     False,
	"for":       For,
	"foreign":   Foreign,
	"if":        If,
	"import":    Import,
	"in":        In,
	"is":        Is,
	"null":      Null,
	"return":    Return,
	"static":    Static,
	"super":     Super,
	"this":      This,
	"true":      True,
	"var":       Var,
	"while":     While,
}

// Token is a single lexical token: an offset/length span borrowed from the
// source buffer plus the resolved text for that span. Tokens do not own
// their text — Text is a substring of the buffer, cheap because Go strings
// share backing storage.
type Token struct {
	Source *source.Buffer
	Kind   Kind
	Start  int
	Length int
	Text   string
}

// New constructs a Token, resolving Text from buf.
func New(buf *source.Buffer, kind Kind, start, length int) Token {
	return Token{
		Source: buf,
		Kind:   kind,
		Start:  start,
		Length: length,
		Text:   buf.Substring(start, length),
	}
}

// Line returns the 1-based source line this token starts on.
func (t Token) Line() int {
	if t.Source == nil {
		return 0
	}
	return t.Source.Line(t.Start)
}

// Column returns the 1-based source column this token starts on.
func (t Token) Column() int {
	if t.Source == nil {
		return 0
	}
	return t.Source.Column(t.Start)
}

// IsKeyword reports whether kind is one of Wren's reserved words.
func IsKeyword(k Kind) bool {
	return k >= Break && k <= While
}
