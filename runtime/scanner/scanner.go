// Package scanner tokenizes Wren source text into a stream of tokens,
// including string interpolation with arbitrary nesting, nested block
// comments, maximal-munch punctuation, raw strings, and attributes.
package scanner

import (
	"log/slog"
	"os"

	"github.com/wren-lang/wren-analyzer/core/source"
	"github.com/wren-lang/wren-analyzer/core/token"
)

// Option configures a Scanner, following the functional-options shape
// used throughout this pipeline's stages.
type Option func(*config)

type config struct {
	debug bool
}

// WithDebug enables debug-level token tracing in addition to whatever
// the WREN_ANALYZER_DEBUG environment variable already requests.
func WithDebug(enabled bool) Option {
	return func(c *config) { c.debug = enabled }
}

func newDebugLogger(enabled bool) *slog.Logger {
	if enabled || os.Getenv("WREN_ANALYZER_DEBUG") != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
					return slog.Attr{}
				}
				return a
			},
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Scanner converts a byte stream into tokens, pulled lazily one at a time
// by the parser via ReadToken.
type Scanner struct {
	buf *source.Buffer
	src string

	offset int // current byte offset
	start  int // offset of the token currently being scanned

	// interpDepth tracks, for each currently-open "%(...)" interpolation,
	// the number of unmatched open parentheses seen inside it. Pushed
	// when a "%(" is consumed, popped when its matching ")" is found.
	interpDepth []int

	debugLogger *slog.Logger
}

// New constructs a Scanner over buf.
func New(buf *source.Buffer, opts ...Option) *Scanner {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	s := &Scanner{buf: buf, src: buf.Text(), debugLogger: newDebugLogger(cfg.debug)}
	s.skipBOMAndShebang()
	return s
}

func (s *Scanner) skipBOMAndShebang() {
	if len(s.src) >= 3 && s.src[0] == 0xEF && s.src[1] == 0xBB && s.src[2] == 0xBF {
		s.offset = 3
	}
	if s.offset+1 < len(s.src) && s.src[s.offset] == '#' && s.src[s.offset+1] == '!' {
		for s.offset < len(s.src) && s.src[s.offset] != '\n' {
			s.offset++
		}
	}
}

func (s *Scanner) atEnd() bool { return s.offset >= len(s.src) }

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.offset]
}

func (s *Scanner) peekAt(n int) byte {
	if s.offset+n >= len(s.src) {
		return 0
	}
	return s.src[s.offset+n]
}

func (s *Scanner) advance() byte {
	b := s.src[s.offset]
	s.offset++
	return b
}

func (s *Scanner) match(b byte) bool {
	if s.peek() != b {
		return false
	}
	s.offset++
	return true
}

func (s *Scanner) make(kind token.Kind) token.Token {
	t := token.New(s.buf, kind, s.start, s.offset-s.start)
	s.debugLogger.Debug("token", "kind", kind.String(), "text", t.Text)
	return t
}

// ReadToken returns the next token, or an Eof token once the source is
// exhausted.
func (s *Scanner) ReadToken() token.Token {
	s.skip()
	s.start = s.offset
	if s.atEnd() {
		return s.make(token.Eof)
	}

	c := s.advance()

	switch {
	case c == '\n':
		return s.make(token.Line)
	case isIdentStart(c):
		return s.readIdentifier()
	case isDigit(c):
		return s.readNumber()
	case c == '"':
		return s.readString()
	}

	switch c {
	case '(':
		s.enterParen()
		return s.make(token.LeftParen)
	case ')':
		if tok, ok := s.exitParenMaybeResumeString(); ok {
			return tok
		}
		return s.make(token.RightParen)
	case '[':
		return s.make(token.LeftBracket)
	case ']':
		return s.make(token.RightBracket)
	case '{':
		return s.make(token.LeftBrace)
	case '}':
		return s.make(token.RightBrace)
	case ':':
		return s.make(token.Colon)
	case ',':
		return s.make(token.Comma)
	case '.':
		if s.match('.') {
			if s.match('.') {
				return s.make(token.DotDotDot)
			}
			return s.make(token.DotDot)
		}
		return s.make(token.Dot)
	case '-':
		if s.match('>') {
			return s.make(token.Arrow)
		}
		return s.make(token.Minus)
	case '+':
		return s.make(token.Plus)
	case '/':
		return s.make(token.Slash)
	case '*':
		return s.make(token.Star)
	case '%':
		return s.make(token.Percent)
	case '!':
		if s.match('=') {
			return s.make(token.BangEqual)
		}
		return s.make(token.Bang)
	case '=':
		if s.match('=') {
			return s.make(token.EqualEqual)
		}
		return s.make(token.Equal)
	case '<':
		if s.match('=') {
			return s.make(token.LessEqual)
		}
		if s.match('<') {
			return s.make(token.LessLess)
		}
		return s.make(token.Less)
	case '>':
		if s.match('=') {
			return s.make(token.GreaterEqual)
		}
		if s.match('>') {
			return s.make(token.GreaterGreater)
		}
		return s.make(token.Greater)
	case '&':
		if s.match('&') {
			return s.make(token.AmpAmp)
		}
		return s.make(token.Amp)
	case '|':
		if s.match('|') {
			return s.make(token.PipePipe)
		}
		return s.make(token.Pipe)
	case '^':
		return s.make(token.Caret)
	case '~':
		return s.make(token.Tilde)
	case '?':
		return s.make(token.Question)
	}

	return s.make(token.Error)
}

// enterParen increments the innermost interpolation depth counter, if any
// interpolation is currently open. Parentheses outside any interpolation
// are ordinary grouping and do not touch the stack.
func (s *Scanner) enterParen() {
	if n := len(s.interpDepth); n > 0 {
		s.interpDepth[n-1]++
	}
}

// exitParenMaybeResumeString decrements the innermost interpolation depth
// counter. When it reaches zero, the interpolation is closed and the
// scanner resumes reading the enclosing string literal, producing either
// a further Interpolation token (another "%(" found) or a closing String
// token. Returns ok=false when this ")" was not closing an interpolation.
func (s *Scanner) exitParenMaybeResumeString() (token.Token, bool) {
	n := len(s.interpDepth)
	if n == 0 {
		return token.Token{}, false
	}
	s.interpDepth[n-1]--
	if s.interpDepth[n-1] > 0 {
		return token.Token{}, false
	}
	s.interpDepth = s.interpDepth[:n-1]
	return s.continueString(), true
}

// skip consumes spaces, tabs, carriage returns, line comments, and nested
// block comments. Line feeds are never skipped; they are tokenized.
func (s *Scanner) skip() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\t', '\r':
			s.offset++
		case '/':
			if s.peekAt(1) == '/' {
				for !s.atEnd() && s.peek() != '\n' {
					s.offset++
				}
			} else if s.peekAt(1) == '*' {
				s.skipBlockComment()
			} else {
				return
			}
		case '#':
			s.skipAttribute()
		default:
			return
		}
	}
}

func (s *Scanner) skipBlockComment() {
	s.offset += 2 // consume "/*"
	depth := 1
	for !s.atEnd() && depth > 0 {
		if s.peek() == '/' && s.peekAt(1) == '*' {
			depth++
			s.offset += 2
		} else if s.peek() == '*' && s.peekAt(1) == '/' {
			depth--
			s.offset += 2
		} else {
			s.offset++
		}
	}
	// Unterminated block comment at Eof is silently terminated.
}

// skipAttribute consumes a "#" or "#!" attribute line, tracking paren
// depth so a grouped attribute value may span multiple lines.
func (s *Scanner) skipAttribute() {
	s.offset++ // consume '#'
	if s.peek() == '!' {
		s.offset++
	}
	depth := 0
	for !s.atEnd() {
		switch s.peek() {
		case '(':
			depth++
			s.offset++
		case ')':
			if depth > 0 {
				depth--
			}
			s.offset++
		case '\n':
			if depth == 0 {
				return
			}
			s.offset++
		default:
			s.offset++
		}
	}
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentStart(c byte) bool { return isLetter(c) }
func isIdentPart(c byte) bool  { return isLetter(c) || isDigit(c) }
func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (s *Scanner) readIdentifier() token.Token {
	for !s.atEnd() && isIdentPart(s.peek()) {
		s.offset++
	}
	text := s.src[s.start:s.offset]
	if kind, ok := token.Keywords[text]; ok {
		return s.make(kind)
	}
	switch {
	case len(text) >= 2 && text[0] == '_' && text[1] == '_':
		return s.make(token.StaticField)
	case text[0] == '_':
		return s.make(token.Field)
	default:
		return s.make(token.Name)
	}
}

func (s *Scanner) readNumber() token.Token {
	// s.start already points at the leading digit just consumed.
	if s.src[s.start] == '0' && s.peek() == 'x' {
		s.offset++
		for !s.atEnd() && isHexDigit(s.peek()) {
			s.offset++
		}
		return s.make(token.Number)
	}

	for !s.atEnd() && isDigit(s.peek()) {
		s.offset++
	}
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		s.offset++ // consume '.'
		for !s.atEnd() && isDigit(s.peek()) {
			s.offset++
		}
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		save := s.offset
		s.offset++
		if s.peek() == '+' || s.peek() == '-' {
			s.offset++
		}
		if isDigit(s.peek()) {
			for !s.atEnd() && isDigit(s.peek()) {
				s.offset++
			}
		} else {
			s.offset = save
		}
	}
	return s.make(token.Number)
}

// readString scans the body of a string literal starting just after the
// opening '"'. Handles raw strings ("""..."""), escapes, and the start of
// interpolation ("%(").
func (s *Scanner) readString() token.Token {
	if s.peek() == '"' && s.peekAt(1) == '"' {
		s.offset += 2 // consume the other two opening quotes
		return s.readRawStringBody()
	}
	return s.readStringBody()
}

func (s *Scanner) readRawStringBody() token.Token {
	for !s.atEnd() {
		if s.peek() == '"' && s.peekAt(1) == '"' && s.peekAt(2) == '"' {
			s.offset += 3
			return s.make(token.String)
		}
		s.offset++
	}
	// Unterminated raw string at Eof is silently closed.
	return s.make(token.String)
}

// readStringBody scans from just after the opening '"' (non-raw strings).
func (s *Scanner) readStringBody() token.Token {
	for !s.atEnd() {
		switch s.peek() {
		case '"':
			s.offset++
			return s.make(token.String)
		case '\\':
			s.offset++
			if !s.atEnd() {
				s.offset++ // swallow escaped byte unvalidated
			}
		case '%':
			if s.peekAt(1) == '(' {
				s.offset += 2 // consume "%("
				s.interpDepth = append(s.interpDepth, 1)
				return s.make(token.Interpolation)
			}
			s.offset++
		default:
			s.offset++
		}
	}
	// Unterminated string at Eof is silently closed.
	return s.make(token.String)
}

// continueString resumes scanning a string body after an interpolated
// expression's closing ")" has brought the depth stack back to zero for
// that interpolation. The token this produces starts right after that
// ")" and is either another Interpolation (further "%(" found) or the
// final closing String.
func (s *Scanner) continueString() token.Token {
	// s.start already points at the ')' that closed the interpolation
	// (set at the top of ReadToken, before it was consumed) — the
	// produced token's text spans from that ')' through the next
	// interpolation marker or closing quote, e.g. `)"` or `)%(`.
	return s.readStringBody()
}
