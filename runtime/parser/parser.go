// Package parser implements a recursive-descent expression/statement
// parser for Wren source, reconciling significant newlines with
// newline-tolerant punctuation positions and accepting an optional,
// non-standard type-annotation grammar.
package parser

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/wren-lang/wren-analyzer/core/ast"
	"github.com/wren-lang/wren-analyzer/core/diag"
	"github.com/wren-lang/wren-analyzer/core/source"
	"github.com/wren-lang/wren-analyzer/core/token"
	"github.com/wren-lang/wren-analyzer/runtime/scanner"
)

// Option configures a Parser, following the functional-options shape
// used throughout this pipeline's stages.
type Option func(*config)

type config struct {
	debug bool
}

// WithDebug enables debug-level trace logging of token consumption, in
// addition to whatever the WREN_ANALYZER_DEBUG environment variable
// already requests. It also enables the scanner's own token tracing.
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

// Parser converts a token stream into a Module, collecting syntax
// diagnostics along the way. It trusts the scanner to have correctly
// tokenized whitespace/comments and focuses on assembling the tree.
type Parser struct {
	buf     *source.Buffer
	scan    *scanner.Scanner
	current token.Token
	previous token.Token
	queue   []token.Token // bounded pushback queue for chain-dot speculation

	diagnostics *diag.List
	debugLogger *slog.Logger
}

// New constructs a Parser over buf and primes the one-token lookahead.
func New(buf *source.Buffer, opts ...Option) *Parser {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	p := &Parser{
		buf:         buf,
		scan:        scanner.New(buf, scanner.WithDebug(cfg.debug)),
		diagnostics: &diag.List{},
		debugLogger: newDebugLogger(cfg.debug),
	}
	p.current = p.rawNext()
	return p
}

// ParseModule parses a complete module and returns it along with every
// syntax diagnostic produced.
func ParseModule(buf *source.Buffer, opts ...Option) (*ast.Module, *diag.List) {
	p := New(buf, opts...)
	mod := p.parseModule()
	return mod, p.diagnostics
}

// Diagnostics returns the diagnostics collected so far.
func (p *Parser) Diagnostics() *diag.List { return p.diagnostics }

// ---- token plumbing ----

func (p *Parser) rawNext() token.Token {
	if len(p.queue) > 0 {
		t := p.queue[0]
		p.queue = p.queue[1:]
		return t
	}
	return p.scan.ReadToken()
}

// peekNext returns the token after current without consuming it.
func (p *Parser) peekNext() token.Token {
	if len(p.queue) > 0 {
		return p.queue[0]
	}
	t := p.scan.ReadToken()
	p.queue = append(p.queue, t)
	return t
}

func (p *Parser) advance() token.Token {
	old := p.current
	p.previous = old
	p.current = p.rawNext()
	p.debugLogger.Debug("advance", "consumed", old.Kind.String(), "next", p.current.Kind.String())
	return old
}

func (p *Parser) atEof() bool { return p.current.Kind == token.Eof }

func (p *Parser) check(kind token.Kind) bool { return p.current.Kind == kind }

func (p *Parser) checkAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.current.Kind == k {
			return true
		}
	}
	return false
}

func (p *Parser) matchKind(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes and returns the current token if it has the given kind;
// otherwise it appends a parse-error diagnostic at the current token's
// span and still consumes it, so the parser always makes progress (spec
// §4.3: "does not attempt recovery beyond take the token it just looked
// at").
func (p *Parser) expect(kind token.Kind) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorf(p.current, "expected %s, found %s %q", kind, p.current.Kind, p.current.Text)
	return p.advance()
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	length := tok.Length
	if length == 0 {
		length = 1
	}
	p.diagnostics.Add(diag.New(diag.Error, diag.CodeParseError, msg, tok.Start, length))
}

// ignoreLine skips any number of Line tokens (used after opening
// brackets, commas, binary operators, ?, :, ., =, ->).
func (p *Parser) ignoreLine() {
	for p.check(token.Line) {
		p.advance()
	}
}

// consumeLine requires at least one Line token, then ignores any further
// ones (used between top-level or block statements).
func (p *Parser) consumeLine() {
	if !p.check(token.Line) {
		p.errorf(p.current, "expected newline, found %s %q", p.current.Kind, p.current.Text)
		return
	}
	p.ignoreLine()
}

// tryChainDotAfterNewline implements the one-past-newline dot speculation:
// when current is a Line token, look ahead past any run of further Line
// tokens; if the first non-Line token is a Dot, commit (current becomes
// that Dot, as if it were adjacent). Otherwise push everything back into
// the lookahead queue and report no commit.
func (p *Parser) tryChainDotAfterNewline() bool {
	pending := []token.Token{p.current}
	for {
		next := p.rawNext()
		if next.Kind == token.Line {
			pending = append(pending, next)
			continue
		}
		if next.Kind == token.Dot {
			p.current = next
			return true
		}
		rest := append(pending[1:], next)
		p.queue = append(rest, p.queue...)
		return false
	}
}

// ---- module & definitions ----

func (p *Parser) parseModule() *ast.Module {
	p.ignoreLine()
	var stmts []ast.Stmt
	for !p.atEof() {
		stmts = append(stmts, p.parseDefinition())
		if p.atEof() {
			break
		}
		p.consumeLine()
	}
	return &ast.Module{Statements: stmts, Path: p.buf.Path()}
}

func (p *Parser) parseDefinition() ast.Stmt {
	switch {
	case p.check(token.ClassKw):
		return p.parseClass(nil)
	case p.check(token.Foreign) && p.peekNext().Kind == token.ClassKw:
		foreignTok := p.advance()
		return p.parseClass(&foreignTok)
	case p.check(token.Import):
		return p.parseImport()
	case p.check(token.Var):
		return p.parseVarStmt()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseClass(foreignTok *token.Token) *ast.ClassStmt {
	classTok := p.expect(token.ClassKw)
	name := p.expect(token.Name)
	var superclass *token.Token
	if p.matchKind(token.Is) {
		sc := p.expect(token.Name)
		superclass = &sc
	}
	p.expect(token.LeftBrace)
	p.ignoreLine()
	var methods []*ast.Method
	for !p.check(token.RightBrace) && !p.atEof() {
		methods = append(methods, p.parseMethod())
		if p.check(token.RightBrace) {
			break
		}
		p.consumeLine()
	}
	right := p.expect(token.RightBrace)
	return &ast.ClassStmt{
		ClassToken: classTok,
		Foreign:    foreignTok != nil,
		Name:       name,
		Superclass: superclass,
		Methods:    methods,
		RightBrace: right,
	}
}

var infixOperatorTokens = map[token.Kind]bool{
	token.EqualEqual: true, token.BangEqual: true,
	token.Less: true, token.LessEqual: true, token.Greater: true, token.GreaterEqual: true,
	token.Plus: true, token.Minus: true, token.Star: true, token.Slash: true, token.Percent: true,
	token.Amp: true, token.Pipe: true, token.Caret: true,
	token.LessLess: true, token.GreaterGreater: true,
	token.DotDot: true, token.DotDotDot: true,
}

func (p *Parser) parseMethod() *ast.Method {
	first := p.current
	m := &ast.Method{FirstToken: first}
	m.Foreign = p.matchKind(token.Foreign)
	m.Static = p.matchKind(token.Static)
	m.Construct = p.matchKind(token.Construct)

	switch {
	case p.check(token.LeftBracket):
		lb := p.advance()
		m.IsSubscript = true
		m.NameToken = lb
		m.Name = "[]"
		m.Parameters = p.parseParameterList(token.RightBracket)
		m.LastToken = p.expect(token.RightBracket)
	case infixOperatorTokens[p.current.Kind]:
		op := p.advance()
		m.NameToken = op
		m.Name = op.Text
		m.LastToken = op
		if p.matchKind(token.LeftParen) {
			m.Parameters = p.parseParameterList(token.RightParen)
			m.LastToken = p.expect(token.RightParen)
		}
	case p.check(token.Bang) || p.check(token.Tilde):
		op := p.advance()
		m.NameToken = op
		m.Name = op.Text
		m.LastToken = op
		if p.matchKind(token.LeftParen) {
			m.LastToken = p.expect(token.RightParen)
		}
	default:
		name := p.expect(token.Name)
		m.NameToken = name
		m.Name = name.Text
		m.LastToken = name
		if p.matchKind(token.LeftParen) {
			m.Parameters = p.parseParameterList(token.RightParen)
			m.LastToken = p.expect(token.RightParen)
		}
	}

	if p.check(token.Equal) {
		eq := p.advance()
		_ = eq
		p.expect(token.LeftParen)
		setterParam := p.parseParameter()
		m.Parameters = append(m.Parameters, setterParam)
		m.LastToken = p.expect(token.RightParen)
		m.IsSetter = true
	}

	if p.check(token.Arrow) {
		marker := p.advance()
		p.ignoreLine()
		typeName := p.expect(token.Name)
		m.ReturnType = &ast.TypeAnnotation{Marker: marker, Name: typeName}
		m.LastToken = typeName
	}

	if !m.Foreign {
		m.Body = p.parseBody(false)
		m.LastToken = m.Body.RightBrace
	}

	return m
}

func (p *Parser) parseParameterList(closing token.Kind) []ast.Parameter {
	var params []ast.Parameter
	p.ignoreLine()
	if p.check(closing) {
		return params
	}
	for {
		params = append(params, p.parseParameter())
		p.ignoreLine()
		if !p.matchKind(token.Comma) {
			break
		}
		p.ignoreLine()
	}
	return params
}

func (p *Parser) parseParameter() ast.Parameter {
	name := p.expect(token.Name)
	var ann *ast.TypeAnnotation
	if p.check(token.Colon) {
		marker := p.advance()
		typeName := p.expect(token.Name)
		ann = &ast.TypeAnnotation{Marker: marker, Name: typeName}
	}
	return ast.Parameter{Name: name, Annotation: ann}
}

func (p *Parser) parseImport() *ast.ImportStmt {
	importTok := p.expect(token.Import)
	path := p.expect(token.String)
	stmt := &ast.ImportStmt{ImportToken: importTok, Path: path, EndToken: path}
	if p.check(token.For) {
		p.advance()
		stmt.HasFor = true
		for {
			nameTok := p.expect(token.Name)
			entry := ast.ImportName{Name: nameTok}
			stmt.EndToken = nameTok
			if p.check(token.Name) && p.current.Text == "as" {
				p.advance()
				aliasTok := p.expect(token.Name)
				entry.Alias = &aliasTok
				stmt.EndToken = aliasTok
			}
			stmt.Names = append(stmt.Names, entry)
			if !p.matchKind(token.Comma) {
				break
			}
		}
	}
	return stmt
}

func (p *Parser) parseVarStmt() *ast.VarStmt {
	varTok := p.expect(token.Var)
	name := p.expect(token.Name)
	stmt := &ast.VarStmt{VarToken: varTok, Name: name, EndToken: name}
	if p.check(token.Colon) {
		marker := p.advance()
		typeName := p.expect(token.Name)
		stmt.Annotation = &ast.TypeAnnotation{Marker: marker, Name: typeName}
		stmt.EndToken = typeName
	}
	if p.check(token.Equal) {
		p.advance()
		p.ignoreLine()
		stmt.Initializer = p.parseExpression()
		stmt.EndToken = p.previous
	}
	return stmt
}

// ---- statements ----

func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.check(token.Break):
		return &ast.BreakStmt{Token: p.advance()}
	case p.check(token.Name) && p.current.Text == "continue":
		return &ast.ContinueStmt{Token: p.advance()}
	case p.check(token.If):
		return p.parseIf()
	case p.check(token.For):
		return p.parseFor()
	case p.check(token.While):
		return p.parseWhile()
	case p.check(token.Return):
		return p.parseReturn()
	case p.check(token.LeftBrace):
		return p.parseBlock()
	default:
		expr := p.parseExpression()
		return &ast.ExprStmt{Expression: expr}
	}
}

func (p *Parser) parseIf() *ast.IfStmt {
	ifTok := p.expect(token.If)
	p.expect(token.LeftParen)
	p.ignoreLine()
	cond := p.parseExpression()
	p.expect(token.RightParen)
	then := p.parseStatement()
	stmt := &ast.IfStmt{IfToken: ifTok, Condition: cond, Then: then, EndToken: p.previous}
	if p.check(token.Else) {
		p.advance()
		stmt.Else = p.parseStatement()
		stmt.EndToken = p.previous
	}
	return stmt
}

func (p *Parser) parseFor() *ast.ForStmt {
	forTok := p.expect(token.For)
	p.expect(token.LeftParen)
	name := p.expect(token.Name)
	stmt := &ast.ForStmt{ForToken: forTok, Variable: name}
	if p.check(token.Colon) {
		marker := p.advance()
		typeName := p.expect(token.Name)
		stmt.Annotation = &ast.TypeAnnotation{Marker: marker, Name: typeName}
	}
	p.expect(token.In)
	p.ignoreLine()
	stmt.Iterable = p.parseExpression()
	p.expect(token.RightParen)
	stmt.Body = p.parseStatement()
	stmt.EndToken = p.previous
	return stmt
}

func (p *Parser) parseWhile() *ast.WhileStmt {
	whileTok := p.expect(token.While)
	p.expect(token.LeftParen)
	p.ignoreLine()
	cond := p.parseExpression()
	p.expect(token.RightParen)
	body := p.parseStatement()
	return &ast.WhileStmt{WhileToken: whileTok, Condition: cond, Body: body, EndToken: p.previous}
}

func (p *Parser) parseReturn() *ast.ReturnStmt {
	retTok := p.expect(token.Return)
	stmt := &ast.ReturnStmt{ReturnToken: retTok, EndToken: retTok}
	if !p.check(token.Line) && !p.atEof() {
		stmt.Value = p.parseExpression()
		stmt.EndToken = p.previous
	}
	return stmt
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	left := p.expect(token.LeftBrace)
	p.ignoreLine()
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEof() {
		stmts = append(stmts, p.parseDefinition())
		if p.check(token.RightBrace) {
			break
		}
		p.consumeLine()
	}
	right := p.expect(token.RightBrace)
	return &ast.BlockStmt{LeftBrace: left, Statements: stmts, RightBrace: right}
}

// parseBody parses a method or block-argument body. When allowPipeParams
// is true, an optional "|param-list|" prefix is accepted (block-argument
// syntax); method bodies never have one.
func (p *Parser) parseBody(allowPipeParams bool) *ast.Body {
	left := p.expect(token.LeftBrace)
	body := &ast.Body{LeftBrace: left}

	if allowPipeParams && p.check(token.Pipe) {
		p.advance()
		if !p.check(token.Pipe) {
			for {
				body.Parameters = append(body.Parameters, p.parseParameter())
				if !p.matchKind(token.Comma) {
					break
				}
			}
		}
		p.expect(token.Pipe)
	}

	if p.check(token.RightBrace) {
		body.RightBrace = p.advance()
		return body
	}

	if !p.check(token.Line) {
		body.Expression = p.parseExpression()
		p.ignoreLine()
		body.RightBrace = p.expect(token.RightBrace)
		return body
	}

	p.consumeLine()
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEof() {
		stmts = append(stmts, p.parseDefinition())
		if p.check(token.RightBrace) {
			break
		}
		p.consumeLine()
	}
	body.Statements = stmts
	body.RightBrace = p.expect(token.RightBrace)
	return body
}

// ---- expressions ----

func (p *Parser) parseExpression() ast.Expr { return p.parseAssignment() }

func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseConditional()
	if p.check(token.Equal) {
		eq := p.advance()
		p.ignoreLine()
		value := p.parseAssignment()
		return &ast.Assignment{Target: left, Equal: eq, Value: value}
	}
	return left
}

func (p *Parser) parseConditional() ast.Expr {
	cond := p.parseLogicalOr()
	if p.check(token.Question) {
		q := p.advance()
		p.ignoreLine()
		then := p.parseConditional()
		c := p.expect(token.Colon)
		p.ignoreLine()
		els := p.parseConditional()
		return &ast.Conditional{Condition: cond, Question: q, Then: then, Colon: c, Else: els}
	}
	return cond
}

func (p *Parser) parseBinaryLeft(next func() ast.Expr, kinds ...token.Kind) ast.Expr {
	left := next()
	for p.checkAny(kinds...) {
		op := p.advance()
		p.ignoreLine()
		right := next()
		left = &ast.Infix{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalOr() ast.Expr {
	return p.parseBinaryLeft(p.parseLogicalAnd, token.PipePipe)
}
func (p *Parser) parseLogicalAnd() ast.Expr {
	return p.parseBinaryLeft(p.parseEquality, token.AmpAmp)
}
func (p *Parser) parseEquality() ast.Expr {
	return p.parseBinaryLeft(p.parseTypeTest, token.EqualEqual, token.BangEqual)
}
func (p *Parser) parseTypeTest() ast.Expr {
	return p.parseBinaryLeft(p.parseComparison, token.Is)
}
func (p *Parser) parseComparison() ast.Expr {
	return p.parseBinaryLeft(p.parseBitwiseOr, token.Less, token.LessEqual, token.Greater, token.GreaterEqual)
}
func (p *Parser) parseBitwiseOr() ast.Expr {
	return p.parseBinaryLeft(p.parseBitwiseXor, token.Pipe)
}
func (p *Parser) parseBitwiseXor() ast.Expr {
	return p.parseBinaryLeft(p.parseBitwiseAnd, token.Caret)
}
func (p *Parser) parseBitwiseAnd() ast.Expr {
	return p.parseBinaryLeft(p.parseShift, token.Amp)
}
func (p *Parser) parseShift() ast.Expr {
	return p.parseBinaryLeft(p.parseRange, token.LessLess, token.GreaterGreater)
}
func (p *Parser) parseRange() ast.Expr {
	return p.parseBinaryLeft(p.parseTerm, token.DotDot, token.DotDotDot)
}
func (p *Parser) parseTerm() ast.Expr {
	return p.parseBinaryLeft(p.parseFactor, token.Plus, token.Minus)
}
func (p *Parser) parseFactor() ast.Expr {
	return p.parseBinaryLeft(p.parsePrefix, token.Star, token.Slash, token.Percent)
}

func (p *Parser) parsePrefix() ast.Expr {
	if p.check(token.Minus) || p.check(token.Bang) || p.check(token.Tilde) {
		op := p.advance()
		right := p.parsePrefix()
		return &ast.Prefix{Operator: op, Right: right}
	}
	return p.parseCallChain()
}

func (p *Parser) parseCallChain() ast.Expr {
	expr := p.parsePrimary()
chainLoop:
	for {
		switch {
		case p.check(token.LeftBracket):
			lb := p.advance()
			args := p.parseArgList(token.RightBracket)
			rb := p.expect(token.RightBracket)
			expr = &ast.Subscript{Receiver: expr, LeftBracket: lb, Arguments: args, RightBracket: rb}
		case p.check(token.Dot):
			dot := p.advance()
			p.ignoreLine()
			name := p.expect(token.Name)
			call := &ast.Call{Receiver: expr, Dot: &dot, Name: name, EndToken: name}
			p.parseCallSuffix(call)
			expr = call
		case p.check(token.Line):
			if !p.tryChainDotAfterNewline() {
				break chainLoop
			}
		default:
			break chainLoop
		}
	}
	return expr
}

func (p *Parser) parseArgList(closing token.Kind) []ast.Expr {
	var args []ast.Expr
	p.ignoreLine()
	if p.check(closing) {
		return args
	}
	for {
		args = append(args, p.parseExpression())
		p.ignoreLine()
		if !p.matchKind(token.Comma) {
			break
		}
		p.ignoreLine()
	}
	return args
}

func (p *Parser) parseCallSuffix(call *ast.Call) {
	if p.check(token.LeftParen) {
		lp := p.advance()
		args := p.parseArgList(token.RightParen)
		rp := p.expect(token.RightParen)
		call.LeftParen = &lp
		call.Arguments = args
		call.RightParen = &rp
		call.EndToken = rp
	}
	if p.check(token.LeftBrace) {
		body := p.parseBody(true)
		call.BlockArgument = body
		call.EndToken = body.RightBrace
	}
}

func (p *Parser) parseSuperSuffix(s *ast.Super) {
	if p.check(token.LeftParen) {
		lp := p.advance()
		args := p.parseArgList(token.RightParen)
		rp := p.expect(token.RightParen)
		s.LeftParen = &lp
		s.Arguments = args
		s.RightParen = &rp
		s.EndToken = rp
	}
	if p.check(token.LeftBrace) {
		body := p.parseBody(true)
		s.BlockArgument = body
		s.EndToken = body.RightBrace
	}
}

func (p *Parser) parseSuper() ast.Expr {
	tok := p.advance()
	s := &ast.Super{Token: tok, EndToken: tok}
	if p.check(token.Dot) {
		dot := p.advance()
		p.ignoreLine()
		name := p.expect(token.Name)
		s.Dot = &dot
		s.Name = &name
		s.EndToken = name
	}
	p.parseSuperSuffix(s)
	return s
}

func (p *Parser) parseInterpolation() ast.Expr {
	first := p.advance()
	interp := &ast.Interpolation{FirstToken: first, Strings: []token.Token{first}, LastToken: first}
	for {
		expr := p.parseExpression()
		interp.Expressions = append(interp.Expressions, expr)
		switch {
		case p.check(token.String):
			strTok := p.advance()
			interp.Strings = append(interp.Strings, strTok)
			interp.LastToken = strTok
			return interp
		case p.check(token.Interpolation):
			more := p.advance()
			interp.Strings = append(interp.Strings, more)
		default:
			p.errorf(p.current, "expected string interpolation continuation, found %s", p.current.Kind)
			interp.LastToken = p.current
			return interp
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	switch {
	case p.check(token.LeftParen):
		lp := p.advance()
		p.ignoreLine()
		inner := p.parseExpression()
		p.ignoreLine()
		rp := p.expect(token.RightParen)
		return &ast.Grouping{LeftParen: lp, Value: inner, RightParen: rp}
	case p.check(token.LeftBracket):
		return p.parseListLiteral()
	case p.check(token.LeftBrace):
		return p.parseMapLiteral()
	case p.check(token.Super):
		return p.parseSuper()
	case p.check(token.Interpolation):
		return p.parseInterpolation()
	case p.check(token.True):
		return &ast.Bool{Token: p.advance(), Value: true}
	case p.check(token.False):
		return &ast.Bool{Token: p.advance(), Value: false}
	case p.check(token.Null):
		return &ast.Null{Token: p.advance()}
	case p.check(token.This):
		return &ast.This{Token: p.advance()}
	case p.check(token.Field):
		return &ast.Field{Token: p.advance()}
	case p.check(token.StaticField):
		return &ast.StaticField{Token: p.advance()}
	case p.check(token.Number):
		return &ast.Num{Token: p.advance()}
	case p.check(token.String):
		return &ast.Str{Token: p.advance()}
	case p.check(token.Name):
		nameTok := p.advance()
		call := &ast.Call{Name: nameTok, EndToken: nameTok}
		p.parseCallSuffix(call)
		return call
	default:
		tok := p.current
		p.errorf(tok, "unexpected token %s %q", tok.Kind, tok.Text)
		p.advance()
		return &ast.ErrorExpr{Token: tok}
	}
}

func (p *Parser) parseListLiteral() ast.Expr {
	lb := p.advance()
	p.ignoreLine()
	var elems []ast.Expr
	if !p.check(token.RightBracket) {
		for {
			elems = append(elems, p.parseExpression())
			p.ignoreLine()
			if !p.matchKind(token.Comma) {
				break
			}
			p.ignoreLine()
		}
	}
	rb := p.expect(token.RightBracket)
	return &ast.List{LeftBracket: lb, Elements: elems, RightBracket: rb}
}

func (p *Parser) parseMapLiteral() ast.Expr {
	lb := p.advance()
	p.ignoreLine()
	var entries []ast.MapEntry
	if !p.check(token.RightBrace) {
		for {
			key := p.parseExpression()
			p.ignoreLine()
			p.expect(token.Colon)
			p.ignoreLine()
			val := p.parseExpression()
			p.ignoreLine()
			entries = append(entries, ast.MapEntry{Key: key, Value: val})
			if !p.matchKind(token.Comma) {
				break
			}
			p.ignoreLine()
		}
	}
	rb := p.expect(token.RightBrace)
	return &ast.Map{LeftBrace: lb, Entries: entries, RightBrace: rb}
}
