// Package ast defines the Wren abstract syntax tree: a closed sum of
// expression, statement, and auxiliary node variants, each carrying the
// tokens needed to recover its source span.
package ast

import "github.com/wren-lang/wren-analyzer/core/token"

// Node is implemented by every AST node. Span returns the node's byte
// range in the source buffer it was parsed from.
type Node interface {
	Span() (start, end int)
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

func span(first, last token.Token) (int, int) {
	return first.Start, last.Start + last.Length
}

// ---- Expressions ----

type Num struct {
	Token token.Token
}

func (n *Num) Span() (int, int) { return span(n.Token, n.Token) }
func (*Num) exprNode()          {}

type Str struct {
	Token token.Token
}

func (n *Str) Span() (int, int) { return span(n.Token, n.Token) }
func (*Str) exprNode()          {}

type Bool struct {
	Token token.Token
	Value bool
}

func (n *Bool) Span() (int, int) { return span(n.Token, n.Token) }
func (*Bool) exprNode()          {}

type Null struct {
	Token token.Token
}

func (n *Null) Span() (int, int) { return span(n.Token, n.Token) }
func (*Null) exprNode()          {}

type This struct {
	Token token.Token
}

func (n *This) Span() (int, int) { return span(n.Token, n.Token) }
func (*This) exprNode()          {}

type Field struct {
	Token token.Token
}

func (n *Field) Span() (int, int) { return span(n.Token, n.Token) }
func (*Field) exprNode()          {}

type StaticField struct {
	Token token.Token
}

func (n *StaticField) Span() (int, int) { return span(n.Token, n.Token) }
func (*StaticField) exprNode()          {}

type List struct {
	LeftBracket  token.Token
	Elements     []Expr
	RightBracket token.Token
}

func (n *List) Span() (int, int) { return span(n.LeftBracket, n.RightBracket) }
func (*List) exprNode()          {}

// MapEntry is one key:value pair of a Map literal.
type MapEntry struct {
	Key   Expr
	Value Expr
}

type Map struct {
	LeftBrace  token.Token
	Entries    []MapEntry
	RightBrace token.Token
}

func (n *Map) Span() (int, int) { return span(n.LeftBrace, n.RightBrace) }
func (*Map) exprNode()          {}

// Interpolation is a string built from alternating literal segments and
// embedded expressions: `"a %(x) b %(y) c"`.
type Interpolation struct {
	FirstToken token.Token // opening Interpolation token
	Strings    []token.Token
	Expressions []Expr
	LastToken   token.Token // closing String token
}

func (n *Interpolation) Span() (int, int) { return span(n.FirstToken, n.LastToken) }
func (*Interpolation) exprNode()          {}

type Grouping struct {
	LeftParen  token.Token
	Value      Expr
	RightParen token.Token
}

func (n *Grouping) Span() (int, int) { return span(n.LeftParen, n.RightParen) }
func (*Grouping) exprNode()          {}

// Prefix is a unary prefix expression: -x, !x, ~x.
type Prefix struct {
	Operator token.Token
	Right    Expr
}

func (n *Prefix) Span() (int, int) {
	_, end := n.Right.Span()
	return n.Operator.Start, end
}
func (*Prefix) exprNode() {}

// Infix is a binary expression covering the whole precedence ladder from
// logical-or through factor.
type Infix struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (n *Infix) Span() (int, int) {
	start, _ := n.Left.Span()
	_, end := n.Right.Span()
	return start, end
}
func (*Infix) exprNode() {}

// Call is the sole representation of a bare identifier reference as well
// as of receiver.method(...) chains and block-argument calls. A bare
// name `foo` is Call{Receiver: nil, Name: fooTok, Arguments: nil,
// BlockArgument: nil}.
type Call struct {
	Receiver      Expr // nil for a bare name or the first link in a chain
	Dot           *token.Token // nil when Receiver is nil (bare name)
	Name          token.Token
	LeftParen     *token.Token // nil when there is no argument list
	Arguments     []Expr
	RightParen    *token.Token
	BlockArgument *Body // nil when there is no block argument
	EndToken      token.Token // last token of this call, for span purposes
}

func (n *Call) Span() (int, int) {
	if n.Receiver != nil {
		start, _ := n.Receiver.Span()
		return start, n.EndToken.Start + n.EndToken.Length
	}
	return n.Name.Start, n.EndToken.Start + n.EndToken.Length
}
func (*Call) exprNode() {}

// IsBareName reports whether this Call is a free identifier reference:
// no receiver, no argument list, no block argument.
func (n *Call) IsBareName() bool {
	return n.Receiver == nil && n.LeftParen == nil && n.BlockArgument == nil
}

type Subscript struct {
	Receiver     Expr
	LeftBracket  token.Token
	Arguments    []Expr
	RightBracket token.Token
}

func (n *Subscript) Span() (int, int) {
	start, _ := n.Receiver.Span()
	return start, n.RightBracket.Start + n.RightBracket.Length
}
func (*Subscript) exprNode() {}

// Assignment targets are restricted by the spec to Field, StaticField,
// Subscript, or a bare-name Call, but the parser accepts any expression
// on the left syntactically.
type Assignment struct {
	Target Expr
	Equal  token.Token
	Value  Expr
}

func (n *Assignment) Span() (int, int) {
	start, _ := n.Target.Span()
	_, end := n.Value.Span()
	return start, end
}
func (*Assignment) exprNode() {}

type Conditional struct {
	Condition Expr
	Question  token.Token
	Then      Expr
	Colon     token.Token
	Else      Expr
}

func (n *Conditional) Span() (int, int) {
	start, _ := n.Condition.Span()
	_, end := n.Else.Span()
	return start, end
}
func (*Conditional) exprNode() {}

// Super is `super` or `super.name`, with an optional call suffix.
type Super struct {
	Token         token.Token
	Dot           *token.Token
	Name          *token.Token
	LeftParen     *token.Token
	Arguments     []Expr
	RightParen    *token.Token
	BlockArgument *Body
	EndToken      token.Token
}

func (n *Super) Span() (int, int) {
	return n.Token.Start, n.EndToken.Start + n.EndToken.Length
}
func (*Super) exprNode() {}

// ---- Statements ----

// TypeAnnotation is a single type-name token preceded by its marker: ":"
// for variable/parameter annotations, "->" for return-type annotations.
type TypeAnnotation struct {
	Marker token.Token
	Name   token.Token
}

func (t *TypeAnnotation) Span() (int, int) { return span(t.Marker, t.Name) }

// ErrorExpr is a placeholder produced when the parser cannot make sense of
// a primary expression; it carries the offending token so the span is
// still meaningful, and lets the rest of the pipeline keep traversing a
// well-formed tree.
type ErrorExpr struct {
	Token token.Token
}

func (n *ErrorExpr) Span() (int, int) { return span(n.Token, n.Token) }
func (*ErrorExpr) exprNode()          {}

type VarStmt struct {
	VarToken    token.Token
	Name        token.Token
	Annotation  *TypeAnnotation
	Initializer Expr // nil when absent
	EndToken    token.Token
}

func (n *VarStmt) Span() (int, int) { return span(n.VarToken, n.EndToken) }
func (*VarStmt) stmtNode()          {}

// Parameter is one entry of a parameter list: a name plus an optional
// type annotation (Wren's non-standard extension).
type Parameter struct {
	Name       token.Token
	Annotation *TypeAnnotation
}

// Method is one member of a class body.
type Method struct {
	Foreign    bool
	Static     bool
	Construct  bool
	IsSetter   bool
	IsSubscript bool
	Name       string      // logical name for registry lookups: identifier text, operator symbol, or "[]"
	NameToken  token.Token // signature token: identifier, operator, or opening bracket
	Parameters []Parameter
	ReturnType *TypeAnnotation
	Body       *Body // nil when Foreign is true
	FirstToken token.Token
	LastToken  token.Token
}

// RegistryName returns the name under which this method should be
// registered: the setter form adds a trailing "=" (spec §4.6).
func (m *Method) RegistryName() string {
	if m.IsSetter {
		return m.Name + "="
	}
	return m.Name
}

func (m *Method) Span() (int, int) { return span(m.FirstToken, m.LastToken) }

type ClassStmt struct {
	ClassToken token.Token
	Foreign    bool
	Name       token.Token
	Superclass *token.Token // nil unless `is Name` followed the class name
	Methods    []*Method
	RightBrace token.Token
}

func (n *ClassStmt) Span() (int, int) { return span(n.ClassToken, n.RightBrace) }
func (*ClassStmt) stmtNode()          {}

// ImportName is one entry of an import's `for` name list, with an
// optional alias.
type ImportName struct {
	Name  token.Token
	Alias *token.Token
}

type ImportStmt struct {
	ImportToken token.Token
	Path        token.Token // the imported module's string literal
	Names       []ImportName // nil when there was no `for` clause
	HasFor      bool
	EndToken    token.Token
}

func (n *ImportStmt) Span() (int, int) { return span(n.ImportToken, n.EndToken) }
func (*ImportStmt) stmtNode()          {}

type IfStmt struct {
	IfToken   token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt // nil when absent
	EndToken  token.Token
}

func (n *IfStmt) Span() (int, int) { return span(n.IfToken, n.EndToken) }
func (*IfStmt) stmtNode()          {}

type ForStmt struct {
	ForToken   token.Token
	Variable   token.Token
	Annotation *TypeAnnotation
	Iterable   Expr
	Body       Stmt
	EndToken   token.Token
}

func (n *ForStmt) Span() (int, int) { return span(n.ForToken, n.EndToken) }
func (*ForStmt) stmtNode()          {}

type WhileStmt struct {
	WhileToken token.Token
	Condition  Expr
	Body       Stmt
	EndToken   token.Token
}

func (n *WhileStmt) Span() (int, int) { return span(n.WhileToken, n.EndToken) }
func (*WhileStmt) stmtNode()          {}

type ReturnStmt struct {
	ReturnToken token.Token
	Value       Expr // nil when absent
	EndToken    token.Token
}

func (n *ReturnStmt) Span() (int, int) { return span(n.ReturnToken, n.EndToken) }
func (*ReturnStmt) stmtNode()          {}

type BlockStmt struct {
	LeftBrace  token.Token
	Statements []Stmt
	RightBrace token.Token
}

func (n *BlockStmt) Span() (int, int) { return span(n.LeftBrace, n.RightBrace) }
func (*BlockStmt) stmtNode()          {}

type BreakStmt struct {
	Token token.Token
}

func (n *BreakStmt) Span() (int, int) { return span(n.Token, n.Token) }
func (*BreakStmt) stmtNode()          {}

type ContinueStmt struct {
	Token token.Token
}

func (n *ContinueStmt) Span() (int, int) { return span(n.Token, n.Token) }
func (*ContinueStmt) stmtNode()          {}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	Expression Expr
}

func (n *ExprStmt) Span() (int, int) { return n.Expression.Span() }
func (*ExprStmt) stmtNode()          {}

// Body is the body of a method or block-argument call: either a single
// expression (expression body) or a list of statements, never both. Both
// nil denotes an empty block.
type Body struct {
	Parameters  []Parameter // block-argument parameters, e.g. `{ |a, b| ... }`
	Expression  Expr
	Statements  []Stmt
	LeftBrace   token.Token
	RightBrace  token.Token
}

func (n *Body) Span() (int, int) { return span(n.LeftBrace, n.RightBrace) }

// Module is the top-level node: an ordered sequence of statements.
type Module struct {
	Statements []Stmt
	Path       string
}

func (n *Module) Span() (int, int) {
	if len(n.Statements) == 0 {
		return 0, 0
	}
	start, _ := n.Statements[0].Span()
	_, end := n.Statements[len(n.Statements)-1].Span()
	return start, end
}
