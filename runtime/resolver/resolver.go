// Package resolver walks a parsed module tracking lexical scope,
// flagging duplicate and undefined names, and deferring references
// (lowercase or uppercase) crossing a class body as forward-reference
// candidates.
package resolver

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/wren-lang/wren-analyzer/core/ast"
	"github.com/wren-lang/wren-analyzer/core/diag"
	"github.com/wren-lang/wren-analyzer/core/token"
	"github.com/wren-lang/wren-analyzer/runtime/visitor"
)

// BuiltinClasses are pre-declared in module scope before any user code
// is resolved.
var BuiltinClasses = []string{
	"Bool", "Class", "Fiber", "Fn", "List", "Map", "MapKeySequence",
	"MapSequence", "MapValueSequence", "Null", "Num", "Object", "Range",
	"Sequence", "String", "StringByteSequence", "StringCodePointSequence",
	"System", "WhereSequence",
}

// classSentinel names the class-body frame kind, where declare is a no-op
// and crossing it during resolve triggers the class-body rule. The scope
// stack records such frames with scope.class, not with values of this
// type.
type classSentinel struct{}

// scope is one frame of the stack: either a name→token map or, with
// class set, a class-body frame.
type scope struct {
	names map[string]*token.Token // nil Token for built-ins
	class bool
}

type forwardRef struct {
	name string
	tok  token.Token
}

// Resolver implements visitor.Visitor, tracking the scope stack as it
// walks the module.
type Resolver struct {
	diagnostics *diag.List
	stack       []*scope
	bareImport  bool
	forwardRefs []forwardRef
}

// New constructs a Resolver with a module scope pre-populated with
// built-in class names.
func New() *Resolver {
	r := &Resolver{diagnostics: &diag.List{}}
	mod := &scope{names: map[string]*token.Token{}}
	for _, name := range BuiltinClasses {
		mod.names[name] = nil
	}
	r.stack = append(r.stack, mod)
	return r
}

// Resolve runs the resolver over mod and returns the diagnostics
// collected.
func Resolve(mod *ast.Module) *diag.List {
	r := New()
	visitor.Walk(r, mod)
	r.checkForwardReferences()
	return r.diagnostics
}

func (r *Resolver) top() *scope { return r.stack[len(r.stack)-1] }

func (r *Resolver) declare(name string, tok token.Token) {
	top := r.top()
	if top.class {
		return
	}
	if prior, ok := top.names[name]; ok {
		msg := fmt.Sprintf("%q is already declared in this scope", name)
		if prior != nil {
			msg = fmt.Sprintf("%q is already declared in this scope, at line %d", name, prior.Line())
		}
		r.diagnostics.Add(diag.New(diag.Error, diag.CodeDuplicateVariable, msg, tok.Start, tok.Length))
		return
	}
	t := tok
	top.names[name] = &t
}

func (r *Resolver) resolve(name string, tok token.Token) {
	crossedClass := false
	for i := len(r.stack) - 1; i >= 0; i-- {
		s := r.stack[i]
		if s.class {
			crossedClass = true
			continue
		}
		if _, ok := s.names[name]; ok {
			return
		}
	}
	if crossedClass {
		// Both lowercase self-sends and uppercase class references get one
		// more chance at module scope, then fall through to a deferred
		// forward-reference check rather than an immediate diagnostic —
		// the module being analyzed may still declare the name below this
		// point.
		if _, ok := r.stack[0].names[name]; ok {
			return
		}
		r.forwardRefs = append(r.forwardRefs, forwardRef{name: name, tok: tok})
		return
	}
	msg := fmt.Sprintf("undefined name %q", name)
	if suggestion := r.suggest(name); suggestion != "" {
		msg = fmt.Sprintf("undefined name %q, did you mean %q?", name, suggestion)
	}
	r.diagnostics.Add(diag.New(diag.Error, diag.CodeUndefinedVariable, msg, tok.Start, tok.Length))
}

// suggest returns the closest declared name across every active scope,
// or "" when no close match exists.
func (r *Resolver) suggest(name string) string {
	var candidates []string
	for _, s := range r.stack {
		if s.class {
			continue
		}
		for n := range s.names {
			candidates = append(candidates, n)
		}
	}
	sort.Strings(candidates)
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

func (r *Resolver) begin() {
	r.stack = append(r.stack, &scope{names: map[string]*token.Token{}})
}

func (r *Resolver) end() {
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Resolver) beginClass() {
	r.stack = append(r.stack, &scope{class: true})
}

func (r *Resolver) endClass() {
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Resolver) checkForwardReferences() {
	if r.bareImport {
		return
	}
	module := r.stack[0]
	for _, fr := range r.forwardRefs {
		if _, ok := module.names[fr.name]; ok {
			continue
		}
		msg := fmt.Sprintf("undefined name %q", fr.name)
		if suggestion := r.suggest(fr.name); suggestion != "" {
			msg = fmt.Sprintf("undefined name %q, did you mean %q?", fr.name, suggestion)
		}
		r.diagnostics.Add(diag.New(diag.Error, diag.CodeUndefinedVariable, msg, fr.tok.Start, fr.tok.Length))
	}
}

// VisitStmt implements visitor.Visitor. It performs its own traversal
// for the node kinds that change scope and returns false to stop Walk
// from recursing a second time.
func (r *Resolver) VisitStmt(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ClassStmt:
		r.declare(n.Name.Text, n.Name)
		r.beginClass()
		for _, m := range n.Methods {
			if m.Body != nil {
				r.visitMethod(m)
			}
		}
		r.endClass()
		return false
	case *ast.VarStmt:
		r.declare(n.Name.Text, n.Name)
		if n.Initializer != nil {
			visitor.WalkExpr(r, n.Initializer)
		}
		return false
	case *ast.ImportStmt:
		if n.HasFor {
			for _, imp := range n.Names {
				tok := imp.Name
				if imp.Alias != nil {
					tok = *imp.Alias
				}
				r.declare(tok.Text, tok)
			}
		} else {
			r.bareImport = true
		}
		return false
	case *ast.ForStmt:
		visitor.WalkExpr(r, n.Iterable)
		r.begin()
		r.declare(n.Variable.Text, n.Variable)
		visitor.WalkStmt(r, n.Body)
		r.end()
		return false
	case *ast.BlockStmt:
		r.begin()
		for _, inner := range n.Statements {
			visitor.WalkStmt(r, inner)
		}
		r.end()
		return false
	}
	return true
}

func (r *Resolver) visitBody(b *ast.Body) {
	r.begin()
	for _, p := range b.Parameters {
		r.declare(p.Name.Text, p.Name)
	}
	visitor.WalkBody(r, b)
	r.end()
}

// visitMethod declares a method's own parameter list in a scope wrapping
// its body, since Method.Parameters is distinct from the block-argument
// Body.Parameters that visitBody already handles.
func (r *Resolver) visitMethod(m *ast.Method) {
	r.begin()
	for _, p := range m.Parameters {
		r.declare(p.Name.Text, p.Name)
	}
	r.visitBody(m.Body)
	r.end()
}

// VisitExpr implements visitor.Visitor.
func (r *Resolver) VisitExpr(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Call:
		if n.Receiver != nil {
			visitor.WalkExpr(r, n.Receiver)
		} else {
			r.resolve(n.Name.Text, n.Name)
		}
		for _, a := range n.Arguments {
			visitor.WalkExpr(r, a)
		}
		if n.BlockArgument != nil {
			r.visitBody(n.BlockArgument)
		}
		return false
	}
	return true
}
