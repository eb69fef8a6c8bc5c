// Package typecheck implements a lint-grade consistency checker: not a
// sound type system, just literal-type tracking plus method-existence
// checks against a registry of user and core classes. Every finding it
// produces is a warning.
package typecheck

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/wren-lang/wren-analyzer/core/ast"
	"github.com/wren-lang/wren-analyzer/core/diag"
	"github.com/wren-lang/wren-analyzer/runtime/visitor"
)

// classInfo is one entry of the user class registry.
type classInfo struct {
	instanceMethods map[string]bool
	staticMethods   map[string]bool
	superclass      string // "" when absent
}

// CoreInstanceMethods is the fixed table of known instance method names
// per core class.
var CoreInstanceMethods = map[string]map[string]bool{
	"Object": set("toString", "type", "is"),
	"Bool":   set("toString", "not"),
	"Null":   set("toString"),
	"Num":    set("toString", "abs", "ceil", "floor", "round", "sqrt", "sign", "min", "max", "pow", "truncate"),
	"String": set("toString", "contains", "count", "endsWith", "startsWith", "indexOf", "replace", "split", "trim", "bytes", "codePoints"),
	"List":   set("toString", "add", "addAll", "clear", "count", "indexOf", "insert", "remove", "removeAt", "sort", "swap", "iterate", "iteratorValue"),
	"Map":    set("toString", "containsKey", "count", "remove", "clear", "keys", "values", "iterate", "iteratorValue", "[]", "[]="),
	"Range":  set("toString", "from", "to", "min", "max", "isInclusive", "iterate", "iteratorValue"),
	"Fiber":  set("toString", "call", "error", "isDone", "transfer", "try"),
	"Fn":     set("toString", "call", "arity"),
	"Sequence": set("toString", "all", "any", "contains", "count", "each", "isEmpty", "join", "map", "reduce",
		"skip", "take", "toList", "where", "iterate", "iteratorValue"),
}

// CoreStaticMethods is the fixed table of known static method names per
// core class.
var CoreStaticMethods = map[string]map[string]bool{
	"Object": set("same"),
	"Num":    set("fromString", "pi", "infinity", "nan"),
	"String": set("fromCodePoint", "fromByte"),
	"List":   set("filled", "new"),
	"Map":    set("new"),
	"Fiber":  set("current", "yield", "abort", "suspend"),
	"Fn":     set("new"),
	"System": set("print", "write", "clock", "gc"),
}

// CoreSuperclass is the fixed core inheritance chain: List, Map, Range,
// and String all extend Sequence; nothing else does.
var CoreSuperclass = map[string]string{
	"List": "Sequence", "Map": "Sequence", "Range": "Sequence", "String": "Sequence",
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// The fixed literal-inference results returned by literalTypeOf, which
// returns "" for unknown.
const (
	typeNum    = "Num"
	typeString = "String"
	typeBool   = "Bool"
	typeNull   = "Null"
	typeList   = "List"
	typeMap    = "Map"
)

// frame is one environment stack entry.
type frame struct {
	declared map[string]string
	inferred map[string]string
}

func newFrame() *frame {
	return &frame{declared: map[string]string{}, inferred: map[string]string{}}
}

// Checker implements visitor.Visitor, walking a module to produce
// lint-grade diagnostics. It assumes the caller has already verified no
// error-severity diagnostic exists from parsing or resolution.
type Checker struct {
	diagnostics *diag.List
	classes     map[string]*classInfo
	env         []*frame
	returnType  []string // stack of current method return type; "" means none/unset
	classStack  []string
}

// Check runs the type checker over mod and returns the warnings it
// produces. The caller must only invoke this when no error-severity
// diagnostic already exists for mod's source (spec §4.6: the checker is
// silent otherwise; enforcing the gate is the caller's responsibility so
// this package stays pure).
func Check(mod *ast.Module) *diag.List {
	c := &Checker{diagnostics: &diag.List{}, classes: map[string]*classInfo{}}
	c.buildRegistry(mod)
	c.env = append(c.env, newFrame())
	visitor.Walk(c, mod)
	return c.diagnostics
}

func (c *Checker) buildRegistry(mod *ast.Module) {
	for _, s := range mod.Statements {
		cls, ok := s.(*ast.ClassStmt)
		if !ok {
			continue
		}
		info := &classInfo{instanceMethods: map[string]bool{}, staticMethods: map[string]bool{}}
		if cls.Superclass != nil {
			info.superclass = cls.Superclass.Text
		}
		for _, m := range cls.Methods {
			name := m.RegistryName()
			if m.Construct || m.Static {
				info.staticMethods[name] = true
			} else {
				info.instanceMethods[name] = true
			}
		}
		c.classes[cls.Name.Text] = info
	}
}

func (c *Checker) topEnv() *frame { return c.env[len(c.env)-1] }

func (c *Checker) pushEnv() { c.env = append(c.env, newFrame()) }
func (c *Checker) popEnv()  { c.env = c.env[:len(c.env)-1] }

func (c *Checker) currentReturnType() string {
	if len(c.returnType) == 0 {
		return ""
	}
	return c.returnType[len(c.returnType)-1]
}

func (c *Checker) warnf(start, length int, code, format string, args ...any) {
	c.diagnostics.Add(diag.New(diag.Warning, code, fmt.Sprintf(format, args...), start, length))
}

// literalTypeOf returns the fixed literal type of e, or "" when e is not
// a literal this checker reasons about.
func literalTypeOf(e ast.Expr) string {
	switch e.(type) {
	case *ast.Num:
		return typeNum
	case *ast.Str, *ast.Interpolation:
		return typeString
	case *ast.Bool:
		return typeBool
	case *ast.Null:
		return typeNull
	case *ast.List:
		return typeList
	case *ast.Map:
		return typeMap
	}
	return ""
}

// inferType infers an expression's type for receiver/assignment
// purposes: literal rules, inferred-env lookup for bare names, the
// constructor pattern `Uppercase.new(...)`, and transparent grouping.
func (c *Checker) inferType(e ast.Expr) string {
	if t := literalTypeOf(e); t != "" {
		return t
	}
	switch n := e.(type) {
	case *ast.Grouping:
		return c.inferType(n.Value)
	case *ast.This:
		if len(c.classStack) > 0 {
			return c.classStack[len(c.classStack)-1]
		}
		return ""
	case *ast.Call:
		if n.Receiver == nil && n.LeftParen == nil && n.BlockArgument == nil {
			return c.topEnv().inferred[n.Name.Text]
		}
		if n.Receiver != nil && n.Name.Text == "new" {
			if recv, ok := n.Receiver.(*ast.Call); ok && recv.IsBareName() && isUpperInitial(recv.Name.Text) {
				return recv.Name.Text
			}
		}
	}
	return ""
}

func isUpperInitial(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}

// VisitStmt implements visitor.Visitor.
func (c *Checker) VisitStmt(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ClassStmt:
		c.classStack = append(c.classStack, n.Name.Text)
		for _, m := range n.Methods {
			c.visitMethod(m)
		}
		c.classStack = c.classStack[:len(c.classStack)-1]
		return false

	case *ast.VarStmt:
		if n.Annotation != nil {
			declared := n.Annotation.Name.Text
			c.topEnv().declared[n.Name.Text] = declared
			c.topEnv().inferred[n.Name.Text] = declared
			if n.Initializer != nil {
				if lt := literalTypeOf(n.Initializer); lt != "" && lt != declared {
					start, length := n.Initializer.Span()
					c.warnf(start, length-start, diag.CodeTypeMismatch,
						"initializer has type %s but %s is declared as %s", lt, n.Name.Text, declared)
				}
			} else if declared != typeNull {
				c.warnf(n.Name.Start, n.Name.Length, diag.CodeTypeMismatch,
					"%s has no initializer (defaults to Null)", n.Name.Text)
			}
		} else if n.Initializer != nil {
			if lt := c.inferType(n.Initializer); lt != "" {
				c.topEnv().inferred[n.Name.Text] = lt
			}
		}
		if n.Initializer != nil {
			visitor.WalkExpr(c, n.Initializer)
		}
		return false

	case *ast.ForStmt:
		if n.Annotation != nil {
			c.pushEnv()
			c.topEnv().declared[n.Variable.Text] = n.Annotation.Name.Text
			c.topEnv().inferred[n.Variable.Text] = n.Annotation.Name.Text
			visitor.WalkExpr(c, n.Iterable)
			visitor.WalkStmt(c, n.Body)
			c.popEnv()
			return false
		}
		return true

	case *ast.ReturnStmt:
		expected := c.currentReturnType()
		if expected != "" {
			if n.Value != nil {
				if lt := literalTypeOf(n.Value); lt != "" && lt != expected {
					start, length := n.Value.Span()
					c.warnf(start, length-start, diag.CodeTypeMismatch,
						"returned %s but method is declared to return %s", lt, expected)
				}
			} else if expected != typeNull {
				c.warnf(n.ReturnToken.Start, n.ReturnToken.Length, diag.CodeTypeMismatch,
					"return has no value but method is declared to return %s", expected)
			}
		}
		if n.Value != nil {
			visitor.WalkExpr(c, n.Value)
		}
		return false
	}
	return true
}

func (c *Checker) visitMethod(m *ast.Method) {
	if m.Foreign || m.Body == nil {
		return
	}
	c.pushEnv()
	for _, p := range m.Parameters {
		if p.Annotation != nil {
			c.topEnv().declared[p.Name.Text] = p.Annotation.Name.Text
			c.topEnv().inferred[p.Name.Text] = p.Annotation.Name.Text
		}
	}
	ret := ""
	if m.ReturnType != nil {
		ret = m.ReturnType.Name.Text
	}
	c.returnType = append(c.returnType, ret)
	c.visitBody(m.Body)
	c.returnType = c.returnType[:len(c.returnType)-1]
	c.popEnv()
}

func (c *Checker) visitBody(b *ast.Body) {
	c.pushEnv()
	for _, p := range b.Parameters {
		if p.Annotation != nil {
			c.topEnv().declared[p.Name.Text] = p.Annotation.Name.Text
			c.topEnv().inferred[p.Name.Text] = p.Annotation.Name.Text
		}
	}
	if b.Expression != nil {
		expected := c.currentReturnType()
		if expected != "" {
			if lt := literalTypeOf(b.Expression); lt != "" && lt != expected {
				start, length := b.Expression.Span()
				c.warnf(start, length-start, diag.CodeTypeMismatch,
					"expression has type %s but method is declared to return %s", lt, expected)
			}
		}
		visitor.WalkExpr(c, b.Expression)
	} else {
		for _, s := range b.Statements {
			visitor.WalkStmt(c, s)
		}
	}
	c.popEnv()
}

// VisitExpr implements visitor.Visitor.
func (c *Checker) VisitExpr(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Call:
		if n.Receiver != nil {
			c.checkMethodExistence(n.Receiver, n.Name.Text, n.Name.Start, n.Name.Length)
			visitor.WalkExpr(c, n.Receiver)
		}
		for _, a := range n.Arguments {
			visitor.WalkExpr(c, a)
		}
		if n.BlockArgument != nil {
			c.visitBody(n.BlockArgument)
		}
		return false

	case *ast.Assignment:
		if target, ok := n.Target.(*ast.Call); ok && target.IsBareName() {
			declared := c.topEnv().declared[target.Name.Text]
			if declared != "" {
				if lt := literalTypeOf(n.Value); lt != "" && lt != declared {
					start, length := n.Value.Span()
					c.warnf(start, length-start, diag.CodeTypeMismatch,
						"assigned %s but %s is declared as %s", lt, target.Name.Text, declared)
				}
			}
		}
		visitor.WalkExpr(c, n.Target)
		visitor.WalkExpr(c, n.Value)
		return false
	}
	return true
}

// checkMethodExistence implements spec §4.6 rule 8: static dispatch on a
// bare uppercase receiver, otherwise instance dispatch walking the
// user/core superclass chain.
func (c *Checker) checkMethodExistence(receiver ast.Expr, method string, start, length int) {
	if call, ok := receiver.(*ast.Call); ok && call.IsBareName() && isUpperInitial(call.Name.Text) {
		className := call.Name.Text
		if info, ok := c.classes[className]; ok {
			if !info.staticMethods[method] {
				c.warnUnknownMethod(className, method, start, length, c.staticSuggestions(className))
			}
			return
		}
		if statics, ok := CoreStaticMethods[className]; ok {
			if !statics[method] {
				c.warnUnknownMethod(className, method, start, length, namesOf(statics))
			}
			return
		}
		return // unknown class, possible import
	}

	recvType := c.inferType(receiver)
	if recvType == "" || recvType == typeNull {
		return
	}

	visited := map[string]bool{}
	class := recvType
	sawKnown := false
	for class != "" && !visited[class] {
		visited[class] = true
		if info, ok := c.classes[class]; ok {
			sawKnown = true
			if info.instanceMethods[method] {
				return
			}
			class = info.superclass
			continue
		}
		if methods, ok := CoreInstanceMethods[class]; ok {
			sawKnown = true
			if methods[method] {
				return
			}
			class = CoreSuperclass[class]
			continue
		}
		break
	}
	if CoreInstanceMethods["Object"][method] {
		return
	}
	if sawKnown {
		c.warnUnknownMethod(recvType, method, start, length, c.instanceSuggestions(recvType))
	}
}

func (c *Checker) warnUnknownMethod(className, method string, start, length int, candidates []string) {
	msg := fmt.Sprintf("%s has no method %q", className, method)
	if suggestion := bestSuggestion(method, candidates); suggestion != "" {
		msg = fmt.Sprintf("%s has no method %q, did you mean %q?", className, method, suggestion)
	}
	c.warnf(start, length, diag.CodeUnknownMethod, "%s", msg)
}

func (c *Checker) staticSuggestions(className string) []string {
	if info, ok := c.classes[className]; ok {
		return namesOf(info.staticMethods)
	}
	return namesOf(CoreStaticMethods[className])
}

func (c *Checker) instanceSuggestions(className string) []string {
	var out []string
	visited := map[string]bool{}
	class := className
	for class != "" && !visited[class] {
		visited[class] = true
		if info, ok := c.classes[class]; ok {
			out = append(out, namesOf(info.instanceMethods)...)
			class = info.superclass
			continue
		}
		if methods, ok := CoreInstanceMethods[class]; ok {
			out = append(out, namesOf(methods)...)
			class = CoreSuperclass[class]
			continue
		}
		break
	}
	return out
}

func namesOf(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func bestSuggestion(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
