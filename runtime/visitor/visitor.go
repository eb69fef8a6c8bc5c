// Package visitor defines a generic depth-first traversal over the AST.
// It is a convention, not a type-system feature: resolver and typecheck
// each implement Visitor and call Walk to drive themselves over a
// module, overriding only the node kinds they care about.
package visitor

import "github.com/wren-lang/wren-analyzer/core/ast"

// Visitor is implemented by a pass that wants to observe every node of a
// module as Walk descends into it. Each method returns true to have Walk
// recurse into the node's children itself (default depth-first descent),
// or false when the visitor has already handled its own descent (e.g. a
// resolver entering a new scope around a method body).
type Visitor interface {
	VisitStmt(s ast.Stmt) bool
	VisitExpr(e ast.Expr) bool
}

// Walk traverses module in source order, depth-first, calling v's
// VisitStmt/VisitExpr at every node.
func Walk(v Visitor, mod *ast.Module) {
	for _, s := range mod.Statements {
		WalkStmt(v, s)
	}
}

// WalkStmt dispatches s to v and, if v says to recurse, walks its
// children.
func WalkStmt(v Visitor, s ast.Stmt) {
	if s == nil || !v.VisitStmt(s) {
		return
	}
	switch n := s.(type) {
	case *ast.ClassStmt:
		for _, m := range n.Methods {
			if m.Body != nil {
				WalkBody(v, m.Body)
			}
		}
	case *ast.VarStmt:
		if n.Initializer != nil {
			WalkExpr(v, n.Initializer)
		}
	case *ast.ImportStmt:
		// leaf: no children to walk
	case *ast.IfStmt:
		WalkExpr(v, n.Condition)
		WalkStmt(v, n.Then)
		if n.Else != nil {
			WalkStmt(v, n.Else)
		}
	case *ast.ForStmt:
		WalkExpr(v, n.Iterable)
		WalkStmt(v, n.Body)
	case *ast.WhileStmt:
		WalkExpr(v, n.Condition)
		WalkStmt(v, n.Body)
	case *ast.ReturnStmt:
		if n.Value != nil {
			WalkExpr(v, n.Value)
		}
	case *ast.BlockStmt:
		for _, inner := range n.Statements {
			WalkStmt(v, inner)
		}
	case *ast.BreakStmt, *ast.ContinueStmt:
		// leaves
	case *ast.ExprStmt:
		WalkExpr(v, n.Expression)
	}
}

// WalkBody walks a method or block-argument body: either a single
// expression or a statement list.
func WalkBody(v Visitor, b *ast.Body) {
	if b == nil {
		return
	}
	if b.Expression != nil {
		WalkExpr(v, b.Expression)
		return
	}
	for _, s := range b.Statements {
		WalkStmt(v, s)
	}
}

// WalkExpr dispatches e to v and, if v says to recurse, walks its
// children.
func WalkExpr(v Visitor, e ast.Expr) {
	if e == nil || !v.VisitExpr(e) {
		return
	}
	switch n := e.(type) {
	case *ast.Num, *ast.Str, *ast.Bool, *ast.Null, *ast.This, *ast.Field,
		*ast.StaticField, *ast.ErrorExpr:
		// leaves
	case *ast.List:
		for _, el := range n.Elements {
			WalkExpr(v, el)
		}
	case *ast.Map:
		for _, entry := range n.Entries {
			WalkExpr(v, entry.Key)
			WalkExpr(v, entry.Value)
		}
	case *ast.Interpolation:
		for _, sub := range n.Expressions {
			WalkExpr(v, sub)
		}
	case *ast.Grouping:
		WalkExpr(v, n.Value)
	case *ast.Prefix:
		WalkExpr(v, n.Right)
	case *ast.Infix:
		WalkExpr(v, n.Left)
		WalkExpr(v, n.Right)
	case *ast.Call:
		if n.Receiver != nil {
			WalkExpr(v, n.Receiver)
		}
		for _, a := range n.Arguments {
			WalkExpr(v, a)
		}
		if n.BlockArgument != nil {
			WalkBody(v, n.BlockArgument)
		}
	case *ast.Subscript:
		WalkExpr(v, n.Receiver)
		for _, a := range n.Arguments {
			WalkExpr(v, a)
		}
	case *ast.Assignment:
		WalkExpr(v, n.Target)
		WalkExpr(v, n.Value)
	case *ast.Conditional:
		WalkExpr(v, n.Condition)
		WalkExpr(v, n.Then)
		WalkExpr(v, n.Else)
	case *ast.Super:
		for _, a := range n.Arguments {
			WalkExpr(v, a)
		}
		if n.BlockArgument != nil {
			WalkBody(v, n.BlockArgument)
		}
	}
}
