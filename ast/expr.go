// Package ast holds the TorqueScript abstract syntax: the expression and
// statement node families described in spec.md §3, a parent/children tree
// the decoder builds into as it walks the opcode stream, and the
// deterministic formatter that turns a tree back into source text.
package ast

// Expr is any value-producing AST node: arithmetic, boolean, bitwise,
// string, access, call, or literal (spec.md §3).
type Expr interface {
	// Render returns this expression's textual form. Context-sensitive
	// rules (parenthesization, the Not-rewrite) live in the few operators
	// that need them, not in a separate pass, so the tree itself never
	// needs mutating to print correctly.
	Render() string
}

// additive reports whether an Expr is an Add or Sub node; Mul and Div use
// it to decide whether to parenthesize an operand.
type additive interface {
	isAdditive() bool
}

func needsParens(e Expr) bool {
	a, ok := e.(additive)
	return ok && a.isAdditive()
}

func parenIfAdditive(e Expr) string {
	if needsParens(e) {
		return "(" + e.Render() + ")"
	}
	return e.Render()
}

// negatable is implemented by comparison operators that have a direct
// logical complement, so Not(X) can rewrite to it instead of printing
// "!(X)" (spec.md §4.5).
type negatable interface {
	negate() Expr
}
