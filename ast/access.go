package ast

// ArrayAccess is array[index]. The Python source folds a constant integer
// index through eval(); that is unsafe to port as-is (spec.md §9), so
// folding here goes through foldInt, a small explicit interpreter over
// literal arithmetic, and falls back to printing the index expression
// verbatim when it isn't a constant.
type ArrayAccess struct {
	Array Expr
	Index Expr
}

func (e *ArrayAccess) Render() string {
	idx := e.Index.Render()
	if v, ok := foldInt(e.Index); ok {
		idx = itoa(v)
	}
	return e.Array.Render() + "[" + idx + "]"
}

// FieldAccess is object.field. Field is either a plain name or, for
// dynamic field access (SETCURFIELD_ARRAY), an expression.
type FieldAccess struct {
	Object Expr
	Field  Expr
}

func (e *FieldAccess) Render() string {
	return e.Object.Render() + "." + e.Field.Render()
}
