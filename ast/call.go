package ast

// CallType distinguishes the three FuncCall forms the decoder builds from
// CALLFUNC/CALLFUNC_RESOLVE (spec.md §4.4.4).
type CallType int

const (
	CallFunction CallType = iota
	CallMethod
	CallParent
)

// FuncCall is a function, method, or parent-class call. For CallMethod the
// decoder's first argument is the receiver, stripped into ObjName and
// rendered as "obj.name(...)" rather than as a plain argument.
type FuncCall struct {
	Name      string
	Namespace string
	Type      CallType
	ObjName   Expr // set only when Type == CallMethod
	Argv      []Expr
}

func (e *FuncCall) Render() string {
	var base string
	switch {
	case e.Namespace != "":
		base = e.Namespace + "::"
	case e.Type == CallParent:
		base = "base::"
	}
	if e.Type == CallMethod && e.ObjName != nil {
		base += e.ObjName.Render() + "."
	}
	return base + e.Name + "(" + joinOperands(e.Argv, ", ") + ")"
}
