package decode

import "github.com/misiektw/dso2cs/ast"

// IntOp and FltOp hold a decoded numeric operand, tagged so the int and
// float stacks never fall back to a dynamically-typed slot the way the
// source's plain Python lists do (spec.md §9). Expr carries the AST node
// that will be emitted if this entry survives to an assignment/argument;
// a stack entry is always both a value and the expression that produced
// it, since the decoder never needs the raw value without also wanting to
// print it.
type IntOp struct {
	Value int64
	Expr  ast.Expr
}

type FltOp struct {
	Value float64
	Expr  ast.Expr
}

// IntStack is the VM's integer/uint operand stack.
type IntStack struct{ items []IntOp }

func (s *IntStack) Push(v IntOp) { s.items = append(s.items, v) }
func (s *IntStack) Pop() (IntOp, bool) {
	if len(s.items) == 0 {
		return IntOp{}, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Top reads the top entry without removing it, the way SAVEVAR_UINT peeks
// self.intStack[-1] in the source and leaves the actual pop to the
// following UINT_TO_NONE (or whatever consumes the value next).
func (s *IntStack) Top() (IntOp, bool) {
	if len(s.items) == 0 {
		return IntOp{}, false
	}
	return s.items[len(s.items)-1], true
}
func (s *IntStack) Len() int { return len(s.items) }

// FltStack is the VM's float operand stack.
type FltStack struct{ items []FltOp }

func (s *FltStack) Push(v FltOp) { s.items = append(s.items, v) }
func (s *FltStack) Pop() (FltOp, bool) {
	if len(s.items) == 0 {
		return FltOp{}, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Top reads the top entry without removing it, the float-stack
// counterpart to IntStack.Top.
func (s *FltStack) Top() (FltOp, bool) {
	if len(s.items) == 0 {
		return FltOp{}, false
	}
	return s.items[len(s.items)-1], true
}
func (s *FltStack) Len() int { return len(s.items) }

// ArgFrame is the argument list being assembled for the next CALLFUNC or
// object creation, pushed by PUSH_FRAME and populated by PUSH.
type ArgFrame struct{ items []ast.Expr }

func (f *ArgFrame) Push(e ast.Expr) { f.items = append(f.items, e) }
func (f *ArgFrame) Drain() []ast.Expr {
	items := f.items
	f.items = nil
	return items
}
