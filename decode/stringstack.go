package decode

import "github.com/misiektw/dso2cs/ast"

// strItem is one slot of the string stack. Exactly one of single/list is
// meaningful unless Pending is set, which reserves the slot the way
// advance() appends a None placeholder in the source, to be overwritten
// by the next load().
type strItem struct {
	Pending bool
	single  ast.Expr
	list    []ast.Expr
}

// StringStack reconstructs the expression a sequence of
// LOADIMMED_STR/ADVANCE_STR*/REWIND_STR/TERMINATE_REWIND_STR opcodes
// describes (spec.md §4.4.2): advance() wraps the value just loaded in
// the join operator the following character selects, reserving a new
// pending slot; rewind() folds the top two slots together, growing a
// list of not-yet-joined operands until a load or advance gives them a
// concrete operator.
type StringStack struct{ items []strItem }

// Load sets the top slot (or pushes one if the stack is empty) to e,
// discarding any Pending reservation there.
func (s *StringStack) Load(e ast.Expr) {
	if len(s.items) == 0 {
		s.items = append(s.items, strItem{single: e})
		return
	}
	s.items[len(s.items)-1] = strItem{single: e}
}

// Top returns the expression at the top of the stack as it would render
// right now (used by handlers that read the current string value without
// popping, e.g. SAVEVAR_STR and SAVEFIELD_STR).
func (s *StringStack) Top() (ast.Expr, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	top := s.items[len(s.items)-1]
	if top.Pending {
		return nil, false
	}
	if top.list != nil {
		return &ast.ConcatComma{Operands: top.list}, true
	}
	return top.single, true
}

func (s *StringStack) pop() (strItem, bool) {
	if len(s.items) == 0 {
		return strItem{}, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Advance closes out the value just loaded, optionally wrapping it in the
// join operator ch selects (spec.md §4.4.2's special-character table),
// then reserves a fresh pending slot for the next load.
func (s *StringStack) Advance(ch *byte) {
	if ch != nil {
		popped, _ := s.pop()
		val := popped.single
		if val == nil && popped.list != nil {
			val = &ast.ConcatComma{Operands: popped.list}
		}
		var wrapped ast.Expr
		switch *ch {
		case '\n':
			wrapped = &ast.ConcatNl{Operands: []ast.Expr{val}}
		case '\t':
			wrapped = &ast.ConcatTab{Operands: []ast.Expr{val}}
		case ' ':
			wrapped = &ast.ConcatSpc{Operands: []ast.Expr{val}}
		case ',':
			wrapped = &ast.ConcatComma{Operands: []ast.Expr{val}}
		case 0:
			wrapped = &ast.StringEq{Operands: []ast.Expr{val}}
		default:
			wrapped = &ast.Concat{Operands: []ast.Expr{val, &ast.StringLit{Value: string(*ch)}}}
		}
		s.items = append(s.items, strItem{single: wrapped})
	}
	s.items = append(s.items, strItem{Pending: true})
}

// Rewind folds the top two slots together: a StringOp on the lower slot
// absorbs the upper slot's value(s) as further operands; two plain values
// become a 2-element list; an existing list absorbs the new value,
// keeping everything un-joined until a concrete operator or
// TerminateRewind resolves it (spec.md §4.4.2).
func (s *StringStack) Rewind() {
	s2, _ := s.pop()
	s1, _ := s.pop()

	switch {
	case s2.list != nil:
		switch {
		case s1.list != nil:
			s.items = append(s.items, strItem{list: append(append([]ast.Expr{}, s1.list...), s2.list...)})
		case isStringOp(s1.single):
			s1.single.(ast.StringOp).AppendOperand(&ast.ConcatComma{Operands: s2.list})
			s.items = append(s.items, s1)
		default:
			s.items = append(s.items, strItem{list: append([]ast.Expr{s1.single}, s2.list...)})
		}
	default:
		switch {
		case s1.list != nil:
			s.items = append(s.items, strItem{list: append(append([]ast.Expr{}, s1.list...), s2.single)})
		case isStringOp(s1.single):
			s1.single.(ast.StringOp).AppendOperand(s2.single)
			s.items = append(s.items, s1)
		default:
			s.items = append(s.items, strItem{list: []ast.Expr{s1.single, s2.single}})
		}
	}
}

// TerminateRewind discards the top slot outright, the counterpart to
// Rewind used when the comparison/value the fold was building turned out
// not to be needed (e.g. COMPARE_STR's second operand).
func (s *StringStack) TerminateRewind() { s.pop() }

func isStringOp(e ast.Expr) bool {
	_, ok := e.(ast.StringOp)
	return ok
}
