package ast

import "strings"

// StringEq is the Torque string-equality operator, a $= b.
type StringEq struct{ Operands []Expr }

func (e *StringEq) Render() string { return joinOperands(e.Operands, " $= ") }

// StringNeq is a !$= b.
type StringNeq struct{ Operands []Expr }

func (e *StringNeq) Render() string { return joinOperands(e.Operands, " !$= ") }

// Concat is the Torque "@" string-concatenation operator, built up by the
// StringStack as the decoder folds ADVANCE_STR/REWIND_STR sequences
// (spec.md §4.4.2).
type Concat struct{ Operands []Expr }

func (e *Concat) Render() string { return joinOperands(e.Operands, " @ ") }

// ConcatNl is Torque's "NL" line-break concatenation operator.
type ConcatNl struct{ Operands []Expr }

func (e *ConcatNl) Render() string { return joinOperands(e.Operands, " NL ") }

// ConcatTab is Torque's "TAB" concatenation operator.
type ConcatTab struct{ Operands []Expr }

func (e *ConcatTab) Render() string { return joinOperands(e.Operands, " TAB ") }

// ConcatSpc is Torque's "SPC" concatenation operator.
type ConcatSpc struct{ Operands []Expr }

func (e *ConcatSpc) Render() string { return joinOperands(e.Operands, " SPC ") }

// ConcatComma joins with ", " — used for array-subscript and call-argument
// lists assembled by the string stack.
type ConcatComma struct{ Operands []Expr }

func (e *ConcatComma) Render() string { return joinOperands(e.Operands, ", ") }

// StringOp is implemented by the string-stack join operators (spec.md
// §4.4.2): each carries an operand list the StringStack's rewind/advance
// logic can keep extending as it folds more of the stack together,
// instead of rebuilding a new node on every fold.
type StringOp interface {
	Expr
	AppendOperand(Expr)
}

func (e *StringEq) AppendOperand(x Expr)      { e.Operands = append(e.Operands, x) }
func (e *StringNeq) AppendOperand(x Expr)     { e.Operands = append(e.Operands, x) }
func (e *Concat) AppendOperand(x Expr)        { e.Operands = append(e.Operands, x) }
func (e *ConcatNl) AppendOperand(x Expr)      { e.Operands = append(e.Operands, x) }
func (e *ConcatTab) AppendOperand(x Expr)     { e.Operands = append(e.Operands, x) }
func (e *ConcatSpc) AppendOperand(x Expr)     { e.Operands = append(e.Operands, x) }
func (e *ConcatComma) AppendOperand(x Expr)   { e.Operands = append(e.Operands, x) }

func joinOperands(ops []Expr, sep string) string {
	parts := make([]string, len(ops))
	for i, o := range ops {
		parts[i] = o.Render()
	}
	return strings.Join(parts, sep)
}
