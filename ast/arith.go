package ast

import "strconv"

// Add is a + b.
type Add struct{ L, R Expr }

func (e *Add) Render() string  { return e.L.Render() + " + " + e.R.Render() }
func (e *Add) isAdditive() bool { return true }

// Sub is a - b.
type Sub struct{ L, R Expr }

func (e *Sub) Render() string  { return e.L.Render() + " - " + e.R.Render() }
func (e *Sub) isAdditive() bool { return true }

// Mul is a * b; Add/Sub operands are parenthesized (spec.md §4.5).
type Mul struct{ L, R Expr }

func (e *Mul) Render() string {
	return parenIfAdditive(e.L) + " * " + parenIfAdditive(e.R)
}

// Div is a / b; Add/Sub operands are parenthesized (spec.md §4.5).
type Div struct{ L, R Expr }

func (e *Div) Render() string {
	return parenIfAdditive(e.L) + " / " + parenIfAdditive(e.R)
}

// Mod is a % b.
type Mod struct{ L, R Expr }

func (e *Mod) Render() string { return e.L.Render() + " % " + e.R.Render() }

// Neg is unary minus. It constant-folds over a numeric literal operand
// (spec.md §4.5, §9: numeric folding is an explicit small interpreter over
// the AST, never an eval of generated text).
type Neg struct{ X Expr }

func (e *Neg) Render() string {
	switch v := e.X.(type) {
	case *UintLit:
		return strconv.FormatInt(-int64(v.Value), 10)
	case *FloatLit:
		return strconv.FormatFloat(-v.Value, 'g', -1, 64)
	default:
		return "-" + e.X.Render()
	}
}

// AddPP is the post-increment idiom "var++", recognized by the decoder's
// normalizer from a SETCURVAR_CREATE + LOADVAR_FLT + LOADIMMED_UINT(1) +
// ADD + SAVEVAR_FLT sequence (spec.md §4.4.5) so only one statement, not a
// duplicated assignment, survives into the tree.
type AddPP struct{ X Expr }

func (e *AddPP) Render() string { return e.X.Render() + "++" }

// SubPP is the post-decrement idiom "var--", the SUB counterpart of AddPP.
type SubPP struct{ X Expr }

func (e *SubPP) Render() string { return e.X.Render() + "--" }

// BitAnd is a & b.
type BitAnd struct{ L, R Expr }

func (e *BitAnd) Render() string { return e.L.Render() + " & " + e.R.Render() }

// BitOr is a | b.
type BitOr struct{ L, R Expr }

func (e *BitOr) Render() string { return e.L.Render() + " | " + e.R.Render() }

// Xor is a ^ b.
type Xor struct{ L, R Expr }

func (e *Xor) Render() string { return e.L.Render() + " ^ " + e.R.Render() }

// Complement is ~a.
type Complement struct{ X Expr }

func (e *Complement) Render() string { return "~" + e.X.Render() }

// Shl is a << b.
type Shl struct{ L, R Expr }

func (e *Shl) Render() string { return e.L.Render() + " << " + e.R.Render() }

// Shr is a >> b.
type Shr struct{ L, R Expr }

func (e *Shr) Render() string { return e.L.Render() + " >> " + e.R.Render() }
