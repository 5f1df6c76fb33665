package ast

// Eq is a == b.
type Eq struct{ L, R Expr }

func (e *Eq) Render() string { return e.L.Render() + " == " + e.R.Render() }
func (e *Eq) negate() Expr   { return &Neq{L: e.L, R: e.R} }

// Neq is a != b.
type Neq struct{ L, R Expr }

func (e *Neq) Render() string { return e.L.Render() + " != " + e.R.Render() }
func (e *Neq) negate() Expr   { return &Eq{L: e.L, R: e.R} }

// Lt is a < b.
type Lt struct{ L, R Expr }

func (e *Lt) Render() string { return e.L.Render() + " < " + e.R.Render() }
func (e *Lt) negate() Expr   { return &Ge{L: e.L, R: e.R} }

// Le is a <= b.
type Le struct{ L, R Expr }

func (e *Le) Render() string { return e.L.Render() + " <= " + e.R.Render() }
func (e *Le) negate() Expr   { return &Gt{L: e.L, R: e.R} }

// Gt is a > b.
type Gt struct{ L, R Expr }

func (e *Gt) Render() string { return e.L.Render() + " > " + e.R.Render() }
func (e *Gt) negate() Expr   { return &Le{L: e.L, R: e.R} }

// Ge is a >= b.
type Ge struct{ L, R Expr }

func (e *Ge) Render() string { return e.L.Render() + " >= " + e.R.Render() }
func (e *Ge) negate() Expr   { return &Lt{L: e.L, R: e.R} }

// Not is !a. It rewrites to its operand's logical complement when the
// operand is a known comparison (spec.md §4.5); otherwise it prints
// "!(X)".
type Not struct{ X Expr }

func (e *Not) Render() string {
	if n, ok := e.X.(negatable); ok {
		return n.negate().Render()
	}
	return "!(" + e.X.Render() + ")"
}

// And is a short-circuit a && b, built on bin_stack from a matching
// JMPIF_NP/JMPIFNOT_NP pair (spec.md §4.4.4).
type And struct{ L, R Expr }

func (e *And) Render() string { return e.L.Render() + " && " + e.R.Render() }

// Or is a short-circuit a || b.
type Or struct{ L, R Expr }

func (e *Or) Render() string { return e.L.Render() + " || " + e.R.Render() }
