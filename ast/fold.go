package ast

import "strconv"

// foldInt evaluates e if it is built entirely from integer literals and
// the arithmetic operators above, returning (value, true). It never calls
// into a general expression evaluator: anything outside this short list
// reports false and the caller falls back to printing the expression.
func foldInt(e Expr) (int64, bool) {
	switch v := e.(type) {
	case *UintLit:
		return int64(v.Value), true
	case *Neg:
		n, ok := foldInt(v.X)
		return -n, ok
	case *Add:
		l, ok1 := foldInt(v.L)
		r, ok2 := foldInt(v.R)
		return l + r, ok1 && ok2
	case *Sub:
		l, ok1 := foldInt(v.L)
		r, ok2 := foldInt(v.R)
		return l - r, ok1 && ok2
	case *Mul:
		l, ok1 := foldInt(v.L)
		r, ok2 := foldInt(v.R)
		return l * r, ok1 && ok2
	case *Div:
		l, ok1 := foldInt(v.L)
		r, ok2 := foldInt(v.R)
		if !ok1 || !ok2 || r == 0 {
			return 0, false
		}
		return l / r, true
	case *Mod:
		l, ok1 := foldInt(v.L)
		r, ok2 := foldInt(v.R)
		if !ok1 || !ok2 || r == 0 {
			return 0, false
		}
		return l % r, true
	default:
		return 0, false
	}
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
