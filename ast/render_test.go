package ast_test

import (
	"testing"

	"github.com/misiektw/dso2cs/ast"
)

func TestArithRender(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"add", &ast.Add{L: &ast.UintLit{Value: 1}, R: &ast.UintLit{Value: 2}}, "1 + 2"},
		{"mul parenthesizes add", &ast.Mul{L: &ast.Add{L: &ast.UintLit{Value: 1}, R: &ast.UintLit{Value: 2}}, R: &ast.UintLit{Value: 3}}, "(1 + 2) * 3"},
		{"div no parens needed on plain literal", &ast.Div{L: &ast.UintLit{Value: 6}, R: &ast.UintLit{Value: 2}}, "6 / 2"},
		{"neg folds literal", &ast.Neg{X: &ast.UintLit{Value: 5}}, "-5"},
		{"neg on expr", &ast.Neg{X: &ast.IdentLit{Value: "$a"}}, "-$a"},
		{"post-increment", &ast.AddPP{X: &ast.IdentLit{Value: "$a"}}, "$a++"},
		{"post-decrement", &ast.SubPP{X: &ast.IdentLit{Value: "$a"}}, "$a--"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.expr.Render(); got != c.want {
				t.Fatalf("Render() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestBooleanRender(t *testing.T) {
	eq := &ast.Eq{L: &ast.IdentLit{Value: "$a"}, R: &ast.UintLit{Value: 1}}
	if got, want := eq.Render(), "$a == 1"; got != want {
		t.Fatalf("Eq.Render() = %q, want %q", got, want)
	}
	not := &ast.Not{X: eq}
	if got, want := not.Render(), "$a != 1"; got != want {
		t.Fatalf("Not(Eq).Render() = %q, want %q (should rewrite to complement)", got, want)
	}
	notUnknown := &ast.Not{X: &ast.IdentLit{Value: "$b"}}
	if got, want := notUnknown.Render(), "!($b)"; got != want {
		t.Fatalf("Not(non-comparison).Render() = %q, want %q", got, want)
	}
}

func TestStringOpsRender(t *testing.T) {
	a := &ast.StringLit{Value: "a"}
	b := &ast.StringLit{Value: "b"}
	if got, want := (&ast.Concat{Operands: []ast.Expr{a, b}}).Render(), `"a" @ "b"`; got != want {
		t.Fatalf("Concat.Render() = %q, want %q", got, want)
	}
	if got, want := (&ast.ConcatSpc{Operands: []ast.Expr{a, b}}).Render(), `"a" SPC "b"`; got != want {
		t.Fatalf("ConcatSpc.Render() = %q, want %q", got, want)
	}
	if got, want := (&ast.StringEq{Operands: []ast.Expr{a, b}}).Render(), `"a" $= "b"`; got != want {
		t.Fatalf("StringEq.Render() = %q, want %q", got, want)
	}
}

func TestArrayAccessFoldsConstantIndex(t *testing.T) {
	access := &ast.ArrayAccess{
		Array: &ast.IdentLit{Value: "%arr"},
		Index: &ast.Add{L: &ast.UintLit{Value: 1}, R: &ast.UintLit{Value: 2}},
	}
	if got, want := access.Render(), "%arr[3]"; got != want {
		t.Fatalf("ArrayAccess.Render() = %q, want %q", got, want)
	}
	dynamic := &ast.ArrayAccess{Array: &ast.IdentLit{Value: "%arr"}, Index: &ast.IdentLit{Value: "%i"}}
	if got, want := dynamic.Render(), "%arr[%i]"; got != want {
		t.Fatalf("ArrayAccess.Render() = %q, want %q", got, want)
	}
}

func TestFieldAccessRender(t *testing.T) {
	fa := &ast.FieldAccess{Object: &ast.IdentLit{Value: "%obj"}, Field: &ast.FieldName{Name: "health"}}
	if got, want := fa.Render(), "%obj.health"; got != want {
		t.Fatalf("FieldAccess.Render() = %q, want %q", got, want)
	}
}

func TestFuncCallRender(t *testing.T) {
	fn := &ast.FuncCall{Name: "echo", Argv: []ast.Expr{&ast.StringLit{Value: "hi"}}}
	if got, want := fn.Render(), `echo("hi")`; got != want {
		t.Fatalf("Function call Render() = %q, want %q", got, want)
	}
	method := &ast.FuncCall{Name: "setHealth", Type: ast.CallMethod, ObjName: &ast.IdentLit{Value: "%obj"}, Argv: []ast.Expr{&ast.UintLit{Value: 100}}}
	if got, want := method.Render(), "%obj.setHealth(100)"; got != want {
		t.Fatalf("Method call Render() = %q, want %q", got, want)
	}
	parent := &ast.FuncCall{Name: "onAdd", Type: ast.CallParent}
	if got, want := parent.Render(), "base::onAdd()"; got != want {
		t.Fatalf("Parent call Render() = %q, want %q", got, want)
	}
}
