package ast_test

import (
	"strings"
	"testing"

	"github.com/misiektw/dso2cs/ast"
)

func formatTree(t *testing.T, root *ast.Node) string {
	t.Helper()
	var buf strings.Builder
	if err := ast.NewFormatter(&buf).Format(root); err != nil {
		t.Fatalf("Format: %v", err)
	}
	return buf.String()
}

// TestFormatEmptyScript covers spec.md §8 scenario 1.
func TestFormatEmptyScript(t *testing.T) {
	root := ast.NewNode(&ast.File{Name: "empty.cs"})
	got := formatTree(t, root)
	want := "// Decompiled file: empty.cs;\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// TestFormatAssignment covers spec.md §8 scenario 2: $a = 5;
func TestFormatAssignment(t *testing.T) {
	root := ast.NewNode(&ast.File{Name: "a.cs"})
	tree := ast.NewTree(root)
	tree.Append(&ast.Assignment{Left: &ast.IdentLit{Value: "$a"}, Right: &ast.UintLit{Value: 5}})

	got := formatTree(t, root)
	if !strings.Contains(got, "$a = 5;\n") {
		t.Fatalf("got %q, want it to contain %q", got, "$a = 5;\n")
	}
}

// TestFormatFuncDecl covers spec.md §8 scenario 3:
// function f(%x) { return %x + 1; }
func TestFormatFuncDecl(t *testing.T) {
	root := ast.NewNode(&ast.File{Name: "f.cs"})
	tree := ast.NewTree(root)
	tree.Append(&ast.FuncDecl{Name: "f", Argv: []ast.Expr{&ast.IdentLit{Value: "%x"}}})
	tree.FocusLastChild()
	tree.Append(&ast.Return{Value: &ast.Add{L: &ast.IdentLit{Value: "%x"}, R: &ast.UintLit{Value: 1}}})

	got := formatTree(t, root)
	want := "// Decompiled file: f.cs;\n" +
		"function f(%x)\n{\n" +
		"\treturn %x + 1;\n" +
		"}\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestFormatIfElse covers spec.md §8 scenario 4:
// if (%a > 0) %a = 1; else %a = 2;
func TestFormatIfElse(t *testing.T) {
	root := ast.NewNode(&ast.File{Name: "c.cs"})
	tree := ast.NewTree(root)
	tree.Append(&ast.If{Condition: &ast.Gt{L: &ast.IdentLit{Value: "%a"}, R: &ast.UintLit{Value: 0}}})
	tree.FocusLastChild()
	tree.Append(&ast.Assignment{Left: &ast.IdentLit{Value: "%a"}, Right: &ast.UintLit{Value: 1}})
	tree.FocusParent()
	tree.Append(&ast.Else{})
	tree.FocusLastChild()
	tree.Append(&ast.Assignment{Left: &ast.IdentLit{Value: "%a"}, Right: &ast.UintLit{Value: 2}})

	got := formatTree(t, root)
	want := "// Decompiled file: c.cs;\n" +
		"if (%a > 0)\n{\n" +
		"\t%a = 1;\n" +
		"}\n" +
		"else\n{\n" +
		"\t%a = 2;\n" +
		"}\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestFormatWhileWithPostIncrement covers spec.md §8 scenario 5:
// while (%i < 10) %i++;
func TestFormatWhileWithPostIncrement(t *testing.T) {
	root := ast.NewNode(&ast.File{Name: "w.cs"})
	tree := ast.NewTree(root)
	tree.Append(&ast.While{Condition: &ast.Lt{L: &ast.IdentLit{Value: "%i"}, R: &ast.UintLit{Value: 10}}})
	tree.FocusLastChild()
	tree.Append(&ast.Assignment{Left: &ast.IdentLit{Value: "%i"}, Right: &ast.AddPP{X: &ast.IdentLit{Value: "%i"}}})

	got := formatTree(t, root)
	want := "// Decompiled file: w.cs;\n" +
		"while (%i < 10)\n{\n" +
		"\t%i++;\n" +
		"}\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestFormatObjCreation covers spec.md §8 scenario 6:
// datablock Foo(B : P) { f = 1; };
func TestFormatObjCreation(t *testing.T) {
	root := ast.NewNode(&ast.File{Name: "o.cs"})
	tree := ast.NewTree(root)
	obj := ast.NewObjCreation("Foo", "P", true, false, false, []ast.Expr{&ast.IdentLit{Value: "B"}})
	n := ast.NewNode(obj)
	n.IsObject = true
	tree.AppendNode(n)
	tree.FocusLastChild()
	tree.Append(&ast.Assignment{Left: &ast.IdentLit{Value: "f"}, Right: &ast.UintLit{Value: 1}})

	got := formatTree(t, root)
	want := "// Decompiled file: o.cs;\n" +
		"datablock Foo( B : P )\n{\n" +
		"\tf = 1;\n" +
		"};\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestNodeEqual(t *testing.T) {
	a := ast.NewNode(&ast.Return{Value: &ast.UintLit{Value: 1}})
	b := ast.NewNode(&ast.Return{Value: &ast.UintLit{Value: 1}})
	c := ast.NewNode(&ast.Return{Value: &ast.UintLit{Value: 2}})
	if !a.Equal(b) {
		t.Fatalf("expected equal nodes to compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected differing nodes to compare unequal")
	}
}
