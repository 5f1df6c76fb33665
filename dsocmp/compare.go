// Package dsocmp structurally diffs two parsed DSO files, backing the
// --compare CLI verb (spec.md §6). There is no reference implementation to
// port here: the real source's compare_dso was an unfinished stub that
// never got past building an empty per-file list, so the comparison below
// is grounded directly on the exported dso.File surface instead.
package dsocmp

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/misiektw/dso2cs/dso"
)

// Diff is one field of two DSO files that differ structurally.
type Diff struct {
	Field  string
	Detail string
}

func (d Diff) String() string { return fmt.Sprintf("%s: %s", d.Field, d.Detail) }

// Compare reports every structural difference between a and b: version,
// both string tables, both float tables, the patched byte-code stream, and
// the ident table. A nil result means the two files are structurally
// identical (line-break pairs are parsed but not decode-relevant, spec.md
// §9, so they are not compared).
func Compare(a, b *dso.File) []Diff {
	var diffs []Diff

	if a.Version != b.Version {
		diffs = append(diffs, Diff{"Version", fmt.Sprintf("%d != %d", a.Version, b.Version)})
	}
	if d := cmp.Diff(a.GlobalStringTable.Entries(), b.GlobalStringTable.Entries()); d != "" {
		diffs = append(diffs, Diff{"GlobalStringTable", d})
	}
	if d := cmp.Diff(a.FunctionStringTable.Entries(), b.FunctionStringTable.Entries()); d != "" {
		diffs = append(diffs, Diff{"FunctionStringTable", d})
	}
	if d := cmp.Diff(a.GlobalFloatTable.Values(), b.GlobalFloatTable.Values()); d != "" {
		diffs = append(diffs, Diff{"GlobalFloatTable", d})
	}
	if d := cmp.Diff(a.FunctionFloatTable.Values(), b.FunctionFloatTable.Values()); d != "" {
		diffs = append(diffs, Diff{"FunctionFloatTable", d})
	}
	if d := cmp.Diff(a.ByteCode.Bytes(), b.ByteCode.Bytes()); d != "" {
		diffs = append(diffs, Diff{"ByteCode", d})
	}
	if d := cmp.Diff(a.IdentTable.Entries(), b.IdentTable.Entries()); d != "" {
		diffs = append(diffs, Diff{"IdentTable", d})
	}

	return diffs
}
