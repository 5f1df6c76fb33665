package dso

import (
	"fmt"
	"io"
)

// DumpTables writes a textual dump of every parsed section, in the order
// the reference implementation's constructor used to print them, for the
// CLI's --parse-only verb (spec.md §6, SPEC_FULL.md §C.2).
func (f *File) DumpTables(w io.Writer) error {
	fmt.Fprintf(w, "Script version: %d\n\n", f.Version)

	if err := dumpStringTable(w, "Global String Table", f.GlobalStringTable); err != nil {
		return err
	}
	dumpFloatTable(w, "Global Float Table", f.GlobalFloatTable)
	if err := dumpStringTable(w, "Function String Table", f.FunctionStringTable); err != nil {
		return err
	}
	dumpFloatTable(w, "Function Float Table", f.FunctionFloatTable)

	fmt.Fprintf(w, "Byte Code (%d codes, %d bytes):\n", f.ByteCode.CodeCount(), f.ByteCode.ByteLength())
	fmt.Fprintf(w, "%x\n\n", f.ByteCode.Bytes())

	fmt.Fprintf(w, "Byte Code index table:\n%v\n\n", f.ByteCode.IndexTable())

	fmt.Fprintf(w, "Ident Table (%d entries):\n", f.IdentTable.Len())
	for _, e := range f.IdentTable.Entries() {
		fmt.Fprintf(w, "  offset=%d -> code indices %v\n", e.Offset, e.Locations)
	}
	fmt.Fprintln(w)
	return nil
}

func dumpStringTable(w io.Writer, title string, t *StringTable) error {
	fmt.Fprintf(w, "%s:\n", title)
	for _, e := range t.Entries() {
		fmt.Fprintf(w, "  %d: %q\n", e.Offset, e.Value)
	}
	fmt.Fprintln(w)
	return nil
}

func dumpFloatTable(w io.Writer, title string, t *FloatTable) {
	fmt.Fprintf(w, "%s:\n", title)
	for i, v := range t.Values() {
		fmt.Fprintf(w, "  %d: %v\n", i, v)
	}
	fmt.Fprintln(w)
}
