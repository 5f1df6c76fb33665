package dso

import "fmt"

// ParsingError reports a structural problem in a DSO container: an
// inconsistent section length, a short read, or leftover bytes after every
// documented section has been consumed.
type ParsingError struct {
	Reason string
}

func (e *ParsingError) Error() string { return "dso: parsing error: " + e.Reason }

// UnsupportedVersionError is returned when the script_version field names a
// DSO generation this decoder does not implement.
type UnsupportedVersionError struct {
	Version uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("dso: unsupported script version %d", e.Version)
}

// StringOffsetError is returned when a string-table lookup falls outside
// every stored string's byte range.
type StringOffsetError struct {
	Offset int
}

func (e *StringOffsetError) Error() string {
	return fmt.Sprintf("dso: string table has no entry covering offset %d", e.Offset)
}

// PatchTargetError is returned when the ident table's relocation target
// does not hold the zero byte the patcher requires before overwriting it.
type PatchTargetError struct {
	CodeIndex int
	ByteGot   byte
}

func (e *PatchTargetError) Error() string {
	return fmt.Sprintf("dso: ident table patch target at code index %d held byte %#x, want 0x00", e.CodeIndex, e.ByteGot)
}

// CodeIndexRangeError is returned when an ident-table entry names a code
// index outside [0, code_count).
type CodeIndexRangeError struct {
	Index, Count int
}

func (e *CodeIndexRangeError) Error() string {
	return fmt.Sprintf("dso: ident table code index %d out of range [0, %d)", e.Index, e.Count)
}
