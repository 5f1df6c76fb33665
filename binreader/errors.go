// Package binreader provides a cursor over an immutable byte buffer with
// typed little/big-endian reads, lookahead, and the in-place patch
// operations the DSO ident table needs.
package binreader

import "fmt"

// OutOfRangeError is returned whenever a read or lookup would run past the
// end of the underlying buffer.
type OutOfRangeError struct {
	Offset int
	Want   int
	Have   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("binreader: out of range at offset %d: want %d bytes, have %d", e.Offset, e.Want, e.Have)
}
