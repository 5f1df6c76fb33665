package dso

import (
	"bytes"
	"fmt"
	"sort"
)

// stringEntry is one NUL-terminated string in the pool, at its byte offset.
type stringEntry struct {
	offset int
	value  string
}

// StringTable is an ordered pool of NUL-separated strings addressed by byte
// offset. A query for an offset that falls inside a stored string returns
// the suffix starting at that offset, since the pool is sliceable the way
// the original DSO's blob is: one string's bytes can be a suffix of the
// logical string that starts earlier. Replacing the dictionary-with-
// fallback shape of the reference implementation (see DESIGN NOTES), the
// table keeps an explicit sorted index instead of relying on exceptions.
type StringTable struct {
	entries []stringEntry // sorted by offset
	length  int           // binary_length: one past the highest valid byte
}

// NewStringTable splits a NUL-separated blob into offset-addressed entries.
func NewStringTable(blob []byte) *StringTable {
	t := &StringTable{length: len(blob)}
	parts := bytes.Split(blob, []byte{0})
	if len(parts) > 0 {
		parts = parts[:len(parts)-1] // trailing split remainder, never a string
	}
	offset := 0
	for _, part := range parts {
		t.entries = append(t.entries, stringEntry{offset: offset, value: string(part)})
		offset += len(part) + 1
	}
	return t
}

func (t *StringTable) indexFor(offset int) int {
	// last entry whose start is <= offset
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].offset > offset })
	return i - 1
}

// Get returns the string starting at offset. If offset falls inside a
// stored string's byte range, the suffix beginning at offset is returned.
func (t *StringTable) Get(offset int) (string, error) {
	i := t.indexFor(offset)
	if i < 0 {
		return "", &StringOffsetError{Offset: offset}
	}
	e := t.entries[i]
	delta := offset - e.offset
	if delta > len(e.value) {
		return "", &StringOffsetError{Offset: offset}
	}
	return e.value[delta:], nil
}

// Has reports whether offset names an entry start (not merely a suffix).
func (t *StringTable) Has(offset int) bool {
	i := t.indexFor(offset)
	return i >= 0 && t.entries[i].offset == offset
}

// Length returns the logical byte length of the pool, including any
// synthetic entries appended after parse.
func (t *StringTable) Length() int { return t.length }

// Replace overwrites the string stored at offset (which must name an entry
// start) with value, used by the decoder to prefix a variable name with %
// or $ once its scope is known.
func (t *StringTable) Replace(offset int, value string) error {
	i := t.indexFor(offset)
	if i < 0 || t.entries[i].offset != offset {
		return &StringOffsetError{Offset: offset}
	}
	t.entries[i].value = value
	return nil
}

// EnsurePrefixed makes sure the string at offset begins with prefix,
// rewriting it in place if not, and returns the (possibly rewritten) value.
// This is how SETCURVAR/SETCURVAR_CREATE turn a bare identifier into
// "%local" or "$Global" the first time it's referenced.
func (t *StringTable) EnsurePrefixed(offset int, prefix byte) (string, error) {
	s, err := t.Get(offset)
	if err != nil {
		return "", err
	}
	if len(s) > 0 && s[0] == prefix {
		return s, nil
	}
	rewritten := string(prefix) + s
	if err := t.Replace(offset, rewritten); err != nil {
		return "", err
	}
	return rewritten, nil
}

// EnsurePlaceholder returns the string at offset if present; otherwise it
// inserts a synthetic "%unused_var<offset>" entry (per spec.md §3's
// IdentTable invariant) and extends the table's logical length so later
// patch bookkeeping stays consistent.
func (t *StringTable) EnsurePlaceholder(offset int) string {
	if s, err := t.Get(offset); err == nil {
		return s
	}
	placeholder := fmt.Sprintf("%%unused_var%d", offset)
	t.entries = append(t.entries, stringEntry{offset: offset, value: placeholder})
	sort.Slice(t.entries, func(i, j int) bool { return t.entries[i].offset < t.entries[j].offset })
	if end := offset + len(placeholder) + 1; end > t.length {
		t.length = end
	}
	return placeholder
}

// Entries returns the table's (offset, value) pairs in offset order, used
// by --parse-only table dumps.
func (t *StringTable) Entries() []struct {
	Offset int
	Value  string
} {
	out := make([]struct {
		Offset int
		Value  string
	}, len(t.entries))
	for i, e := range t.entries {
		out[i] = struct {
			Offset int
			Value  string
		}{e.offset, e.value}
	}
	return out
}
