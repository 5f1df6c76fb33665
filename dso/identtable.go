package dso

import "github.com/misiektw/dso2cs/binreader"

// identEntry maps one string-table offset to every code index that needs
// its placeholder byte(s) overwritten with that offset.
type identEntry struct {
	Offset    int
	Locations []int
}

// IdentTable is the relocation table between string-table offsets and the
// code positions that reference them, applied exactly once at the end of
// DSO parsing. Entries are kept in parse order (not map order) so
// PatchStrings' sequential index-table shifting is deterministic.
type IdentTable struct {
	entries []identEntry
}

// ParseIdentTable reads entryCount { offset, location_count, locations... }
// records, each a u32.
func ParseIdentTable(r *binreader.Reader, entryCount uint32) (*IdentTable, error) {
	t := &IdentTable{}
	for i := uint32(0); i < entryCount; i++ {
		offset, err := r.UnpackU32(binreader.LittleEndian)
		if err != nil {
			return nil, err
		}
		locCount, err := r.UnpackU32(binreader.LittleEndian)
		if err != nil {
			return nil, err
		}
		locs := make([]int, locCount)
		for j := range locs {
			v, err := r.UnpackU32(binreader.LittleEndian)
			if err != nil {
				return nil, err
			}
			locs[j] = int(v)
		}
		t.entries = append(t.entries, identEntry{Offset: int(offset), Locations: locs})
	}
	return t, nil
}

// Entries returns the table's (offset, locations) pairs in parse order.
func (t *IdentTable) Entries() []identEntry { return append([]identEntry(nil), t.entries...) }

// Len reports the number of relocation entries.
func (t *IdentTable) Len() int { return len(t.entries) }
