package dso

import "github.com/misiektw/dso2cs/binreader"

// v41 is the only fully documented target version (spec.md §1, §4.2).
// versions in oldSupported predate it and differ in float width, the
// absence of a line-break-pair count, and a 2-byte (not 4-byte) 0xFF
// extension follow-up (spec.md §4.2(a)-(c)).
const v41 = 41

var oldSupported = map[uint32]bool{20: true, 21: true, 22: true}

// File is a fully parsed DSO container: both string tables, both float
// tables, the patched byte code, and the ident table that was folded into
// it. Parse builds it completely; afterwards only the decoder changes it,
// rewriting global string-table entries in place when it prefixes variable
// and argument names with % or $.
type File struct {
	Version uint32

	GlobalStringTable   *StringTable
	GlobalFloatTable    *FloatTable
	FunctionStringTable *StringTable
	FunctionFloatTable  *FloatTable

	ByteCode   *ByteCode
	IdentTable *IdentTable

	// LineBreakPairs is parsed but unused by decoding (spec.md §9 Open
	// Questions: its relevance to loop detection is unconfirmed).
	LineBreakPairs [][2]uint32
}

// Parse reads a complete DSO container from r (spec.md §4.2). The reader
// must be positioned at the start of the file and must be fully consumed
// by the time Parse returns, or ParsingError is returned.
func Parse(r *binreader.Reader) (*File, error) {
	version, err := r.UnpackU32(binreader.LittleEndian)
	if err != nil {
		return nil, err
	}

	var prec Precision
	var extWidth int
	var hasLineBreakCount bool
	switch {
	case version == v41:
		prec, extWidth, hasLineBreakCount = Precision64, 4, true
	case oldSupported[version]:
		prec, extWidth, hasLineBreakCount = Precision32, 2, false
	default:
		return nil, &UnsupportedVersionError{Version: version}
	}

	f := &File{Version: version}

	f.GlobalStringTable, err = readStringTable(r)
	if err != nil {
		return nil, err
	}
	f.GlobalFloatTable, err = readFloatTable(r, prec)
	if err != nil {
		return nil, err
	}
	f.FunctionStringTable, err = readStringTable(r)
	if err != nil {
		return nil, err
	}
	f.FunctionFloatTable, err = readFloatTable(r, prec)
	if err != nil {
		return nil, err
	}

	codeCount, err := r.UnpackU32(binreader.LittleEndian)
	if err != nil {
		return nil, err
	}
	var lbPairCount uint32
	if hasLineBreakCount {
		lbPairCount, err = r.UnpackU32(binreader.LittleEndian)
		if err != nil {
			return nil, err
		}
	}

	f.ByteCode, err = ParseByteCode(r, codeCount, extWidth)
	if err != nil {
		return nil, err
	}

	for i := uint32(0); i < lbPairCount; i++ {
		a, err := r.UnpackU32(binreader.LittleEndian)
		if err != nil {
			return nil, err
		}
		b, err := r.UnpackU32(binreader.LittleEndian)
		if err != nil {
			return nil, err
		}
		f.LineBreakPairs = append(f.LineBreakPairs, [2]uint32{a, b})
	}

	identCount, err := r.UnpackU32(binreader.LittleEndian)
	if err != nil {
		return nil, err
	}
	f.IdentTable, err = ParseIdentTable(r, identCount)
	if err != nil {
		return nil, err
	}

	if r.Remaining() != 0 {
		return nil, &ParsingError{Reason: "did not reach EOF"}
	}

	if err := f.ByteCode.PatchStrings(f.IdentTable, f.GlobalStringTable); err != nil {
		return nil, err
	}
	logger.Printf("parsed DSO version %d: %d codes, %d ident entries", version, f.ByteCode.CodeCount(), f.IdentTable.Len())

	return f, nil
}

func readStringTable(r *binreader.Reader) (*StringTable, error) {
	n, err := r.UnpackU32(binreader.LittleEndian)
	if err != nil {
		return nil, err
	}
	blob, err := r.ReadN(int(n))
	if err != nil {
		return nil, err
	}
	return NewStringTable(blob), nil
}

func readFloatTable(r *binreader.Reader, prec Precision) (*FloatTable, error) {
	n, err := r.UnpackU32(binreader.LittleEndian)
	if err != nil {
		return nil, err
	}
	return ParseFloatTable(r, n, prec)
}
