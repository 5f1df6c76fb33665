// Package fixture builds raw v41 DSO byte streams for tests, following the
// section layout in spec.md §4.2. It exists only to let the dso and decode
// packages' tests construct literal inputs for the scenarios in spec.md §8
// without shipping a binary testdata corpus.
package fixture

import (
	"bytes"
	"encoding/binary"
	"math"
)

// IdentEntry is one ident-table relocation: offsetValue names a string
// table offset, codeIndices names the codes whose placeholder byte should
// be overwritten with it.
type IdentEntry struct {
	Offset  uint32
	Indices []uint32
}

// Builder assembles a v41 DSO file byte-for-byte.
type Builder struct {
	GlobalStrings []byte // already NUL-separated, including trailing NUL
	GlobalFloats  []float64
	FuncStrings   []byte
	FuncFloats    []float64
	Code          []byte // raw packed code bytes, codes pre-counted via CodeCount
	CodeCount     uint32
	LineBreaks    [][2]uint32
	Idents        []IdentEntry
}

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putF64(buf *bytes.Buffer, v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	buf.Write(b[:])
}

// Build serializes the fixture into a complete v41 DSO byte stream.
func (b *Builder) Build() []byte {
	var out bytes.Buffer
	putU32(&out, 41) // script_version

	putU32(&out, uint32(len(b.GlobalStrings)))
	out.Write(b.GlobalStrings)

	putU32(&out, uint32(len(b.GlobalFloats)))
	for _, f := range b.GlobalFloats {
		putF64(&out, f)
	}

	putU32(&out, uint32(len(b.FuncStrings)))
	out.Write(b.FuncStrings)

	putU32(&out, uint32(len(b.FuncFloats)))
	for _, f := range b.FuncFloats {
		putF64(&out, f)
	}

	putU32(&out, b.CodeCount)
	putU32(&out, uint32(len(b.LineBreaks)))
	out.Write(b.Code)
	for _, pair := range b.LineBreaks {
		putU32(&out, pair[0])
		putU32(&out, pair[1])
	}

	putU32(&out, uint32(len(b.Idents)))
	for _, e := range b.Idents {
		putU32(&out, e.Offset)
		putU32(&out, uint32(len(e.Indices)))
		for _, idx := range e.Indices {
			putU32(&out, idx)
		}
	}

	return out.Bytes()
}
