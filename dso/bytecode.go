package dso

import (
	"encoding/binary"

	"github.com/misiektw/dso2cs/binreader"
)

// extensionByte is the control byte (0xFF) that, both in the packed code
// stream and in an immediate argument, means "the real value follows in the
// next 2 or 4 bytes" (see spec.md §4.3).
const extensionByte = 0xFF

// EndSentinel is the v41 end-of-stream opcode that terminates decoding
// gracefully rather than as an error.
const EndSentinel = 0xCDCD

// ByteCode is the patched code stream plus a code-index <-> byte-offset
// map. It owns the post-patch buffer (spec.md §5: "ByteCode takes
// ownership of a post-patch byte buffer").
type ByteCode struct {
	buf              []byte
	indexTable       []int // index_table[i] = byte offset of the i-th code
	extWidth         int   // 2 (pre-v41) or 4 (v41) bytes after the 0xFF extension marker
	patchedLocations map[int]bool

	r *binreader.Reader // decode-time cursor over buf
}

// ParseByteCode reads codeCount variable-width codes from r, concatenating
// any 0xFF-extended code into a single logical entry, and records each
// code's starting byte offset in the index table.
func ParseByteCode(r *binreader.Reader, codeCount uint32, extWidth int) (*ByteCode, error) {
	bc := &ByteCode{extWidth: extWidth, patchedLocations: map[int]bool{}}
	for i := uint32(0); i < codeCount; i++ {
		start := len(bc.buf)
		b, err := r.UnpackU8()
		if err != nil {
			return nil, err
		}
		bc.buf = append(bc.buf, b)
		if b == extensionByte {
			ext, err := r.ReadN(extWidth)
			if err != nil {
				return nil, err
			}
			bc.buf = append(bc.buf, ext...)
		}
		bc.indexTable = append(bc.indexTable, start)
	}
	bc.r = binreader.New(bc.buf)
	return bc, nil
}

// CodeCount returns the number of logical codes in the stream.
func (bc *ByteCode) CodeCount() int { return len(bc.indexTable) }

// ByteLength returns the size, in bytes, of the patched stream.
func (bc *ByteCode) ByteLength() int { return len(bc.buf) }

// IndexTable exposes the code-index -> byte-offset map for invariant
// checks and table dumps.
func (bc *ByteCode) IndexTable() []int { return append([]int(nil), bc.indexTable...) }

// Bytes returns the patched byte stream, read-only.
func (bc *ByteCode) Bytes() []byte { return bc.buf }

// ResetCursor rewinds the decode cursor to the start of the stream.
func (bc *ByteCode) ResetCursor() { bc.r.SeekTo(0) }

// Cursor returns the current decode-time byte offset (the instruction
// pointer).
func (bc *ByteCode) Cursor() int { return bc.r.Cursor() }

// SeekTo moves the decode cursor to an absolute byte offset, used when a
// jump target is resolved to a byte address.
func (bc *ByteCode) SeekTo(offset int) { bc.r.SeekTo(offset) }

// ByteOffsetOf translates a code index into the byte offset stored in the
// index table.
func (bc *ByteCode) ByteOffsetOf(codeIndex int) (int, error) {
	if codeIndex < 0 || codeIndex >= len(bc.indexTable) {
		return 0, &CodeIndexRangeError{Index: codeIndex, Count: len(bc.indexTable)}
	}
	return bc.indexTable[codeIndex], nil
}

// AtEnd reports whether the decode cursor has consumed the whole stream.
func (bc *ByteCode) AtEnd() bool { return bc.r.Cursor() >= len(bc.buf) }

// GetCode fetches one logical opcode: a single byte, or (after the 0xFF
// extension marker) a little-endian value spanning extWidth bytes.
func (bc *ByteCode) GetCode() (uint32, error) {
	b, err := bc.r.UnpackU8()
	if err != nil {
		return 0, err
	}
	if b != extensionByte {
		return uint32(b), nil
	}
	return bc.readExtended()
}

func (bc *ByteCode) readExtended() (uint32, error) {
	if bc.extWidth == 2 {
		v, err := bc.r.UnpackU16(binreader.LittleEndian)
		return uint32(v), err
	}
	return bc.r.UnpackU32(binreader.LittleEndian)
}

// LookupCode previews the next opcode byte without advancing the cursor.
func (bc *ByteCode) LookupCode() (byte, error) { return bc.r.LookupU8() }

// PeekCode previews the next full logical code, including any 0xFF
// extension, without disturbing the decode cursor. Used to recognize the
// compiler's implicit trailing RETURN, which always sits immediately
// before the end-of-stream sentinel.
func (bc *ByteCode) PeekCode() (uint32, error) {
	save := bc.Cursor()
	v, err := bc.GetCode()
	bc.SeekTo(save)
	return v, err
}

// GetUint reads an immediate unsigned integer argument: a single byte,
// or (after a 0xFF marker) a little-endian u32.
func (bc *ByteCode) GetUint() (uint32, error) {
	b, err := bc.r.LookupU8()
	if err != nil {
		return 0, err
	}
	if b != extensionByte {
		v, err := bc.r.UnpackU8()
		return uint32(v), err
	}
	bc.r.UnpackU8() // consume the marker
	return bc.r.UnpackU32(binreader.LittleEndian)
}

// GetStringOffset reads a string-table offset. If the current byte was
// previously patched by the ident table, it is always a raw little-endian
// u32 (the patcher overwrote the 0xFF marker convention with the resolved
// offset directly). Otherwise it follows the same u8/extended-u32 shape as
// GetUint.
func (bc *ByteCode) GetStringOffset() (uint32, error) {
	loc := bc.r.Cursor()
	if bc.patchedLocations[loc] {
		return bc.r.UnpackU32(binreader.LittleEndian)
	}
	return bc.GetUint()
}

// GetFloatOffset reads an immediate float-table offset, following the same
// rule as GetUint (floats are never ident-patched).
func (bc *ByteCode) GetFloatOffset() (uint32, error) { return bc.GetUint() }

// PatchStrings applies every ident-table relocation into the code stream,
// widening each previously-zero placeholder byte into a 4-byte string
// offset, per spec.md §4.3.
func (bc *ByteCode) PatchStrings(ident *IdentTable, globalStrings *StringTable) error {
	for _, entry := range ident.entries {
		globalStrings.EnsurePlaceholder(entry.Offset)
		for _, codeIndex := range entry.Locations {
			if err := bc.patchOne(codeIndex, entry.Offset); err != nil {
				return err
			}
		}
	}
	return nil
}

func (bc *ByteCode) patchOne(codeIndex int, offsetValue int) error {
	loc, err := bc.ByteOffsetOf(codeIndex)
	if err != nil {
		return err
	}
	if bc.buf[loc] != 0x00 {
		return &PatchTargetError{CodeIndex: codeIndex, ByteGot: bc.buf[loc]}
	}

	offBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(offBytes, uint32(offsetValue))

	widened := make([]byte, 0, len(bc.buf)-1+4)
	widened = append(widened, bc.buf[:loc]...)
	widened = append(widened, offBytes...)
	widened = append(widened, bc.buf[loc+1:]...)
	bc.buf = widened

	bc.patchedLocations[loc] = true

	for j := codeIndex + 1; j < len(bc.indexTable); j++ {
		bc.indexTable[j] += 3
	}
	shifted := make(map[int]bool, len(bc.patchedLocations))
	for p := range bc.patchedLocations {
		if p > loc {
			shifted[p+3] = true
		} else {
			shifted[p] = true
		}
	}
	bc.patchedLocations = shifted

	bc.r = binreader.New(bc.buf)
	return nil
}
