package dso_test

import (
	"testing"

	"github.com/misiektw/dso2cs/binreader"
	"github.com/misiektw/dso2cs/dso"
	"github.com/misiektw/dso2cs/internal/fixture"
)

// TestParseEmptyScript covers spec.md §8 scenario 1: version 41, every
// table empty, code is a single RETURN (opcode 11, no value) followed by
// the 0xCDCD end sentinel.
func TestParseEmptyScript(t *testing.T) {
	b := &fixture.Builder{
		Code: []byte{
			11,                           // RETURN
			0xFF, 0xCD, 0xCD, 0x00, 0x00, // extended code: 0x0000CDCD (EndSentinel)
		},
		CodeCount: 2,
	}
	f, err := dso.Parse(binreader.New(b.Build()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Version != 41 {
		t.Fatalf("version = %d, want 41", f.Version)
	}
	if f.ByteCode.CodeCount() != 2 {
		t.Fatalf("code count = %d, want 2", f.ByteCode.CodeCount())
	}
}

func TestParseRejectsUnsupportedVersion(t *testing.T) {
	var raw []byte
	raw = append(raw, 99, 0, 0, 0) // version = 99, little-endian
	_, err := dso.Parse(binreader.New(raw))
	if err == nil {
		t.Fatalf("expected UnsupportedVersionError")
	}
	if _, ok := err.(*dso.UnsupportedVersionError); !ok {
		t.Fatalf("got %T, want *dso.UnsupportedVersionError", err)
	}
}

func TestParseFailsOnTrailingBytes(t *testing.T) {
	b := &fixture.Builder{
		Code:      []byte{11},
		CodeCount: 1,
	}
	raw := append(b.Build(), 0xAA, 0xBB) // trailing junk past the ident table
	_, err := dso.Parse(binreader.New(raw))
	if err == nil {
		t.Fatalf("expected ParsingError for unconsumed trailing bytes")
	}
	if _, ok := err.(*dso.ParsingError); !ok {
		t.Fatalf("got %T, want *dso.ParsingError", err)
	}
}

// TestParsePatchesIdentTable covers the string-patching invariants of
// spec.md §8: every patched location held 0x00 before patching, and the
// byte code grows by 3 bytes per patched location (1 -> 4).
func TestParsePatchesIdentTable(t *testing.T) {
	b := &fixture.Builder{
		GlobalStrings: []byte("a\x00"),
		Code: []byte{
			34, 0x00, // SETCURVAR opcode, then a placeholder string-offset code
			11, // RETURN
		},
		CodeCount: 3,
		Idents: []fixture.IdentEntry{
			{Offset: 0, Indices: []uint32{1}},
		},
	}
	before := len(b.Build())
	f, err := dso.Parse(binreader.New(b.Build()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the patched code stream itself grows by 3 bytes (1 -> 4) independent
	// of the rest of the file, which the patcher never touches.
	rawCodeLenBefore := 3 // opcode(1) + placeholder(1) + RETURN(1)
	wantCodeLen := rawCodeLenBefore + 3
	if f.ByteCode.ByteLength() != wantCodeLen {
		t.Fatalf("patched byte length = %d, want %d", f.ByteCode.ByteLength(), wantCodeLen)
	}
	if before == 0 {
		t.Fatal("fixture produced no bytes")
	}

	idx := f.ByteCode.IndexTable()
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] {
			t.Fatalf("index table not strictly increasing at %d: %v", i, idx)
		}
	}
	for _, off := range idx {
		if off >= f.ByteCode.ByteLength() {
			t.Fatalf("index table entry %d out of range (byte length %d)", off, f.ByteCode.ByteLength())
		}
	}
}
