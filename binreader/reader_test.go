package binreader

import "testing"

func TestUnpackU32LittleEndian(t *testing.T) {
	r := New([]byte{0x01, 0x00, 0x00, 0x00})
	got, err := r.UnpackU32(LittleEndian)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestReadStringConsumesNul(t *testing.T) {
	r := New([]byte("hello\x00world"))
	s, err := r.ReadString(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "hello" {
		t.Fatalf("got %q, want %q", s, "hello")
	}
	if r.Cursor() != 6 {
		t.Fatalf("cursor = %d, want 6 (NUL consumed)", r.Cursor())
	}
}

func TestReadNOutOfRange(t *testing.T) {
	r := New([]byte{0x01, 0x02})
	if _, err := r.ReadN(3); err == nil {
		t.Fatalf("expected OutOfRangeError, got nil")
	} else if _, ok := err.(*OutOfRangeError); !ok {
		t.Fatalf("expected *OutOfRangeError, got %T", err)
	}
}

func TestLookupDoesNotAdvance(t *testing.T) {
	r := New([]byte{0xAA, 0xBB})
	b, err := r.LookupN(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b[0] != 0xAA {
		t.Fatalf("got %#x, want 0xAA", b[0])
	}
	if r.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", r.Cursor())
	}
}

func TestReplaceInPlace(t *testing.T) {
	r := New([]byte{0x00, 0x00, 0x00, 0x00})
	if err := r.Replace(1, []byte{0xFF, 0xFF}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0x00, 0xFF, 0xFF, 0x00}
	for i, b := range want {
		if r.buf[i] != b {
			t.Fatalf("byte %d = %#x, want %#x", i, r.buf[i], b)
		}
	}
}

func TestInsertWidensAndDropsDiscardedBytes(t *testing.T) {
	// one placeholder byte at index 1 widened to a 4-byte value
	r := New([]byte{0x10, 0x00, 0x20})
	if err := r.Insert(1, []byte{0x01, 0x02, 0x03, 0x04}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{0x10, 0x01, 0x02, 0x03, 0x04, 0x20}
	if len(r.buf) != len(want) {
		t.Fatalf("len = %d, want %d", len(r.buf), len(want))
	}
	for i, b := range want {
		if r.buf[i] != b {
			t.Fatalf("byte %d = %#x, want %#x", i, r.buf[i], b)
		}
	}
}
