package dso

import "testing"

func TestStringTableSuffixLookup(t *testing.T) {
	// "$a\0hello\0" -> entries at 0 ("$a") and 3 ("hello")
	tbl := NewStringTable([]byte("$a\x00hello\x00"))

	got, err := tbl.Get(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}

	// offset + k inside "hello" returns the suffix starting at offset+k
	for k := 0; k < len("hello"); k++ {
		got, err := tbl.Get(3 + k)
		if err != nil {
			t.Fatalf("Get(%d): unexpected error: %v", 3+k, err)
		}
		if got != "hello"[k:] {
			t.Fatalf("Get(%d) = %q, want %q", 3+k, got, "hello"[k:])
		}
	}
}

func TestStringTableOutOfRangeIsError(t *testing.T) {
	tbl := NewStringTable([]byte("abc\x00"))
	if _, err := tbl.Get(100); err == nil {
		t.Fatalf("expected error for out-of-range offset")
	}
}

func TestEnsurePrefixedIsIdempotent(t *testing.T) {
	tbl := NewStringTable([]byte("a\x00"))
	v1, err := tbl.EnsurePrefixed(0, '%')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1 != "%a" {
		t.Fatalf("got %q, want %q", v1, "%a")
	}
	v2, err := tbl.EnsurePrefixed(0, '%')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2 != "%a" {
		t.Fatalf("second call changed value: got %q", v2)
	}
}

func TestEnsurePlaceholderInsertsSynthetic(t *testing.T) {
	tbl := NewStringTable([]byte("a\x00"))
	got := tbl.EnsurePlaceholder(50)
	want := "%unused_var50"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	// idempotent: the offset now resolves without inserting again
	got2, err := tbl.Get(50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got2 != want {
		t.Fatalf("Get(50) = %q, want %q", got2, want)
	}
}
