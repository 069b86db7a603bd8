package format

import (
	"errors"
	"strings"
	"testing"
)

func TestDirEntryRoundTrip(t *testing.T) {
	e := DirEntry{
		Name:        "FileHeader",
		Type:        TypeStream,
		Color:       ColorBlack,
		Left:        NoStream,
		Right:       3,
		Child:       NoStream,
		StateBits:   5,
		Created:     1,
		Modified:    2,
		StartSector: 11,
		Size:        1234,
	}
	e.CLSID[0] = 0xAA

	b := make([]byte, DirEntrySize)
	if err := PutDirEntry(b, e); err != nil {
		t.Fatalf("PutDirEntry: %v", err)
	}
	if got := b[DirNameLenOffset]; got != 22 {
		t.Fatalf("name length = %d, want 22", got)
	}
	got, err := ParseDirEntry(b, MajorVersion3)
	if err != nil {
		t.Fatalf("ParseDirEntry: %v", err)
	}
	if got != e {
		t.Fatalf("entry mismatch:\n got %+v\nwant %+v", got, e)
	}
}

func TestDirEntryV3SizeMask(t *testing.T) {
	b := make([]byte, DirEntrySize)
	e := DirEntry{Name: "x", Type: TypeStream, Size: 0x1_0000_0010}
	if err := PutDirEntry(b, e); err != nil {
		t.Fatal(err)
	}
	v3, _ := ParseDirEntry(b, MajorVersion3)
	v4, _ := ParseDirEntry(b, MajorVersion4)
	if v3.Size != 0x10 {
		t.Fatalf("v3 size = %#x", v3.Size)
	}
	if v4.Size != 0x1_0000_0010 {
		t.Fatalf("v4 size = %#x", v4.Size)
	}
}

func TestUnusedEntry(t *testing.T) {
	b := make([]byte, DirEntrySize)
	for i := range b {
		b[i] = 0xEE
	}
	if err := PutDirEntry(b, DirEntry{}); err != nil {
		t.Fatal(err)
	}
	got, _ := ParseDirEntry(b, MajorVersion3)
	if got.Type != TypeUnused || got.Left != NoStream || got.Right != NoStream || got.Child != NoStream {
		t.Fatalf("unexpected unused entry %+v", got)
	}
	if got.Name != "" || got.Size != 0 {
		t.Fatalf("unused entry not cleared: %+v", got)
	}
}

func TestNameLimits(t *testing.T) {
	if _, err := EncodeName(strings.Repeat("a", 31)); err != nil {
		t.Fatalf("31 units should fit: %v", err)
	}
	if _, err := EncodeName(strings.Repeat("a", 32)); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}
	name, err := DecodeName([]byte{'A', 0, 'b', 0, 0, 0, 'z', 0})
	if err != nil || name != "Ab" {
		t.Fatalf("DecodeName = %q, %v", name, err)
	}
}

func TestCompareNames(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"Storage", "FileHeader", -1},
		{"FileHeader", "Storage", 1},
		{"abc", "ABC", 0},
		{"abc", "abd", -1},
		{"Additional", "FileHeader", -1},
	}
	for _, c := range cases {
		if got := CompareNames(c.a, c.b); got != c.want {
			t.Errorf("CompareNames(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestFiletime(t *testing.T) {
	if !FiletimeToTime(0).IsZero() {
		t.Fatal("zero filetime should map to zero time")
	}
	if TimeToFiletime(FiletimeToTime(0)) != 0 {
		t.Fatal("zero time should map to zero filetime")
	}
	const v = uint64(132000000000000000)
	if got := TimeToFiletime(FiletimeToTime(v)); got != v {
		t.Fatalf("round trip = %d, want %d", got, v)
	}
}
