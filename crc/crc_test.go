package crc

import (
	"bytes"
	"testing"
)

func TestChecksum_KnownVectors(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0x00000000},
		{"a", 0xE8B7BE43},
		{"123456789", 0xCBF43926},
		{"The quick brown fox jumps over the lazy dog", 0x414FA339},
	}

	for _, tc := range tests {
		if got := Checksum([]byte(tc.in)); got != tc.want {
			t.Errorf("Checksum(%q) = %08x, want %08x", tc.in, got, tc.want)
		}
	}
}

func TestUpdate_Incremental(t *testing.T) {
	data := bytes.Repeat([]byte("gba rom patch "), 37)
	want := Checksum(data)

	var sum uint32
	for i := 0; i < len(data); i += 5 {
		sum = Update(sum, data[i:min(i+5, len(data))])
	}
	if sum != want {
		t.Fatalf("chunked Update = %08x, want %08x", sum, want)
	}

	sum = 0
	for _, b := range data {
		sum = UpdateByte(sum, b)
	}
	if sum != want {
		t.Fatalf("UpdateByte = %08x, want %08x", sum, want)
	}
}

func TestTable_FirstEntries(t *testing.T) {
	want := []uint32{0x00000000, 0x77073096, 0xEE0E612C, 0x990951BA}
	for i, w := range want {
		if Table[i] != w {
			t.Fatalf("Table[%d] = %08x, want %08x", i, Table[i], w)
		}
	}
}
