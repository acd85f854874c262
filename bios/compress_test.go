package bios

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

func testInputSet() []struct {
	name string
	data []byte
} {
	rng := rand.New(rand.NewSource(1))
	noise := make([]byte, 3000)
	rng.Read(noise)

	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "short-text", data: []byte("hello world, gba test")},
		{name: "odd-length", data: []byte("abcde")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 12000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
		{name: "noise", data: noise},
	}
}

func TestCompressDecompress_RoundTripAcrossMethods(t *testing.T) {
	configs := []struct {
		method Method
		opts   *CompressOptions
	}{
		{Bare, nil},
		{LZ77, nil},
		{LZ77, &CompressOptions{Lazy: true}},
		{Huffman, &CompressOptions{HuffmanWidth: 4}},
		{Huffman, &CompressOptions{HuffmanWidth: 8}},
		{RLE, nil},
	}

	for _, in := range testInputSet() {
		for _, cfg := range configs {
			name := fmt.Sprintf("%s/%s", in.name, cfg.method)
			if cfg.opts != nil {
				name = fmt.Sprintf("%s/lazy-%t/width-%d", name, cfg.opts.Lazy, cfg.opts.HuffmanWidth)
			}

			t.Run(name, func(t *testing.T) {
				cmp, err := Compress(cfg.method, in.data, cfg.opts)
				if errors.Is(err, ErrTreeOverflow) {
					t.Skip("tree does not fit the table for this input")
				}
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}

				h, err := ParseHeader(cmp)
				if err != nil {
					t.Fatalf("ParseHeader failed: %v", err)
				}
				if h.Method != cfg.method || h.Size != len(in.data) {
					t.Fatalf("header mismatch: %+v", h)
				}

				out, err := Decompress(cmp)
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if !bytes.Equal(out, in.data) {
					t.Fatalf("round-trip mismatch: got=%d want=%d", len(out), len(in.data))
				}

				outReader, err := DecompressFromReader(bytes.NewReader(cmp), nil)
				if err != nil {
					t.Fatalf("DecompressFromReader failed: %v", err)
				}
				if !bytes.Equal(outReader, in.data) {
					t.Fatalf("reader round-trip mismatch: got=%d want=%d", len(outReader), len(in.data))
				}
			})
		}
	}
}

func TestCompressRLE_KnownVector(t *testing.T) {
	got, err := CompressRLE([]byte("AAAAAAABCD"))
	if err != nil {
		t.Fatalf("CompressRLE failed: %v", err)
	}

	want := []byte{0x30, 0x0A, 0x00, 0x00, 0x84, 0x41, 0x02, 0x42, 0x43, 0x44}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

func TestCompressRLE_LongRunSplits(t *testing.T) {
	got, err := CompressRLE(bytes.Repeat([]byte{7}, 131))
	if err != nil {
		t.Fatalf("CompressRLE failed: %v", err)
	}

	// 130-byte run, then a single literal
	want := []byte{0x30, 0x83, 0x00, 0x00, 0xFF, 0x07, 0x00, 0x07}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

func TestCompressLZ77_KnownVector(t *testing.T) {
	got, err := CompressLZ77([]byte("ABCABC"), false)
	if err != nil {
		t.Fatalf("CompressLZ77 failed: %v", err)
	}

	want := []byte{0x10, 0x06, 0x00, 0x00, 0x10, 0x41, 0x42, 0x43, 0x00, 0x02}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x want % x", got, want)
	}
}

func TestDecompressLZ77_OverlappingCopy(t *testing.T) {
	// literal 'x', then a match of 18 at distance 1
	blob := []byte{0x10, 0x13, 0x00, 0x00, 0x40, 'x', 0xF0, 0x00}
	out, err := Decompress(blob)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(out, bytes.Repeat([]byte("x"), 19)) {
		t.Fatalf("got %q", out)
	}
}

func TestDecompressLZ77_CopyCutAtDeclaredSize(t *testing.T) {
	blob := []byte{0x10, 0x05, 0x00, 0x00, 0x40, 'x', 0xF0, 0x00}
	out, err := Decompress(blob)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(out, []byte("xxxxx")) {
		t.Fatalf("got %q", out)
	}
}

func TestCompress_DefaultOptions(t *testing.T) {
	data := bytes.Repeat([]byte("ABCDEF123456"), 64)

	def, err := Compress(Huffman, data, nil)
	if err != nil {
		t.Fatalf("Compress default failed: %v", err)
	}
	if def[0] != 0x28 {
		t.Fatalf("default huffman tag %#x, want 0x28", def[0])
	}

	zero, err := Compress(Huffman, data, &CompressOptions{})
	if err != nil {
		t.Fatalf("Compress zero options failed: %v", err)
	}
	if !bytes.Equal(def, zero) {
		t.Fatal("zero HuffmanWidth must behave like 8")
	}
}

func TestCompressSmallest(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	noise := make([]byte, 4096)
	rng.Read(noise)

	for _, in := range []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "run", data: bytes.Repeat([]byte{0x11}, 4000)},
		{name: "noise", data: noise},
		{name: "text", data: bytes.Repeat([]byte("small gba text "), 100)},
	} {
		t.Run(in.name, func(t *testing.T) {
			best, err := CompressSmallest(in.data, nil)
			if err != nil {
				t.Fatalf("CompressSmallest failed: %v", err)
			}

			for m := Bare; m < methodCount; m++ {
				cmp, err := Compress(m, in.data, nil)
				if err != nil {
					continue
				}
				if len(cmp) < len(best) {
					t.Fatalf("%s produced %d bytes, smaller than %d", m, len(cmp), len(best))
				}
			}

			out, err := Decompress(best)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(out, in.data) {
				t.Fatal("round-trip mismatch")
			}
		})
	}
}

func TestCompress_TooLarge(t *testing.T) {
	big := make([]byte, MaxSize+1)
	for m := Bare; m < methodCount; m++ {
		if _, err := Compress(m, big, nil); !errors.Is(err, ErrTooLarge) {
			t.Fatalf("%s: expected ErrTooLarge, got %v", m, err)
		}
	}
}

func TestCompress_UnknownMethod(t *testing.T) {
	if _, err := Compress(Method(7), []byte("x"), nil); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	for m := Bare; m < methodCount; m++ {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseMethod(%q) = %v, %v", m.String(), got, err)
		}
	}

	if _, err := ParseMethod("lzss"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func FuzzCompressDecompressRoundTrip(f *testing.F) {
	f.Add([]byte(""), uint8(0))
	f.Add([]byte("hello world"), uint8(1))
	f.Add(bytes.Repeat([]byte{0x00}, 1024), uint8(2))
	f.Add(bytes.Repeat([]byte("abc"), 500), uint8(3))

	f.Fuzz(func(t *testing.T, data []byte, sel uint8) {
		if len(data) > 1<<16 {
			data = data[:1<<16]
		}

		m := Method(sel % uint8(methodCount))
		opts := &CompressOptions{Lazy: sel&0x10 != 0, HuffmanWidth: 8}
		if sel&0x20 != 0 {
			opts.HuffmanWidth = 4
		}

		cmp, err := Compress(m, data, opts)
		if errors.Is(err, ErrTreeOverflow) {
			return
		}
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}

		out, err := Decompress(cmp)
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("round-trip mismatch: got=%d want=%d", len(out), len(data))
		}
	})
}
