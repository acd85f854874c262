// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

import "fmt"

// Method is the compression method stored in the high nibble of the first header byte.
type Method uint8

// Methods in tag order; the order is also the index of the decoder table.
const (
	Bare Method = iota
	LZ77
	Huffman
	RLE

	methodCount
)

const (
	// HeaderSize is the size of the common blob header.
	HeaderSize = 4
	// MaxSize is the largest size the 24-bit header field can hold.
	MaxSize = 0xFFFFFF
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Bare:
		return "bare"
	case LZ77:
		return "lz77"
	case Huffman:
		return "huffman"
	case RLE:
		return "rle"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// ParseMethod returns the method for a name as printed by Method.String.
func ParseMethod(name string) (Method, error) {
	for m := Bare; m < methodCount; m++ {
		if m.String() == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown method %q", ErrInvalidFormat, name)
}

// Header is the decoded 4-byte blob header.
type Header struct {
	Method Method
	// Width is the Huffman symbol width (4 or 8). It is the raw low nibble for other methods.
	Width int
	// Size is the decompressed size.
	Size int
}

// ParseHeader decodes the header at the start of src. It only validates the
// method nibble, so payloads are never touched for unknown methods.
func ParseHeader(src []byte) (Header, error) {
	if len(src) < HeaderSize {
		return Header{}, ErrTruncatedInput
	}

	h := Header{
		Method: Method(src[0] >> 4),
		Width:  int(src[0] & 0x0f),
		Size:   int(src[1]) | int(src[2])<<8 | int(src[3])<<16,
	}
	if h.Method >= methodCount {
		return Header{}, fmt.Errorf("%w: method nibble %#x", ErrInvalidFormat, src[0]>>4)
	}

	return h, nil
}

// appendHeader appends a blob header for method m with the given low nibble and size.
func appendHeader(dst []byte, m Method, low byte, size int) []byte {
	return append(dst,
		byte(m)<<4|low&0x0f,
		byte(size),
		byte(size>>8),
		byte(size>>16),
	)
}

// checkSize rejects inputs that do not fit the header size field.
func checkSize(src []byte) error {
	if len(src) > MaxSize {
		return ErrTooLarge
	}

	return nil
}
