// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

import (
	"fmt"
	"io"
)

// decoders is indexed by Method; each fills dst, which already has the declared size.
var decoders = [methodCount]func(src, dst []byte) error{
	Bare:    decodeBare,
	LZ77:    decodeLZ77,
	Huffman: decodeHuffman,
	RLE:     decodeRLE,
}

// Decompress decodes any BIOS blob, dispatching on the header method.
// The result has exactly the size declared in the header.
func Decompress(src []byte) ([]byte, error) {
	h, err := ParseHeader(src)
	if err != nil {
		return nil, err
	}

	return decompressMethod(src, h.Method)
}

// DecompressedSize returns the size declared in the header without decoding the payload.
func DecompressedSize(src []byte) (int, error) {
	h, err := ParseHeader(src)
	if err != nil {
		return 0, err
	}

	return h.Size, nil
}

// DecompressInto decodes src into dst and returns the number of bytes written.
// dst must hold at least DecompressedSize(src) bytes.
func DecompressInto(src, dst []byte) (int, error) {
	h, err := ParseHeader(src)
	if err != nil {
		return 0, err
	}
	if len(dst) < h.Size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrBufferTooSmall, h.Size, len(dst))
	}
	if err := checkWidth(h); err != nil {
		return 0, err
	}

	if err := decoders[h.Method](src, dst[:h.Size]); err != nil {
		return 0, err
	}

	return h.Size, nil
}

// DecompressFromReader reads the full stream then calls Decompress. No decoding logic of its own.
// If opts.MaxInputSize > 0 it reads at most one byte more and returns ErrInputTooLarge on excess.
func DecompressFromReader(r io.Reader, opts *DecompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultDecompressOptions()
	}

	if opts.MaxInputSize > 0 {
		r = io.LimitReader(r, int64(opts.MaxInputSize)+1)
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if opts.MaxInputSize > 0 && len(src) > opts.MaxInputSize {
		return nil, ErrInputTooLarge
	}

	return Decompress(src)
}

// decompressMethod decodes src after checking that its header names method m.
func decompressMethod(src []byte, m Method) ([]byte, error) {
	h, err := ParseHeader(src)
	if err != nil {
		return nil, err
	}
	if h.Method != m {
		return nil, fmt.Errorf("%w: header method %s, want %s", ErrInvalidFormat, h.Method, m)
	}
	if err := checkWidth(h); err != nil {
		return nil, err
	}

	dst := make([]byte, h.Size)
	if err := decoders[m](src, dst); err != nil {
		return nil, err
	}

	return dst, nil
}

// checkWidth rejects Huffman headers whose symbol width is not 4 or 8 before any allocation.
func checkWidth(h Header) error {
	if h.Method == Huffman && h.Width != 4 && h.Width != 8 {
		return fmt.Errorf("%w: huffman width %d", ErrInvalidFormat, h.Width)
	}

	return nil
}
