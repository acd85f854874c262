// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

import (
	"errors"
	"fmt"
)

// Compress encodes src with method m. opts may be nil (greedy LZ77, 8-bit Huffman).
func Compress(m Method, src []byte, opts *CompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}

	switch m {
	case Bare:
		return CompressBare(src)
	case LZ77:
		return CompressLZ77(src, opts.Lazy)
	case Huffman:
		width := opts.HuffmanWidth
		if width == 0 {
			width = 8
		}
		return CompressHuffman(src, width)
	case RLE:
		return CompressRLE(src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, m)
	}
}

// CompressSmallest runs every method and returns the shortest blob. Ties go to
// the lower method tag. A Huffman tree overflow only drops that candidate.
func CompressSmallest(src []byte, opts *CompressOptions) ([]byte, error) {
	var best []byte
	for m := Bare; m < methodCount; m++ {
		out, err := Compress(m, src, opts)
		if errors.Is(err, ErrTreeOverflow) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if best == nil || len(out) < len(best) {
			best = out
		}
	}

	return best, nil
}
