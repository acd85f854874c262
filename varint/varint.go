// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

// Package varint implements the biased variable-length unsigned integer used
// by EPS patches.
//
// A value is split into 7-bit little-endian groups. The last group has the high
// bit set. After every non-terminal group the remaining value is decremented by
// one, so every integer has exactly one encoding:
//
//	0     -> 80
//	127   -> ff
//	128   -> 00 80
//	200   -> 48 80
//	16511 -> 7f ff
package varint

import "errors"

// MaxLen is the maximum encoded length of a uint32.
const MaxLen = 5

var (
	// ErrTruncatedInput is returned when the input ends before a terminal group.
	ErrTruncatedInput = errors.New("varint: truncated input")
	// ErrOverflow is returned when the decoded value does not fit in 32 bits.
	ErrOverflow = errors.New("varint: value overflows uint32")
)

// Append appends the encoding of x to dst and returns the extended slice.
func Append(dst []byte, x uint32) []byte {
	for {
		b := byte(x & 0x7f)
		x >>= 7
		if x == 0 {
			return append(dst, b|0x80)
		}

		x--
		dst = append(dst, b)
	}
}

// Encode returns the encoding of x.
func Encode(x uint32) []byte {
	return Append(make([]byte, 0, MaxLen), x)
}

// Len returns the number of bytes Encode(x) produces.
func Len(x uint32) int {
	n := 1
	for x >>= 7; x != 0; x >>= 7 {
		x--
		n++
	}

	return n
}

// Decode reads one value from the start of b and returns it together with the
// number of bytes consumed.
func Decode(b []byte) (uint32, int, error) {
	var v uint64
	for i, shift := 0, uint(0); i < len(b); i, shift = i+1, shift+7 {
		if shift > 28 {
			return 0, 0, ErrOverflow
		}

		c := b[i]
		if c&0x80 != 0 {
			v += uint64(c&0x7f) << shift
			if v > 0xffffffff {
				return 0, 0, ErrOverflow
			}

			return uint32(v), i + 1, nil
		}

		// non-terminal group: add back the bias
		v += uint64(c|0x80) << shift
	}

	return 0, 0, ErrTruncatedInput
}
