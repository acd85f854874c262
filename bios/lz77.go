// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

import "github.com/woozymasta/gbakit/internal/window"

// LZ77 format bounds.
const (
	lzMinMatch    = 3
	lzMaxMatch    = 0x0f + lzMinMatch // 18
	lzMaxDistance = 0x1000
	lzBlockSlots  = 8
)

// CompressLZ77 encodes src with the BIOS LZ77 format.
//
// Matches are chosen greedily (longest, nearest on ties) from the last 4096
// bytes. With lazy set, a match is deferred by one literal whenever the next
// position offers a longer one.
func CompressLZ77(src []byte, lazy bool) ([]byte, error) {
	if err := checkSize(src); err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(src)+len(src)/lzBlockSlots+1)
	out = appendHeader(out, LZ77, 0, len(src))

	finder := window.Acquire(src, lzMinMatch, lzMaxDistance)
	defer window.Release(finder)

	pos := 0
	for pos < len(src) {
		flagPos := len(out)
		out = append(out, 0)

		for slot := lzBlockSlots - 1; slot >= 0 && pos < len(src); slot-- {
			length, dist := finder.Find(pos, min(lzMaxMatch, len(src)-pos))
			if lazy && length >= lzMinMatch && length < lzMaxMatch && pos+1 < len(src) {
				next, _ := finder.Find(pos+1, min(lzMaxMatch, len(src)-pos-1))
				if next > length {
					length = 0
				}
			}

			if length < lzMinMatch {
				out = append(out, src[pos])
				pos++
				continue
			}

			d := dist - 1
			out[flagPos] |= 1 << slot
			out = append(out, byte((length-lzMinMatch)<<4|d>>8), byte(d))
			pos += length
		}
	}

	return out, nil
}

// DecompressLZ77 decodes an LZ77 blob.
func DecompressLZ77(src []byte) ([]byte, error) {
	return decompressMethod(src, LZ77)
}

// decodeLZ77 reads one flag byte per 8 slots, MSB first, and fills dst.
func decodeLZ77(src, dst []byte) error {
	inPos := HeaderSize
	outPos := 0

	for outPos < len(dst) {
		if inPos >= len(src) {
			return ErrTruncatedInput
		}

		flags := src[inPos]
		inPos++

		for i := 0; i < lzBlockSlots && outPos < len(dst); i, flags = i+1, flags<<1 {
			if flags&0x80 == 0 {
				if inPos >= len(src) {
					return ErrTruncatedInput
				}

				dst[outPos] = src[inPos]
				inPos++
				outPos++
				continue
			}

			if inPos+2 > len(src) {
				return ErrTruncatedInput
			}

			b0, b1 := int(src[inPos]), int(src[inPos+1])
			inPos += 2

			length := b0>>4 + lzMinMatch
			dist := ((b0&0x0f)<<8 | b1) + 1
			n, err := copyBackRef(dst, outPos, dist, length)
			if err != nil {
				return err
			}
			outPos += n
		}
	}

	return nil
}
