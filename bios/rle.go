// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

// RLE control byte bounds.
const (
	rleMinRun     = 3
	rleMaxRun     = 0x7f + rleMinRun // 130
	rleMaxLiteral = 0x7f + 1         // 128
	rleRunFlag    = 0x80
)

// CompressRLE encodes src with the BIOS run-length format.
//
// The parse is greedy: a run of 3..130 equal bytes becomes 0x80|(n-3) followed
// by the byte; anything else is a literal block of 1..128 bytes, ended early
// where the next 3-byte run starts.
func CompressRLE(src []byte) ([]byte, error) {
	if err := checkSize(src); err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(src)+len(src)/rleMaxLiteral+1)
	out = appendHeader(out, RLE, 0, len(src))

	n := len(src)
	for i := 0; i < n; {
		run := rleRunLength(src, i)
		if run >= rleMinRun {
			out = append(out, rleRunFlag|byte(run-rleMinRun), src[i])
			i += run
			continue
		}

		j := i + 1
		for j < n && j-i < rleMaxLiteral && rleRunLength(src, j) < rleMinRun {
			j++
		}

		out = append(out, byte(j-i-1))
		out = append(out, src[i:j]...)
		i = j
	}

	return out, nil
}

// rleRunLength counts equal bytes starting at i, capped at the longest encodable run.
func rleRunLength(src []byte, i int) int {
	n := 1
	for i+n < len(src) && n < rleMaxRun && src[i+n] == src[i] {
		n++
	}

	return n
}

// DecompressRLE decodes an RLE blob.
func DecompressRLE(src []byte) ([]byte, error) {
	return decompressMethod(src, RLE)
}

// decodeRLE expands control blocks into dst until it is full.
func decodeRLE(src, dst []byte) error {
	inPos := HeaderSize
	outPos := 0

	for outPos < len(dst) {
		if inPos >= len(src) {
			return ErrTruncatedInput
		}

		ctrl := src[inPos]
		inPos++

		if ctrl&rleRunFlag != 0 {
			n := min(int(ctrl&0x7f)+rleMinRun, len(dst)-outPos)
			if inPos >= len(src) {
				return ErrTruncatedInput
			}

			b := src[inPos]
			inPos++
			for i := 0; i < n; i++ {
				dst[outPos+i] = b
			}
			outPos += n
			continue
		}

		n := int(ctrl) + 1
		if inPos+n > len(src) {
			return ErrTruncatedInput
		}

		outPos += copy(dst[outPos:], src[inPos:inPos+n])
		inPos += n
	}

	return nil
}
