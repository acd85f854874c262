// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package koeilz

// Stream bounds. Length and distance are stored minus one.
const (
	minMatch    = 2
	maxMatch    = 0xFF
	maxDistance = 0xFFF
	blockSlots  = 8

	// sentinel is the 14-bit length code that decodes to the reserved class 0xFF.
	sentinel     = 0x7F
	sentinelBits = 14
	sentinelLen  = 0xFF
)

var bitMask = [17]uint32{
	0, 1, 3, 7, 0xF, 0x1F, 0x3F, 0x7F, 0xFF,
	0x1FF, 0x3FF, 0x7FF, 0xFFF, 0x1FFF, 0x3FFF, 0x7FFF, 0xFFFF,
}

// lengthCode returns the code and bit count for a length value v = length-1.
// v must be in 1..0xFE.
func lengthCode(v int) (uint32, int) {
	code := uint32(v) //nolint:gosec // G115: v < 0xFF
	switch {
	case v == 1:
		return code, 1
	case v <= 0x3:
		return code, 3
	case v <= 0x7:
		return code, 5
	case v <= 0xF:
		return code, 7
	case v <= 0x1F:
		return code, 9
	case v <= 0x3F:
		return code, 11
	case v <= 0x7F:
		return code, 13
	default:
		return code & 0x7F, 14
	}
}

// distanceCode returns the code and bit count for a distance value d = distance-1.
// d must be in 0..0xFFE.
func distanceCode(d int) (uint32, int) {
	code := uint32(d) //nolint:gosec // G115: d < 0xFFF
	switch {
	case d <= 0x3:
		return code, 6
	case d <= 0x7:
		return 0x8 | (code - 0x4), 7
	case d <= 0x1F:
		return 0x18 + (code - 0x8), 8
	case d <= 0x7F:
		return 0x60 + (code - 0x20), 9
	case d <= 0xFF:
		return 0x180 | (code & 0x7F), 10
	case d <= 0x1FF:
		return 0x400 | (code & 0xFF), 11
	case d <= 0x3FF:
		return 0xA00 | (code & 0x1FF), 12
	case d <= 0x7FF:
		return 0x1800 | (code & 0x3FF), 13
	default:
		return 0x3800 | (code & 0x7FF), 14
	}
}

// matchCost returns the bits a match costs, or 0 when it cannot be encoded.
func matchCost(length, dist int) int {
	v, d := length-1, dist-1
	if v < 1 || v > maxMatch-1 || d < 0 || d >= maxDistance {
		return 0
	}

	_, lb := lengthCode(v)
	_, db := distanceCode(d)
	return lb + db
}
