// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package eps

import "fmt"

// Verdict is the state a ROM is in with respect to a patch.
type Verdict int

const (
	// Inconsistent means the patched bytes match neither image.
	Inconsistent Verdict = iota
	// Applied means the patched bytes match the modified image (ON).
	Applied
	// Reverted means the patched bytes match the original image (OFF).
	Reverted
)

// String returns the verdict name.
func (v Verdict) String() string {
	switch v {
	case Inconsistent:
		return "inconsistent"
	case Applied:
		return "applied"
	case Reverted:
		return "reverted"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Enabled reports whether the verdict means the patch is on.
func (v Verdict) Enabled() bool {
	return v == Applied
}
