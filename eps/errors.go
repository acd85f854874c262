// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package eps

import "errors"

// Sentinel errors for patch parsing and building.
var (
	// ErrNotAPatch is returned when the magic is missing or the patch is too short to be one.
	// Describe also returns it for a patch CRC mismatch.
	ErrNotAPatch = errors.New("eps: not an EPS patch")
	// ErrCorruptData is returned when the patch CRC does not match or a record points past the target size.
	ErrCorruptData = errors.New("eps: corrupt patch")
	// ErrTruncatedInput is returned when a field runs into the trailing CRCs.
	ErrTruncatedInput = errors.New("eps: truncated patch")
	// ErrInvalidDescription is returned by Build for a description containing NUL.
	ErrInvalidDescription = errors.New("eps: description contains NUL")
	// ErrTooLarge is returned by Build when the modified image does not fit a 32-bit size.
	ErrTooLarge = errors.New("eps: image exceeds 4 GiB")
)
