// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package koeilz

import "errors"

// Sentinel errors for decompression.
var (
	// ErrTruncatedInput is returned when the stream ends before the sentinel.
	ErrTruncatedInput = errors.New("koeilz: truncated input")
	// ErrCorruptData is returned when a back-reference points before the start of the output.
	ErrCorruptData = errors.New("koeilz: corrupt data")
	// ErrTooLarge is returned when the output would exceed DecompressOptions.MaxSize.
	ErrTooLarge = errors.New("koeilz: output exceeds MaxSize")
)
