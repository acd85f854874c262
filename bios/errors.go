// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

import "errors"

// Sentinel errors for decompression and compression.
var (
	// ErrInvalidFormat is returned for an unknown method nibble or an unsupported Huffman width.
	ErrInvalidFormat = errors.New("bios: invalid format")
	// ErrCorruptData is returned when a back-reference or tree link points outside valid data.
	ErrCorruptData = errors.New("bios: corrupt data")
	// ErrTruncatedInput is returned when the payload ends before the declared size is produced.
	ErrTruncatedInput = errors.New("bios: truncated input")
	// ErrTreeOverflow is returned when a Huffman tree does not fit the serialized table.
	// Callers should pick another method.
	ErrTreeOverflow = errors.New("bios: huffman tree too large")
	// ErrBufferTooSmall is returned by DecompressInto when dst cannot hold the decoded data.
	ErrBufferTooSmall = errors.New("bios: destination buffer too small")
	// ErrTooLarge is returned when the input exceeds the 24-bit size field.
	ErrTooLarge = errors.New("bios: input exceeds 0xFFFFFF bytes")
	// ErrInputTooLarge is returned when DecompressFromReader reads more than MaxInputSize bytes.
	ErrInputTooLarge = errors.New("bios: input exceeds MaxInputSize")
)
