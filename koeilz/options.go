// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package koeilz

// DefaultMaxSize bounds decoded output when no limit is given. It matches the
// 24-bit size field of BIOS blobs.
const DefaultMaxSize = 0xFFFFFF

// DecompressOptions configures decompression.
type DecompressOptions struct {
	// MaxSize is the largest output the decoder may produce (0 = DefaultMaxSize).
	MaxSize int
}

// DefaultDecompressOptions returns options with the default output limit.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{MaxSize: DefaultMaxSize}
}

func (o *DecompressOptions) maxSize() int {
	if o == nil || o.MaxSize <= 0 {
		return DefaultMaxSize
	}

	return o.MaxSize
}
