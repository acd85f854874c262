// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

// CompressOptions configures Compress and CompressSmallest.
type CompressOptions struct {
	// Lazy makes LZ77 defer a match by one byte when the next position has a longer one.
	// It affects the ratio only; the decoder is the same.
	Lazy bool
	// HuffmanWidth is the Huffman symbol width, 4 or 8 (0 = 8).
	HuffmanWidth int
}

// DefaultCompressOptions returns greedy LZ77 and 8-bit Huffman.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{HuffmanWidth: 8}
}

// DecompressOptions configures DecompressFromReader.
type DecompressOptions struct {
	// MaxInputSize limits how many bytes DecompressFromReader may read (0 = no limit).
	MaxInputSize int
}

// DefaultDecompressOptions returns options with no input limit.
func DefaultDecompressOptions() *DecompressOptions {
	return &DecompressOptions{}
}
