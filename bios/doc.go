// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

/*
Package bios implements the four compression formats understood by the GBA BIOS
decompression calls: Bare (no compression), LZ77, Huffman and RLE.

Every blob starts with the same 4-byte header. The high nibble of byte 0 selects
the method (0x00 Bare, 0x10 LZ77, 0x20 Huffman, 0x30 RLE), and for Huffman the
low nibble holds the symbol width (4 or 8 bits). Bytes 1–3 are the decompressed
size, 24-bit little-endian.

# Decompress

The header is self-describing, so decoding needs no size hint:

	out, err := bios.Decompress(blob)

Size-query/fill with caller-managed memory:

	n, err := bios.DecompressedSize(blob)
	dst := make([]byte, n)
	n, err = bios.DecompressInto(blob, dst)

# Compress

	out, err := bios.Compress(bios.LZ77, data, nil)
	out, err := bios.Compress(bios.Huffman, data, &bios.CompressOptions{HuffmanWidth: 4})

Huffman can fail with ErrTreeOverflow when the tree does not fit the format;
CompressSmallest tries every method and falls back to Bare, which never fails
for inputs up to MaxSize bytes.
*/
package bios
