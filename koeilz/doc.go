// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

/*
Package koeilz implements the headerless LZ77 variant used by Koei GBA titles.

A stream interleaves three things in byte order: 16-bit little-endian words
holding a variable-length code bitstream (read MSB first), control bytes with
one bit per slot (MSB first, set = literal) and literal bytes. A match is a
length class followed by a distance class; the length class 0xFF is the end of
stream sentinel, so there is no size field.

	cmp := koeilz.Compress(data)
	out, err := koeilz.Decompress(cmp, nil)

DecompressN also returns the number of input bytes consumed, for streams packed
back to back.
*/
package koeilz
