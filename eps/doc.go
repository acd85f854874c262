// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

/*
Package eps builds and applies EPS patches: togglable, self-verifying binary
diffs for ROM images.

Layout, integers little-endian:

	"EPS\x01" | description, NUL-terminated | VarInt target size
	| (VarInt skip | XOR run | 0x00)* | on_crc u32 | off_crc u32 | patch_crc u32

A run holds original^modified for consecutive differing bytes, so it never
contains 0x00. Each record advances the offset by skip + len(run) + 1. on_crc
and off_crc cover the run bytes of the modified and original image; patch_crc
covers everything before it.

Because XOR is its own inverse, applying a patch twice restores the ROM. Apply
reports which state it produced:

	rom := eps.ROM(data)
	v, err := eps.Apply(&rom, patch) // Applied
	v, err = eps.Apply(&rom, patch)  // Reverted
*/
package eps
