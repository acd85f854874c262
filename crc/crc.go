// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

// Package crc computes the reflected CRC-32 (ISO-HDLC, polynomial 0xEDB88320)
// used by EPS patches: seed 0xFFFFFFFF, final XOR 0xFFFFFFFF.
package crc

import "hash/crc32"

// Table is the byte-wise lookup table for the IEEE polynomial.
var Table = crc32.MakeTable(crc32.IEEE)

// Checksum returns the CRC-32 of b.
func Checksum(b []byte) uint32 {
	return crc32.Checksum(b, Table)
}

// Update continues a finished checksum with the bytes in b, so that
// Update(Checksum(x), y) == Checksum(x+y). Start a running checksum from 0.
func Update(sum uint32, b []byte) uint32 {
	return crc32.Update(sum, Table, b)
}

// UpdateByte is Update for a single byte.
func UpdateByte(sum uint32, b byte) uint32 {
	c := ^sum
	c = Table[byte(c)^b] ^ (c >> 8)
	return ^c
}
