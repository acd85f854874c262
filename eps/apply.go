// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package eps

import (
	"bytes"

	"github.com/woozymasta/gbakit/crc"
)

// padByte fills ROM space added by a patch, matching erased flash.
const padByte = 0xFF

// ROM is a caller-owned ROM image. Apply may grow it, so it is passed by pointer.
type ROM []byte

// Apply toggles patch on rom: every run is XORed in place and the resulting
// bytes are checked against the patch CRCs. The ROM is grown with 0xFF when the
// target size exceeds it.
//
// A malformed or corrupt patch returns an error before rom is touched. An
// Inconsistent verdict is not rolled back; applying the patch again undoes it.
func Apply(rom *ROM, patch []byte) (Verdict, error) {
	p, err := Parse(patch)
	if err != nil {
		return Inconsistent, err
	}

	if grow := p.TargetSize - len(*rom); grow > 0 {
		*rom = append(*rom, bytes.Repeat([]byte{padByte}, grow)...)
	}

	r := *rom
	var sum uint32
	for _, rec := range p.Records {
		run := r[rec.Offset:rec.End()]
		for i, x := range rec.XOR {
			run[i] ^= x
		}
		sum = crc.Update(sum, run)
	}

	return p.verdict(sum), nil
}

// Check reports the state of rom with respect to patch without modifying it.
// Bytes past the end of rom read as the padding Apply would add.
func Check(rom ROM, patch []byte) (Verdict, error) {
	p, err := Parse(patch)
	if err != nil {
		return Inconsistent, err
	}

	var sum uint32
	for _, rec := range p.Records {
		for i := rec.Offset; i < rec.End(); i++ {
			b := byte(padByte)
			if i < len(rom) {
				b = rom[i]
			}
			sum = crc.UpdateByte(sum, b)
		}
	}

	return p.verdict(sum), nil
}
