// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package eps

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/woozymasta/gbakit/crc"
	"github.com/woozymasta/gbakit/varint"
)

// Build returns a patch that turns original into modified and back.
//
// The target size is len(modified); original bytes past its end compare as
// 0xFF, the padding Apply adds when it grows a ROM. When modified is shorter
// than original the tail of the ROM is left as it is.
func Build(original, modified []byte, description string) ([]byte, error) {
	if strings.IndexByte(description, 0) >= 0 {
		return nil, ErrInvalidDescription
	}
	if uint64(len(modified)) > math.MaxUint32 {
		return nil, ErrTooLarge
	}

	at := func(i int) byte {
		if i < len(original) {
			return original[i]
		}
		return padByte
	}

	out := make([]byte, 0, minPatchSize+len(description)+64)
	out = append(out, Magic...)
	out = append(out, description...)
	out = append(out, 0)
	out = varint.Append(out, uint32(len(modified))) //nolint:gosec // G115: checked above

	var onCRC, offCRC uint32
	last := 0
	for i := 0; i < len(modified); {
		if at(i) == modified[i] {
			i++
			continue
		}

		out = varint.Append(out, uint32(i-last)) //nolint:gosec // G115: bounded by len(modified)
		for ; i < len(modified) && at(i) != modified[i]; i++ {
			onCRC = crc.UpdateByte(onCRC, modified[i])
			offCRC = crc.UpdateByte(offCRC, at(i))
			out = append(out, at(i)^modified[i])
		}

		// the terminator stands for the next (equal) byte
		out = append(out, 0)
		i++
		last = i
	}

	out = binary.LittleEndian.AppendUint32(out, onCRC)
	out = binary.LittleEndian.AppendUint32(out, offCRC)
	return binary.LittleEndian.AppendUint32(out, crc.Checksum(out)), nil
}
