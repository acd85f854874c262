// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package eps

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/woozymasta/gbakit/crc"
	"github.com/woozymasta/gbakit/varint"
)

const (
	// Magic opens every patch.
	Magic = "EPS\x01"

	trailerSize = 12
	// minPatchSize is magic, empty description, one-byte size and the trailer.
	minPatchSize = len(Magic) + 1 + 1 + trailerSize
)

// Record is one XOR run. XOR aliases the patch buffer.
type Record struct {
	Offset int
	XOR    []byte
}

// End returns the offset just past the run.
func (r Record) End() int {
	return r.Offset + len(r.XOR)
}

// Patch is the parsed form of an EPS patch.
type Patch struct {
	Description string
	TargetSize  int
	Records     []Record
	OnCRC       uint32
	OffCRC      uint32
	PatchCRC    uint32
}

// Parse verifies the magic and patch CRC and decodes every record. Records are
// checked to lie inside the target size, so Apply never fails half way.
func Parse(patch []byte) (*Patch, error) {
	p, end, err := open(patch)
	if err != nil {
		return nil, err
	}

	pos := len(Magic)
	nul := bytes.IndexByte(patch[pos:end], 0)
	if nul < 0 {
		return nil, fmt.Errorf("%w: unterminated description", ErrTruncatedInput)
	}
	p.Description = string(patch[pos : pos+nul])
	pos += nul + 1

	size, n, err := decodeVarint(patch[pos:end], "target size")
	if err != nil {
		return nil, err
	}
	p.TargetSize = size
	pos += n

	offset := 0
	for pos < end {
		skip, n, err := decodeVarint(patch[pos:end], "record skip")
		if err != nil {
			return nil, err
		}
		pos += n
		offset += skip

		run := bytes.IndexByte(patch[pos:end], 0)
		if run < 0 {
			return nil, fmt.Errorf("%w: unterminated run at offset %#x", ErrTruncatedInput, offset)
		}
		if offset+run > p.TargetSize {
			return nil, fmt.Errorf("%w: run %#x+%d past target size %#x", ErrCorruptData, offset, run, p.TargetSize)
		}

		if run > 0 {
			p.Records = append(p.Records, Record{Offset: offset, XOR: patch[pos : pos+run]})
		}
		pos += run + 1
		offset += run + 1
	}

	return p, nil
}

// open checks the magic and patch CRC and decodes the trailer. It returns the
// offset of the trailer.
func open(patch []byte) (*Patch, int, error) {
	if len(patch) < minPatchSize || string(patch[:len(Magic)]) != Magic {
		return nil, 0, ErrNotAPatch
	}

	end := len(patch) - trailerSize
	p := &Patch{
		OnCRC:    binary.LittleEndian.Uint32(patch[end:]),
		OffCRC:   binary.LittleEndian.Uint32(patch[end+4:]),
		PatchCRC: binary.LittleEndian.Uint32(patch[end+8:]),
	}
	if sum := crc.Checksum(patch[:end+8]); sum != p.PatchCRC {
		return nil, 0, fmt.Errorf("%w: patch crc %08x, computed %08x", ErrCorruptData, p.PatchCRC, sum)
	}

	return p, end, nil
}

func decodeVarint(b []byte, field string) (int, int, error) {
	v, n, err := varint.Decode(b)
	switch {
	case errors.Is(err, varint.ErrTruncatedInput):
		return 0, 0, fmt.Errorf("%w: %s", ErrTruncatedInput, field)
	case err != nil:
		return 0, 0, fmt.Errorf("%w: %s: %w", ErrCorruptData, field, err)
	}

	return int(v), n, nil
}

// verdict classifies the CRC of the patched bytes.
func (p *Patch) verdict(sum uint32) Verdict {
	switch sum {
	case p.OnCRC:
		return Applied
	case p.OffCRC:
		return Reverted
	default:
		return Inconsistent
	}
}

// Describe returns the description of a patch. Only the magic and the patch
// CRC are checked; a CRC failure is reported as ErrNotAPatch. The record table
// is not decoded, and a description without terminator runs up to the trailer.
func Describe(patch []byte) (string, error) {
	_, end, err := open(patch)
	if errors.Is(err, ErrNotAPatch) {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotAPatch, err)
	}

	desc := patch[len(Magic):end]
	if nul := bytes.IndexByte(desc, 0); nul >= 0 {
		desc = desc[:nul]
	}

	return string(desc), nil
}
