// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

// Package asset decodes compressed game assets, peeling the second LZ77 layer
// that some asset families carry inside a Huffman or RLE blob.
package asset

import (
	"fmt"

	"github.com/woozymasta/gbakit/bios"
)

// recompressedFlag marks outer methods whose payload may hold another blob (Huffman, RLE).
const recompressedFlag = 0x20

// UnwrapOptions configures Unwrap.
type UnwrapOptions struct {
	// EmbeddedHeader drops the 4-byte sub-header that some asset families keep
	// at the start of a single-layer LZ77 payload.
	EmbeddedHeader bool
}

// DefaultUnwrapOptions returns options for assets without an embedded sub-header.
func DefaultUnwrapOptions() *UnwrapOptions {
	return &UnwrapOptions{}
}

// Unwrap decodes blob and, when the decoded payload is itself an LZ77 blob
// under a Huffman or RLE outer layer, decodes it again. The inner result's
// first 4 bytes are a sub-header and are dropped. opts may be nil.
func Unwrap(blob []byte, opts *UnwrapOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultUnwrapOptions()
	}

	outer, payload, err := decodeOuter(blob)
	if err != nil {
		return nil, err
	}

	if nested(blob, payload) {
		inner, err := bios.DecompressLZ77(payload)
		if err != nil {
			return nil, fmt.Errorf("asset: inner lz77 layer: %w", err)
		}

		return dropSubHeader(inner)
	}

	if opts.EmbeddedHeader && outer == bios.LZ77 {
		return dropSubHeader(payload)
	}

	return payload, nil
}

// IsNested reports whether Unwrap would decode blob twice. It decodes the outer layer once.
func IsNested(blob []byte) (bool, error) {
	_, payload, err := decodeOuter(blob)
	if err != nil {
		return false, err
	}

	return nested(blob, payload), nil
}

func decodeOuter(blob []byte) (bios.Method, []byte, error) {
	h, err := bios.ParseHeader(blob)
	if err != nil {
		return 0, nil, fmt.Errorf("asset: %w", err)
	}

	payload, err := bios.Decompress(blob)
	if err != nil {
		return 0, nil, fmt.Errorf("asset: outer %s layer: %w", h.Method, err)
	}

	return h.Method, payload, nil
}

// nested reports whether an outer layer flagged as recompressed holds an LZ77 blob.
func nested(blob, payload []byte) bool {
	if blob[0]&recompressedFlag == 0 || len(payload) < bios.HeaderSize {
		return false
	}

	return bios.Method(payload[0]>>4) == bios.LZ77
}

func dropSubHeader(b []byte) ([]byte, error) {
	if len(b) < bios.HeaderSize {
		return nil, fmt.Errorf("asset: %d-byte payload has no sub-header: %w", len(b), bios.ErrTruncatedInput)
	}

	return b[bios.HeaderSize:], nil
}
