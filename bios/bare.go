// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

// CompressBare stores src verbatim behind a Bare header.
func CompressBare(src []byte) ([]byte, error) {
	if err := checkSize(src); err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(src))
	out = appendHeader(out, Bare, 0, len(src))
	return append(out, src...), nil
}

// DecompressBare decodes a Bare blob.
func DecompressBare(src []byte) ([]byte, error) {
	return decompressMethod(src, Bare)
}

// decodeBare copies the payload into dst, which has the declared size.
func decodeBare(src, dst []byte) error {
	payload := src[HeaderSize:]
	if len(payload) < len(dst) {
		return ErrTruncatedInput
	}

	copy(dst, payload)
	return nil
}
