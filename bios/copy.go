// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

// copyBackRef copies length bytes from dst[outputPos-dist:] to dst[outputPos:].
// If distance < length, source and destination overlap and the copy must run
// byte by byte so repeated bytes come out right; the built-in copy does not
// handle overlap where src precedes dst. A copy past the end of dst is cut at
// the end, matching the declared size.
func copyBackRef(dst []byte, outputPos, dist, length int) (int, error) {
	mPos := outputPos - dist
	if dist <= 0 || mPos < 0 {
		return 0, ErrCorruptData
	}

	length = min(length, len(dst)-outputPos)
	if dist >= length {
		copy(dst[outputPos:outputPos+length], dst[mPos:mPos+length])
		return length, nil
	}

	for i := 0; i < length; i++ {
		dst[outputPos+i] = dst[mPos+i]
	}

	return length, nil
}
