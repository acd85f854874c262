// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package patchset

import "errors"

// Sentinel errors for patch set operations.
var (
	// ErrExists is returned by Add for a name already in the set.
	ErrExists = errors.New("patchset: patch already added")
	// ErrUnknownPatch is returned for a name that is not in the set.
	ErrUnknownPatch = errors.New("patchset: unknown patch")
	// ErrNoChanges is returned by Add for a patch without records; it can never be switched off.
	ErrNoChanges = errors.New("patchset: patch changes nothing")
	// ErrInconsistent is returned when the ROM matches neither state of a patch.
	// Toggle has already undone its write when it returns this error.
	ErrInconsistent = errors.New("patchset: rom matches neither patch state")
)
