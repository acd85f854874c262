// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package window

import "sync"

// finderPool recycles finders; their tables are large enough to be worth it.
var finderPool = sync.Pool{
	New: func() any {
		return &Finder{}
	},
}

// Acquire returns a finder over src for matches of at least minMatch (2 or 3)
// bytes no further than maxDist back.
func Acquire(src []byte, minMatch, maxDist int) *Finder {
	f := finderPool.Get().(*Finder)
	f.reset(src, minMatch, min(maxDist, MaxDistance))
	return f
}

// Release returns a finder to the pool.
func Release(f *Finder) {
	if f == nil {
		return
	}

	f.src = nil
	finderPool.Put(f)
}
