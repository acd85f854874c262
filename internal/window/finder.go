// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

// Package window implements the hash-chain match finder shared by the LZ77
// family encoders. It indexes every earlier position of the input by the hash
// of its first MinMatch bytes and walks the chain nearest-first, so the search
// is exhaustive inside the window.
package window

const (
	hashBits = 16
	hashSize = 1 << hashBits
	hashMask = hashSize - 1

	// chainSize must be at least twice the largest window so that chain links
	// of positions still inside the window are never overwritten.
	chainSize = 1 << 13
	chainMask = chainSize - 1

	// MaxDistance is the largest window any encoder may request.
	MaxDistance = chainSize / 2
)

// Finder holds the hash heads and chain links for one encoder pass.
type Finder struct {
	src      []byte
	minMatch int
	maxDist  int
	inserted int

	head  [hashSize]int32  // newest position+1 for each hash (0 means empty)
	chain [chainSize]int32 // previous position+1 with the same hash
}

// reset prepares the finder for a new input.
func (f *Finder) reset(src []byte, minMatch, maxDist int) {
	f.src = src
	f.minMatch = minMatch
	f.maxDist = maxDist
	f.inserted = 0
	clear(f.head[:])
}

// key returns the hash of the minMatch bytes at pos.
func (f *Finder) key(pos int) int {
	s := f.src[pos:]
	if f.minMatch == 2 {
		return int(s[0])<<8 | int(s[1])
	}

	v := uint32(s[0])<<16 | uint32(s[1])<<8 | uint32(s[2])
	return int((v*2654435761)>>(32-hashBits)) & hashMask
}

// advance indexes every position below to.
func (f *Finder) advance(to int) {
	last := len(f.src) - f.minMatch
	for ; f.inserted < to; f.inserted++ {
		pos := f.inserted
		if pos > last {
			continue
		}

		k := f.key(pos)
		f.chain[pos&chainMask] = f.head[k]
		f.head[k] = int32(pos + 1) //nolint:gosec // G115: positions bounded by 24-bit sizes
	}
}

// Find returns the longest match for the bytes at pos, at most maxLen long.
// Among equally long candidates the nearest wins. It returns (0, 0) when no
// candidate of at least MinMatch bytes exists.
func (f *Finder) Find(pos, maxLen int) (length, dist int) {
	f.advance(pos)
	if maxLen < f.minMatch || pos+f.minMatch > len(f.src) {
		return 0, 0
	}

	src := f.src
	for cand := int(f.head[f.key(pos)]) - 1; cand >= 0; {
		d := pos - cand
		if d > f.maxDist {
			break
		}

		n := 0
		for n < maxLen && src[cand+n] == src[pos+n] {
			n++
		}

		if n > length {
			length, dist = n, d
			if n == maxLen {
				break
			}
		}

		next := int(f.chain[cand&chainMask]) - 1
		if next >= cand {
			break
		}
		cand = next
	}

	if length < f.minMatch {
		return 0, 0
	}

	return length, dist
}
