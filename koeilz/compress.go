// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package koeilz

import (
	"encoding/binary"

	"github.com/woozymasta/gbakit/internal/window"
)

// bitWriter packs codes MSB first into 16-bit slots reserved in the output.
// A slot is reserved one word ahead of the one being filled, at the byte
// position where the decoder will fetch it.
type bitWriter struct {
	out      []byte
	curr     int // slot receiving the next full word
	next     int // slot reserved for the word after it
	remain   int // free bits left in the newest word
	buf      uint32
	count    int
	reserved bool // the last write reserved a slot
}

func (w *bitWriter) writeBits(bits uint32, n int) {
	w.buf |= (bits & bitMask[n]) << (32 - w.count - n)
	w.count += n
	if w.count >= 16 {
		binary.LittleEndian.PutUint16(w.out[w.curr:], uint16(w.buf>>16)) //nolint:gosec // G115: high half
		w.buf <<= 16
		w.count -= 16
	}

	w.reserved = w.remain < n
	if w.reserved {
		w.curr = w.next
		w.next = len(w.out)
		w.out = append(w.out, 0, 0)
	}
	w.remain = (w.remain - n + 16) & 15
}

// encoder emits literal and match slots with one control byte per 8 slots.
type encoder struct {
	w       bitWriter
	ctrl    byte
	ctrlPos int
	slots   int
}

func newEncoder(sizeHint int) *encoder {
	// slot 0 comes first, then the first control byte
	out := make([]byte, 3, 3+sizeHint+sizeHint/blockSlots+4)
	return &encoder{
		w:       bitWriter{out: out, curr: -1, next: 0},
		ctrlPos: 2,
	}
}

func (e *encoder) literal(b byte) {
	e.ctrl = e.ctrl<<1 | 1
	e.w.out = append(e.w.out, b)
	e.endSlot()
}

func (e *encoder) match(length, dist int) {
	e.ctrl <<= 1
	e.w.writeBits(lengthCode(length - 1))
	e.w.writeBits(distanceCode(dist - 1))
	e.endSlot()
}

func (e *encoder) endSlot() {
	e.slots++
	if e.slots < blockSlots {
		return
	}

	e.w.out[e.ctrlPos] = e.ctrl
	e.ctrlPos = len(e.w.out)
	e.w.out = append(e.w.out, 0)
	e.slots = 0
}

// finish writes the sentinel slot and returns the stream.
func (e *encoder) finish() []byte {
	e.w.writeBits(sentinel, sentinelBits)

	e.ctrl <<= 1
	e.slots++
	e.ctrl <<= blockSlots - e.slots
	e.w.out[e.ctrlPos] = e.ctrl

	if e.w.count > 0 {
		binary.LittleEndian.PutUint16(e.w.out[e.w.curr:], uint16(e.w.buf>>16)) //nolint:gosec // G115: high half
	}

	// the decoder stops at the sentinel and never fetches the slot it reserved
	if e.w.reserved {
		e.w.out = e.w.out[:len(e.w.out)-2]
	}

	return e.w.out
}

// Compress encodes src as a Koei LZ stream.
//
// Matches are chosen greedily (longest, nearest on ties) from the previous 4095
// bytes, up to 255 bytes long, and kept only when their code is shorter than
// the literals they replace.
func Compress(src []byte) []byte {
	e := newEncoder(len(src))

	finder := window.Acquire(src, minMatch, maxDistance)
	defer window.Release(finder)

	for pos := 0; pos < len(src); {
		length, dist := finder.Find(pos, min(maxMatch, len(src)-pos))
		if cost := matchCost(length, dist); cost > 0 && cost < 8*length {
			e.match(length, dist)
			pos += length
			continue
		}

		e.literal(src[pos])
		pos++
	}

	return e.finish()
}
