// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package koeilz

import "encoding/binary"

// bitReader keeps 16 bits of lookahead in buf and refills from the next
// little-endian word in the stream when ext runs dry.
type bitReader struct {
	src    []byte
	pos    int
	buf    uint16
	ext    uint16
	remain int
}

func (r *bitReader) read(n int) error {
	r.buf <<= n
	if r.remain >= n {
		r.remain -= n
		r.buf |= (r.ext >> r.remain) & uint16(bitMask[n])
		return nil
	}

	delta := n - r.remain
	r.buf |= (r.ext & uint16(bitMask[r.remain])) << delta
	if r.pos+2 > len(r.src) {
		return ErrTruncatedInput
	}

	r.ext = binary.LittleEndian.Uint16(r.src[r.pos:])
	r.pos += 2
	r.remain = 16 - delta
	r.buf |= (r.ext >> r.remain) & uint16(bitMask[delta])
	return nil
}

// readLength decodes a length class. ok is false at the sentinel.
func (r *bitReader) readLength() (v int, ok bool, err error) {
	b := r.buf
	switch {
	case b&0x8000 != 0:
		return 1, true, nil
	case b&0x4000 != 0:
		return int(b&0x6000) >> 13, true, r.read(2)
	case b&0x2000 != 0:
		return int(b&0x3800) >> 11, true, r.read(4)
	case b&0x1000 != 0:
		return int(b&0x1E00) >> 9, true, r.read(6)
	case b&0x800 != 0:
		return int(b&0xF80) >> 7, true, r.read(8)
	case b&0x400 != 0:
		return int(b&0x7E0) >> 5, true, r.read(10)
	case b&0x200 != 0:
		return int(b&0x3F8) >> 3, true, r.read(12)
	}

	v = int(b&0x1FC)>>2 + 0x80
	if v == sentinelLen {
		return 0, false, nil
	}

	return v, true, r.read(13)
}

// readDistance decodes a distance class. The top buffer bit still holds the
// last length bit and is ignored.
func (r *bitReader) readDistance() (int, error) {
	r.buf &^= 0x8000
	b := int(r.buf)

	var d, n int
	switch {
	case b <= 0x7FF:
		d, n = (b&0x600)>>9, 7
	case b <= 0xBFF:
		d, n = ((b&0x300)>>8)+0x4, 8
	case b <= 0x17FF:
		d, n = (((b-0xC00)&0xF80)>>7)+0x8, 9
	case b <= 0x2FFF:
		d, n = (((b-0x1800)&0x1FC0)>>6)+0x20, 10
	case b <= 0x3FFF:
		d, n = ((b&0xFFF)|0x1000)>>5, 11
	case b <= 0x4FFF:
		d, n = ((b&0xFFF)|0x1000)>>4, 12
	case b <= 0x5FFF:
		d, n = ((b&0xFFF)|0x1000)>>3, 13
	case b <= 0x6FFF:
		d, n = ((b&0xFFF)|0x1000)>>2, 14
	default:
		d, n = ((b&0xFFF)|0x1000)>>1, 15
	}

	return d, r.read(n)
}

// Decompress decodes a Koei LZ stream up to its sentinel. opts may be nil.
// Bytes after the sentinel slot are ignored.
func Decompress(src []byte, opts *DecompressOptions) ([]byte, error) {
	out, _, err := decompressCore(src, opts.maxSize())
	return out, err
}

// DecompressN decodes a Koei LZ stream and also returns the number of input
// bytes consumed, including the last prefetched code word. nRead is 0 on error.
func DecompressN(src []byte, opts *DecompressOptions) ([]byte, int, error) {
	return decompressCore(src, opts.maxSize())
}

func decompressCore(src []byte, maxSize int) ([]byte, int, error) {
	r := bitReader{src: src}
	if err := r.read(16); err != nil {
		return nil, 0, err
	}

	out := make([]byte, 0, min(4*len(src), maxSize))
	for {
		if r.pos >= len(src) {
			return nil, 0, ErrTruncatedInput
		}

		ctrl := src[r.pos]
		r.pos++

		for i := 0; i < blockSlots; i, ctrl = i+1, ctrl<<1 {
			if ctrl&0x80 != 0 {
				if r.pos >= len(src) {
					return nil, 0, ErrTruncatedInput
				}
				if len(out) >= maxSize {
					return nil, 0, ErrTooLarge
				}

				out = append(out, src[r.pos])
				r.pos++
				continue
			}

			v, ok, err := r.readLength()
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				return out, r.pos, nil
			}

			d, err := r.readDistance()
			if err != nil {
				return nil, 0, err
			}

			start := len(out) - d - 1
			if start < 0 {
				return nil, 0, ErrCorruptData
			}
			if len(out)+v+1 > maxSize {
				return nil, 0, ErrTooLarge
			}

			// byte by byte: the source may overlap the bytes being written
			for j := 0; j <= v; j++ {
				out = append(out, out[start+j])
			}
		}
	}
}
