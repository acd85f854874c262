// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package bios

import (
	"encoding/binary"
	"fmt"
)

// Huffman table bounds.
const (
	huffLeafCount  = 256
	huffNodeCount  = 2*huffLeafCount - 1
	huffNoChild    = -1
	huffMaxCounter = 0x80 // node offsets are 6 bits; the counter holds offset<<1
	huffMaxCodeLen = 32
	huffOffsetMask = 0x3f
	huffLeftLeaf   = 0x80
	huffRightLeaf  = 0x40
)

// huffNode is one arena slot. Leaves live at their symbol index, internal
// nodes from huffLeafCount upward in creation order.
type huffNode struct {
	freq        uint32
	left, right int16
}

// huffTree is the arena plus the index of the next free internal slot.
type huffTree struct {
	nodes [huffNodeCount]huffNode
	next  int
}

func (t *huffTree) isLeaf(i int16) bool {
	return int(i) < huffLeafCount
}

// siftDown restores the min-heap order of heap[l:r+1]. Equal frequencies are
// never swapped, which fixes the merge order for equal weights.
func (t *huffTree) siftDown(heap []int16, l, r int) {
	p, c := l, 2*l+1
	for c <= r {
		if c+1 <= r && t.nodes[heap[c]].freq > t.nodes[heap[c+1]].freq {
			c++
		}
		if t.nodes[heap[p]].freq <= t.nodes[heap[c]].freq {
			return
		}

		heap[p], heap[c] = heap[c], heap[p]
		p, c = c, 2*c+1
	}
}

// buildHuffTree counts symbols of the given width and merges the two lightest
// open nodes until one root is left. It returns the root index.
func buildHuffTree(t *huffTree, src []byte, width int) int16 {
	t.next = huffLeafCount
	n := 1 << width

	var hist [huffLeafCount]uint32
	for _, b := range src {
		hist[b]++
	}

	if width == 4 {
		var folded [16]uint32
		for i, f := range hist {
			folded[i>>4] += f
			folded[i&0x0f] += f
		}
		copy(hist[:], folded[:])
		clear(hist[16:])
	}

	heap := make([]int16, n)
	for i := 0; i < n; i++ {
		t.nodes[i] = huffNode{freq: hist[i], left: huffNoChild, right: huffNoChild}
		heap[i] = int16(i) //nolint:gosec // G115: i < 256
	}

	for i := n/2 - 1; i >= 0; i-- {
		t.siftDown(heap, i, n-1)
	}

	// unused symbols surface first; drop them
	for n > 0 && t.nodes[heap[0]].freq == 0 {
		n--
		heap[0] = heap[n]
		t.siftDown(heap, 0, n-1)
	}

	// the format needs a root with two children, so pad with unused symbols
	switch n {
	case 0:
		heap = append(heap[:0], 0, 1)
		n = 2
	case 1:
		filler := int16(0)
		if heap[0] == 0 {
			filler = 1
		}
		heap = append(heap[:0], filler, heap[0])
		n = 2
	}

	for {
		i := heap[0]
		n--
		heap[0] = heap[n]
		t.siftDown(heap, 0, n-1)
		if n == 0 {
			return i
		}

		j := heap[0]
		k := int16(t.next) //nolint:gosec // G115: at most 255 internal nodes
		t.next++
		t.nodes[k] = huffNode{
			freq:  t.nodes[i].freq + t.nodes[j].freq,
			left:  j,
			right: i,
		}

		heap[0] = k
		t.siftDown(heap, 0, n-1)
	}
}

// serialize appends the tree table: a size byte, then nodes in breadth-first
// order. An internal node stores the offset of its child pair plus two
// leaf flags; a leaf stores its symbol.
func (t *huffTree) serialize(dst []byte, root int16) ([]byte, error) {
	internal := t.next - huffLeafCount
	dst = append(dst, byte(internal))

	queue := make([]int16, 1, 2*internal+1)
	queue[0] = root

	// counter tracks (next free slot - current slot - 1); offset = counter>>1
	counter := 0
	for qh := 0; qh < len(queue); qh++ {
		i := queue[qh]
		nd := t.nodes[i]
		if t.isLeaf(i) {
			dst = append(dst, byte(i))
			counter--
			continue
		}

		if counter >= huffMaxCounter {
			return nil, fmt.Errorf("%w: node offset %#x exceeds %#x", ErrTreeOverflow, counter>>1, huffOffsetMask)
		}

		b := byte(counter >> 1)
		if t.isLeaf(nd.left) {
			b |= huffLeftLeaf
		}
		if t.isLeaf(nd.right) {
			b |= huffRightLeaf
		}

		dst = append(dst, b)
		counter++
		queue = append(queue, nd.left, nd.right)
	}

	return dst, nil
}

// codeTable derives the MSB-first code and length of every leaf: left is 0, right is 1.
func (t *huffTree) codeTable(root int16) (codes [huffLeafCount]uint32, lens [huffLeafCount]uint8, err error) {
	type frame struct {
		node  int16
		code  uint32
		depth int
	}

	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := t.nodes[f.node]
		if t.isLeaf(f.node) {
			if f.depth > huffMaxCodeLen {
				return codes, lens, fmt.Errorf("%w: code length %d exceeds %d bits", ErrTreeOverflow, f.depth, huffMaxCodeLen)
			}

			codes[f.node] = f.code
			lens[f.node] = uint8(f.depth) //nolint:gosec // G115: depth <= 32
			continue
		}

		stack = append(stack,
			frame{node: nd.right, code: f.code<<1 | 1, depth: f.depth + 1},
			frame{node: nd.left, code: f.code << 1, depth: f.depth + 1},
		)
	}

	return codes, lens, nil
}

// CompressHuffman encodes src with the BIOS Huffman format using 4- or 8-bit
// symbols. It returns ErrTreeOverflow when the tree cannot be serialized;
// callers should then use another method.
func CompressHuffman(src []byte, width int) ([]byte, error) {
	if width != 4 && width != 8 {
		return nil, fmt.Errorf("%w: huffman width %d", ErrInvalidFormat, width)
	}
	if err := checkSize(src); err != nil {
		return nil, err
	}

	tree := &huffTree{}
	root := buildHuffTree(tree, src, width)

	out := make([]byte, 0, HeaderSize+2*huffLeafCount+len(src)+4)
	out = appendHeader(out, Huffman, byte(width), len(src))

	out, err := tree.serialize(out, root)
	if err != nil {
		return nil, err
	}

	codes, lens, err := tree.codeTable(root)
	if err != nil {
		return nil, err
	}

	mask := byte(1<<width - 1)
	var word [4]byte
	var v uint32
	free := 32 // unused low bits of v

	for _, b := range src {
		for shift := 0; shift < 8; shift += width {
			sym := b >> shift & mask
			code, n := codes[sym], int(lens[sym])

			if free < n {
				binary.LittleEndian.PutUint32(word[:], v|code>>(n-free))
				out = append(out, word[:]...)
				free += 32 - n
				v = code << free
				continue
			}

			free -= n
			v |= code << free
		}
	}

	binary.LittleEndian.PutUint32(word[:], v)
	return append(out, word[:]...), nil
}

// DecompressHuffman decodes a Huffman blob.
func DecompressHuffman(src []byte) ([]byte, error) {
	return decompressMethod(src, Huffman)
}

// decodeHuffman walks the tree for every bit of each 32-bit word, MSB first,
// and packs 32/width symbols per output word, first symbol lowest.
func decodeHuffman(src, dst []byte) error {
	width := int(src[0] & 0x0f)
	if width != 4 && width != 8 {
		return fmt.Errorf("%w: huffman width %d", ErrInvalidFormat, width)
	}
	if len(dst) == 0 {
		return nil
	}
	if len(src) <= HeaderSize {
		return ErrTruncatedInput
	}

	const root = HeaderSize + 1
	treeEnd := HeaderSize + (int(src[HeaderSize])+1)*2
	if treeEnd > len(src) {
		return ErrTruncatedInput
	}

	perWord := 32 / width
	symMask := uint32(1)<<width - 1

	var acc uint32
	count := 0
	outPos := 0
	inPos := treeEnd
	node := root

	for {
		if inPos+4 > len(src) {
			// the last word may end early when the size is not a multiple of 4
			if count*width >= (len(dst)-outPos)*8 {
				putWord(dst, outPos, acc>>(32-count*width))
				return nil
			}

			return ErrTruncatedInput
		}

		v := binary.LittleEndian.Uint32(src[inPos:])
		inPos += 4

		for j := 0; j < 32; j++ {
			bit := int(v >> 31)
			v <<= 1

			ctrl := src[node]
			leaf := (ctrl<<bit)&huffLeftLeaf != 0
			node = node&^1 + (int(ctrl&huffOffsetMask)+1)*2 + bit
			if node >= treeEnd {
				return ErrCorruptData
			}
			if !leaf {
				continue
			}

			acc = acc>>width | (uint32(src[node])&symMask)<<(32-width)
			node = root
			count++
			if count < perWord {
				continue
			}

			putWord(dst, outPos, acc)
			outPos += 4
			count = 0
			if outPos >= len(dst) {
				return nil
			}
		}
	}
}

// putWord stores w little-endian at dst[pos:], cut at the end of dst.
func putWord(dst []byte, pos int, w uint32) {
	for i := 0; i < 4 && pos+i < len(dst); i++ {
		dst[pos+i] = byte(w >> (8 * i))
	}
}
