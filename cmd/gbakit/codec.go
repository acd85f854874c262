// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/woozymasta/gbakit/asset"
	"github.com/woozymasta/gbakit/bios"
	"github.com/woozymasta/gbakit/koeilz"
)

type ioArgs struct {
	Input  string `positional-arg-name:"input" required:"yes"`
	Output string `positional-arg-name:"output" required:"yes"`
}

type compressCommand struct {
	Method string `short:"m" long:"method" default:"smallest" choice:"smallest" choice:"bare" choice:"lz77" choice:"huffman" choice:"rle" description:"Compression method"`
	Lazy   bool   `long:"lazy" description:"Lazy LZ77 matching"`
	Width  int    `short:"w" long:"width" default:"8" description:"Huffman symbol width (4 or 8)"`
	Args   ioArgs `positional-args:"yes"`
}

func (c *compressCommand) Execute([]string) error {
	src, err := os.ReadFile(c.Args.Input)
	if err != nil {
		return err
	}

	opts := &bios.CompressOptions{Lazy: c.Lazy, HuffmanWidth: c.Width}

	var out []byte
	if c.Method == "smallest" {
		out, err = bios.CompressSmallest(src, opts)
	} else {
		m, perr := bios.ParseMethod(c.Method)
		if perr != nil {
			return perr
		}
		out, err = bios.Compress(m, src, opts)
	}
	if err != nil {
		return err
	}

	h, _ := bios.ParseHeader(out)
	log.WithFields(log.Fields{
		"method": h.Method,
		"in":     len(src),
		"out":    len(out),
	}).Info("compressed")

	return os.WriteFile(c.Args.Output, out, 0o644)
}

type decompressCommand struct {
	Offset int64  `short:"o" long:"offset" description:"Blob offset inside the input, e.g. a ROM address minus 0x08000000"`
	Args   ioArgs `positional-args:"yes"`
}

func (c *decompressCommand) Execute([]string) error {
	src, err := readAt(c.Args.Input, c.Offset)
	if err != nil {
		return err
	}

	out, err := bios.Decompress(src)
	if err != nil {
		return err
	}

	log.WithField("size", len(out)).Info("decompressed")
	return os.WriteFile(c.Args.Output, out, 0o644)
}

type unwrapCommand struct {
	Offset         int64  `short:"o" long:"offset" description:"Blob offset inside the input"`
	EmbeddedHeader bool   `long:"embedded-header" description:"Drop the sub-header embedded in single-layer LZ77 assets"`
	Args           ioArgs `positional-args:"yes"`
}

func (c *unwrapCommand) Execute([]string) error {
	src, err := readAt(c.Args.Input, c.Offset)
	if err != nil {
		return err
	}

	nested, err := asset.IsNested(src)
	if err != nil {
		return err
	}

	out, err := asset.Unwrap(src, &asset.UnwrapOptions{EmbeddedHeader: c.EmbeddedHeader})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"size": len(out), "nested": nested}).Info("unwrapped")
	return os.WriteFile(c.Args.Output, out, 0o644)
}

type koeiCompressCommand struct {
	Args ioArgs `positional-args:"yes"`
}

func (c *koeiCompressCommand) Execute([]string) error {
	src, err := os.ReadFile(c.Args.Input)
	if err != nil {
		return err
	}

	out := koeilz.Compress(src)
	log.WithFields(log.Fields{"in": len(src), "out": len(out)}).Info("compressed")
	return os.WriteFile(c.Args.Output, out, 0o644)
}

type koeiDecompressCommand struct {
	Offset  int64  `short:"o" long:"offset" description:"Stream offset inside the input"`
	MaxSize int    `long:"max-size" default:"16777215" description:"Largest output to produce"`
	Args    ioArgs `positional-args:"yes"`
}

func (c *koeiDecompressCommand) Execute([]string) error {
	src, err := readAt(c.Args.Input, c.Offset)
	if err != nil {
		return err
	}

	out, n, err := koeilz.DecompressN(src, &koeilz.DecompressOptions{MaxSize: c.MaxSize})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"size": len(out), "consumed": n}).Info("decompressed")
	return os.WriteFile(c.Args.Output, out, 0o644)
}

// readAt reads a file and returns the bytes from offset on.
func readAt(name string, offset int64) ([]byte, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset > int64(len(b)) {
		return nil, fmt.Errorf("offset %#x outside %s (%d bytes)", offset, name, len(b))
	}

	return b[offset:], nil
}
