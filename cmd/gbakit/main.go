// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

// Command gbakit compresses and decompresses GBA assets and builds, applies
// and manages EPS patches.
package main

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
)

type globalOptions struct {
	Verbose []bool `short:"v" long:"verbose" description:"Verbose output, repeat for debug"`
}

var global globalOptions

func main() {
	parser := flags.NewParser(&global, flags.Default)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		setupLogging(len(global.Verbose))
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	register(parser)

	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) {
			if ferr.Type == flags.ErrHelp {
				return
			}
			os.Exit(2)
		}

		// the parser already printed the error
		os.Exit(1)
	}
}

func setupLogging(verbosity int) {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	switch {
	case verbosity >= 2:
		log.SetLevel(log.DebugLevel)
	case verbosity == 1:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}
}

func register(parser *flags.Parser) {
	commands := []struct {
		name, short, long string
		data              any
	}{
		{"compress", "Compress a file into a BIOS blob", "Compress a file with one BIOS method, or the smallest of all.", &compressCommand{}},
		{"decompress", "Decompress a BIOS blob", "Decompress a BIOS blob of any method.", &decompressCommand{}},
		{"unwrap", "Decompress an asset, peeling nested layers", "Decompress an asset and peel a second LZ77 layer under Huffman or RLE.", &unwrapCommand{}},
		{"koei-compress", "Compress a file as a Koei LZ stream", "Compress a file as a headerless Koei LZ stream.", &koeiCompressCommand{}},
		{"koei-decompress", "Decompress a Koei LZ stream", "Decompress a Koei LZ stream starting at an offset of the input.", &koeiDecompressCommand{}},
		{"build", "Build an EPS patch", "Build an EPS patch that turns the original image into the modified one.", &buildCommand{}},
		{"apply", "Toggle an EPS patch on a ROM", "Apply an EPS patch; applying it again reverts it.", &applyCommand{}},
		{"check", "Report the state of an EPS patch", "Report whether a patch is applied, reverted or inconsistent without writing.", &checkCommand{}},
		{"describe", "Print the description of an EPS patch", "Print the description stored in an EPS patch.", &describeCommand{}},
		{"patches", "Manage the patch set of a ROM", "Add, toggle and list the patches tracked in a JSON state file next to the ROM.", &patchesCommand{}},
	}

	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			log.Fatalf("register %s: %v", c.name, err)
		}
	}
}
