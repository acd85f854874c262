// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/woozymasta/gbakit/eps"
	"github.com/woozymasta/gbakit/patchset"
)

type buildCommand struct {
	Description string `short:"d" long:"description" description:"Patch description"`
	Args        struct {
		Original string `positional-arg-name:"original" required:"yes"`
		Modified string `positional-arg-name:"modified" required:"yes"`
		Patch    string `positional-arg-name:"patch" required:"yes"`
	} `positional-args:"yes"`
}

func (c *buildCommand) Execute([]string) error {
	original, err := os.ReadFile(c.Args.Original)
	if err != nil {
		return err
	}
	modified, err := os.ReadFile(c.Args.Modified)
	if err != nil {
		return err
	}
	if len(modified) < len(original) {
		log.Warn("modified image is shorter than the original; the rom tail will be left as is")
	}

	patch, err := eps.Build(original, modified, c.Description)
	if err != nil {
		return err
	}

	log.WithField("size", len(patch)).Info("built patch")
	return os.WriteFile(c.Args.Patch, patch, 0o644)
}

type romPatchArgs struct {
	ROM   string `positional-arg-name:"rom" required:"yes"`
	Patch string `positional-arg-name:"patch" required:"yes"`
}

type applyCommand struct {
	Args romPatchArgs `positional-args:"yes"`
}

func (c *applyCommand) Execute([]string) error {
	data, err := os.ReadFile(c.Args.ROM)
	if err != nil {
		return err
	}
	patch, err := os.ReadFile(c.Args.Patch)
	if err != nil {
		return err
	}

	rom := eps.ROM(data)
	v, err := eps.Apply(&rom, patch)
	if err != nil {
		return err
	}
	if v == eps.Inconsistent {
		if _, err := eps.Apply(&rom, patch); err != nil {
			return err
		}
		return fmt.Errorf("%s does not match either state of %s; rom left unchanged", c.Args.ROM, c.Args.Patch)
	}

	fmt.Println(v)
	return os.WriteFile(c.Args.ROM, rom, 0o644)
}

type checkCommand struct {
	Args romPatchArgs `positional-args:"yes"`
}

func (c *checkCommand) Execute([]string) error {
	data, err := os.ReadFile(c.Args.ROM)
	if err != nil {
		return err
	}
	patch, err := os.ReadFile(c.Args.Patch)
	if err != nil {
		return err
	}

	v, err := eps.Check(eps.ROM(data), patch)
	if err != nil {
		return err
	}

	fmt.Println(v)
	return nil
}

type describeCommand struct {
	Args struct {
		Patch string `positional-arg-name:"patch" required:"yes"`
	} `positional-args:"yes"`
}

func (c *describeCommand) Execute([]string) error {
	patch, err := os.ReadFile(c.Args.Patch)
	if err != nil {
		return err
	}

	desc, err := eps.Describe(patch)
	if err != nil {
		return err
	}

	fmt.Println(desc)
	return nil
}

type patchesCommand struct {
	State  string   `short:"s" long:"state" description:"State file (default: rom name with .json)"`
	Add    []string `short:"a" long:"add" description:"Patch file to add to the set"`
	Toggle []string `short:"t" long:"toggle" description:"Patch in the set to switch on or off"`
	Remove []string `short:"r" long:"remove" description:"Patch to drop from the set"`
	Args   struct {
		ROM string `positional-arg-name:"rom" required:"yes"`
	} `positional-args:"yes"`
}

func (c *patchesCommand) Execute([]string) error {
	data, err := os.ReadFile(c.Args.ROM)
	if err != nil {
		return err
	}

	statePath := c.State
	if statePath == "" {
		statePath = strings.TrimSuffix(c.Args.ROM, filepath.Ext(c.Args.ROM)) + ".json"
	}

	rom := eps.ROM(data)
	m := patchset.New(&rom, nil)
	if err := loadState(m, statePath); err != nil {
		return err
	}

	for _, name := range c.Add {
		patch, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := m.Add(name, patch); err != nil {
			return err
		}
	}

	for _, name := range c.Toggle {
		patch, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := m.Toggle(name, patch); err != nil {
			return err
		}
	}

	for _, name := range c.Remove {
		if err := m.Remove(name); err != nil {
			return err
		}
	}

	for _, e := range m.Entries() {
		mark := " "
		if e.Enabled {
			mark = "x"
		}
		fmt.Printf("[%s] %s\t%s\n", mark, e.Name, e.Description)
	}

	romDirty, stateDirty := m.Modified()
	if romDirty {
		if err := os.WriteFile(c.Args.ROM, rom, 0o644); err != nil {
			return err
		}
		m.MarkROMSaved()
	}
	if stateDirty {
		return saveState(m, statePath)
	}

	return nil
}

// loadState reads the state file if it exists and attaches every known patch.
func loadState(m *patchset.Manager, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := m.Load(f); err != nil {
		return err
	}

	for _, e := range m.Entries() {
		patch, err := os.ReadFile(e.Name)
		if err != nil {
			log.WithField("patch", e.Name).WithError(err).Warn("patch file missing")
			continue
		}
		// Restore logs invalid patches itself
		_ = m.Restore(e.Name, patch)
	}

	return nil
}

func saveState(m *patchset.Manager, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return m.Save(f)
}
