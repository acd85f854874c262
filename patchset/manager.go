// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/gbakit

// Package patchset tracks a set of EPS patches over one ROM image and toggles
// them, keeping the on/off state of every patch in a JSON document of the form
//
//	{"patches/widescreen.eps": true, "patches/font.eps": false}
//
// The package works on byte buffers and streams; reading patch files and
// writing the ROM back is left to the caller.
package patchset

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/woozymasta/gbakit/eps"
)

// Entry describes one patch of the set.
type Entry struct {
	Name        string
	Description string
	Enabled     bool
}

type entry struct {
	enabled     bool
	description string
}

// Options configures a Manager.
type Options struct {
	// Logger receives toggle and rejection events (nil = logrus standard logger).
	Logger log.FieldLogger
}

// DefaultOptions returns options logging to the logrus standard logger.
func DefaultOptions() *Options {
	return &Options{Logger: log.StandardLogger()}
}

// Manager applies patches to one ROM. It is safe for concurrent use; all
// operations on the ROM are serialized.
type Manager struct {
	mu          sync.Mutex
	rom         *eps.ROM
	entries     map[string]*entry
	log         log.FieldLogger
	romDirty    bool
	configDirty bool
}

// New returns a manager over rom with an empty set. opts may be nil.
func New(rom *eps.ROM, opts *Options) *Manager {
	if opts == nil || opts.Logger == nil {
		opts = DefaultOptions()
	}

	return &Manager{
		rom:     rom,
		entries: map[string]*entry{},
		log:     opts.Logger,
	}
}

// Add checks patch against the ROM and records it with its current state.
// Corrupt patches, patches without records and patches whose bytes match
// neither state are rejected.
func (m *Manager) Add(name string, patch []byte) (eps.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logger := m.log.WithField("patch", name)
	if _, ok := m.entries[name]; ok {
		return eps.Inconsistent, fmt.Errorf("%w: %s", ErrExists, name)
	}

	p, err := eps.Parse(patch)
	if err != nil {
		logger.WithError(err).Warn("rejected corrupt patch")
		return eps.Inconsistent, fmt.Errorf("patchset: %s: %w", name, err)
	}
	if len(p.Records) == 0 {
		logger.Warn("rejected patch without changes")
		return eps.Inconsistent, fmt.Errorf("%w: %s", ErrNoChanges, name)
	}

	v, err := eps.Check(*m.rom, patch)
	if err != nil {
		return v, fmt.Errorf("patchset: %s: %w", name, err)
	}
	if v == eps.Inconsistent {
		logger.WithField("verdict", v).Warn("rejected patch that does not fit the rom")
		return v, fmt.Errorf("%w: %s", ErrInconsistent, name)
	}

	m.entries[name] = &entry{enabled: v.Enabled(), description: p.Description}
	m.configDirty = true
	logger.WithField("verdict", v).Info("added patch")
	return v, nil
}

// Restore attaches patch to a name loaded from saved state without checking
// the ROM, and records its description.
func (m *Manager) Restore(name string, patch []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPatch, name)
	}

	desc, err := eps.Describe(patch)
	if err != nil {
		m.log.WithField("patch", name).WithError(err).Warn("saved patch is no longer valid")
		return fmt.Errorf("patchset: %s: %w", name, err)
	}

	e.description = desc
	return nil
}

// Toggle applies patch to the ROM, switching it on or off, and returns the new
// state. When the ROM matched neither state the write is undone and
// ErrInconsistent is returned.
func (m *Manager) Toggle(name string, patch []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logger := m.log.WithField("patch", name)
	e, ok := m.entries[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownPatch, name)
	}

	v, err := eps.Apply(m.rom, patch)
	if err != nil {
		logger.WithError(err).Error("patch apply failed")
		return e.enabled, fmt.Errorf("patchset: %s: %w", name, err)
	}

	if v == eps.Inconsistent {
		// XOR runs are self-inverse, so a second apply restores the bytes
		if _, err := eps.Apply(m.rom, patch); err != nil {
			return e.enabled, fmt.Errorf("patchset: %s: undo: %w", name, err)
		}

		logger.WithField("verdict", v).Warn("reverted inconsistent apply")
		return e.enabled, fmt.Errorf("%w: %s", ErrInconsistent, name)
	}

	e.enabled = v.Enabled()
	m.romDirty = true
	m.configDirty = true
	logger.WithField("verdict", v).Info("toggled patch")
	return e.enabled, nil
}

// Remove drops name from the set. The ROM is not touched.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPatch, name)
	}

	delete(m.entries, name)
	m.configDirty = true
	m.log.WithField("patch", name).Debug("removed patch")
	return nil
}

// Entries returns the set sorted by name.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, 0, len(m.entries))
	for name, e := range m.entries {
		out = append(out, Entry{Name: name, Description: e.description, Enabled: e.enabled})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Modified reports whether the ROM changed since MarkROMSaved and the state since the last Load or Save.
func (m *Manager) Modified() (rom, state bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.romDirty, m.configDirty
}

// Load replaces the set with the state read from r. Descriptions stay empty
// until Restore is called for each name.
func (m *Manager) Load(r io.Reader) error {
	var state map[string]bool
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return fmt.Errorf("patchset: load state: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]*entry, len(state))
	for name, enabled := range state {
		m.entries[name] = &entry{enabled: enabled}
	}
	m.configDirty = false
	m.log.WithField("patches", len(state)).Debug("loaded patch state")
	return nil
}

// Save writes the state as indented JSON with sorted keys.
func (m *Manager) Save(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := make(map[string]bool, len(m.entries))
	for name, e := range m.entries {
		state[name] = e.enabled
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("patchset: save state: %w", err)
	}

	m.configDirty = false
	return nil
}

// MarkROMSaved clears the ROM modified flag after the caller wrote the ROM out.
func (m *Manager) MarkROMSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.romDirty = false
}
