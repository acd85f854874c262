package patchset

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/woozymasta/gbakit/eps"
)

func buildPatch(t *testing.T, original []byte, at int, repl, desc string) []byte {
	t.Helper()

	modified := bytes.Clone(original)
	copy(modified[at:], repl)
	patch, err := eps.Build(original, modified, desc)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return patch
}

func newTestManager(t *testing.T, rom *eps.ROM) (*Manager, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	return New(rom, &Options{Logger: logger}), hook
}

func TestManager_AddToggle(t *testing.T) {
	original := bytes.Repeat([]byte{0xAA}, 256)
	font := buildPatch(t, original, 16, "FONT", "Wide font")
	menu := buildPatch(t, original, 128, "MENU", "Menu fix")

	rom := eps.ROM(bytes.Clone(original))
	m, hook := newTestManager(t, &rom)

	if v, err := m.Add("font.eps", font); err != nil || v != eps.Reverted {
		t.Fatalf("Add font = %s, %v; want reverted", v, err)
	}
	if v, err := m.Add("menu.eps", menu); err != nil || v != eps.Reverted {
		t.Fatalf("Add menu = %s, %v; want reverted", v, err)
	}
	if _, err := m.Add("font.eps", font); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	on, err := m.Toggle("font.eps", font)
	if err != nil || !on {
		t.Fatalf("Toggle font = %v, %v; want enabled", on, err)
	}
	if string(rom[16:20]) != "FONT" {
		t.Fatalf("rom not patched: %q", rom[16:20])
	}

	entries := m.Entries()
	want := []Entry{
		{Name: "font.eps", Description: "Wide font", Enabled: true},
		{Name: "menu.eps", Description: "Menu fix", Enabled: false},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries", len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: got %+v want %+v", i, entries[i], want[i])
		}
	}

	on, err = m.Toggle("font.eps", font)
	if err != nil || on {
		t.Fatalf("second Toggle font = %v, %v; want disabled", on, err)
	}
	if !bytes.Equal(rom, original) {
		t.Fatal("toggling twice must restore the rom")
	}

	if romDirty, stateDirty := m.Modified(); !romDirty || !stateDirty {
		t.Fatalf("Modified = %v, %v; want both", romDirty, stateDirty)
	}

	last := hook.LastEntry()
	if last == nil || last.Data["patch"] != "font.eps" || last.Data["verdict"] != eps.Reverted {
		t.Fatalf("unexpected last log entry: %+v", last)
	}
}

func TestManager_AddRejects(t *testing.T) {
	original := bytes.Repeat([]byte{0x00}, 64)
	patch := buildPatch(t, original, 8, "XYZ", "")

	rom := eps.ROM(bytes.Clone(original))
	rom[9] = 0x55
	m, hook := newTestManager(t, &rom)

	if _, err := m.Add("bad-fit.eps", patch); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("expected ErrInconsistent, got %v", err)
	}

	corrupt := bytes.Clone(patch)
	corrupt[len(corrupt)-1] ^= 0x01
	if _, err := m.Add("corrupt.eps", corrupt); !errors.Is(err, eps.ErrCorruptData) {
		t.Fatalf("expected eps.ErrCorruptData, got %v", err)
	}

	if len(m.Entries()) != 0 {
		t.Fatal("rejected patches must not be added")
	}
	if got := len(hook.AllEntries()); got != 2 {
		t.Fatalf("expected 2 warnings, got %d", got)
	}
	for _, e := range hook.AllEntries() {
		if e.Level != log.WarnLevel {
			t.Fatalf("unexpected level %s for %q", e.Level, e.Message)
		}
	}
}

func TestManager_ToggleInconsistentIsUndone(t *testing.T) {
	original := bytes.Repeat([]byte{0x11}, 64)
	patch := buildPatch(t, original, 4, "ABCD", "")

	rom := eps.ROM(bytes.Clone(original))
	m, _ := newTestManager(t, &rom)
	if _, err := m.Add("p.eps", patch); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	// someone else edits the patched range after Add
	rom[5] = 0x99
	before := bytes.Clone(rom)

	on, err := m.Toggle("p.eps", patch)
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("expected ErrInconsistent, got %v", err)
	}
	if on {
		t.Fatal("state must stay disabled")
	}
	if !bytes.Equal(rom, before) {
		t.Fatal("inconsistent toggle must leave the rom unchanged")
	}
	if romDirty, _ := m.Modified(); romDirty {
		t.Fatal("an undone toggle must not mark the rom modified")
	}
}

func TestManager_UnknownPatch(t *testing.T) {
	rom := eps.ROM(nil)
	m, _ := newTestManager(t, &rom)

	if _, err := m.Toggle("missing.eps", nil); !errors.Is(err, ErrUnknownPatch) {
		t.Fatalf("Toggle: expected ErrUnknownPatch, got %v", err)
	}
	if err := m.Remove("missing.eps"); !errors.Is(err, ErrUnknownPatch) {
		t.Fatalf("Remove: expected ErrUnknownPatch, got %v", err)
	}
	if err := m.Restore("missing.eps", nil); !errors.Is(err, ErrUnknownPatch) {
		t.Fatalf("Restore: expected ErrUnknownPatch, got %v", err)
	}
}

func TestManager_AddRejectsPatchWithoutChanges(t *testing.T) {
	original := bytes.Repeat([]byte{0x42}, 64)
	noop := buildPatch(t, original, 8, "BBBB", "already there")

	rom := eps.ROM(bytes.Clone(original))
	m, hook := newTestManager(t, &rom)

	if _, err := m.Add("noop.eps", noop); !errors.Is(err, ErrNoChanges) {
		t.Fatalf("expected ErrNoChanges, got %v", err)
	}
	if len(m.Entries()) != 0 {
		t.Fatalf("rejected patch was recorded: %+v", m.Entries())
	}
	if _, stateDirty := m.Modified(); stateDirty {
		t.Fatal("rejected patch must not mark the state modified")
	}
	if e := hook.LastEntry(); e == nil || e.Level != log.WarnLevel {
		t.Fatalf("expected a warning, got %+v", e)
	}
}

func TestManager_SaveLoadRestore(t *testing.T) {
	original := make([]byte, 128)
	a := buildPatch(t, original, 0, "AAAA", "patch a")
	b := buildPatch(t, original, 64, "BBBB", "patch b")

	rom := eps.ROM(bytes.Clone(original))
	m, _ := newTestManager(t, &rom)
	for name, p := range map[string][]byte{"a.eps": a, "b.eps": b} {
		if _, err := m.Add(name, p); err != nil {
			t.Fatalf("Add %s failed: %v", name, err)
		}
	}
	if _, err := m.Toggle("b.eps", b); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := "{\n  \"a.eps\": false,\n  \"b.eps\": true\n}\n"; buf.String() != want {
		t.Fatalf("saved state %q, want %q", buf.String(), want)
	}
	if _, stateDirty := m.Modified(); stateDirty {
		t.Fatal("Save must clear the state modified flag")
	}

	m2, _ := newTestManager(t, &rom)
	if err := m2.Load(strings.NewReader(buf.String())); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := m2.Restore("b.eps", b); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	entries := m2.Entries()
	if len(entries) != 2 || entries[0].Enabled || !entries[1].Enabled {
		t.Fatalf("unexpected entries after load: %+v", entries)
	}
	if entries[0].Description != "" || entries[1].Description != "patch b" {
		t.Fatalf("descriptions: %+v", entries)
	}

	// toggling the restored patch switches it off again
	if on, err := m2.Toggle("b.eps", b); err != nil || on {
		t.Fatalf("Toggle after load = %v, %v", on, err)
	}
	if !bytes.Equal(rom, original) {
		t.Fatal("rom must be back to the original")
	}

	if err := m2.Remove("a.eps"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(m2.Entries()) != 1 {
		t.Fatal("Remove did not drop the entry")
	}

	if err := m2.Load(strings.NewReader("[1, 2]")); err == nil {
		t.Fatal("expected an error for a non-object state")
	}
}

func TestManager_ConcurrentToggles(t *testing.T) {
	original := make([]byte, 1024)
	patches := make([][]byte, 8)
	for i := range patches {
		patches[i] = buildPatch(t, original, i*100, "patch", "")
	}

	rom := eps.ROM(bytes.Clone(original))
	m, _ := newTestManager(t, &rom)
	for i, p := range patches {
		if _, err := m.Add(string(rune('a'+i)), p); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	var wg sync.WaitGroup
	for i, p := range patches {
		wg.Add(1)
		go func(name string, p []byte) {
			defer wg.Done()
			for j := 0; j < 4; j++ {
				if _, err := m.Toggle(name, p); err != nil {
					t.Errorf("Toggle %s failed: %v", name, err)
				}
			}
		}(string(rune('a'+i)), p)
	}
	wg.Wait()

	if !bytes.Equal(rom, original) {
		t.Fatal("an even number of toggles per patch must restore the rom")
	}
}
