package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.PickupHours != 0 {
		t.Fatalf("PickupHours = %d, want 0", p.PickupHours)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "dropoff")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\npickup_hours = 6\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if p.PickupHours != 6 {
		t.Fatalf("PickupHours = %d, want 6", p.PickupHours)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	if err := Save(prefsFile, Prefs{Theme: "Slate", PickupHours: 12}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Slate" || loaded.PickupHours != 12 {
		t.Fatalf("loaded = %#v, want Slate/12", loaded)
	}
}

func TestUpdate_PreservesOtherFields(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(prefsFile, Prefs{Theme: "Slate"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Update(prefsFile, func(p *Prefs) { p.PickupHours = 36 })
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Theme != "Slate" || got.PickupHours != 36 {
		t.Fatalf("Update = %#v, want Slate/36", got)
	}

	loaded, _ := Load(prefsFile)
	if loaded != got {
		t.Fatalf("Load after Update = %#v, want %#v", loaded, got)
	}
}

func TestLoad_NegativePickupIgnored(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("pickup_hours = -4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p, _ := Load(prefsFile)
	if p.PickupHours != 0 {
		t.Fatalf("PickupHours = %d, want 0", p.PickupHours)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load error = %v, want ErrCorrupt", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestUpdate_ReplacesCorruptFile(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\n{{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Update(prefsFile, func(p *Prefs) { p.PickupHours = 12 }); err != nil {
		t.Fatalf("Update: %v", err)
	}
	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load after Update: %v", err)
	}
	if p.PickupHours != 12 {
		t.Fatalf("PickupHours = %d, want 12", p.PickupHours)
	}
}
