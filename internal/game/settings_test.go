package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSettings_Valid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}
}

func TestLoadSettings_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := "zombie_speed: 80\nblock_destruction: false\ngrid_width: 30\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.ZombieSpeed != 80 || s.BlockDestruction || s.GridWidth != 30 {
		t.Fatalf("overrides not applied: %+v", s)
	}
	def := DefaultSettings()
	if s.TileSize != def.TileSize || s.NightLength != def.NightLength || s.AttackDamage != def.AttackDamage {
		t.Fatalf("unset keys lost their defaults: %+v", s)
	}
}

func TestLoadSettings_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("tile_size: 0\nday_length: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadSettings(path)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "day_length") {
		t.Fatalf("error should name day_length: %v", err)
	}
}

func TestLoadSettings_MissingFileAndBadYAML(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadSettings(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("zombie_speed: [fast\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(bad); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestWriteSettings_LoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	s := DefaultSettings()
	s.MaxZombies = 7
	s.FireInterval = 0.5
	if err := WriteSettings(path, s); err != nil {
		t.Fatalf("WriteSettings: %v", err)
	}
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got != s {
		t.Fatalf("got %+v, want %+v", got, s)
	}
}

func TestStaticSettings_FeedsLevel(t *testing.T) {
	ts := NewTestSim(WithSettings(func(s *Settings) { s.StartCoins = 42 }))
	if ts.Level.Wallet.Coins() != 42 {
		t.Fatalf("coins = %d, want 42", ts.Level.Wallet.Coins())
	}
	if ts.Level.Settings().StartCoins != 42 {
		t.Fatal("level settings not polled from the provider")
	}
}
