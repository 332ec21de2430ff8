package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the gameplay tunables. Speeds are pixels per second and
// durations are seconds.
type Settings struct {
	TileSize   int `yaml:"tile_size"`
	GridWidth  int `yaml:"grid_width"`
	GridHeight int `yaml:"grid_height"`

	ZombieSpeed      float64 `yaml:"zombie_speed"`
	ZombieHealth     float64 `yaml:"zombie_health"`
	AttackDamage     float64 `yaml:"attack_damage"`
	AttackCooldown   float64 `yaml:"attack_cooldown"`
	EngageDistance   float64 `yaml:"engage_distance"`
	BlockDestruction bool    `yaml:"block_destruction"`

	PlayerSpeed  float64 `yaml:"player_speed"`
	PlayerHealth float64 `yaml:"player_health"`
	WeaponDamage float64 `yaml:"weapon_damage"`
	WeaponRange  float64 `yaml:"weapon_range"`
	FireInterval float64 `yaml:"fire_interval"`

	BlockHealth  float64 `yaml:"block_health"`
	BlockCost    int     `yaml:"block_cost"`
	StartCoins   int     `yaml:"start_coins"`
	RewardCoins  int     `yaml:"reward_coins"`
	PickupRadius float64 `yaml:"pickup_radius"`

	DayLength     float64 `yaml:"day_length"`
	NightLength   float64 `yaml:"night_length"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	MaxZombies    int     `yaml:"max_zombies"`
}

// DefaultSettings returns the tuning the game ships with.
func DefaultSettings() Settings {
	return Settings{
		TileSize:   32,
		GridWidth:  40,
		GridHeight: 24,

		ZombieSpeed:      55,
		ZombieHealth:     100,
		AttackDamage:     10,
		AttackCooldown:   1.0,
		EngageDistance:   26,
		BlockDestruction: true,

		PlayerSpeed:  140,
		PlayerHealth: 100,
		WeaponDamage: 34,
		WeaponRange:  420,
		FireInterval: 0.25,

		BlockHealth:  120,
		BlockCost:    2,
		StartCoins:   10,
		RewardCoins:  1,
		PickupRadius: 20,

		DayLength:     30,
		NightLength:   60,
		SpawnInterval: 1.5,
		MaxZombies:    24,
	}
}

// Validate rejects settings the level cannot run with.
func (s Settings) Validate() error {
	var errs []error
	if _, err := NewGridConfig(s.TileSize, s.GridWidth, s.GridHeight); err != nil {
		errs = append(errs, err)
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"zombie_speed", s.ZombieSpeed},
		{"zombie_health", s.ZombieHealth},
		{"player_speed", s.PlayerSpeed},
		{"player_health", s.PlayerHealth},
		{"day_length", s.DayLength},
		{"night_length", s.NightLength},
	}
	for _, p := range positive {
		if p.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %g", p.name, p.v))
		}
	}
	if s.EngageDistance < 0 || s.AttackCooldown < 0 || s.AttackDamage < 0 {
		errs = append(errs, errors.New("attack settings must not be negative"))
	}
	if s.MaxZombies < 0 || s.BlockCost < 0 {
		errs = append(errs, errors.New("counts must not be negative"))
	}
	return errors.Join(errs...)
}

// GridConfig returns the level layout described by the settings.
func (s Settings) GridConfig() GridConfig {
	return GridConfig{TileSize: s.TileSize, Width: s.GridWidth, Height: s.GridHeight}
}

// LoadSettings reads a YAML file on top of DefaultSettings, so a file only
// needs the keys it changes.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from a command-line flag
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// WriteSettings stores s as YAML.
func WriteSettings(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// SettingsProvider is polled once per tick; implementations may change the
// returned values between ticks.
type SettingsProvider interface {
	Settings() Settings
}

// StaticSettings is a provider that never changes.
type StaticSettings struct {
	S Settings
}

func (p *StaticSettings) Settings() Settings { return p.S }
