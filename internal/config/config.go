// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/wildlands/internal/game/inventory"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, receives log output instead of stderr.
	File string `mapstructure:"file"`
}

// GameConfig holds gameplay tuning.
type GameConfig struct {
	// HomeZone is the safe respawn zone.
	HomeZone string `mapstructure:"home_zone"`
	// StartingZone is where a new session begins.
	StartingZone      string           `mapstructure:"starting_zone"`
	StartingOromozi   int              `mapstructure:"starting_oromozi"`
	StartingInventory []inventory.Line `mapstructure:"starting_inventory"`
	// OutcomeDelay is the narrative "processing" pause before effects apply.
	OutcomeDelay  time.Duration `mapstructure:"outcome_delay"`
	DeathDelay    time.Duration `mapstructure:"death_delay"`
	CampCountdown time.Duration `mapstructure:"camp_countdown"`
	// RegenInterval is the real-time period of stamina regeneration.
	RegenInterval time.Duration `mapstructure:"regen_interval"`
	// MonsterTick is the period of the real-time encounter loop.
	MonsterTick time.Duration `mapstructure:"monster_tick"`
	// SecondsPerDay is the real-time length of one game day.
	SecondsPerDay       int `mapstructure:"seconds_per_day"`
	PromptsBeforeReturn int `mapstructure:"prompts_before_return"`
	// Seed makes randomness reproducible when non-zero.
	Seed int64 `mapstructure:"seed"`
}

// DayLength returns SecondsPerDay as a duration.
func (g GameConfig) DayLength() time.Duration {
	return time.Duration(g.SecondsPerDay) * time.Second
}

// SpawnConfig holds per-zone spawn counts outside the safe zone.
type SpawnConfig struct {
	Crates   int `mapstructure:"crates"`
	Markers  int `mapstructure:"markers"`
	Monsters int `mapstructure:"monsters"`
}

// ContentConfig locates the content store.
type ContentConfig struct {
	Dir string `mapstructure:"dir"`
}

// ScriptingConfig locates zone scripts. An empty Dir disables scripting.
type ScriptingConfig struct {
	Dir              string `mapstructure:"dir"`
	InstructionLimit int    `mapstructure:"instruction_limit"`
}

// Enabled reports whether zone scripts should be loaded.
func (s ScriptingConfig) Enabled() bool {
	return s.Dir != ""
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Game      GameConfig      `mapstructure:"game"`
	Spawn     SpawnConfig     `mapstructure:"spawn"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSpawn(c.Spawn); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Content.Dir == "" {
		errs = append(errs, "content.dir must not be empty")
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.HomeZone == "" {
		errs = append(errs, "game.home_zone must not be empty")
	}
	if g.StartingZone == "" {
		errs = append(errs, "game.starting_zone must not be empty")
	}
	if g.StartingOromozi < 0 {
		errs = append(errs, fmt.Sprintf("game.starting_oromozi must be >= 0, got %d", g.StartingOromozi))
	}
	for i, l := range g.StartingInventory {
		if l.Name == "" || l.Quantity < 1 {
			errs = append(errs, fmt.Sprintf("game.starting_inventory[%d] needs a name and quantity >= 1", i))
		}
	}
	for name, d := range map[string]time.Duration{
		"outcome_delay":  g.OutcomeDelay,
		"death_delay":    g.DeathDelay,
		"camp_countdown": g.CampCountdown,
	} {
		if d < 0 {
			errs = append(errs, fmt.Sprintf("game.%s must not be negative", name))
		}
	}
	if g.RegenInterval <= 0 {
		errs = append(errs, "game.regen_interval must be > 0")
	}
	if g.MonsterTick <= 0 {
		errs = append(errs, "game.monster_tick must be > 0")
	}
	if g.SecondsPerDay < 24 {
		errs = append(errs, fmt.Sprintf("game.seconds_per_day must be >= 24, got %d", g.SecondsPerDay))
	}
	if g.PromptsBeforeReturn < 0 {
		errs = append(errs, fmt.Sprintf("game.prompts_before_return must be >= 0, got %d", g.PromptsBeforeReturn))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSpawn(s SpawnConfig) error {
	var errs []string
	if s.Crates < 0 {
		errs = append(errs, fmt.Sprintf("spawn.crates must be >= 0, got %d", s.Crates))
	}
	if s.Markers < 0 {
		errs = append(errs, fmt.Sprintf("spawn.markers must be >= 0, got %d", s.Markers))
	}
	if s.Monsters < 0 {
		errs = append(errs, fmt.Sprintf("spawn.monsters must be >= 0, got %d", s.Monsters))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// Default returns the defaults with environment overrides applied, for runs
// without a config file.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Default() (Config, error) {
	return LoadFromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with WILDLANDS_ prefix
	v.SetEnvPrefix("WILDLANDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	v.SetDefault("game.home_zone", "Village")
	v.SetDefault("game.starting_zone", "Outer Grasslands")
	v.SetDefault("game.starting_oromozi", 1000)
	v.SetDefault("game.starting_inventory", []map[string]any{{"name": "Bread", "quantity": 1}})
	v.SetDefault("game.outcome_delay", "1500ms")
	v.SetDefault("game.death_delay", "2s")
	v.SetDefault("game.camp_countdown", "3s")
	v.SetDefault("game.regen_interval", "15s")
	v.SetDefault("game.monster_tick", "100ms")
	v.SetDefault("game.seconds_per_day", 240)
	v.SetDefault("game.prompts_before_return", 8)
	v.SetDefault("game.seed", 0)

	v.SetDefault("spawn.crates", 5)
	v.SetDefault("spawn.markers", 3)
	v.SetDefault("spawn.monsters", 3)

	v.SetDefault("content.dir", "content")

	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 100000)
}
