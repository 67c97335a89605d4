package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Owner    OwnerConfig    `toml:"owner"`
	Calendar CalendarConfig `toml:"calendar"`
	Share    ShareConfig    `toml:"share"`
	Logging  LoggingConfig  `toml:"logging"`
	Keys     KeyConfig      `toml:"keys"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type OwnerConfig struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Timezone string `toml:"timezone"`
}

type CalendarConfig struct {
	WeekStart string `toml:"week_start"` // sunday | monday
}

type ShareConfig struct {
	Bind         string `toml:"bind"`
	AdvertiseURL string `toml:"advertise_url"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // debug | info | warn | error
}

type KeyConfig struct {
	AddEntry       string `toml:"add_entry"`
	AddActivity    string `toml:"add_activity"`
	DeleteEntry    string `toml:"delete_entry"`
	DeleteActivity string `toml:"delete_activity"`
	CopyShare      string `toml:"copy_share"`
	Today          string `toml:"today"`
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Owner: OwnerConfig{
			Name:     defaultOwnerName(),
			Timezone: defaultTimezone(),
		},
		Calendar: CalendarConfig{
			WeekStart: "monday",
		},
		Share: ShareConfig{
			Bind:         "127.0.0.1:8390",
			AdvertiseURL: "http://127.0.0.1:8390",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Keys: KeyConfig{
			AddEntry:       "a",
			AddActivity:    "A",
			DeleteEntry:    "d",
			DeleteActivity: "X",
			CopyShare:      "y",
			Today:          "t",
		},
	}
}

func defaultOwnerName() string {
	if name := strings.TrimSpace(os.Getenv("USER")); name != "" {
		return name
	}
	return "owner"
}

func defaultTimezone() string {
	if tz := strings.TrimSpace(os.Getenv("TZ")); tz != "" {
		return tz
	}
	return "UTC"
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if strings.TrimSpace(c.Owner.Name) == "" {
		return errors.New("owner.name is required")
	}
	if _, err := time.LoadLocation(strings.TrimSpace(c.Owner.Timezone)); err != nil {
		return fmt.Errorf("invalid owner.timezone: %q", c.Owner.Timezone)
	}

	switch strings.TrimSpace(strings.ToLower(c.Calendar.WeekStart)) {
	case "", "sunday", "monday":
	default:
		return fmt.Errorf("invalid calendar.week_start: %q", c.Calendar.WeekStart)
	}

	if strings.TrimSpace(c.Share.Bind) == "" {
		return errors.New("share.bind is required")
	}

	switch strings.TrimSpace(strings.ToLower(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

// StartWeekday maps calendar.week_start onto a weekday for grid layout.
func (c CalendarConfig) StartWeekday() time.Weekday {
	if strings.TrimSpace(strings.ToLower(c.WeekStart)) == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// SaveOwnerID writes the bootstrapped owner ID back into the config file so
// later runs reuse the same identity.
func SaveOwnerID(path string, cfg Config, id string) (Config, error) {
	cfg.Owner.ID = id
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if err := EnsureConfigDir(path); err != nil {
		return Config{}, fmt.Errorf("create config dir: %w", err)
	}
	content, err := toml.Marshal(cfg)
	if err != nil {
		return Config{}, fmt.Errorf("encode toml: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return Config{}, fmt.Errorf("write config: %w", err)
	}
	return cfg, nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
