package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings shared by the TUI and the CLI.
type Config struct {
	DataDir      string
	ReceiptsDir  string
	ShopName     string
	PickupHours  int
	BatterySizes []string
	LogLevel     string
	LogFormat    string
}

const (
	defaultConfigPath  = "~/.config/dropoff/config.toml"
	defaultDataDir     = "~/.local/share/dropoff"
	defaultShopName    = "AABCMS"
	defaultPickupHours = 24
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"

	// OtherSize is the battery size choice that enables free-text entry.
	OtherSize = "Other"
)

var defaultBatterySizes = []string{
	"Group 24", "Group 27", "Group 31", "Group 34", "Group 35",
	"Group 48", "Group 49", "Group 65", "Group 78", "Group 94R", OtherSize,
}

// DefaultBatterySizes returns a copy of the built-in size list.
func DefaultBatterySizes() []string {
	return append([]string(nil), defaultBatterySizes...)
}

// Default returns the configuration used when no file exists.
func Default() Config {
	data := mustExpand(defaultDataDir)
	return Config{
		DataDir:      data,
		ReceiptsDir:  filepath.Join(data, "receipts"),
		ShopName:     defaultShopName,
		PickupHours:  defaultPickupHours,
		BatterySizes: DefaultBatterySizes(),
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DataDir      string   `toml:"data_dir"`
		ReceiptsDir  string   `toml:"receipts_dir"`
		ShopName     string   `toml:"shop_name"`
		PickupHours  int      `toml:"pickup_hours"`
		BatterySizes []string `toml:"battery_sizes"`
		LogLevel     string   `toml:"log_level"`
		LogFormat    string   `toml:"log_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
		cfg.ReceiptsDir = filepath.Join(cfg.DataDir, "receipts")
	}
	if dir := strings.TrimSpace(raw.ReceiptsDir); dir != "" {
		cfg.ReceiptsDir = mustExpand(dir)
	}
	if name := strings.TrimSpace(raw.ShopName); name != "" {
		cfg.ShopName = name
	}
	if raw.PickupHours > 0 {
		cfg.PickupHours = raw.PickupHours
	}
	if sizes := cleanSizes(raw.BatterySizes); len(sizes) > 0 {
		cfg.BatterySizes = sizes
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if format := strings.TrimSpace(raw.LogFormat); format != "" {
		cfg.LogFormat = format
	}

	return cfg, nil
}

// LogPath returns the structured log file inside the data directory.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/dropoff.log")
	}
	return filepath.Join(c.DataDir, "dropoff.log")
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// cleanSizes trims entries, drops blanks and duplicates, and makes sure the
// free-text choice is always offered last.
func cleanSizes(sizes []string) []string {
	seen := make(map[string]struct{}, len(sizes))
	out := make([]string, 0, len(sizes)+1)
	for _, s := range sizes {
		s = strings.TrimSpace(s)
		if s == "" || s == OtherSize {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return append(out, OtherSize)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
