package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type DialogConfig struct {
	VerticalButtons bool `json:"verticalButtons"`
	// ShowBack flips the default back button visibility to shown.
	ShowBack bool `json:"showBack"`
}

type Config struct {
	Locale     string       `json:"locale"`     // BCP 47 tag; "" detects from the environment
	LocalesDir string       `json:"localesDir"` // extra <locale>.toml catalogs
	LogDir     string       `json:"logDir"`
	LogLevel   string       `json:"logLevel"`
	Dialog     DialogConfig `json:"dialog"`
}

func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		LocalesDir: filepath.Join(home, ".termconfirm", "locales"),
		LogDir:     filepath.Join(home, ".termconfirm", "logs"),
		LogLevel:   "info",
	}
}

func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".termconfirm", "config.json")
}

func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ResolveLocale returns cfg.Locale, or the locale named by LC_ALL,
// LC_MESSAGES or LANG when it is empty. POSIX forms such as de_AT.UTF-8
// are turned into BCP 47 (de-AT). Falls back to "en".
func (c Config) ResolveLocale(getenv func(string) string) string {
	if c.Locale != "" {
		return c.Locale
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := posixToBCP47(getenv(name)); v != "" {
			return v
		}
	}
	return "en"
}

func posixToBCP47(v string) string {
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	if v == "" || v == "C" || v == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(v, "_", "-")
}
