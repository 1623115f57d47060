package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zsprackett/termconfirm/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level: got %q want info", cfg.LogLevel)
	}
	if cfg.Dialog.VerticalButtons {
		t.Error("vertical buttons should default to false")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	os.WriteFile(path, []byte(`{"locale":"de","dialog":{"verticalButtons":true}}`), 0644)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Locale != "de" {
		t.Errorf("got %q want de", cfg.Locale)
	}
	if !cfg.Dialog.VerticalButtons {
		t.Error("expected vertical buttons from file")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unset fields keep defaults, got log level %q", cfg.LogLevel)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	os.WriteFile(path, []byte(`{"locale":`), 0644)

	if _, err := config.Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestResolveLocale(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	cases := []struct {
		name   string
		locale string
		env    map[string]string
		want   string
	}{
		{"explicit", "fr", map[string]string{"LANG": "de_DE.UTF-8"}, "fr"},
		{"lang", "", map[string]string{"LANG": "de_AT.UTF-8"}, "de-AT"},
		{"lc_all wins", "", map[string]string{"LC_ALL": "fr_CA", "LANG": "de_DE"}, "fr-CA"},
		{"modifier", "", map[string]string{"LANG": "sr_RS@latin"}, "sr-RS"},
		{"posix", "", map[string]string{"LANG": "C.UTF-8"}, "en"},
		{"empty", "", nil, "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Config{Locale: tc.locale}
			if got := cfg.ResolveLocale(env(tc.env)); got != tc.want {
				t.Errorf("got %q want %q", got, tc.want)
			}
		})
	}
}
