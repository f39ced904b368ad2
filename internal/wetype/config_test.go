package wetype

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(map[string]string{"HOME": "/home/u"})

	if want := filepath.Join("/home/u", "Library", "Application Support", "WeType", "mmkv"); cfg.StoreDir != want {
		t.Errorf("StoreDir = %q, want %q", cfg.StoreDir, want)
	}

	if cfg.StoreID != "wetype.settings" {
		t.Errorf("StoreID = %q", cfg.StoreID)
	}

	if time.Duration(cfg.RestartTimeout) != DefaultRestartTimeout {
		t.Errorf("RestartTimeout = %v", cfg.RestartTimeout)
	}

	if cfg.RestartCommand != DefaultRestartCommand {
		t.Errorf("RestartCommand = %q", cfg.RestartCommand)
	}
}

func TestLoadConfigDefaultsOnly(t *testing.T) {
	t.Parallel()

	home := t.TempDir()

	cfg, err := LoadConfig(LoadInput{Env: map[string]string{"HOME": home}})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Sources.Global != "" || cfg.Sources.Explicit != "" {
		t.Errorf("no config files exist, sources = %+v", cfg.Sources)
	}

	if cfg.StoreID != "wetype.settings" {
		t.Errorf("StoreID = %q", cfg.StoreID)
	}
}

func TestLoadConfigGlobalFile(t *testing.T) {
	t.Parallel()

	xdg := t.TempDir()
	writeConfig(t, filepath.Join(xdg, "wetype", "config.json"), `{
		// store lives on the spare volume
		"store_dir": "/data/wetype",
		"restart_timeout": "250ms",
	}`)

	cfg, err := LoadConfig(LoadInput{Env: map[string]string{
		"HOME":            "/home/u",
		"XDG_CONFIG_HOME": xdg,
	}})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.StoreDir != "/data/wetype" {
		t.Errorf("StoreDir = %q", cfg.StoreDir)
	}

	if time.Duration(cfg.RestartTimeout) != 250*time.Millisecond {
		t.Errorf("RestartTimeout = %v", cfg.RestartTimeout)
	}

	if cfg.Sources.Global == "" {
		t.Error("global source not recorded")
	}
}

func TestLoadConfigExplicitFileMustExist(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(LoadInput{
		ConfigPath: filepath.Join(t.TempDir(), "absent.json"),
		Env:        map[string]string{"HOME": "/home/u"},
	})

	if !errors.Is(err, ErrConfigFileNotFound) {
		t.Errorf("err = %v, want ErrConfigFileNotFound", err)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	t.Parallel()

	xdg := t.TempDir()
	writeConfig(t, filepath.Join(xdg, "wetype", "config.json"), `{"store_dir": "/from/global", "store_id": "global.settings"}`)

	explicit := filepath.Join(t.TempDir(), "explicit.json")
	writeConfig(t, explicit, `{"store_dir": "/from/explicit"}`)

	cfg, err := LoadConfig(LoadInput{
		ConfigPath: explicit,
		Overrides:  Config{StoreDir: "/from/flag"},
		Env: map[string]string{
			"HOME":             "/home/u",
			"XDG_CONFIG_HOME":  xdg,
			"WETYPE_STORE_DIR": "/from/env",
			"WETYPE_STORE_ID":  "env.settings",
		},
	})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	// flag > env > explicit file > global file > default
	if cfg.StoreDir != "/from/flag" {
		t.Errorf("StoreDir = %q, want flag value", cfg.StoreDir)
	}

	if cfg.StoreID != "env.settings" {
		t.Errorf("StoreID = %q, want env value", cfg.StoreID)
	}
}

func TestLoadConfigRejectsExplicitEmptyStoreDir(t *testing.T) {
	t.Parallel()

	xdg := t.TempDir()
	writeConfig(t, filepath.Join(xdg, "wetype", "config.json"), `{"store_dir": ""}`)

	_, err := LoadConfig(LoadInput{Env: map[string]string{
		"HOME":            "/home/u",
		"XDG_CONFIG_HOME": xdg,
	}})

	if !errors.Is(err, ErrStoreDirEmpty) {
		t.Errorf("err = %v, want ErrStoreDirEmpty", err)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	t.Parallel()

	explicit := filepath.Join(t.TempDir(), "bad.json")
	writeConfig(t, explicit, `{"store_dir": `)

	_, err := LoadConfig(LoadInput{
		ConfigPath: explicit,
		Env:        map[string]string{"HOME": "/home/u"},
	})

	if !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("err = %v, want ErrConfigInvalid", err)
	}
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	t.Parallel()

	explicit := filepath.Join(t.TempDir(), "bad.json")
	writeConfig(t, explicit, `{"restart_timeout": "soon"}`)

	_, err := LoadConfig(LoadInput{
		ConfigPath: explicit,
		Env:        map[string]string{"HOME": "/home/u"},
	})

	if !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("err = %v, want ErrConfigInvalid", err)
	}
}

func TestLoadConfigNoHomeNoStoreDir(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(LoadInput{Env: map[string]string{}})
	if !errors.Is(err, ErrStoreDirEmpty) {
		t.Errorf("err = %v, want ErrStoreDirEmpty", err)
	}
}

func TestFormatConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(map[string]string{"HOME": "/home/u"})

	formatted, err := FormatConfig(cfg)
	if err != nil {
		t.Fatalf("FormatConfig: %v", err)
	}

	for _, want := range []string{`"store_dir"`, `"store_id"`, `"restart_timeout": "5s"`} {
		if !strings.Contains(formatted, want) {
			t.Errorf("formatted config missing %s:\n%s", want, formatted)
		}
	}
}

func TestDurationRoundTrip(t *testing.T) {
	t.Parallel()

	d := Duration(1500 * time.Millisecond)

	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var got Duration
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	if got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
