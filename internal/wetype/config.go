// Package wetype holds tool configuration and the input-method restart
// signal.
package wetype

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/hujson"
)

// Error variables for configuration loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrStoreDirEmpty      = errors.New("store-dir cannot be empty")
	ErrStoreIDEmpty       = errors.New("store-id cannot be empty")
	ErrFlagRequiresArg    = errors.New("flag requires an argument")
	ErrUnknownFlag        = errors.New("unknown flag")
)

// Duration is a time.Duration that (un)marshals as a string like "5s".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)

	return nil
}

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	StoreDir       string   `json:"store_dir"`
	StoreID        string   `json:"store_id"`
	RestartTimeout Duration `json:"restart_timeout,omitempty"`
	RestartCommand string   `json:"restart_command,omitempty"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global   string // Path to global config if loaded, empty otherwise
	Explicit string // Path passed via --config if loaded, empty otherwise
}

// DefaultRestartTimeout bounds the wait for the restart signal.
const DefaultRestartTimeout = 5 * time.Second

// DefaultRestartCommand kills the input method process; the system
// relaunches it, which is what makes it pick up the new store contents.
const DefaultRestartCommand = "killall WeType"

// DefaultConfig returns the default configuration. The store location is
// the input method's data directory under the user's home.
func DefaultConfig(env map[string]string) Config {
	dir := ""
	if home := env["HOME"]; home != "" {
		dir = filepath.Join(home, "Library", "Application Support", "WeType", "mmkv")
	}

	return Config{
		StoreDir:       dir,
		StoreID:        "wetype.settings",
		RestartTimeout: Duration(DefaultRestartTimeout),
		RestartCommand: DefaultRestartCommand,
	}
}

// globalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/wetype/config.json if set, otherwise
// ~/.config/wetype/config.json. Empty if neither can be determined.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "wetype", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "wetype", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for LoadConfig.
type LoadInput struct {
	ConfigPath string            // -c/--config flag value; must exist if set
	Overrides  Config            // values from CLI flags, merged last
	Env        map[string]string // process environment
}

// LoadConfig resolves configuration in precedence order: defaults, global
// config file, explicit --config file, environment, CLI flags.
func LoadConfig(in LoadInput) (Config, error) {
	cfg := DefaultConfig(in.Env)

	var sources ConfigSources

	if path := globalConfigPath(in.Env); path != "" {
		fileCfg, loaded, err := loadConfigFile(path, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg = mergeConfig(cfg, fileCfg)
			sources.Global = path
		}
	}

	if in.ConfigPath != "" {
		fileCfg, _, err := loadConfigFile(in.ConfigPath, true)
		if err != nil {
			return Config{}, err
		}

		cfg = mergeConfig(cfg, fileCfg)
		sources.Explicit = in.ConfigPath
	}

	cfg = mergeConfig(cfg, Config{
		StoreDir: in.Env["WETYPE_STORE_DIR"],
		StoreID:  in.Env["WETYPE_STORE_ID"],
	})

	cfg = mergeConfig(cfg, in.Overrides)
	cfg.Sources = sources

	if cfg.StoreDir == "" {
		return Config{}, ErrStoreDirEmpty
	}

	if cfg.StoreID == "" {
		return Config{}, ErrStoreIDEmpty
	}

	if cfg.RestartTimeout <= 0 {
		cfg.RestartTimeout = Duration(DefaultRestartTimeout)
	}

	if cfg.RestartCommand == "" {
		cfg.RestartCommand = DefaultRestartCommand
	}

	return cfg, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files
// return zero config and loaded=false.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	// A store location explicitly set to empty is a mistake worth
	// rejecting rather than silently falling back to the default.
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if val, exists := raw["store_dir"]; exists {
		if str, ok := val.(string); ok && str == "" {
			return Config{}, ErrStoreDirEmpty
		}
	}

	if val, exists := raw["store_id"]; exists {
		if str, ok := val.(string); ok && str == "" {
			return Config{}, ErrStoreIDEmpty
		}
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.StoreDir != "" {
		base.StoreDir = overlay.StoreDir
	}

	if overlay.StoreID != "" {
		base.StoreID = overlay.StoreID
	}

	if overlay.RestartTimeout > 0 {
		base.RestartTimeout = overlay.RestartTimeout
	}

	if overlay.RestartCommand != "" {
		base.RestartCommand = overlay.RestartCommand
	}

	return base
}

// FormatConfig renders the resolved config as indented JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format config: %w", err)
	}

	return string(data), nil
}
