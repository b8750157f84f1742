package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"keyhook/internal/keys"
	"keyhook/internal/shortcut"
)

const (
	maxConfigFileBytes int64 = 1 << 20 // 1MB
	maxRenameRetry           = 10
	// Windows file lock releases (antivirus/indexing) typically settle quickly.
	renameRetryBaseDelay = 10 * time.Millisecond

	appDirName = "keyhook"
)

var userHomeDirFn = os.UserHomeDir
var windowsEnvTokenPattern = regexp.MustCompile(`%[A-Za-z_][A-Za-z0-9_]*%`)
var posixEnvTokenPattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}|\$[A-Za-z_][A-Za-z0-9_]*`)

// Config is the daemon configuration file.
type Config struct {
	// LegacyMode registers every binding up front and disables the
	// catch-all notification for unbound keys.
	LegacyMode bool `yaml:"legacy_mode" json:"legacy_mode"`
	// RecoverHandlerPanics keeps a panicking binding from crashing the hook thread.
	RecoverHandlerPanics bool `yaml:"recover_handler_panics" json:"recover_handler_panics"`
	// LogUnmatched logs every key transition at debug level.
	LogUnmatched bool          `yaml:"log_unmatched" json:"log_unmatched"`
	Journal      JournalConfig `yaml:"journal" json:"journal"`
	Bindings     []Binding     `yaml:"bindings" json:"bindings"`
}

// JournalConfig controls the fired-binding journal file.
type JournalConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Path defaults to logs/bindings.log next to the config file.
	// "~" and environment variables are expanded.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
}

// Binding ties a shortcut to an optional command.
type Binding struct {
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Shortcut string `yaml:"shortcut" json:"shortcut"`
	// State is "up" or "down"; empty means up.
	State   string `yaml:"state,omitempty" json:"state,omitempty"`
	Consume bool   `yaml:"consume,omitempty" json:"consume,omitempty"`
	// Command is started asynchronously when the shortcut fires.
	Command    string   `yaml:"command,omitempty" json:"command,omitempty"`
	Args       []string `yaml:"args,omitempty" json:"args,omitempty"`
	WorkDir    string   `yaml:"work_dir,omitempty" json:"work_dir,omitempty"`
	HideWindow bool     `yaml:"hide_window,omitempty" json:"hide_window,omitempty"`
}

// ParseShortcut parses the binding's shortcut text and state. The binding name
// becomes the shortcut name.
func (b Binding) ParseShortcut() (shortcut.Shortcut, error) {
	state, err := keys.ParseState(b.State)
	if err != nil {
		return shortcut.Shortcut{}, err
	}
	sc, err := shortcut.Parse(b.Shortcut, state)
	if err != nil {
		return shortcut.Shortcut{}, err
	}
	name := b.Name
	if name == "" {
		name = sc.String()
	}
	return sc.WithName(name), nil
}

func DefaultConfig() Config {
	return Config{
		RecoverHandlerPanics: true,
		Bindings: []Binding{
			{
				Name:     "keyhook status beep",
				Shortcut: "Ctrl+Alt+Shift+K",
				State:    "down",
				Consume:  true,
			},
		},
	}
}

// DefaultPath resolves the config file path, preferring LOCALAPPDATA over
// APPDATA, falling back to ~/.config when both are unset, and then to
// os.TempDir() if the home directory cannot be resolved.
func DefaultPath() string {
	base := strings.TrimSpace(os.Getenv("LOCALAPPDATA"))
	if base == "" {
		base = strings.TrimSpace(os.Getenv("APPDATA"))
	}
	if base == "" {
		home, err := userHomeDirFn()
		if err != nil {
			slog.Warn("[WARN-CONFIG] using temp dir as config path fallback", "error", err)
			base = os.TempDir()
		} else {
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, appDirName, "config.yaml")
}

// Load reads the config file. A missing or empty file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, errors.New("config path required")
	}

	raw, err := readLimitedFile(path, maxConfigFileBytes)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return cfg, nil
	}
	// Bindings replace the default list instead of merging into it.
	cfg.Bindings = nil
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		slog.Warn("[WARN-CONFIG] failed to parse config, using defaults", "path", path, "error", err)
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := applyDefaultsAndValidate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// EnsureFile writes the default config if missing and returns the loaded config.
func EnsureFile(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		if _, err := Save(path, cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Clone returns a deep copy of cfg.
func Clone(src Config) Config {
	dst := src
	if src.Bindings != nil {
		dst.Bindings = make([]Binding, len(src.Bindings))
		for i, b := range src.Bindings {
			dst.Bindings[i] = b
			if b.Args != nil {
				dst.Bindings[i].Args = append([]string(nil), b.Args...)
			}
		}
	}
	return dst
}

// Save validates cfg and atomically writes it to path.
// Returns the normalized config that was written.
func Save(path string, cfg Config) (Config, error) {
	normalizedPath, err := normalizeConfigPath(path)
	if err != nil {
		return cfg, err
	}
	cfg = Clone(cfg)
	if err := applyDefaultsAndValidate(&cfg); err != nil {
		return cfg, fmt.Errorf("save config: %w", err)
	}

	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return cfg, fmt.Errorf("save config: marshal: %w", err)
	}
	if err := atomicWrite(normalizedPath, raw); err != nil {
		return cfg, err
	}
	slog.Debug("[DEBUG-CONFIG] config saved", "path", normalizedPath)
	return cfg, nil
}

// atomicWrite writes config data using temp-file + rename to avoid partial
// writes and retries rename on Windows to tolerate transient file locks.
func atomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("save config: mkdir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".config.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("save config: create temp: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			if closeErr := tmpFile.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
				slog.Warn("[WARN-CONFIG] failed to close temp file", "path", tmpPath, "error", closeErr)
			}
		}
		if err != nil {
			if removeErr := os.Remove(tmpPath); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
				slog.Warn("[WARN-CONFIG] failed to remove temp file", "path", tmpPath, "error", removeErr)
			}
		}
	}()

	if err = tmpFile.Chmod(0o600); err != nil {
		return fmt.Errorf("save config: chmod temp: %w", err)
	}
	if _, err = tmpFile.Write(data); err != nil {
		return fmt.Errorf("save config: write: %w", err)
	}
	if err = tmpFile.Sync(); err != nil {
		return fmt.Errorf("save config: sync: %w", err)
	}
	err = tmpFile.Close()
	tmpFile = nil
	if err != nil {
		return fmt.Errorf("save config: close: %w", err)
	}

	if err = renameFileWithRetry(tmpPath, path); err != nil {
		return fmt.Errorf("save config: rename: %w", err)
	}
	return nil
}

func normalizeConfigPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("config path required")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("save config: resolve path: %w", err)
	}
	return abs, nil
}

// applyDefaultsAndValidate normalizes cfg in place. Every binding must
// parse; a bad binding is an error so a typo never silently disables a
// shortcut.
func applyDefaultsAndValidate(cfg *Config) error {
	seen := make(map[shortcut.ID]string, len(cfg.Bindings))
	for i := range cfg.Bindings {
		b := &cfg.Bindings[i]
		b.Name = strings.TrimSpace(b.Name)
		b.Shortcut = strings.TrimSpace(b.Shortcut)
		b.State = strings.ToLower(strings.TrimSpace(b.State))
		b.Command = strings.TrimSpace(b.Command)

		sc, err := b.ParseShortcut()
		if err != nil {
			return fmt.Errorf("bindings[%d]: %w", i, err)
		}
		if b.Command == "" && len(b.Args) > 0 {
			return fmt.Errorf("bindings[%d]: args given without a command", i)
		}
		if prev, dup := seen[sc.ID()]; dup {
			slog.Warn("[WARN-CONFIG] shortcut bound more than once, both bindings will fire",
				"shortcut", sc.String(), "first", prev, "second", sc.Name())
		} else {
			seen[sc.ID()] = sc.Name()
		}
	}
	cfg.Journal.Path = strings.TrimSpace(cfg.Journal.Path)
	return nil
}

// JournalPath resolves Journal.Path for a config loaded from configPath.
// "~" and environment variables are expanded; a relative or empty path is
// placed under the config directory.
func (c Config) JournalPath(configPath string) string {
	dir := c.Journal.Path
	if dir == "" {
		return filepath.Join(filepath.Dir(configPath), "logs", "bindings.log")
	}
	if strings.HasPrefix(dir, "~") {
		home, err := userHomeDirFn()
		if err != nil {
			slog.Warn("[WARN-CONFIG] journal.path: failed to expand ~, using default", "path", dir, "error", err)
			return filepath.Join(filepath.Dir(configPath), "logs", "bindings.log")
		}
		dir = filepath.Join(home, dir[1:])
	}
	dir = filepath.Clean(expandEnv(dir))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(configPath), dir)
	}
	return dir
}

func expandEnv(value string) string {
	if value == "" {
		return ""
	}
	// Windows-style %VAR% tokens are expanded on all platforms.
	expanded := windowsEnvTokenPattern.ReplaceAllStringFunc(value, func(token string) string {
		if v, ok := os.LookupEnv(token[1 : len(token)-1]); ok {
			return v
		}
		return token
	})
	// '$' is a valid path character on Windows.
	if runtime.GOOS == "windows" {
		return expanded
	}
	return posixEnvTokenPattern.ReplaceAllStringFunc(expanded, func(token string) string {
		key := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(token, "$"), "{"), "}")
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return token
	})
}

func readLimitedFile(path string, maxBytes int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > maxBytes {
		return nil, fmt.Errorf("config file exceeds %d bytes", maxBytes)
	}
	return raw, nil
}

func renameFileWithRetry(sourcePath string, targetPath string) error {
	var lastErr error
	for attempt := range maxRenameRetry {
		err := os.Rename(sourcePath, targetPath)
		if err == nil {
			return nil
		}
		lastErr = err
		if runtime.GOOS != "windows" {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * renameRetryBaseDelay)
	}
	return lastErr
}
