package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/logterm/internal/route"
)

// Config is the viewer configuration after defaults and validation.
type Config struct {
	MaxLines  int
	PageSize  int
	Level     slog.Level
	Theme     string
	LogOutput string
	Route     route.Options
}

const (
	defaultConfigPath = "~/.config/logterm/config.toml"
	defaultMaxLines   = 2000
	defaultPageSize   = 10
)

// ValidationError reports a config value that cannot be used.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

type rawRoute struct {
	SplitBy   string   `toml:"split_by"`
	Key       string   `toml:"key"`
	Separator string   `toml:"separator"`
	Allow     []string `toml:"allow"`
	Deny      []string `toml:"deny"`
	Color     bool     `toml:"color"`
}

type rawConfig struct {
	MaxLines  *int     `toml:"max_lines"`
	PageSize  *int     `toml:"page_size"`
	Level     string   `toml:"level"`
	Theme     string   `toml:"theme"`
	LogOutput string   `toml:"log_output"`
	Route     rawRoute `toml:"route"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		MaxLines: defaultMaxLines,
		PageSize: defaultPageSize,
		Level:    slog.LevelDebug,
		Route:    route.DefaultOptions(),
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load reads the config at path, or the default path when empty. A missing
// file yields Default.
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

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return raw.resolve()
}

func (raw rawConfig) resolve() (Config, error) {
	cfg := Default()

	if raw.MaxLines != nil {
		if *raw.MaxLines < 1 {
			return Config{}, &ValidationError{Field: "max_lines", Reason: "must be at least 1"}
		}
		cfg.MaxLines = *raw.MaxLines
	}
	if raw.PageSize != nil {
		if *raw.PageSize < 1 {
			return Config{}, &ValidationError{Field: "page_size", Reason: "must be at least 1"}
		}
		cfg.PageSize = *raw.PageSize
	}

	if level := strings.TrimSpace(raw.Level); level != "" {
		parsed, err := ParseLevel(level)
		if err != nil {
			return Config{}, err
		}
		cfg.Level = parsed
	}

	cfg.Theme = strings.TrimSpace(raw.Theme)
	if out := strings.TrimSpace(raw.LogOutput); out != "" {
		cfg.LogOutput = mustExpand(out)
	}

	split, err := route.ParseSplitBy(raw.Route.SplitBy)
	if err != nil {
		return Config{}, &ValidationError{Field: "route.split_by", Reason: err.Error()}
	}
	cfg.Route.SplitBy = split
	if key := strings.TrimSpace(raw.Route.Key); key != "" {
		cfg.Route.Key = key
	}
	if raw.Route.Separator != "" {
		cfg.Route.Separator = raw.Route.Separator
	}
	cfg.Route.Color = raw.Route.Color

	switch {
	case len(raw.Route.Allow) > 0 && len(raw.Route.Deny) > 0:
		return Config{}, &ValidationError{Field: "route", Reason: "allow and deny are mutually exclusive"}
	case len(raw.Route.Allow) > 0:
		cfg.Route.Filter = route.Allow(raw.Route.Allow...)
	case len(raw.Route.Deny) > 0:
		cfg.Route.Filter = route.Deny(raw.Route.Deny...)
	}
	cfg.Route.Level = cfg.Level

	return cfg, nil
}

// ParseLevel accepts slog level names such as "debug" or "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, &ValidationError{Field: "level", Reason: fmt.Sprintf("unknown level %q", s)}
	}
	return level, nil
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
