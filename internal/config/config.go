package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/kuteview/internal/kutelog"
)

// Config captures the settings kuteview reads from its TOML file.
type Config struct {
	Server       string
	RetryDelay   time.Duration
	HistoryLimit int
	Refresh      time.Duration
}

const (
	defaultConfigPath   = "~/.config/kuteview/config.toml"
	defaultRetryDelay   = time.Second
	defaultHistoryLimit = 5000
	defaultRefresh      = 250 * time.Millisecond
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Server:       kutelog.DefaultServer,
		RetryDelay:   defaultRetryDelay,
		HistoryLimit: defaultHistoryLimit,
		Refresh:      defaultRefresh,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Server       string `toml:"server"`
		RetryDelay   string `toml:"retry_delay"`
		HistoryLimit int    `toml:"history_limit"`
		Refresh      string `toml:"refresh"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if server := strings.TrimSpace(raw.Server); server != "" {
		cfg.Server = server
	}
	if cfg.RetryDelay, err = parseDuration("retry_delay", raw.RetryDelay, defaultRetryDelay); err != nil {
		return Config{}, err
	}
	if cfg.Refresh, err = parseDuration("refresh", raw.Refresh, defaultRefresh); err != nil {
		return Config{}, err
	}
	switch {
	case raw.HistoryLimit < 0:
		return Config{}, fmt.Errorf("parse config: history_limit must not be negative")
	case raw.HistoryLimit > 0:
		cfg.HistoryLimit = raw.HistoryLimit
	}

	return cfg, nil
}

// parseDuration reads a Go duration string. Empty values use fallback; zero
// and negative durations are rejected.
func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive", field)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
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
