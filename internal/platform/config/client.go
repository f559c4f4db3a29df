package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultClientConfigPath = "~/.config/meal-planner/profile.toml"
	defaultClientLogPath    = "~/.local/state/meal-planner/profile.log"
	defaultTheme            = "dark"
)

// Client holds the terminal client settings.
type Client struct {
	ProjectID string
	// Credentials is a service account JSON path; empty uses application default credentials.
	Credentials string
	// EmulatorHost, when set, points Firestore at a local emulator.
	EmulatorHost string
	UID          string
	LogPath      string
	Theme        string
}

// LoadClient reads the TOML file at path (or the default location). A missing file
// yields defaults.
func LoadClient(path string) (Client, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultClientConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return Client{}, err
	}

	cfg := Client{LogPath: mustExpand(defaultClientLogPath), Theme: defaultTheme}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Client{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ProjectID    string `toml:"project_id"`
		Credentials  string `toml:"credentials"`
		EmulatorHost string `toml:"firestore_emulator_host"`
		UID          string `toml:"uid"`
		LogPath      string `toml:"log_path"`
		Theme        string `toml:"theme"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Client{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.ProjectID = strings.TrimSpace(raw.ProjectID)
	cfg.EmulatorHost = strings.TrimSpace(raw.EmulatorHost)
	cfg.UID = strings.TrimSpace(raw.UID)
	if c := strings.TrimSpace(raw.Credentials); c != "" {
		cfg.Credentials = mustExpand(c)
	}
	if p := strings.TrimSpace(raw.LogPath); p != "" {
		cfg.LogPath = mustExpand(p)
	}
	switch theme := strings.ToLower(strings.TrimSpace(raw.Theme)); theme {
	case "":
	case "dark", "light":
		cfg.Theme = theme
	default:
		return Client{}, fmt.Errorf("parse config: unknown theme %q", raw.Theme)
	}
	return cfg, nil
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
		return "", errors.New("path is empty")
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
