package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds client configuration.
type Config struct {
	ServerURL string `yaml:"server"`     // Base URL of the CSV Browser server
	SocketURL string `yaml:"socket"`     // Push channel URL; derived from ServerURL when empty
	DataDir   string `yaml:"data_dir"`   // Local state directory (default ~/.csvbrowse)
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		ServerURL: "http://localhost:8000",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds the effective configuration: defaults, then the YAML
// config file (path, or ~/.csvbrowse/config.yaml when path is empty),
// then a .env file if present, then environment variables. The socket
// URL is derived from the server URL unless set explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".csvbrowse", "config.yaml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// No config file is fine; defaults apply.
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// Best-effort .env so CSVBROWSE_* vars can live next to the project.
	_ = godotenv.Load()

	cfg.ServerURL = fallback(os.Getenv("CSVBROWSE_SERVER"), cfg.ServerURL)
	cfg.SocketURL = fallback(os.Getenv("CSVBROWSE_SOCKET"), cfg.SocketURL)
	cfg.DataDir = fallback(os.Getenv("CSVBROWSE_DATA_DIR"), cfg.DataDir)
	cfg.LogLevel = fallback(os.Getenv("CSVBROWSE_LOG_LEVEL"), cfg.LogLevel)
	cfg.LogFormat = fallback(os.Getenv("CSVBROWSE_LOG_FORMAT"), cfg.LogFormat)

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("find home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".csvbrowse")
	}

	if cfg.SocketURL == "" {
		derived, err := DeriveSocketURL(cfg.ServerURL)
		if err != nil {
			return Config{}, err
		}
		cfg.SocketURL = derived
	}

	return cfg, nil
}

// DeriveSocketURL maps the server base URL to the push channel URL:
// same host, /ws path, ws scheme, upgraded to wss when the server is
// reached over a secure transport.
func DeriveSocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse server URL %q: %w", serverURL, err)
	}

	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("server URL %q: unsupported scheme %q", serverURL, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("server URL %q: missing host", serverURL)
	}

	u.Path = "/ws"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
