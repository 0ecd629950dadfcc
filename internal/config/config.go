// Package config loads the widgetkit server configuration from YAML or JSONC
// files. Missing keys keep their defaults.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	Listen         string  `json:"listen" yaml:"listen"`
	ManifestsDir   string  `json:"manifestsDir" yaml:"manifestsDir"`
	TemplatesDir   string  `json:"templatesDir" yaml:"templatesDir"`
	WatchTemplates bool    `json:"watchTemplates" yaml:"watchTemplates"`
	AssetsPrefix   string  `json:"assetsPrefix" yaml:"assetsPrefix"`
	Session        Session `json:"session" yaml:"session"`
	Theme          Theme   `json:"theme" yaml:"theme"`
	Log            Log     `json:"log" yaml:"log"`
}

// Session tunes the SSE hub. Grace is how long a session without an
// attached event stream is kept for the client to (re)connect.
type Session struct {
	Buffer    int    `json:"buffer" yaml:"buffer"`
	Heartbeat string `json:"heartbeat" yaml:"heartbeat"`
	Grace     string `json:"grace" yaml:"grace"`
}

// Theme feeds render.Options.Theme.
type Theme struct {
	Name     string            `json:"name" yaml:"name"`
	Variant  string            `json:"variant" yaml:"variant"`
	CSSVars  map[string]string `json:"cssVars" yaml:"cssVars"`
	AssetURL string            `json:"assetURL" yaml:"assetURL"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:       ":8080",
		ManifestsDir: "widgets",
		AssetsPrefix: "/assets/",
		Session: Session{
			Buffer:    64,
			Heartbeat: "25s",
			Grace:     "30s",
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads path, choosing the decoder by extension: .yaml/.yml use YAML,
// anything else is read as JSONC.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result. format is a file
// extension such as ".yaml" or ".jsonc".
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse json: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at server start.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Session.Buffer <= 0 {
		return fmt.Errorf("session.buffer must be positive, got %d", c.Session.Buffer)
	}
	if _, err := c.Heartbeat(); err != nil {
		return err
	}
	if _, err := c.Grace(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	for key := range c.Theme.CSSVars {
		if !strings.HasPrefix(key, "--") {
			return fmt.Errorf("theme.cssVars key %q must start with --", key)
		}
	}
	return nil
}

// Heartbeat parses Session.Heartbeat. An empty value or "0" disables
// heartbeats.
func (c Config) Heartbeat() (time.Duration, error) {
	raw := strings.TrimSpace(c.Session.Heartbeat)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("session.heartbeat %q is not a valid duration", c.Session.Heartbeat)
	}
	return d, nil
}

// Grace parses Session.Grace, which must be a positive duration.
func (c Config) Grace() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(c.Session.Grace))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("session.grace %q must be a positive duration", c.Session.Grace)
	}
	return d, nil
}

// Level parses Log.Level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Logger builds the slog logger described by Log, writing to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// RendererTheme converts Theme into the go-theme renderer configuration.
// Asset keys resolve to AssetURL + key, or to AssetsPrefix + key when no
// AssetURL is set.
func (c Config) RendererTheme() *theme.RendererConfig {
	base := strings.TrimSpace(c.Theme.AssetURL)
	if base == "" {
		base = c.AssetsPrefix
	}
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	cssVars := make(map[string]string, len(c.Theme.CSSVars))
	for key, value := range c.Theme.CSSVars {
		cssVars[key] = value
	}
	return &theme.RendererConfig{
		Theme:   c.Theme.Name,
		Variant: c.Theme.Variant,
		CSSVars: cssVars,
		AssetURL: func(key string) string {
			if key == "" {
				return ""
			}
			return base + key
		},
	}
}
