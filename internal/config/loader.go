package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

var envTemplateRe = regexp.MustCompile(`\$\{\{\s*\.Env\.(\w+)\s*\}\}`)

// Load reads a config file, expands ${{ .Env.VAR }} templates, decodes it
// and applies defaults. Files ending in .yaml or .yml are YAML; anything
// else is JSONC.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Templates live inside string values, so expand before decoding.
	expanded := []byte(expandEnvTemplates(string(data)))

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml config: %w", err)
		}
	default:
		std, err := hujson.Standardize(expanded)
		if err != nil {
			return nil, fmt.Errorf("parse jsonc config: %w", err)
		}
		if err := json.Unmarshal(std, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// expandEnvTemplates replaces ${{ .Env.VAR }} with the env var value.
func expandEnvTemplates(s string) string {
	return envTemplateRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := envTemplateRe.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		return os.Getenv(parts[1])
	})
}

// applyDefaults fills in zero-value fields. Demo timings match
// demo.DefaultTiming.
func applyDefaults(cfg *Config) {
	if cfg.Studio.Host == "" {
		cfg.Studio.Host = "127.0.0.1"
	}
	if cfg.Studio.Port == 0 {
		cfg.Studio.Port = 8080
	}
	if cfg.Studio.MediaDir == "" {
		cfg.Studio.MediaDir = "vids"
	}
	if cfg.Studio.DownloadDir == "" {
		cfg.Studio.DownloadDir = "."
	}

	d := &cfg.Demo
	setDuration(&d.StartDelay, 3*time.Second)
	setDuration(&d.StartingPause, time.Second)
	setDuration(&d.WrapPause, 2*time.Second)
	setDuration(&d.RestartPause, time.Second)
	setDuration(&d.ResumeDelay, 2*time.Second)
	setDuration(&d.TypingMin, 30*time.Millisecond)
	setDuration(&d.TypingMax, 70*time.Millisecond)
	if d.GenerateFallback == "" {
		d.GenerateFallback = "vids/derivatives.mov"
	}
	if d.ExecuteFallback == "" {
		d.ExecuteFallback = "vids/linear_alzebra.mov"
	}

	setDuration(&cfg.Player.ClipLength, 8*time.Second)

	if cfg.Events.BufferSize == 0 {
		cfg.Events.BufferSize = 1024
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = LogPath()
	}
}

func setDuration(d *Duration, def time.Duration) {
	if *d == 0 {
		*d = Duration(def)
	}
}
