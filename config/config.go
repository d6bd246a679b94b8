// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config loads server and CLI settings from a YAML or TOML file,
// the environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jongio/escapehatch/escape"
	"github.com/jongio/escapehatch/logutil"
	"github.com/jongio/escapehatch/target"
	"github.com/jongio/escapehatch/urlutil"
)

// DefaultFileName is the config file looked up when --config is not given.
const DefaultFileName = "escapehatch.yaml"

// Config is the complete runtime configuration.
type Config struct {
	Listen      string         `yaml:"listen" toml:"listen"`
	Destination Destination    `yaml:"destination" toml:"destination"`
	Timings     escape.Timings `yaml:"timings" toml:"timings"`
	IOS         IOS            `yaml:"ios" toml:"ios"`
	Android     Android        `yaml:"android" toml:"android"`
	Metrics     Metrics        `yaml:"metrics" toml:"metrics"`
	Events      Events         `yaml:"events" toml:"events"`
	Probe       Probe          `yaml:"probe" toml:"probe"`
	Log         Log            `yaml:"log" toml:"log"`
}

// Destination describes where users are sent.
type Destination struct {
	BaseURL string `yaml:"baseURL" toml:"baseURL"`
	Param   string `yaml:"param" toml:"param"`
	AppName string `yaml:"appName" toml:"appName"`
}

// IOS holds iOS-specific escape settings.
type IOS struct {
	ShortcutName string `yaml:"shortcutName" toml:"shortcutName"`
}

// Android holds Android-specific escape settings.
type Android struct {
	Package string `yaml:"package" toml:"package"`
}

// Metrics toggles the Prometheus endpoint.
type Metrics struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// Events limits page beacons per client IP.
type Events struct {
	RateLimit float64 `yaml:"rateLimit" toml:"rateLimit"`
	Burst     int     `yaml:"burst" toml:"burst"`
}

// Probe configures destination reachability checks. Interval 0 disables
// probing.
type Probe struct {
	Interval        time.Duration `yaml:"interval" toml:"interval"`
	Timeout         time.Duration `yaml:"timeout" toml:"timeout"`
	BreakerFailures uint32        `yaml:"breakerFailures" toml:"breakerFailures"`
	BreakerTimeout  time.Duration `yaml:"breakerTimeout" toml:"breakerTimeout"`
}

// Log configures the global logger.
type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen: ":8080",
		Destination: Destination{
			BaseURL: "https://peak.app/",
			Param:   target.DefaultParam,
			AppName: "Peak",
		},
		Timings: escape.DefaultTimings(),
		IOS:     IOS{ShortcutName: escape.DefaultShortcutName},
		Android: Android{Package: escape.DefaultAndroidPackage},
		Metrics: Metrics{Enabled: true},
		Events:  Events{RateLimit: 5, Burst: 20},
		Probe: Probe{
			Interval:        30 * time.Second,
			Timeout:         5 * time.Second,
			BreakerFailures: 5,
			BreakerTimeout:  60 * time.Second,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults. Files ending in .toml are read as TOML, anything else as
// YAML.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logutil.Debug("config file not found, using defaults", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			logutil.Warn("ignoring unknown config keys", "path", path, "keys", fmt.Sprint(undecoded))
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	if err := urlutil.ValidateHTTPSOnly(c.Destination.BaseURL); err != nil {
		return fmt.Errorf("destination.baseURL: %w", err)
	}
	if strings.TrimSpace(c.Destination.Param) == "" {
		return errors.New("destination.param must not be empty")
	}

	timings := map[string]time.Duration{
		"timings.iosStepDelay":   c.Timings.IOSStepDelay,
		"timings.iosTimeout":     c.Timings.IOSTimeout,
		"timings.androidTimeout": c.Timings.AndroidTimeout,
		"timings.copiedAck":      c.Timings.CopiedAck,
	}
	for name, d := range timings {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if c.Events.RateLimit < 0 {
		return fmt.Errorf("events.rateLimit must not be negative, got %v", c.Events.RateLimit)
	}
	if c.Events.RateLimit > 0 && c.Events.Burst < 1 {
		return fmt.Errorf("events.burst must be at least 1 when rate limiting, got %d", c.Events.Burst)
	}

	if c.Probe.Interval < 0 {
		return fmt.Errorf("probe.interval must not be negative, got %s", c.Probe.Interval)
	}
	if c.Probe.Interval > 0 && c.Probe.Timeout <= 0 {
		return fmt.Errorf("probe.timeout must be positive, got %s", c.Probe.Timeout)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// PlanOptions returns the escape plan options for this config.
func (c *Config) PlanOptions() escape.PlanOptions {
	return escape.PlanOptions{
		ShortcutName:   c.IOS.ShortcutName,
		AndroidPackage: c.Android.Package,
	}
}
