// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"github.com/spf13/pflag"
)

// Flag names bound by RegisterFlags.
const (
	FlagListen   = "listen"
	FlagBaseURL  = "base-url"
	FlagParam    = "param"
	FlagAppName  = "app-name"
	FlagMetrics  = "metrics"
	FlagLogLevel = "log-level"
)

// RegisterFlags adds the overridable settings to fs. Defaults shown in help
// come from Default; only flags the user sets are applied.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagListen, d.Listen, "Address to listen on")
	fs.String(FlagBaseURL, d.Destination.BaseURL, "Destination base URL")
	fs.String(FlagParam, d.Destination.Param, "Pass-through query parameter")
	fs.String(FlagAppName, d.Destination.AppName, "Destination app name shown while loading")
	fs.Bool(FlagMetrics, d.Metrics.Enabled, "Expose Prometheus metrics on /metrics")
	fs.String(FlagLogLevel, d.Log.Level, "Log level (debug, info, warn, error)")
}

// ApplyFlags copies every flag that was explicitly set on fs into c.
// Flags that were never registered are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagListen:
			c.Listen = f.Value.String()
		case FlagBaseURL:
			c.Destination.BaseURL = f.Value.String()
		case FlagParam:
			c.Destination.Param = f.Value.String()
		case FlagAppName:
			c.Destination.AppName = f.Value.String()
		case FlagMetrics:
			c.Metrics.Enabled, err = fs.GetBool(FlagMetrics)
		case FlagLogLevel:
			c.Log.Level = f.Value.String()
		}
	})
	return err
}

// Resolve loads path, then applies the environment and flags, and validates
// the result.
func Resolve(path string, lookup LookupFunc, fs *pflag.FlagSet) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if lookup != nil {
		if err := cfg.ApplyEnv(lookup); err != nil {
			return nil, err
		}
	}
	if fs != nil {
		if err := cfg.ApplyFlags(fs); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
