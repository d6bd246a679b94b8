// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"fmt"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ESCAPEHATCH_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from ESCAPEHATCH_* variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("LISTEN", &c.Listen)
	str("BASE_URL", &c.Destination.BaseURL)
	str("PARAM", &c.Destination.Param)
	str("APP_NAME", &c.Destination.AppName)
	str("SHORTCUT_NAME", &c.IOS.ShortcutName)
	str("ANDROID_PACKAGE", &c.Android.Package)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup(EnvPrefix + "METRICS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sMETRICS: %w", EnvPrefix, err)
		}
		c.Metrics.Enabled = b
	}

	durations := map[string]*time.Duration{
		"IOS_STEP_DELAY":  &c.Timings.IOSStepDelay,
		"IOS_TIMEOUT":     &c.Timings.IOSTimeout,
		"ANDROID_TIMEOUT": &c.Timings.AndroidTimeout,
		"PROBE_INTERVAL":  &c.Probe.Interval,
	}
	for name, dst := range durations {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
