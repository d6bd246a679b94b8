// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jongio/escapehatch/fileutil"
)

const sampleHeader = `# escapehatch configuration
#
# Settings can be overridden with ESCAPEHATCH_* environment variables
# (e.g. ESCAPEHATCH_BASE_URL) and then with command-line flags.
#
#   listen:              Address the page server listens on
#   destination.baseURL: Where users are sent (https, or http on localhost)
#   destination.param:   Query parameter passed through to the destination
#   destination.appName: Name shown on the loading screen
#   timings.*:           Escape delays (iOS step delay and timeout, Android
#                        timeout, copy acknowledgment)
#   ios.shortcutName:    Shortcuts automation tried as an escape method
#   android.package:     Browser package named in the intent URL
#   metrics.enabled:     Expose Prometheus metrics on /metrics
#   events.rateLimit:    Page beacons per second per client IP (0 = unlimited)
#   events.burst:        Beacon burst size
#   probe.interval:      Destination reachability check interval (0 = off)
#   probe.timeout:       Per-check timeout
#   probe.breakerFailures: Consecutive failures before the breaker opens
#   log.level:           debug, info, warn or error
#   log.format:          text or json

`

// SaveSample writes the default configuration with a commented header to
// path. It refuses to overwrite an existing file.
func SaveSample(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fileutil.WriteNew(path, []byte(sampleHeader+string(data)), fileutil.FilePermission); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
