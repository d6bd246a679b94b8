// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// # Basic Usage
//
//	// Initialize logging (typically in main.go)
//	logutil.SetupLogger(debug, structured)
//
//	// Or apply the log section of the config file
//	logutil.Configure(cfg.Log.Level, cfg.Log.Format)
//
//	logutil.Debug("classified request", "platform", env.Platform)
//	logutil.Info("server started", "addr", addr)
//	logutil.Error("render failed", "error", err)
//
// Component loggers carry a fixed "component" attribute:
//
//	log := logutil.NewLogger("page").WithLoad(loadID)
//	log.Info("escape page rendered", "host", env.Host)
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger
//   - Set ESCAPEHATCH_DEBUG=true environment variable
//
// # Structured Logging
//
// When structured=true is passed to SetupLogger, logs are output as JSON:
//
//	{"time":"2024-01-15T10:30:00Z","level":"INFO","msg":"server started","addr":":8080"}
package logutil
