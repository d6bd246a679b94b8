// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package launcher opens the local page server in the desktop browser.
//
// Launching is delegated to github.com/pkg/browser; this package adds URL
// validation, target selection (default, system, none) and a non-blocking
// call with a timeout.
//
//	err := launcher.Launch(launcher.LaunchOptions{
//	    URL:    "http://127.0.0.1:8080/?code=ABC",
//	    Target: launcher.TargetDefault,
//	})
//
// Only http:// and https:// URLs are accepted, so file:// and javascript:
// never reach the platform opener.
package launcher
