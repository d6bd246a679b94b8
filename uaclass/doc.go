// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package uaclass classifies the environment a page is running in from its
// user-agent string.
//
// Classification is a pure function of the string: the same input always
// yields the same Environment, which makes user-agent fixtures usable as
// deterministic test cases.
//
// # Example
//
//	env := uaclass.Classify(r.UserAgent())
//	if env.IsMobile() && !env.DefaultBrowser {
//		// try to escape to env.ExpectedDefault()
//	}
//
// # Priority
//
// Predicates are independent and several may match. The displayed browser
// resolves in this order:
//   - a named host app (Instagram, Messenger, Facebook, Twitter, LinkedIn,
//     TikTok, Snapchat, Pinterest, LINE, WeChat)
//   - a generic WebView (Android "wv" token, or iOS WebKit without Safari)
//   - the browser product (Samsung, Edge, Opera, Firefox, Brave, Chrome, Safari)
//
// A user agent with no iOS or Android marker is Desktop and is never
// redirected, whatever else it matches.
package uaclass
