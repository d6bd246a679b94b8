// Package testutil provides shared testing utilities.
//
// This package includes:
//   - CaptureOutput, which captures stdout while a command runs
//   - UA* constants: real user-agent strings for iOS, Android and desktop
//     browsers and the in-app browsers of common social apps
//
// Example usage:
//
//	func TestClassifyInstagram(t *testing.T) {
//	    env := uaclass.Classify(testutil.UAiOSInstagram)
//	    assert.True(t, env.InApp)
//	}
package testutil
