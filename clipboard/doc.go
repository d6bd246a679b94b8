// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package clipboard copies the destination URL so the user can paste it into
// another browser.
//
// A Copier tries its primary Writer and then its fallback. A successful copy
// raises a short-lived acknowledgment flag; a failure on both paths is
// silent and leaves the flag alone.
package clipboard
