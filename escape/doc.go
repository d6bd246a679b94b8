// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package escape decides whether a page load should escape into the platform
// browser and drives the escape attempts.
//
// A load moves through idle, detecting, and then either immediate (plain
// navigation) or redirecting. While redirecting, the plan's steps fire on a
// Scheduler and a separate timeout runs alongside; whichever of sequence
// exhaustion and timeout arrives first moves the load to manual and cancels
// the other. No step reports success. If a step works, the page unloads and
// nothing else happens.
//
// The same Plan is serialised into the served page, where a small script
// executes it with identical timing.
package escape
