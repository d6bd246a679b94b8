// Package fileutil writes files without ever leaving them half written.
//
// AtomicWriteFile writes to a temporary file in the target directory, syncs
// it and renames it over the destination, retrying the rename a few times to
// ride out transient races with other writers. It is used for the generated
// configuration file so an interrupted `escapehatch init` cannot leave a
// truncated config behind.
//
// Directories are created with DirPermission (0750) and files default to
// FilePermission (0644).
package fileutil
