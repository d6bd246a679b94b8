// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File permissions
const (
	// DirPermission is the default permission for creating directories (rwxr-x---)
	DirPermission = 0750
	// FilePermission is the default permission for creating files (rw-r--r--)
	FilePermission = 0644
)

// renameAttempts bounds the rename retries in AtomicWriteFile.
const renameAttempts = 5

// ErrExists is returned by WriteNew when the destination already exists.
var ErrExists = errors.New("file already exists")

// AtomicWriteFile writes raw bytes to a file atomically.
// It writes to a temporary file first, then renames it to the target path.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	// A unique temp name keeps concurrent writers from renaming each
	// other's files.
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = tmpFile.Close() }()

	fail := func(format string, err error) error {
		_ = os.Remove(tmpPath)
		return fmt.Errorf(format, err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		return fail("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fail("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fail("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fail("failed to set file permissions: %w", err)
	}

	var renameErr error
	for attempt := 0; attempt < renameAttempts; attempt++ {
		if renameErr = os.Rename(tmpPath, path); renameErr == nil {
			break
		}
		if attempt < renameAttempts-1 {
			time.Sleep(time.Duration(20*(attempt+1)) * time.Millisecond) // 20ms, 40ms, 60ms, 80ms
		}
	}
	if renameErr != nil {
		return fail("failed to rename temp file: %w", renameErr)
	}

	return nil
}

// WriteNew atomically writes data to path, creating parent directories, and
// fails with ErrExists if path is already present.
func WriteNew(path string, data []byte, perm os.FileMode) error {
	if Exists(path) {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return AtomicWriteFile(path, data, perm)
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPermission); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
