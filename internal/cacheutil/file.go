// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
)

// FileStore keeps one file per slot in a single directory.
type FileStore struct {
	Dir string
}

// Dir resolves the base cache directory.
// Precedence:
//  1. D2FRAMES_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/d2frames
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("D2FRAMES_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "d2frames"), true
	}
	return "", false
}

// EnsureDir creates the store's directory. Callers that have validated their
// inputs use it to fail before any network I/O when the directory is unusable.
func (s *FileStore) EnsureDir() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// EntryPath returns the path where the slot for clearKey would live and
// whether a file currently exists there.
func (s *FileStore) EntryPath(clearKey string) (string, bool) {
	p := filepath.Join(s.Dir, SlotName(clearKey))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

func (s *FileStore) Location(slot string) string {
	return filepath.Join(s.Dir, slot)
}

func (s *FileStore) Read(_ context.Context, slot string) ([]byte, error) {
	b, err := os.ReadFile(s.Location(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrMiss
	}
	return b, err
}

// Write stores data in the slot. Creates the directory as needed.
func (s *FileStore) Write(_ context.Context, slot string, data []byte) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	if err := os.WriteFile(s.Location(slot), data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// PurgeResult summarizes a Purge.
type PurgeResult struct {
	Files int
	Bytes uint64
}

// Purge removes slot files older than the provided number of hours. hours <= 0
// removes every slot. Only *.json files directly in Dir are considered. A
// missing directory is not an error.
func (s *FileStore) Purge(hours int) (PurgeResult, error) {
	var result PurgeResult
	maxAge := time.Duration(hours) * time.Hour

	err := filepath.WalkDir(s.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.Dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if path != s.Dir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if hours > 0 && time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		log.Debugf("removed cache file %s", path)
		result.Files++
		result.Bytes += uint64(info.Size())
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to purge cache: %w", err)
	}
	return result, nil
}
