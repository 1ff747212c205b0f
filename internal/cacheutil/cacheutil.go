// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
)

// ErrMiss is returned by a Store when a slot does not exist.
var ErrMiss = errors.New("cache miss")

var nullJSON = []byte("null")

// Store persists opaque slot contents. Slot names are produced by SlotName and
// are safe to use as file or object names.
type Store interface {
	Read(ctx context.Context, slot string) ([]byte, error)
	Write(ctx context.Context, slot string, data []byte) error
	// Location describes where a slot lives, for diagnostics.
	Location(slot string) string
}

// Entry represents a cached artifact.
// Key is the clear-text key; Slot is the hashed name.
type Entry struct {
	Key  string
	Slot string
	Path string
	Data []byte
}

// Cache is a JSON memoization layer over a Store. A nil Store or a disabled
// Cache always misses and never writes.
type Cache struct {
	Store   Store
	Enabled bool
}

// New returns an enabled Cache unless D2FRAMES_CACHE disables it.
func New(store Store) *Cache {
	return &Cache{Store: store, Enabled: Enabled()}
}

// Enabled returns true unless D2FRAMES_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("D2FRAMES_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Read returns the raw entry for key. The second return value is false on a
// miss or when the slot cannot be read.
func (c *Cache) Read(ctx context.Context, key string) (*Entry, bool) {
	if c == nil || !c.Enabled || c.Store == nil {
		return nil, false
	}
	slot := SlotName(key)
	data, err := c.Store.Read(ctx, slot)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			log.WithError(err).Debugf("cache read %s", c.Store.Location(slot))
		}
		return nil, false
	}
	return &Entry{
		Key:  key,
		Slot: slot,
		Path: c.Store.Location(slot),
		Data: bytes.TrimSpace(data),
	}, true
}

// Get decodes the value stored for key into v. It reports false when the slot
// is missing, unreadable, holds JSON null or does not hold well-formed JSON
// for v.
func (c *Cache) Get(ctx context.Context, key string, v any) bool {
	entry, ok := c.Read(ctx, key)
	if !ok {
		return false
	}
	if bytes.Equal(entry.Data, nullJSON) {
		log.Debugf("discarding null cache entry %s", entry.Path)
		return false
	}
	if err := json.Unmarshal(entry.Data, v); err != nil {
		log.WithError(err).Debugf("discarding malformed cache entry %s", entry.Path)
		reset(v)
		return false
	}
	log.Debugf("cache hit: %s (%s)", entry.Path, humanize.Bytes(uint64(len(entry.Data))))
	return true
}

// Put serializes v as JSON and stores it for key, overwriting any previous
// value.
func (c *Cache) Put(ctx context.Context, key string, v any) error {
	if c == nil || !c.Enabled || c.Store == nil {
		return nil // treat as disabled.
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	slot := SlotName(key)
	if err := c.Store.Write(ctx, slot, data); err != nil {
		return err
	}
	log.Debugf("cached %s as %s (%s)", key, c.Store.Location(slot), humanize.Bytes(uint64(len(data))))
	return nil
}

// reset zeroes whatever a failed decode left behind in v.
func reset(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
	}
}

// SlotName maps a clear-text key to its slot name: the hex MD5 of the key
// with a .json suffix.
func SlotName(key string) string {
	return encodeKey(key) + ".json"
}

// encodeKey hashes k with MD5 and returns the hex string.
func encodeKey(k string) string {
	h := md5.New()
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}
