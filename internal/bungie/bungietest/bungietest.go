// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package bungietest serves a small synthetic manifest over httptest for
// tests of the client, the pipeline and the commands.
package bungietest

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// Server is an httptest server that serves testdata files and records what it
// was asked for.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
	dir      string
}

// Dir is the directory holding the bundled fixture files.
func Dir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata")
}

// NewServer starts a server over dir (usually Dir()). The manifest endpoint
// maps to manifest.json and each content path maps to <Component>.json.
func NewServer(t *testing.T, dir string) *Server {
	t.Helper()
	s := &Server{dir: dir}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Clone(r.Context()))
	s.mu.Unlock()

	var file string
	switch {
	case r.URL.Path == "/Platform/Destiny2/Manifest/":
		file = "manifest.json"
	case strings.HasPrefix(r.URL.Path, "/common/destiny2_content/json/"):
		name := path.Base(r.URL.Path)
		if i := strings.LastIndex(name, "-"); i > 0 {
			name = name[:i]
		}
		file = strings.TrimSuffix(name, ".json") + ".json"
	default:
		http.NotFound(w, r)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.dir, file))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// Requests returns a copy of the requests served so far.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}
