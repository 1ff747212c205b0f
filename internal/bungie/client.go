// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bungie

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/staranto/d2frames/internal/cacheutil"
	"github.com/staranto/d2frames/internal/config"
)

// DefaultBaseURL is the API host. Manifest content paths and icon paths are
// relative to it.
const DefaultBaseURL = "https://www.bungie.net"

// Client issues authenticated GETs against the API.
type Client struct {
	BaseURL     *url.URL
	Credentials config.Credentials
	HTTP        *http.Client
	Cache       *cacheutil.Cache
}

// NewClient validates the credentials before anything else so a missing key
// fails before any cache or network I/O.
func NewClient(baseURL string, creds config.Credentials, cache *cacheutil.Cache) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: must be absolute", baseURL)
	}
	return &Client{
		BaseURL:     u,
		Credentials: creds,
		HTTP:        &http.Client{},
		Cache:       cache,
	}, nil
}

// Resolve turns a path such as /Platform/Destiny2/Manifest/ into the absolute
// URL used both for the request and as the cache key.
func (c *Client) Resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return c.BaseURL.ResolveReference(ref).String(), nil
}

// Get decodes the JSON document at path into v, serving it from the cache
// when possible. Only successful responses are cached.
func (c *Client) Get(ctx context.Context, path string, v any) error {
	u, err := c.Resolve(path)
	if err != nil {
		return err
	}

	if c.Cache.Get(ctx, u, v) {
		return nil
	}

	body, err := c.fetch(ctx, u)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", u, err)
	}

	if err := c.Cache.Put(ctx, u, json.RawMessage(body)); err != nil {
		log.WithError(err).Warnf("failed to write %s to cache", u)
	}

	return nil
}

func (c *Client) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.Credentials.UserAgent)
	req.Header.Set("X-API-Key", c.Credentials.APIKey)

	log.Debugf("fetching %s", u)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	log.Debugf("fetched %s (%d, %s)", u, resp.StatusCode, humanize.Bytes(uint64(doc.Len())))

	if err := checkResponse(u, resp.StatusCode, doc.Bytes()); err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}

// checkResponse maps a non-2xx status, a non-JSON or null body or an error
// envelope (ErrorCode other than 1) to an *UpstreamError. World component files have no
// envelope and pass on status alone.
func checkResponse(u string, status int, body []byte) error {
	envelope := gjson.ParseBytes(body)
	upstream := &UpstreamError{
		URL:         u,
		StatusCode:  status,
		ErrorCode:   envelope.Get("ErrorCode").Int(),
		ErrorStatus: envelope.Get("ErrorStatus").String(),
		Message:     envelope.Get("Message").String(),
	}

	if status < 200 || status > 299 {
		return upstream
	}
	if !gjson.ValidBytes(body) {
		upstream.Message = "response is not valid JSON"
		return upstream
	}
	if envelope.Type == gjson.Null {
		upstream.Message = "response is null"
		return upstream
	}
	if code := envelope.Get("ErrorCode"); code.Exists() && code.Int() != successCode {
		return upstream
	}
	return nil
}
