// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bungie

import (
	"fmt"
	"strings"
)

// successCode is the envelope ErrorCode for a successful platform call.
const successCode = 1

// UpstreamError reports a failed API call. There is no retry.
type UpstreamError struct {
	URL         string
	StatusCode  int
	ErrorCode   int64
	ErrorStatus string
	Message     string
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "upstream error from %s: HTTP %d", e.URL, e.StatusCode)
	if e.ErrorStatus != "" {
		fmt.Fprintf(&b, ", %s (%d)", e.ErrorStatus, e.ErrorCode)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	return b.String()
}
