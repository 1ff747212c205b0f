// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil memoizes API responses in content-addressed slots, one per
// request key, backed by a local directory or an S3 bucket.
package cacheutil
