// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders weapon lists and grouped reports as html, text
// tables, json or yaml.
package output
