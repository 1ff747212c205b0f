// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package bungie is a small read-only client for the Bungie.net Destiny 2 API.
// Every GET goes through the response cache first.
package bungie
