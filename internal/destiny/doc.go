// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package destiny holds the subset of the Destiny 2 manifest definitions the
// report needs. Catalogs are keyed by the definition hash.
package destiny
