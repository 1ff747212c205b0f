// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package weapons turns the raw manifest catalogs into normalized weapon
// records and groups them into per-type frame/damage tables.
package weapons
