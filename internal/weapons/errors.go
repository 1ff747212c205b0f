// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package weapons

import (
	"fmt"
	"strconv"
	"strings"
)

// AmbiguousWeaponTypeError means an item matched more than one weapon-type
// category in a combination the rules do not cover. The rules need extending
// before the report can be trusted, so it is fatal.
type AmbiguousWeaponTypeError struct {
	Name   string
	Hash   uint32
	Hashes []uint32
}

func (e *AmbiguousWeaponTypeError) Error() string {
	hashes := make([]string, len(e.Hashes))
	for i, h := range e.Hashes {
		hashes[i] = strconv.FormatUint(uint64(h), 10)
	}
	return fmt.Sprintf("ambiguous weapon type for %q (%d): categories %s",
		e.Name, e.Hash, strings.Join(hashes, ", "))
}
