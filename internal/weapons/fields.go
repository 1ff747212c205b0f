// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package weapons

import (
	"cmp"
	"slices"
	"strings"

	"github.com/apex/log"
)

// FieldNames lists the keys accepted by Field, in display order.
var FieldNames = []string{"name", "type", "frame", "damage", "craftable", "hash", "icon", "watermark"}

// Field returns the value of the named field. Names are case-insensitive.
func Field(w Weapon, key string) (any, bool) {
	switch strings.ToLower(key) {
	case "hash":
		return w.Hash, true
	case "name":
		return w.Name, true
	case "type":
		return w.Type, true
	case "frame":
		return w.Frame, true
	case "damage":
		return w.Damage, true
	case "craftable":
		return w.Craftable, true
	case "icon":
		return w.Icon, true
	case "watermark":
		return w.Watermark, true
	default:
		return nil, false
	}
}

// SortWeapons stable-sorts ws by a comma-separated list of field names. A
// leading - sorts that field descending. Unknown fields are ignored.
func SortWeapons(ws []Weapon, spec string, s *Sorter) {
	if strings.TrimSpace(spec) == "" {
		return
	}

	type key struct {
		name string
		desc bool
	}
	var keys []key
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		desc := strings.HasPrefix(k, "-")
		k = strings.TrimPrefix(k, "-")
		if _, ok := Field(Weapon{}, k); !ok {
			log.Warnf("ignoring unknown sort key: %s", k)
			continue
		}
		keys = append(keys, key{name: strings.ToLower(k), desc: desc})
	}

	slices.SortStableFunc(ws, func(a, b Weapon) int {
		for _, k := range keys {
			av, _ := Field(a, k.name)
			bv, _ := Field(b, k.name)
			c := s.compareValues(k.name, av, bv)
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func (s *Sorter) compareValues(name string, a, b any) int {
	switch av := a.(type) {
	case uint32:
		return cmp.Compare(av, b.(uint32))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case string:
		if name == "damage" {
			return s.CompareDamage(av, b.(string))
		}
		return s.Compare(av, b.(string))
	}
	return 0
}
