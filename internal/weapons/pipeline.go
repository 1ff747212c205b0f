// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package weapons

import (
	"net/url"
	"slices"
	"strings"

	"github.com/apex/log"
	"github.com/samber/lo"

	"github.com/staranto/d2frames/internal/destiny"
)

// Weapon is a fully resolved legendary weapon. An empty Frame means the item
// has no intrinsic trait socket.
type Weapon struct {
	Hash      uint32 `json:"hash" yaml:"hash"`
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Frame     string `json:"frame" yaml:"frame"`
	Damage    string `json:"damage" yaml:"damage"`
	Craftable bool   `json:"craftable" yaml:"craftable"`
	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Watermark string `json:"watermark,omitempty" yaml:"watermark,omitempty"`
}

// Normalize filters the item catalog down to eligible weapons and resolves
// their attributes. Items are visited in hash order so the result, and the
// first ambiguity reported, never depend on map iteration.
func Normalize(cat *destiny.Catalogs, rules Rules) ([]Weapon, error) {
	hashes := lo.Keys(cat.Items)
	slices.Sort(hashes)

	var result []Weapon
	for _, h := range hashes {
		item := cat.Items[h]
		if !Eligible(cat, rules, item) {
			continue
		}

		weaponType, ok, err := WeaponType(cat, rules, item)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Warnf("dropping %q (%d): no weapon type", item.DisplayProperties.Name, item.Hash)
			continue
		}

		damage, ok := DamageType(cat, item)
		if !ok {
			log.Debugf("dropping %q (%d): no damage type", item.DisplayProperties.Name, item.Hash)
			continue
		}

		result = append(result, Weapon{
			Hash:      item.Hash,
			Name:      item.DisplayProperties.Name,
			Type:      weaponType,
			Frame:     IntrinsicFrame(cat, rules, item),
			Damage:    damage,
			Craftable: Craftable(rules, item),
			Icon:      resolveIcon(rules.IconBase, item.DisplayProperties.Icon),
			Watermark: resolveIcon(rules.IconBase, watermark(item)),
		})
	}

	log.Debugf("normalized %d weapons from %d items", len(result), len(hashes))
	return result, nil
}

// Eligible reports whether item is a non-sunset legendary weapon. An item
// whose power cap cannot be resolved is not eligible.
func Eligible(cat *destiny.Catalogs, rules Rules, item destiny.InventoryItem) bool {
	if !lo.Contains(item.ItemCategoryHashes, rules.WeaponCategory) {
		return false
	}
	if item.Inventory.TierTypeHash != rules.Tier {
		return false
	}
	if lo.Contains(item.ItemCategoryHashes, rules.DummyCategory) {
		return false
	}
	capHash, ok := item.Quality.CurrentPowerCapHash()
	if !ok {
		return false
	}
	powerCap, ok := cat.PowerCaps[capHash]
	if !ok {
		return false
	}
	return powerCap.PowerCap > rules.SunsetPowerCap
}

// WeaponType resolves the weapon-type label. The second return value is false
// when the item matches no weapon-type category or the category has no
// definition.
func WeaponType(cat *destiny.Catalogs, rules Rules, item destiny.InventoryItem) (string, bool, error) {
	matches := lo.Uniq(lo.Filter(item.ItemCategoryHashes, func(h uint32, _ int) bool {
		return slices.Contains(rules.WeaponTypes, h)
	}))

	var chosen uint32
	switch len(matches) {
	case 0:
		return "", false, nil
	case 1:
		chosen = matches[0]
	default:
		if len(matches) == 2 &&
			slices.Contains(matches, rules.OverlapGeneric) &&
			slices.Contains(matches, rules.OverlapPreferred) {
			chosen = rules.OverlapPreferred
			break
		}
		return "", false, &AmbiguousWeaponTypeError{
			Name:   item.DisplayProperties.Name,
			Hash:   item.Hash,
			Hashes: matches,
		}
	}

	category, ok := cat.ItemCategories[chosen]
	if !ok || category.DisplayProperties.Name == "" {
		return "", false, nil
	}
	return category.DisplayProperties.Name, true, nil
}

// DamageType resolves the item's first declared damage type.
func DamageType(cat *destiny.Catalogs, item destiny.InventoryItem) (string, bool) {
	if len(item.DamageTypeHashes) == 0 {
		return "", false
	}
	damage, ok := cat.DamageTypes[item.DamageTypeHashes[0]]
	if !ok || damage.DisplayProperties.Name == "" {
		return "", false
	}
	return damage.DisplayProperties.Name, true
}

// IntrinsicFrame returns the aliased name of the plug in the item's first
// intrinsic trait socket, or "" when there is none.
func IntrinsicFrame(cat *destiny.Catalogs, rules Rules, item destiny.InventoryItem) string {
	if item.Sockets == nil {
		return ""
	}
	for _, entry := range item.Sockets.SocketEntries {
		socketType, ok := cat.SocketTypes[entry.SocketTypeHash]
		if !ok {
			continue
		}
		category, ok := cat.SocketCategories[socketType.SocketCategoryHash]
		if !ok || category.DisplayProperties.Name != rules.IntrinsicSocketCategory {
			continue
		}
		plug, ok := cat.Items[entry.SingleInitialItemHash]
		if !ok {
			return ""
		}
		return rules.Alias(plug.DisplayProperties.Name)
	}
	return ""
}

// Craftable reports whether any tooltip notification carries the craftable
// marker in its display style.
func Craftable(rules Rules, item destiny.InventoryItem) bool {
	marker := strings.ToLower(rules.CraftableMarker)
	return lo.SomeBy(item.TooltipNotifications, func(n destiny.TooltipNotification) bool {
		return strings.Contains(strings.ToLower(n.DisplayStyle), marker)
	})
}

// watermark prefers the newest per-version watermark over the legacy field.
func watermark(item destiny.InventoryItem) string {
	if item.Quality != nil && len(item.Quality.DisplayVersionWatermarkIcons) > 0 {
		icons := item.Quality.DisplayVersionWatermarkIcons
		if last := icons[len(icons)-1]; last != "" {
			return last
		}
	}
	return item.IconWatermark
}

func resolveIcon(base, p string) string {
	if p == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return p
	}
	ref, err := url.Parse(p)
	if err != nil {
		return p
	}
	return b.ResolveReference(ref).String()
}
