// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package weapons

import (
	"maps"
	"slices"

	"github.com/staranto/d2frames/internal/bungie"
)

// Item category hashes referenced by the default rules.
const (
	CategoryWeapon            uint32 = 1
	CategoryFusionRifle       uint32 = 9
	CategoryLinearFusionRifle uint32 = 1504945536
	CategoryDummy             uint32 = 3109687656
	TierLegendary             uint32 = 4008398120
)

// Rules is the configuration data the pipeline runs against. Treat a Rules
// value as immutable; use the With* methods to derive a modified copy.
type Rules struct {
	WeaponCategory uint32
	DummyCategory  uint32
	Tier           uint32
	// SunsetPowerCap is exclusive: an item's cap must be strictly greater.
	SunsetPowerCap int
	// WeaponTypes is the allow-list of weapon-type item categories.
	WeaponTypes []uint32
	// An item carrying exactly OverlapGeneric and OverlapPreferred resolves to
	// OverlapPreferred.
	OverlapGeneric          uint32
	OverlapPreferred        uint32
	IntrinsicSocketCategory string
	CraftableMarker         string
	FrameAliases            map[string]string
	DamageOrder             []string
	IconBase                string
}

// DefaultRules returns a fresh copy of the built-in rules.
func DefaultRules() Rules {
	return Rules{
		WeaponCategory: CategoryWeapon,
		DummyCategory:  CategoryDummy,
		Tier:           TierLegendary,
		SunsetPowerCap: 9999,
		WeaponTypes: []uint32{
			5,          // Auto Rifle
			6,          // Hand Cannon
			7,          // Pulse Rifle
			8,          // Scout Rifle
			9,          // Fusion Rifle
			10,         // Sniper Rifle
			11,         // Shotgun
			12,         // Machine Gun
			13,         // Rocket Launcher
			14,         // Sidearm
			54,         // Sword
			153950757,  // Grenade Launcher
			1504945536, // Linear Fusion Rifle
			2489664120, // Trace Rifle
			3317538576, // Bow
			3954685534, // Submachine Gun
		},
		OverlapGeneric:          CategoryFusionRifle,
		OverlapPreferred:        CategoryLinearFusionRifle,
		IntrinsicSocketCategory: "INTRINSIC TRAITS",
		CraftableMarker:         "deepsight",
		FrameAliases: map[string]string{
			"Häkke Precision Frame": "Precision Frame",
			"VEIST Rapid-Fire":      "Rapid-Fire Frame",
			"Omolon Adaptive Frame": "Adaptive Frame",
		},
		DamageOrder: []string{"Kinetic", "Arc", "Solar", "Void", "Stasis", "Strand"},
		IconBase:    bungie.DefaultBaseURL,
	}
}

// WithAliases returns a copy of r whose alias table is r's overlaid with
// extra. r is not modified.
func (r Rules) WithAliases(extra map[string]string) Rules {
	out := r.clone()
	maps.Copy(out.FrameAliases, extra)
	return out
}

// WithIconBase returns a copy of r resolving icons against base.
func (r Rules) WithIconBase(base string) Rules {
	out := r.clone()
	out.IconBase = base
	return out
}

// Alias maps a frame name to its canonical name, or returns it unchanged.
func (r Rules) Alias(name string) string {
	if canonical, ok := r.FrameAliases[name]; ok {
		return canonical
	}
	return name
}

func (r Rules) clone() Rules {
	out := r
	out.WeaponTypes = slices.Clone(r.WeaponTypes)
	out.DamageOrder = slices.Clone(r.DamageOrder)
	out.FrameAliases = maps.Clone(r.FrameAliases)
	if out.FrameAliases == nil {
		out.FrameAliases = map[string]string{}
	}
	return out
}
