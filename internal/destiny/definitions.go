// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package destiny

// Manifest component names, as used in jsonWorldComponentContentPaths.
const (
	DamageTypeDefinition     = "DestinyDamageTypeDefinition"
	SocketTypeDefinition     = "DestinySocketTypeDefinition"
	SocketCategoryDefinition = "DestinySocketCategoryDefinition"
	ItemCategoryDefinition   = "DestinyItemCategoryDefinition"
	PowerCapDefinition       = "DestinyPowerCapDefinition"
	InventoryItemDefinition  = "DestinyInventoryItemDefinition"
)

// DisplayProperties is shared by most definitions.
type DisplayProperties struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type DamageType struct {
	Hash              uint32            `json:"hash"`
	DisplayProperties DisplayProperties `json:"displayProperties"`
}

type SocketType struct {
	Hash               uint32 `json:"hash"`
	SocketCategoryHash uint32 `json:"socketCategoryHash"`
}

type SocketCategory struct {
	Hash              uint32            `json:"hash"`
	DisplayProperties DisplayProperties `json:"displayProperties"`
}

type ItemCategory struct {
	Hash              uint32            `json:"hash"`
	DisplayProperties DisplayProperties `json:"displayProperties"`
}

type PowerCap struct {
	Hash     uint32 `json:"hash"`
	PowerCap int    `json:"powerCap"`
}

type InventoryItem struct {
	Hash                 uint32                `json:"hash"`
	DisplayProperties    DisplayProperties     `json:"displayProperties"`
	IconWatermark        string                `json:"iconWatermark,omitempty"`
	ItemCategoryHashes   []uint32              `json:"itemCategoryHashes,omitempty"`
	Inventory            Inventory             `json:"inventory"`
	Quality              *Quality              `json:"quality,omitempty"`
	DamageTypeHashes     []uint32              `json:"damageTypeHashes,omitempty"`
	Sockets              *Sockets              `json:"sockets,omitempty"`
	TooltipNotifications []TooltipNotification `json:"tooltipNotifications,omitempty"`
}

type Inventory struct {
	TierTypeHash uint32 `json:"tierTypeHash"`
}

type Quality struct {
	CurrentVersion               int              `json:"currentVersion"`
	Versions                     []QualityVersion `json:"versions"`
	DisplayVersionWatermarkIcons []string         `json:"displayVersionWatermarkIcons,omitempty"`
}

type QualityVersion struct {
	PowerCapHash uint32 `json:"powerCapHash"`
}

// CurrentPowerCapHash returns the power cap hash of the current version, or
// false if the item has no such version.
func (q *Quality) CurrentPowerCapHash() (uint32, bool) {
	if q == nil || q.CurrentVersion < 0 || q.CurrentVersion >= len(q.Versions) {
		return 0, false
	}
	return q.Versions[q.CurrentVersion].PowerCapHash, true
}

type Sockets struct {
	SocketEntries []SocketEntry `json:"socketEntries"`
}

type SocketEntry struct {
	SocketTypeHash        uint32 `json:"socketTypeHash"`
	SingleInitialItemHash uint32 `json:"singleInitialItemHash"`
}

type TooltipNotification struct {
	DisplayString string `json:"displayString,omitempty"`
	DisplayStyle  string `json:"displayStyle,omitempty"`
}

// Catalogs are the manifest tables the weapon pipeline reads.
type Catalogs struct {
	DamageTypes      map[uint32]DamageType
	SocketTypes      map[uint32]SocketType
	SocketCategories map[uint32]SocketCategory
	ItemCategories   map[uint32]ItemCategory
	PowerCaps        map[uint32]PowerCap
	Items            map[uint32]InventoryItem
}
