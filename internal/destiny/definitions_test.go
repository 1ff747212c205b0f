// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package destiny

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuality_CurrentPowerCapHash(t *testing.T) {
	tests := []struct {
		name   string
		q      *Quality
		want   uint32
		wantOK bool
	}{
		{name: "nil", q: nil},
		{name: "no versions", q: &Quality{}},
		{
			name:   "current version",
			q:      &Quality{CurrentVersion: 1, Versions: []QualityVersion{{PowerCapHash: 1}, {PowerCapHash: 2}}},
			want:   2,
			wantOK: true,
		},
		{
			name: "out of range",
			q:    &Quality{CurrentVersion: 2, Versions: []QualityVersion{{PowerCapHash: 1}}},
		},
		{
			name: "negative",
			q:    &Quality{CurrentVersion: -1, Versions: []QualityVersion{{PowerCapHash: 1}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.q.CurrentPowerCapHash()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInventoryItem_DecodeCatalog(t *testing.T) {
	raw := `{
	  "3924212056": {
	    "hash": 3924212056,
	    "displayProperties": {"name": "Test Rifle", "icon": "/common/icon.jpg"},
	    "iconWatermark": "/common/wm.png",
	    "itemCategoryHashes": [1, 5],
	    "inventory": {"tierTypeHash": 4008398120},
	    "quality": {"currentVersion": 0, "versions": [{"powerCapHash": 2759499571}],
	                "displayVersionWatermarkIcons": ["/common/wm1.png"]},
	    "damageTypeHashes": [2303181850],
	    "sockets": {"socketEntries": [{"socketTypeHash": 1, "singleInitialItemHash": 2}]},
	    "tooltipNotifications": [{"displayString": "craft", "displayStyle": "ui_display_style_deepsight"}],
	    "unrelated": {"ignored": true}
	  }
	}`

	var items map[uint32]InventoryItem
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Contains(t, items, uint32(3924212056))

	item := items[3924212056]
	assert.Equal(t, "Test Rifle", item.DisplayProperties.Name)
	assert.Equal(t, []uint32{1, 5}, item.ItemCategoryHashes)
	assert.Equal(t, uint32(4008398120), item.Inventory.TierTypeHash)
	pc, ok := item.Quality.CurrentPowerCapHash()
	assert.True(t, ok)
	assert.Equal(t, uint32(2759499571), pc)
	require.NotNil(t, item.Sockets)
	assert.Equal(t, uint32(2), item.Sockets.SocketEntries[0].SingleInitialItemHash)
	assert.Equal(t, "ui_display_style_deepsight", item.TooltipNotifications[0].DisplayStyle)
}
