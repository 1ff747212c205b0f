// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package weapons

import (
	"context"
	"math/rand"
	"slices"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/d2frames/internal/bungie"
	"github.com/staranto/d2frames/internal/bungie/bungietest"
	"github.com/staranto/d2frames/internal/cacheutil"
	"github.com/staranto/d2frames/internal/config"
)

func groupFixture() []Weapon {
	return []Weapon{
		{Hash: 1, Name: "Zeta", Type: "Auto Rifle", Frame: "Adaptive Frame", Damage: "Arc"},
		{Hash: 2, Name: "Alpha", Type: "Auto Rifle", Frame: "Adaptive Frame", Damage: "Arc"},
		{Hash: 3, Name: "Gamma", Type: "Auto Rifle", Frame: "Rapid-Fire Frame", Damage: "Solar"},
		{Hash: 4, Name: "Delta", Type: "Auto Rifle", Frame: "Rapid-Fire Frame", Damage: "Prismatic"},
		{Hash: 5, Name: "Echo", Type: "Hand Cannon", Frame: "Adaptive Frame", Damage: "Solar"},
		{Hash: 6, Name: "Beta", Type: "Hand Cannon", Frame: "Rapid-Fire Frame", Damage: "Arc"},
	}
}

func names(ws []Weapon) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Name
	}
	return out
}

func TestGroup(t *testing.T) {
	report := Group(groupFixture(), DefaultRules())
	require.Len(t, report.Tables, 2)

	ar := report.Tables[0]
	assert.Equal(t, "Auto Rifle", ar.WeaponType)
	assert.Equal(t, []string{"Prismatic", "Arc", "Solar"}, ar.DamageTypes)
	require.Len(t, ar.Rows, 2)

	assert.Equal(t, "Adaptive Frame", ar.Rows[0].Frame)
	require.Len(t, ar.Rows[0].Cells, 3)
	assert.Empty(t, ar.Rows[0].Cells[0].Weapons)
	assert.Equal(t, []string{"Alpha", "Zeta"}, names(ar.Rows[0].Cells[1].Weapons))
	assert.Empty(t, ar.Rows[0].Cells[2].Weapons)

	assert.Equal(t, "Rapid-Fire Frame", ar.Rows[1].Frame)
	assert.Equal(t, []string{"Delta"}, names(ar.Rows[1].Cells[0].Weapons))
	assert.Empty(t, ar.Rows[1].Cells[1].Weapons)
	assert.Equal(t, []string{"Gamma"}, names(ar.Rows[1].Cells[2].Weapons))

	hc := report.Tables[1]
	assert.Equal(t, "Hand Cannon", hc.WeaponType)
	assert.Equal(t, []string{"Arc", "Solar"}, hc.DamageTypes)
	assert.Equal(t, []string{"Echo"}, names(hc.Rows[0].Cells[1].Weapons))
	assert.Equal(t, []string{"Beta"}, names(hc.Rows[1].Cells[0].Weapons))
}

func TestGroup_Deterministic(t *testing.T) {
	rules := DefaultRules()
	want, err := json.Marshal(Group(groupFixture(), rules))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		ws := groupFixture()
		rng.Shuffle(len(ws), func(a, b int) { ws[a], ws[b] = ws[b], ws[a] })

		got, err := json.Marshal(Group(ws, rules))
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got))
	}
}

func TestGroup_CollationTiesAreStable(t *testing.T) {
	// U+00AD and U+200B are ignored by the collator but keep the strings distinct.
	ws := []Weapon{
		{Hash: 1, Name: "One", Type: "Auto Rifle", Frame: "Bow", Damage: "Arc"},
		{Hash: 2, Name: "Two", Type: "Auto Rifle", Frame: "Bow\u200b", Damage: "Arc"},
		{Hash: 3, Name: "Three", Type: "Auto Rifle\u00ad", Frame: "Bow", Damage: "Arc"},
	}
	rules := DefaultRules()
	want, err := json.Marshal(Group(ws, rules))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		shuffled := slices.Clone(ws)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		report := Group(shuffled, rules)
		got, err := json.Marshal(report)
		require.NoError(t, err)
		require.JSONEq(t, string(want), string(got))

		types := make([]string, len(report.Tables))
		for j, table := range report.Tables {
			types[j] = table.WeaponType
		}
		assert.Equal(t, []string{"Auto Rifle", "Auto Rifle\u00ad"}, types)

		ar := report.Tables[0]
		require.Len(t, ar.Rows, 2)
		assert.Equal(t, "Bow", ar.Rows[0].Frame)
		assert.Equal(t, "Bow\u200b", ar.Rows[1].Frame)
	}
}

func TestGroup_CellsAlignWithColumns(t *testing.T) {
	report := Group(groupFixture(), DefaultRules())
	for _, table := range report.Tables {
		for _, row := range table.Rows {
			require.Len(t, row.Cells, len(table.DamageTypes))
			for i, cell := range row.Cells {
				assert.Equal(t, table.DamageTypes[i], cell.DamageType)
				for _, w := range cell.Weapons {
					assert.Equal(t, table.WeaponType, w.Type)
					assert.Equal(t, row.Frame, w.Frame)
					assert.Equal(t, cell.DamageType, w.Damage)
				}
			}
		}
	}
}

func TestGroup_CollapsesReissues(t *testing.T) {
	ws := []Weapon{
		{Hash: 30, Name: "Reissued", Type: "Sidearm", Frame: "Lightweight Frame", Damage: "Void"},
		{Hash: 10, Name: "Reissued", Type: "Sidearm", Frame: "Lightweight Frame", Damage: "Void"},
		{Hash: 20, Name: "Other", Type: "Sidearm", Frame: "Lightweight Frame", Damage: "Void"},
	}
	report := Group(ws, DefaultRules())
	got := report.Tables[0].Rows[0].Cells[0].Weapons
	require.Len(t, got, 2)
	assert.Equal(t, "Other", got[0].Name)
	assert.Equal(t, uint32(10), got[1].Hash, "lowest hash of a reissued name is kept")
}

func TestGroup_UndefinedFrame(t *testing.T) {
	ws := []Weapon{
		{Hash: 1, Name: "Framed", Type: "Bow", Frame: "Lightweight Bow", Damage: "Kinetic"},
		{Hash: 2, Name: "Bare", Type: "Bow", Frame: "", Damage: "Kinetic"},
	}
	report := Group(ws, DefaultRules())
	rows := report.Tables[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0].Frame)
	assert.Equal(t, "Lightweight Bow", rows[1].Frame)
}

func TestGroup_Empty(t *testing.T) {
	report := Group(nil, DefaultRules())
	assert.Empty(t, report.Tables)
}

func TestSorter_CompareDamage(t *testing.T) {
	s := NewSorter(DefaultRules())
	got := []string{"Strand", "Void", "Kinetic", "Prismatic", "Arc", "Stasis", "Solar", "Darkness"}
	slices.SortFunc(got, s.CompareDamage)
	assert.Equal(t, []string{"Darkness", "Prismatic", "Kinetic", "Arc", "Solar", "Void", "Stasis", "Strand"}, got)
}

func TestSorter_Compare(t *testing.T) {
	s := NewSorter(DefaultRules())
	got := []string{"Zephyr", "ärgerlich", "Apple", "banana"}
	slices.SortFunc(got, s.Compare)
	assert.Equal(t, []string{"Apple", "ärgerlich", "banana", "Zephyr"}, got)

	tests := []struct {
		a, b string
		want int
	}{
		{"Bow", "Bow\u200b", -1},
		{"Bow\u200b", "Bow", 1},
		{"Hand\u00adCannon", "HandCannon", 1},
		{"Bow", "Bow", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Compare(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	srv := bungietest.NewServer(t, bungietest.Dir())
	cache := cacheutil.New(&cacheutil.FileStore{Dir: t.TempDir()})
	client, err := bungie.NewClient(srv.URL, config.Credentials{APIKey: "key", UserAgent: "d2frames-test"}, cache)
	require.NoError(t, err)

	cat, err := client.Catalogs(context.Background(), "en")
	require.NoError(t, err)

	ws, err := Normalize(cat, DefaultRules())
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.True(t, ws[0].Craftable)
	assert.Equal(t, "https://www.bungie.net/common/destiny2_content/icons/wm_s20.png", ws[0].Watermark)

	report := Group(ws, DefaultRules())
	require.Len(t, report.Tables, 1)
	table := report.Tables[0]
	assert.Equal(t, "Auto Rifle", table.WeaponType)
	assert.Equal(t, []string{"Arc"}, table.DamageTypes)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Rapid-Fire Frame", table.Rows[0].Frame)
	require.Len(t, table.Rows[0].Cells, 1)
	assert.Equal(t, "Arc", table.Rows[0].Cells[0].DamageType)
	assert.Equal(t, []string{"Test Rifle"}, names(table.Rows[0].Cells[0].Weapons))
}
