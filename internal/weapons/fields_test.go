// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package weapons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestField(t *testing.T) {
	w := Weapon{Hash: 7, Name: "Test Rifle", Type: "Auto Rifle", Frame: "Rapid-Fire Frame", Damage: "Arc", Craftable: true}

	tests := []struct {
		key  string
		want any
		ok   bool
	}{
		{"name", "Test Rifle", true},
		{"NAME", "Test Rifle", true},
		{"hash", uint32(7), true},
		{"craftable", true, true},
		{"frame", "Rapid-Fire Frame", true},
		{"icon", "", true},
		{"season", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := Field(w, tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, name := range FieldNames {
		_, ok := Field(w, name)
		assert.True(t, ok, name)
	}
}

func TestSortWeapons(t *testing.T) {
	s := NewSorter(DefaultRules())

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{name: "empty spec keeps order", spec: "", want: []string{"Zeta", "Alpha", "Gamma", "Delta", "Echo", "Beta"}},
		{name: "by name", spec: "name", want: []string{"Alpha", "Beta", "Delta", "Echo", "Gamma", "Zeta"}},
		{name: "by name descending", spec: "-name", want: []string{"Zeta", "Gamma", "Echo", "Delta", "Beta", "Alpha"}},
		{name: "by damage then name", spec: "Damage,name", want: []string{"Delta", "Alpha", "Beta", "Zeta", "Echo", "Gamma"}},
		{name: "by type descending then hash", spec: "-type, hash", want: []string{"Echo", "Beta", "Zeta", "Alpha", "Gamma", "Delta"}},
		{name: "unknown key ignored", spec: "season,name", want: []string{"Alpha", "Beta", "Delta", "Echo", "Gamma", "Zeta"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := groupFixture()
			SortWeapons(ws, tt.spec, s)
			assert.Equal(t, tt.want, names(ws))
		})
	}
}

func TestSortWeapons_Craftable(t *testing.T) {
	ws := []Weapon{
		{Hash: 1, Name: "A", Craftable: true},
		{Hash: 2, Name: "B"},
		{Hash: 3, Name: "C", Craftable: true},
	}
	SortWeapons(ws, "-craftable,-hash", NewSorter(DefaultRules()))
	assert.Equal(t, []string{"C", "A", "B"}, names(ws))
}
