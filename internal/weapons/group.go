// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package weapons

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Report is one Table per weapon type, ordered by weapon type.
type Report struct {
	Tables []Table `json:"tables" yaml:"tables"`
}

// Table holds the weapons of one type. DamageTypes are the columns, only
// those present for the type; each Row has one Cell per column.
type Table struct {
	WeaponType  string   `json:"weaponType" yaml:"weaponType"`
	DamageTypes []string `json:"damageTypes" yaml:"damageTypes"`
	Rows        []Row    `json:"rows" yaml:"rows"`
}

type Row struct {
	Frame string `json:"frame" yaml:"frame"`
	Cells []Cell `json:"cells" yaml:"cells"`
}

type Cell struct {
	DamageType string   `json:"damageType" yaml:"damageType"`
	Weapons    []Weapon `json:"weapons" yaml:"weapons"`
}

// Sorter orders names the way the report does: collated strings, and damage
// types by the canonical elemental order.
type Sorter struct {
	collator    *collate.Collator
	damageOrder []string
}

// NewSorter returns a Sorter for English collation. A Sorter is not safe for
// concurrent use.
func NewSorter(rules Rules) *Sorter {
	return &Sorter{
		collator:    collate.New(language.English),
		damageOrder: rules.DamageOrder,
	}
}

// Compare collates a and b. Distinct strings the collator treats as equal,
// such as ones differing only by an ignorable code point, fall back to byte
// order so the result is total.
func (s *Sorter) Compare(a, b string) int {
	if c := s.collator.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// CompareDamage orders by position in the canonical order. A damage type
// missing from the order takes position -1, so it sorts ahead of the
// canonical ones; ties fall back to collation.
func (s *Sorter) CompareDamage(a, b string) int {
	if c := cmp.Compare(slices.Index(s.damageOrder, a), slices.Index(s.damageOrder, b)); c != 0 {
		return c
	}
	return s.Compare(a, b)
}

// CompareWeapons orders by collated name, then hash.
func (s *Sorter) CompareWeapons(a, b Weapon) int {
	if c := s.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Hash, b.Hash)
}

// Group builds the report tables. The same weapons always produce the same
// report regardless of their input order.
func Group(ws []Weapon, rules Rules) Report {
	s := NewSorter(rules)

	byType := lo.GroupBy(ws, func(w Weapon) string { return w.Type })
	types := lo.Keys(byType)
	slices.SortFunc(types, s.Compare)

	report := Report{Tables: make([]Table, 0, len(types))}
	for _, weaponType := range types {
		ofType := byType[weaponType]

		damageTypes := lo.Uniq(lo.Map(ofType, func(w Weapon, _ int) string { return w.Damage }))
		slices.SortFunc(damageTypes, s.CompareDamage)

		byFrame := lo.GroupBy(ofType, func(w Weapon) string { return w.Frame })
		frames := lo.Keys(byFrame)
		slices.SortFunc(frames, s.Compare)

		table := Table{
			WeaponType:  weaponType,
			DamageTypes: damageTypes,
			Rows:        make([]Row, 0, len(frames)),
		}
		for _, frame := range frames {
			byDamage := lo.GroupBy(byFrame[frame], func(w Weapon) string { return w.Damage })
			row := Row{Frame: frame, Cells: make([]Cell, 0, len(damageTypes))}
			for _, damage := range damageTypes {
				row.Cells = append(row.Cells, Cell{
					DamageType: damage,
					Weapons:    s.bucket(byDamage[damage]),
				})
			}
			table.Rows = append(table.Rows, row)
		}
		report.Tables = append(report.Tables, table)
	}

	return report
}

// bucket sorts a cell's weapons and collapses reissues sharing a name to the
// first in order.
func (s *Sorter) bucket(ws []Weapon) []Weapon {
	sorted := slices.Clone(ws)
	slices.SortFunc(sorted, s.CompareWeapons)
	out := lo.UniqBy(sorted, func(w Weapon) string { return w.Name })
	if out == nil {
		out = []Weapon{}
	}
	return out
}
