// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/staranto/d2frames/internal/attrs"
	"github.com/staranto/d2frames/internal/weapons"
)

func sample() []weapons.Weapon {
	return []weapons.Weapon{
		{Hash: 1, Name: "Alpha", Type: "Auto Rifle", Frame: "Rapid-Fire Frame", Damage: "Arc", Craftable: true},
		{Hash: 2, Name: "Beta", Type: "Hand Cannon", Frame: "Adaptive Frame", Damage: "Solar"},
		{Hash: 3, Name: "Gamma", Type: "Auto Rifle", Frame: "", Damage: "Void"},
	}
}

func sampleReport() weapons.Report {
	return weapons.Group([]weapons.Weapon{
		{
			Hash: 1000, Name: "Test Rifle", Type: "Auto Rifle", Frame: "Rapid-Fire Frame", Damage: "Arc",
			Craftable: true,
			Icon:      "https://www.bungie.net/common/destiny2_content/icons/test_rifle.jpg",
			Watermark: "https://www.bungie.net/common/destiny2_content/icons/wm_s20.png",
		},
		{Hash: 1001, Name: "Plain <Rifle>", Type: "Auto Rifle", Frame: "", Damage: "Solar"},
	}, weapons.DefaultRules())
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		emptyVal string
		want     string
	}{
		{name: "string", value: "Arc", want: "Arc"},
		{name: "int", value: 42, want: "42"},
		{name: "uint32 hash", value: uint32(3373582085), want: "3373582085"},
		{name: "float64 hash", value: float64(3373582085), want: "3373582085"},
		{name: "float64 rounds", value: 42.7, want: "43"},
		{name: "bool true", value: true, want: "true"},
		{name: "bool false is zero value", value: false, want: ""},
		{name: "nil default", value: nil, want: ""},
		{name: "nil custom", value: nil, emptyVal: "-", want: "-"},
		{name: "empty string custom", value: "", emptyVal: "-", want: "-"},
		{name: "slice", value: []string{"a", "b"}, want: `["a","b"]`},
		{name: "map", value: map[string]int{"x": 1}, want: `{"x":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			if tt.emptyVal != "" {
				got = InterfaceToString(tt.value, tt.emptyVal)
			} else {
				got = InterfaceToString(tt.value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTag(t *testing.T) {
	assert.Equal(t, Tag{Name: "icon", Kind: "string"}, NewTag("icon,omitempty", reflect.String))
	assert.Equal(t, Tag{Name: "hash", Kind: "uint32"}, NewTag("hash", reflect.Uint32))
	assert.Equal(t, Tag{}, NewTag("-", reflect.String))
	assert.Equal(t, Tag{}, NewTag(",omitempty", reflect.String))
}

func TestDumpSchemaWalker(t *testing.T) {
	tags := DumpSchemaWalker(reflect.TypeOf(weapons.Weapon{}))
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	assert.Equal(t, []string{"hash", "name", "type", "frame", "damage", "craftable", "icon", "watermark"}, names)
	assert.ElementsMatch(t, weapons.FieldNames, names)

	assert.Equal(t, tags, DumpSchemaWalker(reflect.TypeOf(&weapons.Weapon{})))
	assert.Nil(t, DumpSchemaWalker(reflect.TypeOf("")))
}

func TestDumpSchema(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(&buf, reflect.TypeOf(weapons.Weapon{}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Schema for Weapon --\n"))
	assert.Contains(t, out, "craftable  bool\n")

	buf.Reset()
	DumpSchema(&buf, reflect.TypeOf(struct{ X int }{}))
	assert.Empty(t, buf.String())
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")
	assert.Equal(t, "#f6be00", header)
	assert.Equal(t, "#ffffff", even)
	assert.Equal(t, "#00c8f0", odd)
}

func TestIsTerminalWriter(t *testing.T) {
	assert.False(t, isTerminalWriter(&bytes.Buffer{}))
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	al := attrs.Defaults()
	require.NoError(t, al.Set("name:Weapon:u,!damage"))

	var buf bytes.Buffer
	err := SliceDiceSpit(sample(), al, Options{
		Output: "json",
		Filter: "type=Auto Rifle",
		Sort:   "-name",
	}, weapons.NewSorter(weapons.DefaultRules()), &buf)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, map[string]interface{}{
		"Weapon": "GAMMA", "type": "Auto Rifle", "frame": "", "craftable": false,
	}, got[0])
	assert.Equal(t, "ALPHA", got[1]["Weapon"])
}

func TestSliceDiceSpit_FilterOnExcludedAttr(t *testing.T) {
	al := attrs.Defaults()
	require.NoError(t, al.Set("!damage"))

	var buf bytes.Buffer
	err := SliceDiceSpit(sample(), al, Options{Output: "json", Filter: "damage=Solar"},
		weapons.NewSorter(weapons.DefaultRules()), &buf)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Beta", got[0]["name"])
	assert.NotContains(t, got[0], "damage")
}

func TestSliceDiceSpit_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	err := SliceDiceSpit(sample(), attrs.Defaults(), Options{Output: "json", Filter: "name=Nobody"},
		weapons.NewSorter(weapons.DefaultRules()), &buf)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	var buf bytes.Buffer
	err := SliceDiceSpit(sample(), attrs.Defaults(), Options{Output: "yaml", Sort: "name"},
		weapons.NewSorter(weapons.DefaultRules()), &buf)
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Alpha", got[0]["name"])
	assert.Equal(t, true, got[0]["craftable"])
	assert.Equal(t, "Gamma", got[2]["name"])
}

func TestSliceDiceSpit_Text(t *testing.T) {
	var buf bytes.Buffer
	err := SliceDiceSpit(sample(), attrs.Defaults(), Options{Output: "text", Sort: "-name", Titles: true},
		weapons.NewSorter(weapons.DefaultRules()), &buf)
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[0], "craftable")
	assert.Contains(t, lines[1], "Gamma")
	assert.Contains(t, lines[3], "Alpha")
	assert.Contains(t, lines[3], "true")
	assert.NotContains(t, out, "\x1b[", "no color when not writing to a terminal")
}

func TestSliceDiceSpit_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := SliceDiceSpit(nil, attrs.Defaults(), Options{Output: "text"},
		weapons.NewSorter(weapons.DefaultRules()), &buf)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestReport_HTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), ReportOptions{}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, "<title>"+DefaultTitle+"</title>")
	assert.Contains(t, out, "<h2>Auto Rifle</h2>")
	assert.Contains(t, out, `<th class="damage damage-arc">Arc</th>`)
	assert.Contains(t, out, `<th class="damage damage-solar">Solar</th>`)
	assert.Contains(t, out, `<th scope="row">Rapid-Fire Frame</th>`)
	assert.Contains(t, out, `<th scope="row">-</th>`)
	assert.Contains(t, out, `<div class="weapon craftable" data-hash="1000">`)
	assert.Contains(t, out, `src="https://www.bungie.net/common/destiny2_content/icons/test_rifle.jpg"`)
	assert.Contains(t, out, `src="https://www.bungie.net/common/destiny2_content/icons/wm_s20.png"`)
	assert.Contains(t, out, `title="craftable"`)
	assert.Contains(t, out, "Plain &lt;Rifle&gt;")
	assert.NotContains(t, out, "Plain <Rifle>")

	// The undefined frame row sorts first.
	assert.Less(t, strings.Index(out, `<th scope="row">-</th>`), strings.Index(out, `<th scope="row">Rapid-Fire Frame</th>`))
}

func TestReport_HTMLOptions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, weapons.Report{}, ReportOptions{
		Options: Options{Output: "html"},
		Title:   "Waffen",
		Lang:    "de",
	}))
	out := buf.String()
	assert.Contains(t, out, `<html lang="de">`)
	assert.Contains(t, out, "<h1>Waffen</h1>")
	assert.Contains(t, out, "No weapons matched.")
}

func TestReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), ReportOptions{Options: Options{Output: "text", Titles: true}}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Auto Rifle\n"))
	assert.Contains(t, out, "Frame")
	assert.Contains(t, out, "Test Rifle*")
	assert.Contains(t, out, "Plain <Rifle>")
	assert.Contains(t, out, "Rapid-Fire Frame")
}

func TestReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()
	require.NoError(t, Report(&buf, report, ReportOptions{Options: Options{Output: "json"}}))

	var got weapons.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, report, got)
}

func TestReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), ReportOptions{Options: Options{Output: "yaml"}}))
	assert.Contains(t, buf.String(), "weaponType: Auto Rifle")
	assert.Contains(t, buf.String(), "name: Test Rifle")
}

type failingWriter struct{ writes int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errors.New("closed")
}

func TestReport_Errors(t *testing.T) {
	var buf bytes.Buffer
	err := Report(&buf, sampleReport(), ReportOptions{Options: Options{Output: "raw"}})
	assert.EqualError(t, err, "unsupported report output: raw")
	assert.Zero(t, buf.Len(), "nothing is written on failure")

	fw := &failingWriter{}
	err = Report(fw, sampleReport(), ReportOptions{})
	assert.Error(t, err)
	assert.Equal(t, 1, fw.writes)
}
