// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/d2frames/internal/attrs"
	"github.com/staranto/d2frames/internal/config"
	"github.com/staranto/d2frames/internal/filters"
	"github.com/staranto/d2frames/internal/weapons"
)

// Options are the presentation flags shared by the commands.
type Options struct {
	Output string
	Filter string
	Sort   string
	Color  bool
	Titles bool
}

// OptionsFromCommand reads the presentation flags off cmd.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Output: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
	}
}

// SliceDiceSpit orchestrates sorting, filtering, transforming and rendering
// of a weapon list according to the options and attribute specifications.
func SliceDiceSpit(ws []weapons.Weapon, attrs attrs.AttrList, opts Options, sorter *weapons.Sorter, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	// Sort on the raw field values so collation and the damage order apply,
	// not on whatever the transforms produce.
	sorted := slices.Clone(ws)
	weapons.SortWeapons(sorted, opts.Sort, sorter)

	raw, err := json.Marshal(sorted)
	if err != nil {
		return fmt.Errorf("failed to encode weapons: %w", err)
	}

	filteredDataset := filters.FilterDataset(gjson.ParseBytes(raw), attrs, opts.Filter)
	log.Debugf("%d of %d weapons after filtering", len(filteredDataset), len(ws))

	// Transform each value in each row.
	for _, row := range filteredDataset {
		for _, attr := range attrs {
			if attr.TransformSpec != "" && attr.Key != "*" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	switch opts.Output {
	case "json":
		// TODO Keep the --attrs column order in json output; maps sort keys.
		jsonOutput, err := json.Marshal(included(filteredDataset, attrs))
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(jsonOutput))
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(included(filteredDataset, attrs))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(filteredDataset, attrs, opts, w)
		return nil
	}
}

// included drops the filter-only attributes from each row. An empty dataset
// encodes as [] rather than null.
func included(rows []map[string]interface{}, attrs attrs.AttrList) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		kept := make(map[string]interface{}, len(row))
		for _, attr := range attrs {
			if attr.Include {
				kept[attr.OutputKey] = row[attr.OutputKey]
			}
		}
		out = append(out, kept)
	}
	return out
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	opts Options,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	headerStyle, evenRowStyle, oddRowStyle := tableStyles(opts, w)

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range attrs {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	pad, _ := config.GetInt("padding", 0)
	log.Debugf("padding: %v", pad)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		var headers []string
		for _, attr := range attrs {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// tableStyles returns the header, even and odd row styles. Colors are only
// applied when asked for and w is a terminal.
func tableStyles(opts Options, w io.Writer) (header, even, odd lipgloss.Style) {
	header = lipgloss.NewStyle().Align(lipgloss.Left)
	cell := lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
	even, odd = cell, cell

	if opts.Color && isTerminalWriter(w) {
		headerColor, evenColor, oddColor := getColors("colors")

		header = header.Foreground(lipgloss.Color(headerColor))
		even = even.Foreground(lipgloss.Color(evenColor))
		odd = odd.Foreground(lipgloss.Color(oddColor))
	}
	return
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case uint32:
		return strconv.FormatUint(uint64(value), 10)
	case float64:
		// Hashes are the only numbers here and they are integers.
		return strconv.FormatFloat(value, 'f', 0, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
