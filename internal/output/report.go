// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v2"

	"github.com/staranto/d2frames/internal/weapons"
)

// UndefinedFrame is shown in place of an empty frame name.
const UndefinedFrame = "-"

// DefaultTitle heads the html report.
const DefaultTitle = "Destiny 2 Legendary Weapons by Frame"

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"lower": strings.ToLower,
	"frame": frameLabel,
}).ParseFS(templatesFS, "templates/*.html"))

// ReportOptions control the rendering of a grouped report.
type ReportOptions struct {
	Options
	Title string
	Lang  string
}

type reportPage struct {
	Title  string
	Lang   string
	Tables []weapons.Table
}

// Report renders r in the requested format. Nothing is written to w unless
// rendering succeeds.
func Report(w io.Writer, r weapons.Report, opts ReportOptions) error {
	var buf bytes.Buffer

	switch opts.Output {
	case "", "html":
		if err := renderHTML(&buf, r, opts); err != nil {
			return err
		}
	case "text":
		renderText(&buf, r, opts.Options, w)
	case "json":
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		buf.Write(out)
		buf.WriteByte('\n')
	case "yaml":
		out, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		buf.Write(out)
	default:
		return fmt.Errorf("unsupported report output: %s", opts.Output)
	}

	_, err := buf.WriteTo(w)
	return err
}

func renderHTML(buf *bytes.Buffer, r weapons.Report, opts ReportOptions) error {
	page := reportPage{
		Title:  opts.Title,
		Lang:   opts.Lang,
		Tables: r.Tables,
	}
	if page.Title == "" {
		page.Title = DefaultTitle
	}
	if page.Lang == "" {
		page.Lang = "en"
	}
	if err := templates.ExecuteTemplate(buf, "report.html", page); err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}
	return nil
}

// renderText writes one table per weapon type, frames down the side and
// damage types across. Craftable weapons carry a trailing *. dest decides
// whether colors are used.
func renderText(buf *bytes.Buffer, r weapons.Report, opts Options, dest io.Writer) {
	headerStyle, evenRowStyle, oddRowStyle := tableStyles(opts, dest)

	for i, tbl := range r.Tables {
		if i > 0 {
			buf.WriteByte('\n')
		}
		if opts.Titles {
			fmt.Fprintln(buf, headerStyle.Render(tbl.WeaponType))
		}

		rows := make([][]string, 0, len(tbl.Rows))
		for _, row := range tbl.Rows {
			cells := []string{frameLabel(row.Frame)}
			for _, cell := range row.Cells {
				names := make([]string, 0, len(cell.Weapons))
				for _, w := range cell.Weapons {
					name := w.Name
					if w.Craftable {
						name += "*"
					}
					names = append(names, name)
				}
				cells = append(cells, strings.Join(names, "\n"))
			}
			rows = append(rows, cells)
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderRow(true).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle.Padding(0, 1)
				case row%2 == 0:
					return evenRowStyle.Padding(0, 1)
				default:
					return oddRowStyle.Padding(0, 1)
				}
			}).
			Headers(append([]string{"Frame"}, tbl.DamageTypes...)...).
			Rows(rows...)

		fmt.Fprintln(buf, t)
	}
}

func frameLabel(frame string) string {
	if frame == "" {
		return UndefinedFrame
	}
	return frame
}
