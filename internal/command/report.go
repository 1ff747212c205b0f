// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/d2frames/internal/filters"
	"github.com/staranto/d2frames/internal/meta"
	"github.com/staranto/d2frames/internal/output"
	"github.com/staranto/d2frames/internal/weapons"
)

// ReportCommandAction is the action handler for the "report" subcommand. It
// fetches and normalizes the weapons, groups them by type, frame and damage
// type and renders the result.
func ReportCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "report") {
		return nil
	}

	ws, rules, err := LoadWeapons(ctx, cmd)
	if err != nil {
		return err
	}

	ws, err = filters.FilterWeapons(ws, cmd.String("filter"))
	if err != nil {
		return err
	}

	report := weapons.Group(ws, rules)
	log.Debugf("report: %d weapons in %d tables", len(ws), len(report.Tables))

	opts := output.ReportOptions{
		Options: output.OptionsFromCommand(cmd),
		Title:   cmd.String("title"),
		Lang:    cmd.String("lang"),
	}

	out := cmd.String("out")
	if out == "" || out == "-" {
		return output.Report(Writer(cmd), report, opts)
	}

	var buf bytes.Buffer
	if err := output.Report(&buf, report, opts); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.Infof("wrote %s (%s)", out, humanize.Bytes(uint64(buf.Len())))
	return nil
}

// ReportCommandBuilder constructs the cli.Command for "report".
func ReportCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "report",
		Usage:     "legendary weapons grouped by type, frame and damage type",
		UsageText: "d2frames report [options]",
		Flags: []cli.Flag{
			NewOutputFlag("report", "html", "text", "json", "yaml"),
			&cli.StringFlag{
				Name:  "out",
				Usage: "write the report to this file instead of stdout",
			},
			NameSpacedValueChainFlagFromConfigFile("report", cfg.Source, &cli.StringFlag{
				Name:  "title",
				Usage: "html report title",
				Value: output.DefaultTitle,
			}),
		},
		Action: ReportCommandAction,
		Meta:   meta,
	}).Build()
}
