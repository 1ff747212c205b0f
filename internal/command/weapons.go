// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/d2frames/internal/attrs"
	"github.com/staranto/d2frames/internal/meta"
	"github.com/staranto/d2frames/internal/output"
	"github.com/staranto/d2frames/internal/weapons"
)

// WeaponsCommandAction is the action handler for the "weapons" subcommand. It
// lists the normalized weapons one per row.
func WeaponsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "weapons") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(weapons.Weapon{})) {
		return nil
	}

	al, err := BuildAttrs(cmd, attrs.DefaultSpec)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	ws, rules, err := LoadWeapons(ctx, cmd)
	if err != nil {
		return err
	}

	return output.SliceDiceSpit(ws, al, output.OptionsFromCommand(cmd), weapons.NewSorter(rules), Writer(cmd))
}

// WeaponsCommandBuilder constructs the cli.Command for "weapons".
func WeaponsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "weapons",
		Usage:     "flat list of legendary weapons",
		UsageText: "d2frames weapons [options]",
		Flags: []cli.Flag{
			newSchemaFlag(),
			NewOutputFlag("weapons", "text", "json", "yaml"),
			&cli.StringFlag{
				Name:    "attrs",
				Aliases: []string{"a"},
				Usage:   "comma-separated list of attributes to include in results",
				Validator: func(value string) error {
					return FlagValidators(value, JammedFlagValidator)
				},
			},
			&cli.StringFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "comma-separated list of attributes to sort the results by",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("weapons.sort", altsrc.StringSourcer(cfg.Source)),
				),
				Value: "type,frame,damage,name",
			},
		},
		Action: WeaponsCommandAction,
		Meta:   meta,
	}).Build()
}
