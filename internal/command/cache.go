// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/d2frames/internal/meta"
)

// CachePathAction prints the slot file for each key given, marking the ones
// that exist.
func CachePathAction(ctx context.Context, cmd *cli.Command) error {
	keys := cmd.Args().Slice()
	if len(keys) == 0 {
		return errors.New("usage: d2frames cache path <url>...")
	}

	store, err := NewFileStore(cmd)
	if err != nil {
		return err
	}

	w := Writer(cmd)
	for _, key := range keys {
		p, exists := store.EntryPath(key)
		if cmd.Bool("titles") {
			state := "missing"
			if exists {
				state = "cached"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", p, state, key)
			continue
		}
		fmt.Fprintln(w, p)
	}
	return nil
}

// CachePurgeAction removes cache slots older than --hours.
func CachePurgeAction(ctx context.Context, cmd *cli.Command) error {
	store, err := NewFileStore(cmd)
	if err != nil {
		return err
	}

	hours := int(cmd.Int("hours"))
	res, err := store.Purge(hours)
	if err != nil {
		return err
	}
	log.Debugf("purged %s older than %dh", store.Dir, hours)

	fmt.Fprintf(Writer(cmd), "removed %d files (%s) from %s\n",
		res.Files, humanize.Bytes(res.Bytes), store.Dir)
	return nil
}

// CacheCommandBuilder constructs the "cache" command and its subcommands.
func CacheCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "cache",
		Usage:     "inspect and clean the response cache",
		UsageText: "d2frames cache <path|purge> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Commands: []*cli.Command{
			{
				Name:      "path",
				Usage:     "print the cache file for a request url",
				UsageText: "d2frames cache path [--titles] <url>...",
				Flags: []cli.Flag{
					NewCacheFlags()[0],
					&cli.BoolFlag{
						Name:    "titles",
						Aliases: []string{"t"},
						Usage:   "also show whether the entry exists and its key",
					},
				},
				Action: CachePathAction,
			},
			{
				Name:      "purge",
				Usage:     "remove cache files older than --hours",
				UsageText: "d2frames cache purge [--hours N]",
				Flags: []cli.Flag{
					NewCacheFlags()[0],
					&cli.IntFlag{
						Name:  "hours",
						Usage: "age in hours; 0 removes everything",
						Sources: cli.NewValueSourceChain(
							yaml.YAML("cache.clean", altsrc.StringSourcer(cfg.Source)),
						),
						Value: 0,
					},
				},
				Action: CachePurgeAction,
			},
		},
	}
}
