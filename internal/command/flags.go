// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/d2frames/internal/bungie"
	"github.com/staranto/d2frames/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

// newSchemaFlag and newTLDRFlag return fresh flags per command. A flag keeps
// its parsed value, so the same instance must not be shared.
func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the weapon attributes and exit",
		HideDefault: true,
	}
}

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the presentation flags shared by the query commands.
// params[0] is the command namespace used for config lookups.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(params[0]+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewOutputFlag constructs the --output flag for a command that supports the
// given formats. The first format is the default.
func NewOutputFlag(ns string, formats ...string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Sources: cli.NewValueSourceChain(
			yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
		),
		Value: formats[0],
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator(formats...))
		},
	}
}

// NewAPIFlags constructs the flags that locate and authenticate against the
// Bungie.net API.
func NewAPIFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Bungie.net API key",
			Sources: envChain(config.APIKeyEnv...),
		},
		&cli.StringFlag{
			Name:    "user-agent",
			Usage:   "User-Agent sent with every request",
			Sources: envChain(config.UserAgentEnv...),
		},
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:  "base-url",
			Usage: "API origin",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("D2FRAMES_BASE_URL"),
			),
			Value: bungie.DefaultBaseURL,
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:  "lang",
			Usage: "manifest language",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("D2FRAMES_LANG"),
			),
			Value: "en",
		}),
	}
}

// NewCacheFlags constructs the flags that select the cache store.
func NewCacheFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "cache directory",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("D2FRAMES_CACHE_DIR"),
				yaml.YAML("cache.dir", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:  "cache-bucket",
			Usage: "keep the cache in this S3 bucket instead of a directory",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("D2FRAMES_CACHE_BUCKET"),
				yaml.YAML("cache.bucket", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:  "cache-prefix",
			Usage: "object key prefix within --cache-bucket",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("cache.prefix", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "d2frames",
		},
		&cli.StringFlag{
			Name:  "cache-region",
			Usage: "AWS region of --cache-bucket",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_REGION"),
				yaml.YAML("cache.region", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:  "cache-profile",
			Usage: "AWS shared config profile for --cache-bucket",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWS_PROFILE"),
				yaml.YAML("cache.profile", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:  "cache-endpoint",
			Usage: "S3-compatible endpoint for --cache-bucket",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("cache.endpoint", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolFlag{
			Name:        "no-cache",
			Usage:       "neither read nor write the response cache",
			HideDefault: true,
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// envChain builds a source chain over environment variables, first wins.
func envChain(keys ...string) cli.ValueSourceChain {
	srcs := make([]cli.ValueSource, 0, len(keys))
	for _, k := range keys {
		srcs = append(srcs, cli.EnvVar(k))
	}
	return cli.NewValueSourceChain(srcs...)
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
