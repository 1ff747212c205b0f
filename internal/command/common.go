// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/d2frames/internal/attrs"
	"github.com/staranto/d2frames/internal/aws"
	"github.com/staranto/d2frames/internal/bungie"
	"github.com/staranto/d2frames/internal/cacheutil"
	"github.com/staranto/d2frames/internal/config"
	"github.com/staranto/d2frames/internal/meta"
	"github.com/staranto/d2frames/internal/output"
	"github.com/staranto/d2frames/internal/weapons"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr d2frames-<subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "d2frames-"+subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the attribute names of the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(Writer(cmd), t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	//nolint:errcheck
	al.SetGlobalTransformSpec()
	return al, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// Writer is where a command's results go.
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// Credentials reads the API credentials off the command's flags.
func Credentials(cmd *cli.Command) config.Credentials {
	return config.Credentials{
		APIKey:    cmd.String("api-key"),
		UserAgent: cmd.String("user-agent"),
	}
}

// NewCache builds the response cache selected by the cache flags. A nil Cache
// is valid and always misses.
func NewCache(ctx context.Context, cmd *cli.Command) (*cacheutil.Cache, error) {
	if cmd.Bool("no-cache") || !cacheutil.Enabled() {
		log.Debug("response cache disabled")
		return nil, nil
	}
	if on, err := config.GetBool("cache.enabled", true); err == nil && !on {
		log.Debug("response cache disabled by config")
		return nil, nil
	}

	if bucket := cmd.String("cache-bucket"); bucket != "" {
		awsCfg, err := aws.LoadAWSConfig(ctx,
			aws.WithRegion(cmd.String("cache-region")),
			aws.WithProfile(cmd.String("cache-profile")))
		if err != nil {
			return nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		store := &cacheutil.S3Store{
			Client: aws.NewS3(awsCfg, aws.WithS3Endpoint(cmd.String("cache-endpoint"))),
			Bucket: bucket,
			Prefix: cmd.String("cache-prefix"),
		}
		log.Debugf("response cache: %s", store.Location(""))
		return cacheutil.New(store), nil
	}

	store, err := NewFileStore(cmd)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureDir(); err != nil {
		return nil, err
	}
	log.Debugf("response cache: %s", store.Dir)
	return cacheutil.New(store), nil
}

// NewFileStore returns the directory store named by --cache-dir, or the
// default cache directory.
func NewFileStore(cmd *cli.Command) (*cacheutil.FileStore, error) {
	dir := cmd.String("cache-dir")
	if dir == "" {
		var ok bool
		if dir, ok = cacheutil.Dir(); !ok {
			return nil, fmt.Errorf("cannot resolve a cache directory, use --cache-dir")
		}
	}
	return &cacheutil.FileStore{Dir: dir}, nil
}

// LoadRules returns the default rules extended with the config file's frame
// aliases, resolving icons against baseURL.
func LoadRules(baseURL string) weapons.Rules {
	rules := weapons.DefaultRules()
	if aliases, err := config.GetStringMap("aliases"); err == nil {
		log.Debugf("%d frame aliases from config", len(aliases))
		rules = rules.WithAliases(aliases)
	}
	if baseURL != "" {
		rules = rules.WithIconBase(baseURL)
	}
	return rules
}

// LoadWeapons fetches the catalogs and normalizes them. Credentials are
// checked before the cache or the network is touched.
func LoadWeapons(ctx context.Context, cmd *cli.Command) ([]weapons.Weapon, weapons.Rules, error) {
	creds := Credentials(cmd)
	if err := creds.Validate(); err != nil {
		return nil, weapons.Rules{}, err
	}

	cache, err := NewCache(ctx, cmd)
	if err != nil {
		return nil, weapons.Rules{}, err
	}

	client, err := bungie.NewClient(cmd.String("base-url"), creds, cache)
	if err != nil {
		return nil, weapons.Rules{}, err
	}

	cat, err := client.Catalogs(ctx, cmd.String("lang"))
	if err != nil {
		return nil, weapons.Rules{}, err
	}

	rules := LoadRules(cmd.String("base-url"))
	ws, err := weapons.Normalize(cat, rules)
	if err != nil {
		return nil, weapons.Rules{}, err
	}
	return ws, rules, nil
}

// QueryCommandBuilder constructs a cli.Command for the weapon commands using a
// consistent pattern. It wires metadata, adds the tldr flag, the API and cache
// flags and the global flags, and sets up validators.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	flags := append([]cli.Flag{newTLDRFlag()}, qcb.Flags...)
	flags = append(flags, NewAPIFlags(qcb.Name)...)
	flags = append(flags, NewCacheFlags()...)
	flags = append(flags, NewGlobalFlags(qcb.Name)...)

	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}
