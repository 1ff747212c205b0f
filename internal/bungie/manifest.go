// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bungie

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/d2frames/internal/destiny"
)

// ManifestPath is the platform endpoint listing the manifest content files.
const ManifestPath = "/Platform/Destiny2/Manifest/"

type manifestEnvelope struct {
	Response struct {
		Version                        string                       `json:"version"`
		JSONWorldComponentContentPaths map[string]map[string]string `json:"jsonWorldComponentContentPaths"`
	} `json:"Response"`
}

// Manifest returns the map from component name to content path for lang.
func (c *Client) Manifest(ctx context.Context, lang string) (map[string]string, error) {
	var env manifestEnvelope
	if err := c.Get(ctx, ManifestPath, &env); err != nil {
		return nil, fmt.Errorf("failed to get manifest: %w", err)
	}

	paths, ok := env.Response.JSONWorldComponentContentPaths[lang]
	if !ok {
		return nil, fmt.Errorf("manifest %s has no content for language %q", env.Response.Version, lang)
	}
	log.Debugf("manifest version %s, %d components for %s", env.Response.Version, len(paths), lang)
	return paths, nil
}

// Catalogs fetches the tables the weapon pipeline needs, one after the other.
func (c *Client) Catalogs(ctx context.Context, lang string) (*destiny.Catalogs, error) {
	paths, err := c.Manifest(ctx, lang)
	if err != nil {
		return nil, err
	}

	cat := &destiny.Catalogs{}
	components := []struct {
		name string
		dst  any
	}{
		{destiny.DamageTypeDefinition, &cat.DamageTypes},
		{destiny.SocketTypeDefinition, &cat.SocketTypes},
		{destiny.SocketCategoryDefinition, &cat.SocketCategories},
		{destiny.ItemCategoryDefinition, &cat.ItemCategories},
		{destiny.PowerCapDefinition, &cat.PowerCaps},
		{destiny.InventoryItemDefinition, &cat.Items},
	}

	for _, comp := range components {
		path, ok := paths[comp.name]
		if !ok {
			return nil, fmt.Errorf("manifest has no %s", comp.name)
		}
		if err := c.Get(ctx, path, comp.dst); err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", comp.name, err)
		}
	}

	log.Debugf("loaded %d items, %d item categories", len(cat.Items), len(cat.ItemCategories))
	return cat, nil
}
