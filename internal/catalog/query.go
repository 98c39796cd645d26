package catalog

import (
	"math"
	"strings"
)

// AssetInRange pairs an asset with its distance from a query point.
type AssetInRange struct {
	Asset      *Asset
	DistanceKm float64
}

// BaseInRange pairs a base with its distance from a query point.
type BaseInRange struct {
	Base       *Base
	DistanceKm float64
}

// AssetsInRange returns assets within radiusKm of the point, in load order.
// side and kind filter when non-empty.
func (c *Catalog) AssetsInRange(p GeoPoint, radiusKm float64, side, kind string) []AssetInRange {
	var out []AssetInRange
	for _, a := range c.Assets {
		if side != "" && a.Side != side {
			continue
		}
		if kind != "" && a.Kind != kind {
			continue
		}
		d := DistanceKm(p, a.Location)
		if d <= radiusKm {
			out = append(out, AssetInRange{Asset: a, DistanceKm: roundTenth(d)})
		}
	}
	return out
}

// BasesInRange returns bases within radiusKm of the point, in load order.
func (c *Catalog) BasesInRange(p GeoPoint, radiusKm float64, side string) []BaseInRange {
	var out []BaseInRange
	for _, b := range c.Bases {
		if side != "" && b.Side != side {
			continue
		}
		d := DistanceKm(p, b.Location)
		if d <= radiusKm {
			out = append(out, BaseInRange{Base: b, DistanceKm: roundTenth(d)})
		}
	}
	return out
}

// SearchResult is a loosely typed hit across catalog kinds.
type SearchResult struct {
	Kind string
	ID   string
	Name string
}

// Search matches the query against ids and names, case-insensitively.
func (c *Catalog) Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []SearchResult
	match := func(id, name string) bool {
		return strings.Contains(strings.ToLower(id), q) || strings.Contains(strings.ToLower(name), q)
	}
	for _, m := range c.Materials {
		if match(m.ID, m.Name) {
			out = append(out, SearchResult{Kind: "material", ID: m.ID, Name: m.Name})
		}
	}
	for _, s := range c.Systems {
		if match(s.ID, s.Name) {
			out = append(out, SearchResult{Kind: "system", ID: s.ID, Name: s.Name})
		}
	}
	for _, a := range c.Assets {
		if match(a.ID, a.Name) {
			out = append(out, SearchResult{Kind: "asset", ID: a.ID, Name: a.Name})
		}
	}
	for _, b := range c.Bases {
		if match(b.ID, b.Name) {
			out = append(out, SearchResult{Kind: "base", ID: b.ID, Name: b.Name})
		}
	}
	for _, s := range c.Scenarios {
		if match(s.ID, s.Name) {
			out = append(out, SearchResult{Kind: "scenario", ID: s.ID, Name: s.Name})
		}
	}
	return out
}

// ListAssets returns assets filtered by side and kind, in load order.
func (c *Catalog) ListAssets(side, kind string) []*Asset {
	var out []*Asset
	for _, a := range c.Assets {
		if side != "" && a.Side != side {
			continue
		}
		if kind != "" && a.Kind != kind {
			continue
		}
		out = append(out, a)
	}
	return out
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
