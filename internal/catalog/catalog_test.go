package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSeed(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(c.Systems) == 0 || len(c.Materials) == 0 || len(c.Assets) == 0 {
		t.Fatalf("seed catalog is missing entries: %d systems, %d materials, %d assets",
			len(c.Systems), len(c.Materials), len(c.Assets))
	}

	s, err := c.System("gv-7")
	if err != nil {
		t.Fatalf("expected gv-7, got %v", err)
	}
	if s.Class != ClassBoostGlide {
		t.Fatalf("expected boost-glide, got %q", s.Class)
	}

	if _, err := c.System("no-such-system"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeedValidates(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	report := c.Validate()
	if issues := report.Errors(); len(issues) != 0 {
		t.Fatalf("seed catalog must validate cleanly, got %d errors: %+v", len(issues), issues)
	}
}

func TestLoadOverlay(t *testing.T) {
	t.Run("overlay adds entries", func(t *testing.T) {
		path := writeOverlay(t, `
version: 1
materials:
  - id: maraging-steel
    name: maraging steel
    density_kg_m3: 8100
    yield_strength_mpa: 1900
    max_temp_c: 500
    cost_per_kg_usd: 30
`)
		c, err := Load(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, err := c.Material("maraging-steel"); err != nil {
			t.Fatalf("expected overlay material, got %v", err)
		}
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		path := writeOverlay(t, `
version: 1
materials:
  - id: titanium-alloy
    name: duplicate
    density_kg_m3: 1
`)
		if _, err := Load(path); !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
	})

	t.Run("unsupported version rejected", func(t *testing.T) {
		path := writeOverlay(t, "version: 2\n")
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestValidateCatchesOverlayIssues(t *testing.T) {
	path := writeOverlay(t, `
version: 1
systems:
  - id: x-1
    name: X-1
    class: hovercraft
    length: 5
    diameter: 0.5
    nose: { length: 1, base_diameter: 0.5, tip_diameter: 0.05, shape_factor: 1, tps_thickness: 0.01, material: unobtanium }
    payload: { length: 1, diameter: 0.5, wall_thickness: 0.01, material: steel-4340 }
    guidance: { length: 0.5, diameter: 0.5, sensor_windows: 2, material: aluminum-7075 }
    fins: { count: 4, span: 0.3, root_chord: 0.2, thickness: 0.01, mount_radius: 0.3, material: carbon-fiber }
    claims:
      - metric: drag_n
        baseline: 100
        optimized: 80
        percent: 35
scenarios:
  - id: ghost-run
    name: Ghost Run
    location: { lat: 0, lon: 0 }
    environment: open-water
    blue_forces: [no-such-asset]
    red_forces: []
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	report := c.Validate()
	codes := map[string]int{}
	for _, issue := range report.Issues {
		codes[issue.Code]++
	}
	for _, want := range []string{codeBadEnum, codeUnknownMaterial, codeImprovementIdentity, codeUnknownAsset, codeEmptyForce} {
		if codes[want] == 0 {
			t.Fatalf("expected issue code %s, got %v", want, codes)
		}
	}
}

// Validation output feeds rendered reports, so repeated runs over the same
// catalog must produce the issue list in the same order.
func TestValidateIssueOrderStable(t *testing.T) {
	path := writeOverlay(t, `
version: 1
systems:
  - id: x-2
    name: X-2
    class: cruise
    length: -5
    diameter: -0.5
    nose: { length: -1, base_diameter: 0.5, tip_diameter: 0.05, shape_factor: 1, tps_thickness: 0.01, material: m1 }
    payload: { length: 1, diameter: 0.5, wall_thickness: -0.01, material: m2 }
    guidance: { length: 0.5, diameter: 0.5, sensor_windows: 2, material: m3 }
    fins: { count: 4, span: 0.3, root_chord: 0.2, thickness: 0.01, mount_radius: 0.3, material: m4 }
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	first := c.Validate().Issues
	if len(first) < 8 { // 4 nonpositive dims + 4 unknown materials
		t.Fatalf("expected at least 8 issues, got %d: %+v", len(first), first)
	}
	for run := 0; run < 20; run++ {
		again := c.Validate().Issues
		if len(again) != len(first) {
			t.Fatalf("run %d: issue count changed: %d vs %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("run %d: issue %d reordered: %+v vs %+v", run, i, again[i], first[i])
			}
		}
	}
}

func TestDistanceKm(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		p := GeoPoint{Lat: 24.0, Lon: 143.0}
		if d := DistanceKm(p, p); d != 0 {
			t.Fatalf("expected 0, got %g", d)
		}
	})

	t.Run("one degree of longitude at equator", func(t *testing.T) {
		d := DistanceKm(GeoPoint{Lat: 0, Lon: 0}, GeoPoint{Lat: 0, Lon: 1})
		if math.Abs(d-111.19) > 0.5 {
			t.Fatalf("expected ~111.19 km, got %g", d)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		a := GeoPoint{Lat: 24.6, Lon: 142.1}
		b := GeoPoint{Lat: 21.2, Lon: 146.0}
		if DistanceKm(a, b) != DistanceKm(b, a) {
			t.Fatalf("distance must be symmetric")
		}
	})
}

func TestAssetsInRange(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	center := GeoPoint{Lat: 24.0, Lon: 143.0}

	all := c.AssetsInRange(center, 400, "", "")
	if len(all) == 0 {
		t.Fatalf("expected assets within 400 km of %v", center)
	}
	for _, hit := range all {
		if hit.DistanceKm > 400 {
			t.Fatalf("asset %s outside radius: %g km", hit.Asset.ID, hit.DistanceKm)
		}
	}

	blue := c.AssetsInRange(center, 400, SideBlue, "")
	for _, hit := range blue {
		if hit.Asset.Side != SideBlue {
			t.Fatalf("side filter leaked %s", hit.Asset.ID)
		}
	}

	none := c.AssetsInRange(GeoPoint{Lat: -60, Lon: 0}, 100, "", "")
	if len(none) != 0 {
		t.Fatalf("expected no assets near %v, got %d", GeoPoint{Lat: -60}, len(none))
	}
}

func TestSearch(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	hits := c.Search("kestrel")
	if len(hits) != 1 || hits[0].ID != "gv-7" {
		t.Fatalf("expected single gv-7 hit, got %+v", hits)
	}

	if hits := c.Search(""); hits != nil {
		t.Fatalf("expected no hits for empty query, got %+v", hits)
	}

	if hits := c.Search("halvard"); len(hits) != 1 || hits[0].Kind != "base" {
		t.Fatalf("expected base hit, got %+v", hits)
	}
}

func writeOverlay(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}
	return path
}
