package geom

import (
	"math"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"aeroforge/internal/catalog"
	"aeroforge/internal/stl"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return cat
}

func TestBuildComponents(t *testing.T) {
	cat := loadCatalog(t)
	builder := NewBuilder(cat)

	sys, err := cat.System("gv-7")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, name := range ComponentNames(sys) {
		t.Run(name, func(t *testing.T) {
			solid, err := builder.BuildComponent(sys, name)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if solid.Shape == nil {
				t.Fatalf("component has no shape")
			}
			if solid.Volume <= 0 {
				t.Fatalf("expected positive volume, got %g", solid.Volume)
			}
			if solid.Material == "" {
				t.Fatalf("component has no material")
			}
			bb := solid.Shape.BoundingBox()
			if bb.Max.X <= bb.Min.X || bb.Max.Y <= bb.Min.Y || bb.Max.Z <= bb.Min.Z {
				t.Fatalf("degenerate bounding box: %+v", bb)
			}
		})
	}
}

func TestBuildComponentUnknown(t *testing.T) {
	cat := loadCatalog(t)
	sys, _ := cat.System("gv-7")
	if _, err := NewBuilder(cat).BuildComponent(sys, "ramjet"); err == nil {
		t.Fatalf("expected error for unknown component")
	}
}

func TestNoseConeRejectsInvertedRadii(t *testing.T) {
	cat := loadCatalog(t)
	_, err := NewBuilder(cat).NoseCone(catalog.NoseParams{
		Length:       1,
		BaseDiameter: 0.1,
		TipDiameter:  0.5,
		Material:     "carbon-carbon",
	})
	if err == nil {
		t.Fatalf("expected error when tip radius exceeds base radius")
	}
}

func TestBuildAssembly(t *testing.T) {
	cat := loadCatalog(t)
	builder := NewBuilder(cat)

	for _, id := range []string{"gv-7", "ab-21", "ir-26", "cr-5"} {
		t.Run(id, func(t *testing.T) {
			sys, err := cat.System(id)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			asm, err := builder.BuildAssembly(sys)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if asm.Length <= 0 {
				t.Fatalf("expected positive stack length, got %g", asm.Length)
			}
			if len(asm.Components) < 4 {
				t.Fatalf("expected at least 4 components, got %d", len(asm.Components))
			}
			bb := asm.Shape.BoundingBox()
			extent := bb.Max.Z - bb.Min.Z
			if extent < asm.Length*0.8 {
				t.Fatalf("assembly extent %g inconsistent with stack length %g", extent, asm.Length)
			}
		})
	}
}

func TestBuildBOM(t *testing.T) {
	cat := loadCatalog(t)
	builder := NewBuilder(cat)
	sys, _ := cat.System("gv-7")

	asm, err := builder.BuildAssembly(sys)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	bom, err := BuildBOM(cat, asm)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(bom.Entries) != len(asm.Components) {
		t.Fatalf("expected %d entries, got %d", len(asm.Components), len(bom.Entries))
	}

	var mass, cost float64
	for _, e := range bom.Entries {
		if e.MassKg <= 0 {
			t.Fatalf("entry %s has nonpositive mass", e.Component)
		}
		mass += e.MassKg
		cost += e.CostUSD
	}
	if math.Abs(mass-bom.TotalMassKg) > 0.1 {
		t.Fatalf("total mass %g does not match entry sum %g", bom.TotalMassKg, mass)
	}
	if math.Abs(cost-bom.TotalCost) > 0.1 {
		t.Fatalf("total cost %g does not match entry sum %g", bom.TotalCost, cost)
	}
}

// TestExportRoundTrip meshes a real assembly, reads the STL back and checks
// the mesh against the kernel bounding box. Meshing dominates test time, so
// it is skipped in short mode.
func TestExportRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mesh export in short mode")
	}

	cat := loadCatalog(t)
	dir := t.TempDir()

	result, err := ExportSystem(zap.NewNop(), cat, "cr-5", ExportOptions{
		Dir:        dir,
		Resolution: 60,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stlPath := filepath.Join(dir, "cr-5_assembly.stl")
	mesh, err := stl.ReadFile(stlPath)
	if err != nil {
		t.Fatalf("reading exported stl: %v", err)
	}
	if len(mesh.Triangles) == 0 {
		t.Fatalf("exported mesh has no facets")
	}

	sys, _ := cat.System("cr-5")
	asm, err := NewBuilder(cat).BuildAssembly(sys)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := asm.Shape.BoundingBox()
	got := mesh.Bounds()

	// Marching cubes stays inside the SDF bounding box; allow one cell of
	// slack per side.
	cell := (want.Max.Z - want.Min.Z) / 60
	tol := cell * 2
	if got.Min.Z < want.Min.Z-tol || got.Max.Z > want.Max.Z+tol {
		t.Fatalf("mesh Z bounds [%g, %g] outside kernel bounds [%g, %g]",
			got.Min.Z, got.Max.Z, want.Min.Z, want.Max.Z)
	}
	if got.Max.Z-got.Min.Z < (want.Max.Z-want.Min.Z)*0.8 {
		t.Fatalf("mesh Z extent %g too small against kernel extent %g",
			got.Max.Z-got.Min.Z, want.Max.Z-want.Min.Z)
	}

	if v := mesh.Volume(); v <= 0 {
		t.Fatalf("expected positive mesh volume, got %g", v)
	}

	if result.TotalMassKg <= 0 {
		t.Fatalf("expected positive exported mass, got %g", result.TotalMassKg)
	}
	if len(result.Files) < 3 {
		t.Fatalf("expected stl, bom and manifest, got %v", result.Files)
	}
}
