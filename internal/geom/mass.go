package geom

import (
	"fmt"
	"math"

	"aeroforge/internal/catalog"
)

// BOMEntry is one line of the assembly bill of materials.
type BOMEntry struct {
	Component string  `json:"component" yaml:"component"`
	Material  string  `json:"material" yaml:"material"`
	VolumeM3  float64 `json:"volume_m3" yaml:"volume_m3"`
	MassKg    float64 `json:"mass_kg" yaml:"mass_kg"`
	CostUSD   float64 `json:"cost_usd" yaml:"cost_usd"`
}

// BOM is the mass and cost budget for an assembly, derived from analytic
// component volumes and catalog material densities.
type BOM struct {
	SystemID    string     `json:"system_id" yaml:"system_id"`
	Entries     []BOMEntry `json:"entries" yaml:"entries"`
	TotalMassKg float64    `json:"total_mass_kg" yaml:"total_mass_kg"`
	TotalCost   float64    `json:"total_cost_usd" yaml:"total_cost_usd"`
}

// BuildBOM prices every component of the assembly against the catalog.
func BuildBOM(cat *catalog.Catalog, asm *Assembly) (*BOM, error) {
	bom := &BOM{SystemID: asm.System.ID}

	for _, comp := range asm.Components {
		mat, err := cat.Material(comp.Material)
		if err != nil {
			return nil, fmt.Errorf("bom for %s: %w", comp.Name, err)
		}
		mass := comp.Volume * mat.Density
		entry := BOMEntry{
			Component: comp.Name,
			Material:  mat.ID,
			VolumeM3:  round6(comp.Volume),
			MassKg:    round2(mass),
			CostUSD:   round2(mass * mat.CostPerKg),
		}
		bom.Entries = append(bom.Entries, entry)
		bom.TotalMassKg += entry.MassKg
		bom.TotalCost += entry.CostUSD
	}

	bom.TotalMassKg = round2(bom.TotalMassKg)
	bom.TotalCost = round2(bom.TotalCost)
	return bom, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
