package geom

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"aeroforge/internal/catalog"
)

// ExportOptions controls geometry export.
type ExportOptions struct {
	Dir        string
	Resolution int  // marching cubes cells along the longest axis
	Components bool // also export each component as its own STL
}

const defaultResolution = 150

// ExportResult reports what was written for one system.
type ExportResult struct {
	SystemID    string   `json:"system_id" yaml:"system_id"`
	Files       []string `json:"files" yaml:"files"`
	TotalMassKg float64  `json:"total_mass_kg" yaml:"total_mass_kg"`
	LengthM     float64  `json:"length_m" yaml:"length_m"`
}

type manifest struct {
	SystemID   string          `yaml:"system_id"`
	Name       string          `yaml:"name"`
	Class      string          `yaml:"class"`
	LengthM    float64         `yaml:"length_m"`
	DiameterM  float64         `yaml:"diameter_m"`
	Resolution int             `yaml:"resolution"`
	Components []manifestEntry `yaml:"components"`
}

type manifestEntry struct {
	Name     string  `yaml:"name"`
	Material string  `yaml:"material"`
	OffsetZ  float64 `yaml:"offset_z"`
}

// ExportSystem builds the assembly for a system and writes the STL mesh,
// a YAML assembly manifest and a JSON bill of materials.
func ExportSystem(logger *zap.Logger, cat *catalog.Catalog, systemID string, opts ExportOptions) (*ExportResult, error) {
	sys, err := cat.System(systemID)
	if err != nil {
		return nil, err
	}
	if opts.Resolution <= 0 {
		opts.Resolution = defaultResolution
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	builder := NewBuilder(cat)
	asm, err := builder.BuildAssembly(sys)
	if err != nil {
		return nil, fmt.Errorf("assembling %s: %w", systemID, err)
	}

	result := &ExportResult{SystemID: systemID, LengthM: asm.Length}

	stlPath := filepath.Join(opts.Dir, systemID+"_assembly.stl")
	if err := writeSTL(asm.Shape, stlPath, opts.Resolution); err != nil {
		return nil, err
	}
	logger.Info("exported assembly mesh",
		zap.String("system", systemID),
		zap.String("path", stlPath),
		zap.Int("resolution", opts.Resolution))
	result.Files = append(result.Files, stlPath)

	if opts.Components {
		for _, name := range ComponentNames(sys) {
			solid, err := builder.BuildComponent(sys, name)
			if err != nil {
				return nil, fmt.Errorf("building %s: %w", name, err)
			}
			path := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.stl", systemID, name))
			if err := writeSTL(solid.Shape, path, opts.Resolution); err != nil {
				return nil, err
			}
			result.Files = append(result.Files, path)
		}
	}

	bom, err := BuildBOM(cat, asm)
	if err != nil {
		return nil, err
	}
	result.TotalMassKg = bom.TotalMassKg

	bomPath := filepath.Join(opts.Dir, systemID+"_bom.json")
	bomData, err := json.MarshalIndent(bom, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding bom: %w", err)
	}
	if err := os.WriteFile(bomPath, append(bomData, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("writing bom: %w", err)
	}
	result.Files = append(result.Files, bomPath)

	man := manifest{
		SystemID:   sys.ID,
		Name:       sys.Name,
		Class:      sys.Class,
		LengthM:    asm.Length,
		DiameterM:  sys.Diameter,
		Resolution: opts.Resolution,
	}
	for _, comp := range asm.Components {
		man.Components = append(man.Components, manifestEntry{
			Name:     comp.Name,
			Material: comp.Material,
			OffsetZ:  comp.OffsetZ,
		})
	}
	manPath := filepath.Join(opts.Dir, systemID+"_manifest.yaml")
	manData, err := yaml.Marshal(man)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(manPath, manData, 0o644); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	result.Files = append(result.Files, manPath)

	return result, nil
}

func writeSTL(shape sdf.SDF3, path string, resolution int) error {
	render.ToSTL(shape, path, render.NewMarchingCubesOctree(resolution))
	// The renderer reports write failures on its own log path; treat a
	// missing output file as the failure signal.
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stl export %s: %w", path, err)
	}
	return nil
}
