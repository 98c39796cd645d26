// Package config loads and validates the aeroforge project file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project string `yaml:"project"`
	Version int    `yaml:"version"`

	OutputDir string   `yaml:"output_dir"`
	Overlays  []string `yaml:"catalog_overlays"`

	CAD        CADConfig        `yaml:"cad"`
	Report     ReportConfig     `yaml:"report"`
	Production ProductionConfig `yaml:"production"`
}

type CADConfig struct {
	Resolution int  `yaml:"resolution"`
	Components bool `yaml:"components"`
}

type ReportConfig struct {
	Format   string  `yaml:"format"`
	RadiusKm float64 `yaml:"radius_km"`
}

type ProductionConfig struct {
	InventoryPath string `yaml:"inventory_path"`
}

var validFormats = map[string]bool{
	"": true, "json": true, "yaml": true, "markdown": true, "md": true,
}

// Default is the configuration used when no project file exists; the
// embedded catalog makes every command usable without one.
func Default() *ProjectConfig {
	cfg := &ProjectConfig{Project: "aeroforge", Version: 1}
	applyDefaults(cfg)
	return cfg
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if cfg.CAD.Resolution < 0 {
		return fmt.Errorf("cad resolution must not be negative: %d", cfg.CAD.Resolution)
	}
	if !validFormats[cfg.Report.Format] {
		return fmt.Errorf("unknown report format: %s", cfg.Report.Format)
	}
	if cfg.Report.RadiusKm < 0 {
		return fmt.Errorf("report radius must not be negative: %g", cfg.Report.RadiusKm)
	}
	for i, overlay := range cfg.Overlays {
		if strings.TrimSpace(overlay) == "" {
			return fmt.Errorf("catalog overlay %d path is empty", i)
		}
	}
	return nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "out"
	}
	if cfg.CAD.Resolution == 0 {
		cfg.CAD.Resolution = 150
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = "json"
	}
	if cfg.Report.RadiusKm == 0 {
		cfg.Report.RadiusKm = 300
	}
}
