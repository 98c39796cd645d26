package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"aeroforge/internal/geom"
)

func cadCmd() *cobra.Command {
	var configPath string
	var systemID string
	var outputDir string
	var resolution int
	var components bool
	cmd := &cobra.Command{
		Use:   "cad",
		Short: "Export a system's geometry as STL with manifest and BOM",
		RunE: func(cmd *cobra.Command, args []string) error {
			if systemID == "" {
				return fmt.Errorf("--system is required")
			}
			return runCAD(configPath, systemID, outputDir, resolution, components)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	cmd.Flags().StringVar(&systemID, "system", "", "System id to export")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (default <output_dir>/cad/<system>)")
	cmd.Flags().IntVar(&resolution, "resolution", 0, "Marching cubes resolution (default from config)")
	cmd.Flags().BoolVar(&components, "components", false, "Also export each component mesh")
	return cmd
}

func runCAD(configPath, systemID, outputDir string, resolution int, components bool) error {
	cfg, err := loadProject(configPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = filepath.Join(cfg.OutputDir, "cad", systemID)
	}
	if resolution == 0 {
		resolution = cfg.CAD.Resolution
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	result, err := geom.ExportSystem(logger, cat, systemID, geom.ExportOptions{
		Dir:        outputDir,
		Resolution: resolution,
		Components: components || cfg.CAD.Components,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Exported %s: %.1f m stack, %.1f kg dry mass\n",
		result.SystemID, result.LengthM, result.TotalMassKg)
	for _, f := range result.Files {
		fmt.Fprintf(os.Stdout, "  %s\n", f)
	}
	return nil
}
