package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"aeroforge/internal/catalog"
	"aeroforge/internal/config"
	"aeroforge/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate analysis reports",
	}
	cmd.AddCommand(reportCapabilityCmd())
	cmd.AddCommand(reportPostureCmd())
	cmd.AddCommand(reportScenarioCmd())
	return cmd
}

// reportContext loads the project and catalog and resolves the format,
// shared by every report subcommand.
func reportContext(configPath, format string) (*config.ProjectConfig, *catalog.Catalog, report.Format, error) {
	cfg, err := loadProject(configPath)
	if err != nil {
		return nil, nil, "", err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, "", err
	}
	if format == "" {
		format = cfg.Report.Format
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, nil, "", err
	}
	return cfg, cat, f, nil
}

func reportCapabilityCmd() *cobra.Command {
	var configPath string
	var systemID string
	var format string
	cmd := &cobra.Command{
		Use:   "capability",
		Short: "Summarize one system's airframe, mass budget, and claims",
		RunE: func(cmd *cobra.Command, args []string) error {
			if systemID == "" {
				return fmt.Errorf("--system is required")
			}
			_, cat, f, err := reportContext(configPath, format)
			if err != nil {
				return err
			}
			doc, err := report.BuildCapability(cat, systemID, time.Now())
			if err != nil {
				return err
			}
			return report.Render(os.Stdout, f, doc)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	cmd.Flags().StringVar(&systemID, "system", "", "System id")
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, yaml, or markdown")
	return cmd
}

func reportPostureCmd() *cobra.Command {
	var configPath string
	var format string
	var lat, lon, radius float64
	cmd := &cobra.Command{
		Use:   "posture",
		Short: "Report assets, bases, and relay connectivity around a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cat, f, err := reportContext(configPath, format)
			if err != nil {
				return err
			}
			if radius == 0 {
				radius = cfg.Report.RadiusKm
			}
			doc := report.BuildPosture(cat, catalog.GeoPoint{Lat: lat, Lon: lon}, radius, time.Now())
			return report.Render(os.Stdout, f, doc)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, yaml, or markdown")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Center latitude in degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Center longitude in degrees")
	cmd.Flags().Float64Var(&radius, "radius", 0, "Search radius in km (default from config)")
	return cmd
}

func reportScenarioCmd() *cobra.Command {
	var configPath string
	var scenarioID string
	var format string
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Score a scenario's force lists into an outcome estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if scenarioID == "" {
				return fmt.Errorf("--scenario is required")
			}
			_, cat, f, err := reportContext(configPath, format)
			if err != nil {
				return err
			}
			doc, err := report.BuildScenario(cat, scenarioID, time.Now())
			if err != nil {
				return err
			}
			return report.Render(os.Stdout, f, doc)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	cmd.Flags().StringVar(&scenarioID, "scenario", "", "Scenario id")
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, yaml, or markdown")
	return cmd
}
