package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aeroforge/internal/pipeline"
	"aeroforge/internal/report"
)

func pipelineCmd() *cobra.Command {
	var configPath string
	var outputDir string
	var systems []string
	var scenarios []string
	var format string
	var skipCAD bool
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run validation, geometry, optimization, and reports end to end",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(configPath, outputDir, systems, scenarios, format, skipCAD)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (default from config)")
	cmd.Flags().StringSliceVar(&systems, "system", nil, "System ids to run (default all)")
	cmd.Flags().StringSliceVar(&scenarios, "scenario", nil, "Scenario ids to run (default all)")
	cmd.Flags().StringVar(&format, "format", "", "Report format: json, yaml, or markdown")
	cmd.Flags().BoolVar(&skipCAD, "skip-cad", false, "Skip mesh rendering")
	return cmd
}

func runPipeline(configPath, outputDir string, systems, scenarios []string, format string, skipCAD bool) error {
	cfg, err := loadProject(configPath)
	if err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if format == "" {
		format = cfg.Report.Format
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	summary, err := pipeline.Run(logger, pipeline.Options{
		OutputDir:  outputDir,
		Overlays:   cfg.Overlays,
		Systems:    systems,
		Scenarios:  scenarios,
		Format:     f,
		Resolution: cfg.CAD.Resolution,
		SkipCAD:    skipCAD,
		RadiusKm:   cfg.Report.RadiusKm,
	})
	if err != nil {
		return err
	}

	for _, st := range summary.Stages {
		fmt.Fprintf(os.Stdout, "%-14s %s  %s\n", st.Name, st.Status, st.Detail)
	}
	if summary.Degraded {
		return fmt.Errorf("pipeline finished degraded")
	}
	return nil
}
