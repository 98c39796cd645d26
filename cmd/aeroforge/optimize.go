package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"aeroforge/internal/report"
)

func optimizeCmd() *cobra.Command {
	var configPath string
	var systemID string
	var format string
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize a system's nose cone and report the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if systemID == "" {
				return fmt.Errorf("--system is required")
			}
			return runOptimize(configPath, systemID, format)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	cmd.Flags().StringVar(&systemID, "system", "", "System id to optimize")
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, yaml, or markdown")
	return cmd
}

func runOptimize(configPath, systemID, format string) error {
	cfg, err := loadProject(configPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	if format == "" {
		format = cfg.Report.Format
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}

	doc, err := report.BuildOptimization(cat, systemID, time.Now())
	if err != nil {
		return err
	}
	return report.Render(os.Stdout, f, doc)
}
