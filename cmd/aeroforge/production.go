package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"aeroforge/internal/production"
	"aeroforge/internal/report"
)

func productionCmd() *cobra.Command {
	var configPath string
	var orderID string
	var systemID string
	var quantity int
	var priority string
	var format string
	cmd := &cobra.Command{
		Use:   "production",
		Short: "Plan a build order: schedule, materials, and inspection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if systemID == "" {
				return fmt.Errorf("--system is required")
			}
			return runProduction(configPath, orderID, systemID, quantity, priority, format)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	cmd.Flags().StringVar(&orderID, "order", "po-1", "Order id")
	cmd.Flags().StringVar(&systemID, "system", "", "System id to build")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "Units to build")
	cmd.Flags().StringVar(&priority, "priority", "standard", "Order priority: standard, urgent, or critical")
	cmd.Flags().StringVar(&format, "format", "", "Output format: json, yaml, or markdown")
	return cmd
}

func runProduction(configPath, orderID, systemID string, quantity int, priority, format string) error {
	cfg, cat, f, err := reportContext(configPath, format)
	if err != nil {
		return err
	}

	order, err := production.NewOrder(cat, orderID, systemID, quantity, production.Priority(priority), time.Now())
	if err != nil {
		return err
	}

	var inv *production.Inventory
	if cfg.Production.InventoryPath != "" {
		inv, err = production.LoadInventory(cfg.Production.InventoryPath)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			inv = nil // no snapshot yet, plan without reorder lines
		}
	}

	doc, err := report.BuildProduction(cat, order, inv, time.Now())
	if err != nil {
		return err
	}
	return report.Render(os.Stdout, f, doc)
}
