package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the fact catalog from the CLI",
	}
	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogShowCmd())
	cmd.AddCommand(catalogSearchCmd())
	return cmd
}

func catalogListCmd() *cobra.Command {
	var configPath string
	var side string
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(configPath, side, kind)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	cmd.Flags().StringVar(&side, "side", "", "Side to filter (blue or red)")
	cmd.Flags().StringVar(&kind, "kind", "", "Kind to filter (surface, submarine, aircraft)")
	return cmd
}

func runCatalogList(configPath, side, kind string) error {
	cfg, err := loadProject(configPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	assets := cat.ListAssets(side, kind)
	if len(assets) == 0 {
		fmt.Fprintln(os.Stdout, "No assets found.")
		return nil
	}
	for _, a := range assets {
		fmt.Fprintf(os.Stdout, "%s (%s/%s) %s\n", a.ID, a.Side, a.Kind, a.Name)
	}
	return nil
}

func catalogShowCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one catalog entry as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(configPath, args[0])
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	return cmd
}

func runCatalogShow(configPath, id string) error {
	cfg, err := loadProject(configPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	var entry any
	if sys, err := cat.System(id); err == nil {
		entry = sys
	} else if m, err := cat.Material(id); err == nil {
		entry = m
	} else if a, err := cat.Asset(id); err == nil {
		entry = a
	} else if b, err := cat.Base(id); err == nil {
		entry = b
	} else if sc, err := cat.Scenario(id); err == nil {
		entry = sc
	} else {
		return fmt.Errorf("no catalog entry with id %q", id)
	}

	data, err := yaml.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", id, err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func catalogSearchCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search catalog ids and names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogSearch(configPath, args[0])
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	return cmd
}

func runCatalogSearch(configPath, query string) error {
	cfg, err := loadProject(configPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	results := cat.Search(query)
	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No matches.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%s\t%s\t%s\n", r.Kind, r.ID, r.Name)
	}
	return nil
}
