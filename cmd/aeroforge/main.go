package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aeroforge/internal/catalog"
	"aeroforge/internal/config"
)

const defaultConfigPath = "aeroforge.yaml"

func main() {
	root := &cobra.Command{
		Use:   "aeroforge",
		Short: "Design, analysis, and production toolkit for standoff weapon concepts",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(catalogCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(cadCmd())
	root.AddCommand(optimizeCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(productionCmd())
	root.AddCommand(pipelineCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadProject reads the project file. A missing file at the default path
// falls back to defaults so the embedded catalog works out of the box.
func loadProject(path string) (*config.ProjectConfig, error) {
	cfg, err := config.LoadProjectConfig(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func loadCatalog(cfg *config.ProjectConfig) (*catalog.Catalog, error) {
	return catalog.Load(cfg.Overlays...)
}

func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, nil
}
