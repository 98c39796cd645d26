package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new aeroforge project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return fmt.Errorf("%s already exists", defaultConfigPath)
	}

	contents := fmt.Sprintf(`project: %s
version: 1

output_dir: out

# Extra catalog files merged over the built-in seed.
catalog_overlays: []

cad:
  resolution: 150
  components: false

report:
  format: json
  radius_km: 300

production:
  inventory_path: inventory.yaml
`, projectName)
	if err := os.WriteFile(defaultConfigPath, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", defaultConfigPath, err)
	}

	return nil
}
