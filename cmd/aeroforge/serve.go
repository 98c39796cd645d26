package main

import (
	"context"

	"github.com/spf13/cobra"

	"aeroforge/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "Project config path")
	return cmd
}

func runServe(configPath string) error {
	ctx := context.Background()

	cfg, err := loadProject(configPath)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	server := mcp.NewServer(cat, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
