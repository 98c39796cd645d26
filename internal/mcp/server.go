package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"aeroforge/internal/catalog"
)

type Server struct {
	cat *catalog.Catalog
	mcp *sdk.Server
}

func NewServer(cat *catalog.Catalog, version string) *Server {
	s := &Server{
		cat: cat,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "aeroforge",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
