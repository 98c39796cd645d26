package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"aeroforge/internal/catalog"
	"aeroforge/internal/report"
)

type SearchCatalogInput struct {
	Query string `json:"query" jsonschema:"search terms matched against ids and names"`
}

type GetSystemInput struct {
	ID string `json:"id" jsonschema:"system id"`
}

type GetMaterialInput struct {
	ID string `json:"id" jsonschema:"material id"`
}

type ListAssetsInput struct {
	Side string `json:"side,omitempty" jsonschema:"blue or red"`
	Kind string `json:"kind,omitempty" jsonschema:"surface, submarine, or aircraft"`
}

type AssetsInRangeInput struct {
	Lat      float64 `json:"lat" jsonschema:"center latitude in degrees"`
	Lon      float64 `json:"lon" jsonschema:"center longitude in degrees"`
	RadiusKm float64 `json:"radius_km" jsonschema:"search radius in kilometers"`
	Side     string  `json:"side,omitempty" jsonschema:"blue or red"`
	Kind     string  `json:"kind,omitempty" jsonschema:"surface, submarine, or aircraft"`
}

type ScenarioOutcomeInput struct {
	ID string `json:"id" jsonschema:"scenario id"`
}

type SearchResultOutput struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SearchCatalogOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type AssetSummaryOutput struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Side       string   `json:"side"`
	Kind       string   `json:"kind"`
	Status     string   `json:"status,omitempty"`
	Systems    []string `json:"systems,omitempty"`
	DistanceKm float64  `json:"distance_km,omitempty"`
}

type ListAssetsOutput struct {
	Assets []AssetSummaryOutput `json:"assets"`
}

type AssetsInRangeOutput struct {
	Assets []AssetSummaryOutput `json:"assets"`
}

type ScenarioOutcomeOutput struct {
	ScenarioID             string  `json:"scenario_id"`
	Name                   string  `json:"name"`
	Environment            string  `json:"environment"`
	BlueScore              float64 `json:"blue_score"`
	RedScore               float64 `json:"red_score"`
	BlueSuccessProbability float64 `json:"blue_success_probability"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_catalog",
		Description: "Search materials, systems, assets, bases, and scenarios by id or name",
	}, s.handleSearchCatalog)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_system",
		Description: "Retrieve a system with its full section geometry",
	}, s.handleGetSystem)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_material",
		Description: "Retrieve a material's properties",
	}, s.handleGetMaterial)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_assets",
		Description: "List assets with optional side and kind filters",
	}, s.handleListAssets)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "assets_in_range",
		Description: "Find assets within a radius of a point",
	}, s.handleAssetsInRange)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "scenario_outcome",
		Description: "Score a scenario's force lists into an outcome estimate",
	}, s.handleScenarioOutcome)
}

func (s *Server) handleSearchCatalog(ctx context.Context, req *sdk.CallToolRequest, input SearchCatalogInput) (*sdk.CallToolResult, SearchCatalogOutput, error) {
	if input.Query == "" {
		return nil, SearchCatalogOutput{}, fmt.Errorf("query is required")
	}
	results := s.cat.Search(input.Query)

	output := make([]SearchResultOutput, 0, len(results))
	for _, result := range results {
		output = append(output, SearchResultOutput{
			Kind: result.Kind,
			ID:   result.ID,
			Name: result.Name,
		})
	}
	return nil, SearchCatalogOutput{Results: output}, nil
}

func (s *Server) handleGetSystem(ctx context.Context, req *sdk.CallToolRequest, input GetSystemInput) (*sdk.CallToolResult, catalog.System, error) {
	if input.ID == "" {
		return nil, catalog.System{}, fmt.Errorf("id is required")
	}
	sys, err := s.cat.System(input.ID)
	if err != nil {
		return nil, catalog.System{}, err
	}
	return nil, *sys, nil
}

func (s *Server) handleGetMaterial(ctx context.Context, req *sdk.CallToolRequest, input GetMaterialInput) (*sdk.CallToolResult, catalog.Material, error) {
	if input.ID == "" {
		return nil, catalog.Material{}, fmt.Errorf("id is required")
	}
	m, err := s.cat.Material(input.ID)
	if err != nil {
		return nil, catalog.Material{}, err
	}
	return nil, *m, nil
}

func (s *Server) handleListAssets(ctx context.Context, req *sdk.CallToolRequest, input ListAssetsInput) (*sdk.CallToolResult, ListAssetsOutput, error) {
	assets := s.cat.ListAssets(input.Side, input.Kind)

	output := make([]AssetSummaryOutput, 0, len(assets))
	for _, a := range assets {
		output = append(output, assetSummaryOutput(a, 0))
	}
	return nil, ListAssetsOutput{Assets: output}, nil
}

func (s *Server) handleAssetsInRange(ctx context.Context, req *sdk.CallToolRequest, input AssetsInRangeInput) (*sdk.CallToolResult, AssetsInRangeOutput, error) {
	if input.RadiusKm <= 0 {
		return nil, AssetsInRangeOutput{}, fmt.Errorf("radius_km must be positive")
	}
	center := catalog.GeoPoint{Lat: input.Lat, Lon: input.Lon}
	hits := s.cat.AssetsInRange(center, input.RadiusKm, input.Side, input.Kind)

	output := make([]AssetSummaryOutput, 0, len(hits))
	for _, hit := range hits {
		output = append(output, assetSummaryOutput(hit.Asset, hit.DistanceKm))
	}
	return nil, AssetsInRangeOutput{Assets: output}, nil
}

func (s *Server) handleScenarioOutcome(ctx context.Context, req *sdk.CallToolRequest, input ScenarioOutcomeInput) (*sdk.CallToolResult, ScenarioOutcomeOutput, error) {
	if input.ID == "" {
		return nil, ScenarioOutcomeOutput{}, fmt.Errorf("id is required")
	}
	doc, err := report.BuildScenario(s.cat, input.ID, time.Now())
	if err != nil {
		return nil, ScenarioOutcomeOutput{}, err
	}
	return nil, ScenarioOutcomeOutput{
		ScenarioID:             doc.ScenarioID,
		Name:                   doc.Name,
		Environment:            doc.Environment,
		BlueScore:              doc.BlueScore,
		RedScore:               doc.RedScore,
		BlueSuccessProbability: doc.BlueSuccessProbability,
	}, nil
}

func assetSummaryOutput(a *catalog.Asset, distanceKm float64) AssetSummaryOutput {
	return AssetSummaryOutput{
		ID:         a.ID,
		Name:       a.Name,
		Side:       a.Side,
		Kind:       a.Kind,
		Status:     a.Status,
		Systems:    append([]string{}, a.Systems...),
		DistanceKm: distanceKm,
	}
}
