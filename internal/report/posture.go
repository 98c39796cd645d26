package report

import (
	"io"
	"text/template"
	"time"

	"aeroforge/internal/catalog"
	"aeroforge/internal/datalink"
)

const (
	PostureLow      = "low"
	PostureElevated = "elevated"
	PostureHigh     = "high"
)

// PostureReport is the situational picture around a point: assets and
// bases in range, force balance and blue relay connectivity.
type PostureReport struct {
	Kind        string    `json:"kind" yaml:"kind"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Center   catalog.GeoPoint `json:"center" yaml:"center"`
	RadiusKm float64          `json:"radius_km" yaml:"radius_km"`

	BlueAssets []ContactLine `json:"blue_assets" yaml:"blue_assets"`
	RedAssets  []ContactLine `json:"red_assets" yaml:"red_assets"`
	Bases      []ContactLine `json:"bases" yaml:"bases"`

	Level        string           `json:"posture_level" yaml:"posture_level"`
	Actions      []string         `json:"recommended_actions" yaml:"recommended_actions"`
	Connectivity datalink.Summary `json:"connectivity" yaml:"connectivity"`
}

// ContactLine is one asset or base with its range from the center.
type ContactLine struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Side       string  `json:"side" yaml:"side"`
	Kind       string  `json:"kind" yaml:"kind"`
	DistanceKm float64 `json:"distance_km" yaml:"distance_km"`
	Status     string  `json:"status,omitempty" yaml:"status,omitempty"`
}

var postureActions = map[string][]string{
	PostureLow: {
		"continue routine patrols",
		"maintain picture and report changes",
	},
	PostureElevated: {
		"increase patrol frequency",
		"tighten relay network check-ins",
		"coordinate adjacent surface groups",
	},
	PostureHigh: {
		"alert nearby bases for reinforcement",
		"activate the full relay mesh",
		"reposition the submarine screen",
		"hold standoff batteries at readiness",
	},
}

// BuildPosture assembles the posture picture around a point.
func BuildPosture(cat *catalog.Catalog, center catalog.GeoPoint, radiusKm float64, now time.Time) *PostureReport {
	r := &PostureReport{
		Kind:        "posture",
		GeneratedAt: stamp(now),
		Center:      center,
		RadiusKm:    radiusKm,
	}

	for _, hit := range cat.AssetsInRange(center, radiusKm, "", "") {
		line := ContactLine{
			ID:         hit.Asset.ID,
			Name:       hit.Asset.Name,
			Side:       hit.Asset.Side,
			Kind:       hit.Asset.Kind,
			DistanceKm: hit.DistanceKm,
			Status:     hit.Asset.Status,
		}
		if hit.Asset.Side == catalog.SideBlue {
			r.BlueAssets = append(r.BlueAssets, line)
		} else {
			r.RedAssets = append(r.RedAssets, line)
		}
	}
	for _, hit := range cat.BasesInRange(center, radiusKm, "") {
		r.Bases = append(r.Bases, ContactLine{
			ID:         hit.Base.ID,
			Name:       hit.Base.Name,
			Side:       hit.Base.Side,
			Kind:       "base",
			DistanceKm: hit.DistanceKm,
		})
	}

	blue := len(r.BlueAssets)
	red := len(r.RedAssets)
	switch {
	case red > blue*2:
		r.Level = PostureHigh
	case red > blue:
		r.Level = PostureElevated
	default:
		r.Level = PostureLow
	}
	r.Actions = postureActions[r.Level]

	r.Connectivity = datalink.Build(cat, catalog.SideBlue).Summarize(catalog.SideBlue)

	return r
}

var postureTmpl = template.Must(template.New("posture").Parse(`# Posture Report

Generated: {{.GeneratedAt.Format "2006-01-02T15:04:05Z"}}

Center: {{.Center.Lat}}, {{.Center.Lon}} (radius {{.RadiusKm}} km)
Posture level: **{{.Level}}** ({{len .BlueAssets}} blue, {{len .RedAssets}} red in range)

## Contacts

| ID | Name | Side | Kind | Distance (km) |
|---|---|---|---|---|
{{range .BlueAssets}}| {{.ID}} | {{.Name}} | {{.Side}} | {{.Kind}} | {{.DistanceKm}} |
{{end}}{{range .RedAssets}}| {{.ID}} | {{.Name}} | {{.Side}} | {{.Kind}} | {{.DistanceKm}} |
{{end}}{{range .Bases}}| {{.ID}} | {{.Name}} | {{.Side}} | {{.Kind}} | {{.DistanceKm}} |
{{end}}
## Recommended Actions

{{range .Actions}}- {{.}}
{{end}}
## Relay Connectivity ({{.Connectivity.Side}})

{{.Connectivity.NodeCount}} nodes, {{.Connectivity.LinkCount}} links, mesh ratio {{printf "%.2f" .Connectivity.MeshRatio}}.
{{if .Connectivity.IsolatedNodes}}Isolated: {{range .Connectivity.IsolatedNodes}}{{.}} {{end}}{{end}}`))

func (r *PostureReport) Markdown(w io.Writer) error {
	return postureTmpl.Execute(w, r)
}
