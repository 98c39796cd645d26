package report

import (
	"io"
	"text/template"
	"time"

	"aeroforge/internal/catalog"
	"aeroforge/internal/optimize"
)

// OptimizationReport wraps an optimizer run for rendering.
type OptimizationReport struct {
	Kind        string    `json:"kind" yaml:"kind"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Result *optimize.Result `json:"result" yaml:"result"`
}

// BuildOptimization runs the nose cone optimizer for a system and wraps
// the outcome.
func BuildOptimization(cat *catalog.Catalog, systemID string, now time.Time) (*OptimizationReport, error) {
	res, err := optimize.Run(cat, systemID)
	if err != nil {
		return nil, err
	}
	return &OptimizationReport{
		Kind:        "optimization",
		GeneratedAt: stamp(now),
		Result:      res,
	}, nil
}

var optimizationTmpl = template.Must(template.New("optimization").Parse(`# Nose Cone Optimization: {{.Result.SystemID}}

Generated: {{.GeneratedAt.Format "2006-01-02T15:04:05Z"}}

Objective {{printf "%.4f" .Result.Objective}} after {{.Result.Evaluations}} evaluations.

## Design Point

| Parameter | Baseline | Optimized |
|---|---|---|
| Radius (mm) | {{.Result.Baseline.RadiusMM}} | {{.Result.Optimized.RadiusMM}} |
| Length (mm) | {{.Result.Baseline.LengthMM}} | {{.Result.Optimized.LengthMM}} |
| Shape factor | {{.Result.Baseline.ShapeFactor}} | {{.Result.Optimized.ShapeFactor}} |
| TPS thickness (mm) | {{.Result.Baseline.TPSThickMM}} | {{.Result.Optimized.TPSThickMM}} |

## Metrics

| Metric | Baseline | Optimized |
|---|---|---|
| Drag (N) | {{.Result.BaseMetrics.DragN}} | {{.Result.OptMetrics.DragN}} |
| Heat load (W) | {{.Result.BaseMetrics.HeatLoadW}} | {{.Result.OptMetrics.HeatLoadW}} |
| Mass (kg) | {{.Result.BaseMetrics.MassKg}} | {{.Result.OptMetrics.MassKg}} |
| Stress (MPa) | {{.Result.BaseMetrics.StressMPa}} | {{.Result.OptMetrics.StressMPa}} |
| Safety factor | {{.Result.BaseMetrics.SafetyFactor}} | {{.Result.OptMetrics.SafetyFactor}} |
{{if .Result.Improvements}}
## Improvements

| Metric | Baseline | Optimized | Percent |
|---|---|---|---|
{{range .Result.Improvements}}| {{.Metric}} | {{.Baseline}} | {{.Optimized}} | {{.Percent}}% |
{{end}}{{end}}`))

func (r *OptimizationReport) Markdown(w io.Writer) error {
	return optimizationTmpl.Execute(w, r)
}
