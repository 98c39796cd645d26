package report

import (
	"io"
	"text/template"
	"time"

	"aeroforge/internal/catalog"
	"aeroforge/internal/production"
)

// ProductionReport is the build plan for one order: schedule estimate,
// station jobs, material demand and the projected final inspection.
type ProductionReport struct {
	Kind        string    `json:"kind" yaml:"kind"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Order    *production.Order         `json:"order" yaml:"order"`
	Estimate *production.Estimate      `json:"estimate" yaml:"estimate"`
	Jobs     []production.Job          `json:"jobs" yaml:"jobs"`
	Needs    []production.MaterialNeed `json:"material_needs" yaml:"material_needs"`
	Reorder  []production.ReorderLine  `json:"reorder,omitempty" yaml:"reorder,omitempty"`
	Sample   *production.Inspection    `json:"sample_inspection" yaml:"sample_inspection"`
}

// BuildProduction plans the order end to end. inv may be nil when no
// inventory file is in play.
func BuildProduction(cat *catalog.Catalog, order *production.Order, inv *production.Inventory, now time.Time) (*ProductionReport, error) {
	est, err := order.EstimateCompletion(cat)
	if err != nil {
		return nil, err
	}
	jobs, err := production.NewLine(order.SystemID).Schedule(order)
	if err != nil {
		return nil, err
	}
	needs, err := production.MaterialNeeds(cat, order)
	if err != nil {
		return nil, err
	}
	sample, err := production.FinalInspection(cat, order.SystemID, jobs[0].Serial)
	if err != nil {
		return nil, err
	}

	r := &ProductionReport{
		Kind:        "production",
		GeneratedAt: stamp(now),
		Order:       order,
		Estimate:    est,
		Jobs:        jobs,
		Needs:       needs,
		Sample:      sample,
	}
	if inv != nil {
		r.Reorder = inv.ReorderReport()
	}
	return r, nil
}

var productionTmpl = template.Must(template.New("production").Parse(`# Production Plan: {{.Order.ID}}

Generated: {{.GeneratedAt.Format "2006-01-02T15:04:05Z"}}

Order: {{.Order.Quantity}}x {{.Order.SystemID}}, priority {{.Order.Priority}}.
Estimated duration: {{.Estimate.Days}} days, completion {{.Estimate.Completion.Format "2006-01-02"}}.

## Material Demand

| Material | Mass (kg) |
|---|---|
{{range .Needs}}| {{.Material}} | {{.MassKg}} |
{{end}}{{if .Reorder}}
## Reorder

| Material | Available (kg) | Reorder Point (kg) | Shortfall (kg) |
|---|---|---|---|
{{range .Reorder}}| {{.Material}} | {{.AvailableKg}} | {{.ReorderPoint}} | {{.ShortfallKg}} |
{{end}}{{end}}
## Schedule

| Serial | Stage | Station |
|---|---|---|
{{range .Jobs}}| {{.Serial}} | {{.Stage}} | {{.Station}} |
{{end}}
## Sample Inspection ({{.Sample.Serial}})

{{if .Sample.Pass}}All checks pass.{{else}}FAILED checks present.{{end}}

| Check | Measured | Nominal | Tolerance | Pass |
|---|---|---|---|---|
{{range .Sample.Items}}| {{.Check}} | {{.Measured}} | {{.Nominal}} | {{.Tolerance}} | {{.Pass}} |
{{end}}`))

func (r *ProductionReport) Markdown(w io.Writer) error {
	return productionTmpl.Execute(w, r)
}
