package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"aeroforge/internal/catalog"
	"aeroforge/internal/geom"
)

// CapabilityReport summarizes one system: airframe, performance, section
// stack and mass budget.
type CapabilityReport struct {
	Kind        string    `json:"kind" yaml:"kind"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	SystemID  string   `json:"system_id" yaml:"system_id"`
	Name      string   `json:"name" yaml:"name"`
	Class     string   `json:"class" yaml:"class"`
	LengthM   float64  `json:"length_m" yaml:"length_m"`
	DiameterM float64  `json:"diameter_m" yaml:"diameter_m"`
	RangeKm   float64  `json:"range_km" yaml:"range_km"`
	SpeedMach float64  `json:"speed_mach" yaml:"speed_mach"`
	PayloadKg float64  `json:"payload_kg" yaml:"payload_kg"`
	DataLinks []string `json:"data_links" yaml:"data_links"`

	Sections []SectionLine              `json:"sections" yaml:"sections"`
	Mass     *geom.BOM                  `json:"mass_budget" yaml:"mass_budget"`
	Claims   []catalog.ImprovementClaim `json:"claims,omitempty" yaml:"claims,omitempty"`
}

// SectionLine is one stacked component of the airframe.
type SectionLine struct {
	Name     string  `json:"name" yaml:"name"`
	Material string  `json:"material" yaml:"material"`
	LengthM  float64 `json:"length_m" yaml:"length_m"`
	OffsetZM float64 `json:"offset_z_m" yaml:"offset_z_m"`
}

// BuildCapability assembles the capability report for one system.
func BuildCapability(cat *catalog.Catalog, systemID string, now time.Time) (*CapabilityReport, error) {
	sys, err := cat.System(systemID)
	if err != nil {
		return nil, err
	}

	asm, err := geom.NewBuilder(cat).BuildAssembly(sys)
	if err != nil {
		return nil, fmt.Errorf("capability report for %s: %w", systemID, err)
	}
	bom, err := geom.BuildBOM(cat, asm)
	if err != nil {
		return nil, err
	}

	r := &CapabilityReport{
		Kind:        "capability",
		GeneratedAt: stamp(now),
		SystemID:    sys.ID,
		Name:        sys.Name,
		Class:       sys.Class,
		LengthM:     sys.Length,
		DiameterM:   sys.Diameter,
		RangeKm:     sys.RangeKm,
		SpeedMach:   sys.SpeedMach,
		PayloadKg:   sys.PayloadKg,
		DataLinks:   sys.DataLinks,
		Mass:        bom,
		Claims:      sys.Claims,
	}
	for _, comp := range asm.Components {
		r.Sections = append(r.Sections, SectionLine{
			Name:     comp.Name,
			Material: comp.Material,
			LengthM:  comp.Length,
			OffsetZM: comp.OffsetZ,
		})
	}
	return r, nil
}

var capabilityTmpl = template.Must(template.New("capability").Parse(`# Capability Report: {{.Name}}

Generated: {{.GeneratedAt.Format "2006-01-02T15:04:05Z"}}

## Airframe

| Field | Value |
|---|---|
| Class | {{.Class}} |
| Length | {{.LengthM}} m |
| Diameter | {{.DiameterM}} m |
| Range | {{.RangeKm}} km |
| Speed | Mach {{.SpeedMach}} |
| Payload | {{.PayloadKg}} kg |

## Sections

| Section | Material | Length (m) | Station (m) |
|---|---|---|---|
{{range .Sections}}| {{.Name}} | {{.Material}} | {{.LengthM}} | {{.OffsetZM}} |
{{end}}
## Mass Budget

Total dry mass: {{.Mass.TotalMassKg}} kg, material cost {{.Mass.TotalCost}} USD.

| Component | Material | Mass (kg) |
|---|---|---|
{{range .Mass.Entries}}| {{.Component}} | {{.Material}} | {{.MassKg}} |
{{end}}{{if .Claims}}
## Improvement Claims

| Metric | Baseline | Optimized | Percent |
|---|---|---|---|
{{range .Claims}}| {{.Metric}} | {{.Baseline}} | {{.Optimized}} | {{.Percent}}% |
{{end}}{{end}}`))

func (r *CapabilityReport) Markdown(w io.Writer) error {
	return capabilityTmpl.Execute(w, r)
}
