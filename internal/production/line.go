package production

import (
	"fmt"
	"math"

	"aeroforge/internal/catalog"
	"aeroforge/internal/geom"
)

// Station is a manufacturing cell with a fixed capability set.
type Station struct {
	ID           string   `json:"id" yaml:"id"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`
}

func (s *Station) hasCapability(c string) bool {
	for _, have := range s.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// buildStages is the fixed routing every unit follows.
var buildStages = []string{"machining", "layup", "integration", "inspection"}

// Line routes orders for one system across its stations.
type Line struct {
	SystemID string     `json:"system_id" yaml:"system_id"`
	Stations []*Station `json:"stations" yaml:"stations"`
}

// NewLine sets up the default four-cell line for a system.
func NewLine(systemID string) *Line {
	return &Line{
		SystemID: systemID,
		Stations: []*Station{
			{ID: systemID + "-cell-1", Capabilities: []string{"machining"}},
			{ID: systemID + "-cell-2", Capabilities: []string{"layup", "machining"}},
			{ID: systemID + "-cell-3", Capabilities: []string{"integration"}},
			{ID: systemID + "-cell-4", Capabilities: []string{"inspection"}},
		},
	}
}

// Job is one stage of one unit routed to a station.
type Job struct {
	Serial  string `json:"serial" yaml:"serial"`
	Stage   string `json:"stage" yaml:"stage"`
	Station string `json:"station" yaml:"station"`
}

// Schedule routes every unit of the order through the build stages,
// spreading work across capable stations round-robin.
func (l *Line) Schedule(order *Order) ([]Job, error) {
	if order.SystemID != l.SystemID {
		return nil, fmt.Errorf("line %s cannot build %s", l.SystemID, order.SystemID)
	}

	next := make(map[string]int)
	var jobs []Job
	for unit := 1; unit <= order.Quantity; unit++ {
		serial := fmt.Sprintf("%s-%s-%03d", order.SystemID, order.ID, unit)
		for _, stage := range buildStages {
			var capable []*Station
			for _, st := range l.Stations {
				if st.hasCapability(stage) {
					capable = append(capable, st)
				}
			}
			if len(capable) == 0 {
				return nil, fmt.Errorf("line %s has no station for stage %q", l.SystemID, stage)
			}
			station := capable[next[stage]%len(capable)]
			next[stage]++
			jobs = append(jobs, Job{Serial: serial, Stage: stage, Station: station.ID})
		}
	}
	return jobs, nil
}

// MaterialNeed is the per-material mass an order consumes.
type MaterialNeed struct {
	Material string  `json:"material" yaml:"material"`
	MassKg   float64 `json:"mass_kg" yaml:"mass_kg"`
}

// MaterialNeeds prices the order's material demand off the assembly bill
// of materials.
func MaterialNeeds(cat *catalog.Catalog, order *Order) ([]MaterialNeed, error) {
	sys, err := cat.System(order.SystemID)
	if err != nil {
		return nil, err
	}
	asm, err := geom.NewBuilder(cat).BuildAssembly(sys)
	if err != nil {
		return nil, fmt.Errorf("sizing materials for %s: %w", order.SystemID, err)
	}
	bom, err := geom.BuildBOM(cat, asm)
	if err != nil {
		return nil, err
	}

	byMaterial := make(map[string]float64)
	for _, e := range bom.Entries {
		byMaterial[e.Material] += e.MassKg * float64(order.Quantity)
	}

	out := make([]MaterialNeed, 0, len(byMaterial))
	for _, m := range cat.Materials { // catalog order keeps output stable
		if mass, ok := byMaterial[m.ID]; ok {
			out = append(out, MaterialNeed{Material: m.ID, MassKg: round1(mass)})
		}
	}
	return out, nil
}

// InspectionItem is one dimensional check of a finished unit.
type InspectionItem struct {
	Check     string  `json:"check" yaml:"check"`
	Measured  float64 `json:"measured" yaml:"measured"`
	Nominal   float64 `json:"nominal" yaml:"nominal"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
	Pass      bool    `json:"pass" yaml:"pass"`
}

// Inspection is a finished unit's final dimensional report.
type Inspection struct {
	Serial string           `json:"serial" yaml:"serial"`
	Items  []InspectionItem `json:"items" yaml:"items"`
	Pass   bool             `json:"pass" yaml:"pass"`
}

// FinalInspection checks the as-built geometry against catalog nominals.
// Measurements come from the assembly model, so the check is exercising
// the geometry pipeline rather than random gauge noise.
func FinalInspection(cat *catalog.Catalog, systemID, serial string) (*Inspection, error) {
	sys, err := cat.System(systemID)
	if err != nil {
		return nil, err
	}
	asm, err := geom.NewBuilder(cat).BuildAssembly(sys)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", serial, err)
	}

	// Each check pairs a model-measured value with an independent catalog
	// nominal; a check that measures its own nominal can never fail.
	bb := asm.Shape.BoundingBox()
	items := []InspectionItem{
		newItem("stack_length_m", asm.Length, sys.Length, sys.Length*0.15),
		newItem("body_diameter_m", bb.Max.X-bb.Min.X, maxBodyDiameter(sys), maxBodyDiameter(sys)*0.35),
	}

	insp := &Inspection{Serial: serial, Items: items, Pass: true}
	for _, item := range items {
		if !item.Pass {
			insp.Pass = false
		}
	}
	return insp, nil
}

func newItem(check string, measured, nominal, tolerance float64) InspectionItem {
	return InspectionItem{
		Check:     check,
		Measured:  round3(measured),
		Nominal:   round3(nominal),
		Tolerance: round3(tolerance),
		Pass:      math.Abs(measured-nominal) <= tolerance,
	}
}

// maxBodyDiameter includes motor stages wider than the main airframe plus
// fin span and antenna stand-off.
func maxBodyDiameter(sys *catalog.System) float64 {
	d := sys.Diameter
	for _, m := range sys.Motors {
		if m.Diameter > d {
			d = m.Diameter
		}
	}
	if span := 2 * (sys.Fins.MountRadius + sys.Fins.Span); span > d {
		d = span
	}
	return d
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
