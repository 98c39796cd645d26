package report

import (
	"fmt"
	"io"
	"math"
	"text/template"
	"time"

	"aeroforge/internal/catalog"
)

// ScenarioReport scores a scenario's force lists into an outcome estimate.
// Scoring is additive over catalog facts, so the same catalog always yields
// the same numbers.
type ScenarioReport struct {
	Kind        string    `json:"kind" yaml:"kind"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	ScenarioID  string `json:"scenario_id" yaml:"scenario_id"`
	Name        string `json:"name" yaml:"name"`
	Environment string `json:"environment" yaml:"environment"`
	TimeFrame   string `json:"time_frame" yaml:"time_frame"`

	BlueForces []string `json:"blue_forces" yaml:"blue_forces"`
	RedForces  []string `json:"red_forces" yaml:"red_forces"`

	BlueScore              float64  `json:"blue_score" yaml:"blue_score"`
	RedScore               float64  `json:"red_score" yaml:"red_score"`
	BlueSuccessProbability float64  `json:"blue_success_probability" yaml:"blue_success_probability"`
	Factors                []Factor `json:"factors" yaml:"factors"`
}

// Factor is one scored contribution with the side it credits.
type Factor struct {
	Side   string  `json:"side" yaml:"side"`
	Reason string  `json:"reason" yaml:"reason"`
	Points float64 `json:"points" yaml:"points"`
}

var kindPoints = map[string]float64{
	catalog.KindSurface:   2,
	catalog.KindSubmarine: 3,
	catalog.KindAircraft:  2,
}

var classPoints = map[string]float64{
	catalog.ClassBoostGlide: 15,
	catalog.ClassBallistic:  10,
	catalog.ClassCruise:     5,
}

const standoffRangeKm = 1500

// BuildScenario scores the named scenario.
func BuildScenario(cat *catalog.Catalog, scenarioID string, now time.Time) (*ScenarioReport, error) {
	sc, err := cat.Scenario(scenarioID)
	if err != nil {
		return nil, err
	}

	r := &ScenarioReport{
		Kind:        "scenario",
		GeneratedAt: stamp(now),
		ScenarioID:  sc.ID,
		Name:        sc.Name,
		Environment: sc.Environment,
		TimeFrame:   sc.TimeFrame,
		BlueForces:  sc.BlueForces,
		RedForces:   sc.RedForces,
	}

	if err := r.scoreForce(cat, catalog.SideBlue, sc.BlueForces); err != nil {
		return nil, fmt.Errorf("scoring scenario %s: %w", scenarioID, err)
	}
	if err := r.scoreForce(cat, catalog.SideRed, sc.RedForces); err != nil {
		return nil, fmt.Errorf("scoring scenario %s: %w", scenarioID, err)
	}

	switch sc.Environment {
	case catalog.EnvStrait:
		r.addFactor(catalog.SideBlue, "strait chokepoint favors the defender", 15)
	case catalog.EnvOpenWater:
		r.addFactor(catalog.SideRed, "open water favors the larger force", 10)
	case catalog.EnvLittoral:
		r.addFactor(catalog.SideBlue, "littoral clutter favors the defender", 5)
	}

	if total := r.BlueScore + r.RedScore; total > 0 {
		r.BlueSuccessProbability = math.Round(r.BlueScore/total*1000) / 1000
	}
	return r, nil
}

func (r *ScenarioReport) scoreForce(cat *catalog.Catalog, side string, force []string) error {
	standoff := false
	for _, id := range force {
		asset, err := cat.Asset(id)
		if err != nil {
			return err
		}
		r.addFactor(side, asset.ID+" ("+asset.Kind+")", kindPoints[asset.Kind])
		for _, sysID := range asset.Systems {
			sys, err := cat.System(sysID)
			if err != nil {
				return fmt.Errorf("asset %s: %w", asset.ID, err)
			}
			r.addFactor(side, asset.ID+" carries "+sys.ID+" ("+sys.Class+")", classPoints[sys.Class])
			if sys.RangeKm > standoffRangeKm {
				standoff = true
			}
		}
	}
	if standoff {
		r.addFactor(side, "standoff strike reach beyond 1500 km", 10)
	}
	return nil
}

func (r *ScenarioReport) addFactor(side, reason string, points float64) {
	if points == 0 {
		return
	}
	r.Factors = append(r.Factors, Factor{Side: side, Reason: reason, Points: points})
	if side == catalog.SideBlue {
		r.BlueScore += points
	} else {
		r.RedScore += points
	}
}

var scenarioTmpl = template.Must(template.New("scenario").Parse(`# Scenario Outcome: {{.Name}}

Generated: {{.GeneratedAt.Format "2006-01-02T15:04:05Z"}}

Environment: {{.Environment}} ({{.TimeFrame}})

Blue score {{.BlueScore}}, red score {{.RedScore}}.
Estimated blue success probability: **{{printf "%.1f" .ProbabilityPercent}}%**

## Factors

| Side | Factor | Points |
|---|---|---|
{{range .Factors}}| {{.Side}} | {{.Reason}} | {{.Points}} |
{{end}}
## Order of Battle

Blue: {{range .BlueForces}}{{.}} {{end}}
Red: {{range .RedForces}}{{.}} {{end}}`))

// ProbabilityPercent exists for the Markdown template.
func (r *ScenarioReport) ProbabilityPercent() float64 {
	return r.BlueSuccessProbability * 100
}

func (r *ScenarioReport) Markdown(w io.Writer) error {
	return scenarioTmpl.Execute(w, r)
}
