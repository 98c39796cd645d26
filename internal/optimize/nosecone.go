// Package optimize fits nose cone parameters against empirical drag, heat,
// mass and stress models with a weighted scalar objective.
package optimize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"aeroforge/internal/catalog"
)

// Params is the nose cone design vector. Linear dimensions are millimeters
// to match the empirical fits.
type Params struct {
	RadiusMM    float64 `json:"radius_mm" yaml:"radius_mm"`
	LengthMM    float64 `json:"length_mm" yaml:"length_mm"`
	ShapeFactor float64 `json:"shape_factor" yaml:"shape_factor"` // 0.5 conical .. 2.5 blunt ogive
	TPSThickMM  float64 `json:"tps_thick_mm" yaml:"tps_thick_mm"`
}

// Metrics are the evaluated performance figures for one design point.
type Metrics struct {
	DragN        float64 `json:"drag_n" yaml:"drag_n"`
	HeatLoadW    float64 `json:"heat_load_w" yaml:"heat_load_w"`
	MassKg       float64 `json:"mass_kg" yaml:"mass_kg"`
	StressMPa    float64 `json:"stress_mpa" yaml:"stress_mpa"`
	SafetyFactor float64 `json:"safety_factor" yaml:"safety_factor"`
}

// Conditions are the flight conditions the models are evaluated at.
type Conditions struct {
	Mach            float64
	DynamicPressure float64 // Pa
	TempGradientC   float64
}

// DefaultConditions follow the reference hypersonic flight envelope.
var DefaultConditions = Conditions{
	Mach:            10,
	DynamicPressure: 50000,
	TempGradientC:   1500,
}

type bound struct{ lo, hi float64 }

var paramBounds = [4]bound{
	{400, 500},   // radius mm
	{2000, 3000}, // length mm
	{0.5, 2.5},   // shape factor
	{20, 50},     // tps mm
}

const maxMassKg = 350

// objective weights
var weights = struct{ drag, heat, mass, stress float64 }{0.35, 0.25, 0.25, 0.15}

// normalizers bring each metric to order one before weighting
const (
	dragNorm = 5000
	heatNorm = 1e8
	massNorm = 300
)

type NoseConeOptimizer struct {
	material   *catalog.Material
	tpsDensity float64 // kg/m^3, carbon-ceramic overlay
	cond       Conditions
}

func NewNoseConeOptimizer(material *catalog.Material, cond Conditions) *NoseConeOptimizer {
	return &NoseConeOptimizer{
		material:   material,
		tpsDensity: 2200,
		cond:       cond,
	}
}

// ParamsFromNose converts catalog nose geometry (meters) into the design
// vector (millimeters).
func ParamsFromNose(n catalog.NoseParams) Params {
	return Params{
		RadiusMM:    n.BaseDiameter / 2 * 1000,
		LengthMM:    n.Length * 1000,
		ShapeFactor: n.ShapeFactor,
		TPSThickMM:  n.TPSThickness * 1000,
	}
}

// Evaluate computes all metrics for a design point.
func (o *NoseConeOptimizer) Evaluate(p Params) Metrics {
	m := Metrics{
		DragN:     o.drag(p),
		HeatLoadW: o.heatLoad(p),
		MassKg:    o.mass(p),
		StressMPa: o.stress(p),
	}
	if m.StressMPa > 0 {
		m.SafetyFactor = round2(o.material.YieldStrength / m.StressMPa)
	}
	m.DragN = round2(m.DragN)
	m.HeatLoadW = math.Round(m.HeatLoadW)
	m.MassKg = round2(m.MassKg)
	m.StressMPa = round2(m.StressMPa)
	return m
}

// drag: shape-dependent base coefficient, slenderness relief, hypersonic
// Mach rise, against reference area and dynamic pressure.
func (o *NoseConeOptimizer) drag(p Params) float64 {
	rM := p.RadiusMM / 1000
	sRef := math.Pi * rM * rM

	baseCd := 0.05 * math.Exp(-0.5*p.ShapeFactor)
	slenderness := p.LengthMM / (2 * p.RadiusMM)
	lengthFactor := 1.0 / (1.0 + 0.1*slenderness)
	machFactor := 1.0 + 0.1*math.Pow(o.cond.Mach-5, 2)

	cd := baseCd * lengthFactor * machFactor
	return cd * o.cond.DynamicPressure * sRef
}

// heatLoad: stagnation point flux scaled by bluntness, lateral surface
// area, attenuated by the thermal protection layer.
func (o *NoseConeOptimizer) heatLoad(p Params) float64 {
	rM := p.RadiusMM / 1000
	lM := p.LengthMM / 1000

	// Effective bluntness radius grows with the shape factor.
	noseRadius := rM * (0.02 + 0.01*p.ShapeFactor)
	velocity := o.cond.Mach * 340
	qStag := 1.83e-4 * math.Pow(velocity, 3) / math.Sqrt(noseRadius)

	surface := math.Pi * rM * math.Sqrt(rM*rM+lM*lM)
	tpsEffectiveness := 1.0 - math.Exp(-p.TPSThickMM/25)

	return qStag * surface * (1.0 - tpsEffectiveness)
}

// mass: thin conical structural shell plus the TPS overlay.
func (o *NoseConeOptimizer) mass(p Params) float64 {
	const structThickMM = 10

	slant := math.Sqrt(p.RadiusMM*p.RadiusMM + p.LengthMM*p.LengthMM)
	lateralMM2 := math.Pi * p.RadiusMM * slant

	structVolM3 := lateralMM2 * structThickMM * 1e-9
	tpsVolM3 := lateralMM2 * p.TPSThickMM * 1e-9

	return structVolM3*o.material.Density + tpsVolM3*o.tpsDensity
}

// stress: bending from dynamic pressure over a thin shell section plus a
// thermal term attenuated by the TPS.
func (o *NoseConeOptimizer) stress(p Params) float64 {
	const structThickMM = 10

	bendingMoment := o.cond.DynamicPressure * math.Pi * p.RadiusMM * p.RadiusMM * p.LengthMM / 4
	sectionModulus := math.Pi * p.RadiusMM * p.RadiusMM * structThickMM
	bendingMPa := bendingMoment / sectionModulus * 1e-6

	const (
		youngMPa = 113.8e3
		alpha    = 8.6e-6
	)
	deltaT := o.cond.TempGradientC * math.Exp(-p.TPSThickMM/25)
	thermalMPa := youngMPa * alpha * deltaT

	return bendingMPa + thermalMPa
}

// Objective is the weighted normalized scalar the optimizer minimizes,
// with quadratic penalties for bound and mass-cap violations.
func (o *NoseConeOptimizer) Objective(x []float64) float64 {
	p := Params{RadiusMM: x[0], LengthMM: x[1], ShapeFactor: x[2], TPSThickMM: x[3]}

	penalty := 0.0
	for i, b := range paramBounds {
		if x[i] < b.lo {
			d := (b.lo - x[i]) / (b.hi - b.lo)
			penalty += 1e3 * d * d
		}
		if x[i] > b.hi {
			d := (x[i] - b.hi) / (b.hi - b.lo)
			penalty += 1e3 * d * d
		}
	}

	mass := o.mass(p)
	if mass > maxMassKg {
		d := (mass - maxMassKg) / maxMassKg
		penalty += 1e3 * d * d
	}

	value := weights.drag*o.drag(p)/dragNorm +
		weights.heat*o.heatLoad(p)/heatNorm +
		weights.mass*mass/massNorm +
		weights.stress*o.stress(p)/o.material.YieldStrength

	return value + penalty
}

// Result carries the optimized design point with its baseline comparison.
type Result struct {
	SystemID     string                     `json:"system_id" yaml:"system_id"`
	Baseline     Params                     `json:"baseline" yaml:"baseline"`
	Optimized    Params                     `json:"optimized" yaml:"optimized"`
	BaseMetrics  Metrics                    `json:"baseline_metrics" yaml:"baseline_metrics"`
	OptMetrics   Metrics                    `json:"optimized_metrics" yaml:"optimized_metrics"`
	Objective    float64                    `json:"objective" yaml:"objective"`
	Evaluations  int                        `json:"evaluations" yaml:"evaluations"`
	Improvements []catalog.ImprovementClaim `json:"improvements" yaml:"improvements"`
}

// Run minimizes the objective starting from the system's catalog nose
// geometry using Nelder-Mead.
func Run(cat *catalog.Catalog, systemID string) (*Result, error) {
	sys, err := cat.System(systemID)
	if err != nil {
		return nil, err
	}
	material, err := cat.Material(sys.Nose.Material)
	if err != nil {
		return nil, fmt.Errorf("nose material for %s: %w", systemID, err)
	}

	o := NewNoseConeOptimizer(material, DefaultConditions)
	baseline := ParamsFromNose(sys.Nose)
	x0 := []float64{baseline.RadiusMM, baseline.LengthMM, baseline.ShapeFactor, baseline.TPSThickMM}

	problem := optimize.Problem{Func: o.Objective}
	res, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("minimizing nose cone objective for %s: %w", systemID, err)
	}

	optimized := Params{
		RadiusMM:    round2(res.X[0]),
		LengthMM:    round2(res.X[1]),
		ShapeFactor: round2(res.X[2]),
		TPSThickMM:  round2(res.X[3]),
	}

	result := &Result{
		SystemID:    systemID,
		Baseline:    baseline,
		Optimized:   optimized,
		BaseMetrics: o.Evaluate(baseline),
		OptMetrics:  o.Evaluate(optimized),
		Objective:   res.F,
		Evaluations: res.Stats.FuncEvaluations,
	}
	result.Improvements = Improvements(result.BaseMetrics, result.OptMetrics)

	return result, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
