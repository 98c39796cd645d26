// Package geom builds parametric solid geometry for catalog systems by
// composing CAD kernel primitives (cylinders, cones, extrusions, booleans).
package geom

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"aeroforge/internal/catalog"
)

// Solid is a built component: the kernel solid plus the analytic volume
// used for mass accounting. Volumes are analytic section approximations,
// not kernel integrals, matching how the mass budget is defined.
type Solid struct {
	Name     string
	Material string
	Shape    sdf.SDF3
	Volume   float64 // m^3
	Length   float64 // axial extent, m
}

type Builder struct {
	cat *catalog.Catalog
}

func NewBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{cat: cat}
}

// NoseCone builds a truncated cone from base to tip radius. The thermal
// protection layer contributes to the mass model only.
func (b *Builder) NoseCone(p catalog.NoseParams) (*Solid, error) {
	baseR := p.BaseDiameter / 2
	tipR := p.TipDiameter / 2
	if baseR <= tipR {
		return nil, fmt.Errorf("nose cone: base radius %g must exceed tip radius %g", baseR, tipR)
	}

	cone, err := sdf.Cone3D(p.Length, baseR, tipR, 0)
	if err != nil {
		return nil, fmt.Errorf("nose cone: %w", err)
	}

	// Frustum volume.
	vol := math.Pi * p.Length / 3 * (baseR*baseR + baseR*tipR + tipR*tipR)

	return &Solid{
		Name:     "nose_cone",
		Material: p.Material,
		Shape:    cone,
		Volume:   vol,
		Length:   p.Length,
	}, nil
}

// PayloadSection builds a hollow cylinder with a forward fuze ring and an
// aft mounting flange.
func (b *Builder) PayloadSection(p catalog.PayloadParams) (*Solid, error) {
	r := p.Diameter / 2
	if p.WallThickness >= r {
		return nil, fmt.Errorf("payload section: wall %g too thick for radius %g", p.WallThickness, r)
	}

	const closeout = 0.1 // total end closeout, m

	body, err := sdf.Cylinder3D(p.Length, r, 0)
	if err != nil {
		return nil, fmt.Errorf("payload body: %w", err)
	}
	cavity, err := sdf.Cylinder3D(p.Length-closeout, r-p.WallThickness, 0)
	if err != nil {
		return nil, fmt.Errorf("payload cavity: %w", err)
	}
	shell := sdf.Difference3D(body, cavity)

	fuzeR := r * 0.3
	fuze, err := sdf.Cylinder3D(closeout, fuzeR, 0)
	if err != nil {
		return nil, fmt.Errorf("payload fuze: %w", err)
	}
	fuze = sdf.Transform3D(fuze, sdf.Translate3d(v3.Vec{Z: p.Length/2 + closeout/2}))

	flangeR := r * 1.1
	flangeOuter, err := sdf.Cylinder3D(0.05, flangeR, 0)
	if err != nil {
		return nil, fmt.Errorf("payload flange: %w", err)
	}
	flangeBore, err := sdf.Cylinder3D(0.06, r, 0)
	if err != nil {
		return nil, fmt.Errorf("payload flange bore: %w", err)
	}
	flange := sdf.Difference3D(flangeOuter, flangeBore)
	flange = sdf.Transform3D(flange, sdf.Translate3d(v3.Vec{Z: -p.Length/2 - 0.025}))

	shape := sdf.Union3D(shell, fuze, flange)

	inner := r - p.WallThickness
	vol := math.Pi*(r*r-inner*inner)*p.Length + // wall
		math.Pi*inner*inner*closeout + // end closeouts
		math.Pi*fuzeR*fuzeR*closeout + // fuze ring
		math.Pi*(flangeR*flangeR-r*r)*0.05 // flange

	return &Solid{
		Name:     "payload_section",
		Material: p.Material,
		Shape:    shape,
		Volume:   vol,
		Length:   p.Length + 2*closeout/2,
	}, nil
}

// GuidanceSection builds a cylinder with rectangular sensor window cuts
// around the circumference.
func (b *Builder) GuidanceSection(p catalog.GuidanceParams) (*Solid, error) {
	r := p.Diameter / 2

	body, err := sdf.Cylinder3D(p.Length, r, 0)
	if err != nil {
		return nil, fmt.Errorf("guidance body: %w", err)
	}

	if p.SensorWindows > 0 {
		winW := 0.12 * p.Diameter
		winH := 0.25 * p.Length
		winD := 0.08 * p.Diameter
		window, err := sdf.Box3D(v3.Vec{X: winD * 2, Y: winW, Z: winH}, 0)
		if err != nil {
			return nil, fmt.Errorf("guidance window: %w", err)
		}
		cuts := make([]sdf.SDF3, 0, p.SensorWindows)
		for i := 0; i < p.SensorWindows; i++ {
			angle := float64(i) * 2 * math.Pi / float64(p.SensorWindows)
			m := sdf.RotateZ(angle).Mul(sdf.Translate3d(v3.Vec{X: r}))
			cuts = append(cuts, sdf.Transform3D(window, m))
		}
		body = sdf.Difference3D(body, sdf.Union3D(cuts...))
	}

	vol := math.Pi * r * r * p.Length * 0.35 // electronics bay packing fraction

	return &Solid{
		Name:     "guidance_section",
		Material: p.Material,
		Shape:    body,
		Volume:   vol,
		Length:   p.Length,
	}, nil
}

// MotorSection builds a motor casing with a star grain cavity, an aft
// nozzle cone and a throat cut.
func (b *Builder) MotorSection(p catalog.MotorParams) (*Solid, error) {
	r := p.Diameter / 2
	exitR := p.NozzleExitDiameter / 2
	if exitR >= r {
		return nil, fmt.Errorf("motor stage %d: nozzle exit %g must be under casing radius %g", p.Stage, exitR, r)
	}

	casing, err := sdf.Cylinder3D(p.Length, r, 0)
	if err != nil {
		return nil, fmt.Errorf("motor casing: %w", err)
	}

	points := p.GrainPoints
	if points < 3 {
		points = 8
	}
	grainR := r - 0.05
	star := make([]v2.Vec, 0, points*2)
	for i := 0; i < points*2; i++ {
		angle := float64(i) * math.Pi / float64(points)
		rad := grainR * 0.7
		if i%2 == 0 {
			rad = grainR
		}
		star = append(star, v2.Vec{X: rad * math.Cos(angle), Y: rad * math.Sin(angle)})
	}
	grainProfile, err := sdf.Polygon2D(star)
	if err != nil {
		return nil, fmt.Errorf("motor grain profile: %w", err)
	}
	grain := sdf.Extrude3D(grainProfile, p.Length*0.8)
	body := sdf.Difference3D(casing, grain)

	nozzleLen := p.Length * 0.25
	nozzle, err := sdf.Cone3D(nozzleLen, exitR, r, 0)
	if err != nil {
		return nil, fmt.Errorf("motor nozzle: %w", err)
	}
	nozzle = sdf.Transform3D(nozzle, sdf.Translate3d(v3.Vec{Z: -p.Length/2 - nozzleLen/2}))
	body = sdf.Union3D(body, nozzle)

	throat, err := sdf.Cylinder3D(nozzleLen*0.5, r*0.3, 0)
	if err != nil {
		return nil, fmt.Errorf("motor throat: %w", err)
	}
	throat = sdf.Transform3D(throat, sdf.Translate3d(v3.Vec{Z: -p.Length/2 - nozzleLen/2}))
	body = sdf.Difference3D(body, throat)

	// Casing shell plus nozzle frustum shell, grain cavity excluded.
	meanGrain := grainR * 0.85
	vol := math.Pi*(r*r-meanGrain*meanGrain)*p.Length*0.8 +
		math.Pi*r*r*p.Length*0.2 +
		math.Pi*nozzleLen/3*(r*r+r*exitR+exitR*exitR)*0.3

	return &Solid{
		Name:     fmt.Sprintf("motor_stage_%d", p.Stage),
		Material: p.Material,
		Shape:    body,
		Volume:   vol,
		Length:   p.Length + nozzleLen,
	}, nil
}

// FinSet builds one trapezoidal fin with an actuator boss and replicates
// it radially around the roll axis.
func (b *Builder) FinSet(p catalog.FinParams) (*Solid, error) {
	if p.Count < 1 {
		return nil, fmt.Errorf("fin set: count must be at least 1, got %d", p.Count)
	}

	profile := []v2.Vec{
		{X: 0, Y: 0},
		{X: p.RootChord, Y: 0},
		{X: p.RootChord * 0.7, Y: p.Span},
		{X: p.RootChord * 0.3, Y: p.Span},
		{X: 0, Y: p.Span * 0.3},
	}
	outline, err := sdf.Polygon2D(profile)
	if err != nil {
		return nil, fmt.Errorf("fin profile: %w", err)
	}
	fin := sdf.Extrude3D(outline, p.Thickness)

	boss, err := sdf.Cylinder3D(p.Thickness*2, 0.03, 0)
	if err != nil {
		return nil, fmt.Errorf("fin actuator boss: %w", err)
	}
	boss = sdf.Transform3D(boss, sdf.Translate3d(v3.Vec{X: p.RootChord / 2, Y: p.Span / 2}))
	fin = sdf.Union3D(fin, boss)

	// Stand the fin up: chord along the roll axis, span radial.
	upright := sdf.Transform3D(fin, sdf.RotateY(math.Pi/2))

	fins := make([]sdf.SDF3, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		angle := float64(i) * 2 * math.Pi / float64(p.Count)
		m := sdf.RotateZ(angle).Mul(sdf.Translate3d(v3.Vec{Y: p.MountRadius}))
		fins = append(fins, sdf.Transform3D(upright, m))
	}
	shape := sdf.Union3D(fins...)

	// Trapezoid area times thickness, per fin.
	area := (p.RootChord + p.RootChord*0.4) / 2 * p.Span
	vol := float64(p.Count) * area * p.Thickness

	return &Solid{
		Name:     "fin_set",
		Material: p.Material,
		Shape:    shape,
		Volume:   vol,
		Length:   p.RootChord,
	}, nil
}

// AntennaFairings builds conformal antenna boxes spaced around the airframe
// at the configured axial station.
func (b *Builder) AntennaFairings(p catalog.AntennaParams, bodyRadius, aftZ float64) (*Solid, error) {
	if p.Count < 1 {
		return nil, fmt.Errorf("antenna %s: count must be at least 1, got %d", p.Band, p.Count)
	}

	panel, err := sdf.Box3D(v3.Vec{X: p.Depth, Y: p.Width, Z: p.Height}, 0)
	if err != nil {
		return nil, fmt.Errorf("antenna panel: %w", err)
	}

	stationZ := aftZ + p.Station
	panels := make([]sdf.SDF3, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		angle := float64(i) * 2 * math.Pi / float64(p.Count)
		m := sdf.Translate3d(v3.Vec{Z: stationZ}).
			Mul(sdf.RotateZ(angle)).
			Mul(sdf.Translate3d(v3.Vec{X: bodyRadius + p.Depth/2}))
		panels = append(panels, sdf.Transform3D(panel, m))
	}

	vol := float64(p.Count) * p.Width * p.Height * p.Depth

	return &Solid{
		Name:     fmt.Sprintf("antenna_%s", p.Band),
		Material: p.Material,
		Shape:    sdf.Union3D(panels...),
		Volume:   vol,
		Length:   p.Height,
	}, nil
}
