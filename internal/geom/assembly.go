package geom

import (
	"fmt"
	"sort"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"aeroforge/internal/catalog"
)

// PlacedSolid is a component translated into assembly coordinates.
type PlacedSolid struct {
	*Solid
	OffsetZ float64
}

// Assembly is a complete system stacked along the roll (Z) axis, aft end
// at z=0, nose tip at z=Length.
type Assembly struct {
	System     *catalog.System
	Components []PlacedSolid
	Shape      sdf.SDF3
	Length     float64
}

// BuildComponent builds a single named component of a system. Known names:
// nose_cone, payload_section, guidance_section, motor_stage_<n>, fin_set,
// antenna_<band>.
func (b *Builder) BuildComponent(sys *catalog.System, name string) (*Solid, error) {
	switch {
	case name == "nose_cone":
		return b.NoseCone(sys.Nose)
	case name == "payload_section":
		return b.PayloadSection(sys.Payload)
	case name == "guidance_section":
		return b.GuidanceSection(sys.Guidance)
	case name == "fin_set":
		return b.FinSet(sys.Fins)
	default:
		for _, m := range sys.Motors {
			if name == fmt.Sprintf("motor_stage_%d", m.Stage) {
				return b.MotorSection(m)
			}
		}
		for _, a := range sys.Antennas {
			if name == fmt.Sprintf("antenna_%s", a.Band) {
				return b.AntennaFairings(a, sys.Diameter/2, 0)
			}
		}
	}
	return nil, fmt.Errorf("system %s has no component %q: %w", sys.ID, name, catalog.ErrNotFound)
}

// ComponentNames lists the buildable component names for a system in
// assembly order.
func ComponentNames(sys *catalog.System) []string {
	names := make([]string, 0, 4+len(sys.Motors)+len(sys.Antennas))
	motors := append([]catalog.MotorParams{}, sys.Motors...)
	sort.Slice(motors, func(i, j int) bool { return motors[i].Stage > motors[j].Stage })
	for _, m := range motors {
		names = append(names, fmt.Sprintf("motor_stage_%d", m.Stage))
	}
	names = append(names, "guidance_section", "payload_section", "nose_cone", "fin_set")
	for _, a := range sys.Antennas {
		names = append(names, fmt.Sprintf("antenna_%s", a.Band))
	}
	return names
}

// BuildAssembly stacks motors (highest stage aft), guidance, payload and
// nose along Z and attaches fins and antenna fairings.
func (b *Builder) BuildAssembly(sys *catalog.System) (*Assembly, error) {
	asm := &Assembly{System: sys}

	stack := []string{}
	motors := append([]catalog.MotorParams{}, sys.Motors...)
	sort.Slice(motors, func(i, j int) bool { return motors[i].Stage > motors[j].Stage })
	for _, m := range motors {
		stack = append(stack, fmt.Sprintf("motor_stage_%d", m.Stage))
	}
	stack = append(stack, "guidance_section", "payload_section", "nose_cone")

	var cursor float64
	shapes := make([]sdf.SDF3, 0, len(stack)+1+len(sys.Antennas))
	for _, name := range stack {
		solid, err := b.BuildComponent(sys, name)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", name, err)
		}
		center := cursor + solid.Length/2
		placed := sdf.Transform3D(solid.Shape, sdf.Translate3d(v3.Vec{Z: center}))
		shapes = append(shapes, placed)
		asm.Components = append(asm.Components, PlacedSolid{Solid: solid, OffsetZ: center})
		cursor += solid.Length
	}
	asm.Length = cursor

	if sys.Fins.Count > 0 {
		fins, err := b.FinSet(sys.Fins)
		if err != nil {
			return nil, fmt.Errorf("building fin_set: %w", err)
		}
		// Fins sit over the aft motor casing.
		finZ := sys.Fins.RootChord / 2
		placed := sdf.Transform3D(fins.Shape, sdf.Translate3d(v3.Vec{Z: finZ}))
		shapes = append(shapes, placed)
		asm.Components = append(asm.Components, PlacedSolid{Solid: fins, OffsetZ: finZ})
	}

	for _, ap := range sys.Antennas {
		ant, err := b.AntennaFairings(ap, sys.Diameter/2, 0)
		if err != nil {
			return nil, fmt.Errorf("building antenna_%s: %w", ap.Band, err)
		}
		shapes = append(shapes, ant.Shape)
		asm.Components = append(asm.Components, PlacedSolid{Solid: ant, OffsetZ: ap.Station})
	}

	asm.Shape = sdf.Union3D(shapes...)
	return asm, nil
}
