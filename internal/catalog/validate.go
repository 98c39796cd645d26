package catalog

import (
	"fmt"
	"math"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeUnknownMaterial     = "unknown_material"
	codeUnknownSystem       = "unknown_system"
	codeUnknownAsset        = "unknown_asset"
	codeUnknownBase         = "unknown_base"
	codeNonPositiveDim      = "nonpositive_dimension"
	codeImprovementIdentity = "improvement_identity"
	codeEmptyForce          = "empty_force"
	codeBadEnum             = "enum_value_invalid"
)

type Issue struct {
	Severity Severity
	Code     string
	Entity   string
	Message  string
}

type Report struct {
	Issues []Issue
}

func (r *Report) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

func (r *Report) Warnings() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarn {
			out = append(out, issue)
		}
	}
	return out
}

// identityTolerance bounds the allowed drift between a claimed improvement
// percentage and the value recomputed from its baseline/optimized pair.
const identityTolerance = 0.05

// Validate runs referential and arithmetic consistency checks over the
// whole catalog.
func (c *Catalog) Validate() *Report {
	issues := make([]Issue, 0)

	for _, s := range c.Systems {
		issues = append(issues, c.validateSystem(s)...)
	}
	for _, a := range c.Assets {
		issues = append(issues, c.validateAsset(a)...)
	}
	for _, s := range c.Scenarios {
		issues = append(issues, c.validateScenario(s)...)
	}

	return &Report{Issues: issues}
}

func (c *Catalog) validateSystem(s *System) []Issue {
	var issues []Issue

	errf := func(code, format string, args ...any) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     code,
			Entity:   s.ID,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	switch s.Class {
	case ClassBoostGlide, ClassBallistic, ClassCruise:
	default:
		errf(codeBadEnum, "unknown system class: %s", s.Class)
	}

	// Slices, not maps: issue order must be stable across runs.
	dims := []struct {
		name  string
		value float64
	}{
		{"length", s.Length},
		{"diameter", s.Diameter},
		{"nose.length", s.Nose.Length},
		{"nose.base_diameter", s.Nose.BaseDiameter},
		{"nose.tip_diameter", s.Nose.TipDiameter},
		{"payload.length", s.Payload.Length},
		{"payload.diameter", s.Payload.Diameter},
		{"payload.wall", s.Payload.WallThickness},
		{"guidance.length", s.Guidance.Length},
		{"guidance.diameter", s.Guidance.Diameter},
		{"fins.span", s.Fins.Span},
		{"fins.root_chord", s.Fins.RootChord},
		{"fins.thickness", s.Fins.Thickness},
		{"fins.mount_radius", s.Fins.MountRadius},
	}
	for _, d := range dims {
		if d.value <= 0 {
			errf(codeNonPositiveDim, "%s must be positive, got %g", d.name, d.value)
		}
	}
	for _, m := range s.Motors {
		if m.Length <= 0 || m.Diameter <= 0 || m.NozzleExitDiameter <= 0 {
			errf(codeNonPositiveDim, "motor stage %d has a nonpositive dimension", m.Stage)
		}
	}

	materials := []struct {
		section string
		id      string
	}{
		{"nose", s.Nose.Material},
		{"payload", s.Payload.Material},
		{"guidance", s.Guidance.Material},
		{"fins", s.Fins.Material},
	}
	for _, m := range materials {
		if _, ok := c.materialsByID[m.id]; !ok {
			errf(codeUnknownMaterial, "%s references unknown material %q", m.section, m.id)
		}
	}
	for _, m := range s.Motors {
		if _, ok := c.materialsByID[m.Material]; !ok {
			errf(codeUnknownMaterial, "motor stage %d references unknown material %q", m.Stage, m.Material)
		}
	}
	for _, a := range s.Antennas {
		if _, ok := c.materialsByID[a.Material]; !ok {
			errf(codeUnknownMaterial, "antenna %s references unknown material %q", a.Band, a.Material)
		}
	}

	for _, claim := range s.Claims {
		if claim.Baseline == 0 {
			errf(codeImprovementIdentity, "claim %s has zero baseline", claim.Metric)
			continue
		}
		want := (claim.Baseline - claim.Optimized) / claim.Baseline * 100
		if math.Abs(want-claim.Percent) > identityTolerance {
			errf(codeImprovementIdentity,
				"claim %s: stated %.2f%% but baseline/optimized give %.2f%%",
				claim.Metric, claim.Percent, want)
		}
	}

	return issues
}

func (c *Catalog) validateAsset(a *Asset) []Issue {
	var issues []Issue

	errf := func(code, format string, args ...any) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     code,
			Entity:   a.ID,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if a.Side != SideBlue && a.Side != SideRed {
		errf(codeBadEnum, "unknown side: %s", a.Side)
	}
	switch a.Kind {
	case KindSurface, KindSubmarine, KindAircraft:
	default:
		errf(codeBadEnum, "unknown asset kind: %s", a.Kind)
	}
	if a.HomeBase != "" {
		if _, ok := c.basesByID[a.HomeBase]; !ok {
			errf(codeUnknownBase, "home base %q not in catalog", a.HomeBase)
		}
	}
	for _, id := range a.Systems {
		if _, ok := c.systemsByID[id]; !ok {
			errf(codeUnknownSystem, "carries unknown system %q", id)
		}
	}

	return issues
}

func (c *Catalog) validateScenario(s *Scenario) []Issue {
	var issues []Issue

	add := func(severity Severity, code, format string, args ...any) {
		issues = append(issues, Issue{
			Severity: severity,
			Code:     code,
			Entity:   s.ID,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	switch s.Environment {
	case EnvStrait, EnvLittoral, EnvOpenWater:
	default:
		add(SeverityError, codeBadEnum, "unknown environment: %s", s.Environment)
	}
	if len(s.BlueForces) == 0 {
		add(SeverityWarn, codeEmptyForce, "no blue forces assigned")
	}
	if len(s.RedForces) == 0 {
		add(SeverityWarn, codeEmptyForce, "no red forces assigned")
	}
	for _, id := range append(append([]string{}, s.BlueForces...), s.RedForces...) {
		if _, ok := c.assetsByID[id]; !ok {
			add(SeverityError, codeUnknownAsset, "force references unknown asset %q", id)
		}
	}

	return issues
}
