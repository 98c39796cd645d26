package optimize

import (
	"math"
	"testing"

	"aeroforge/internal/catalog"
)

func testOptimizer(t *testing.T) (*NoseConeOptimizer, *catalog.Catalog) {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	mat, err := cat.Material("carbon-carbon")
	if err != nil {
		t.Fatalf("loading material: %v", err)
	}
	return NewNoseConeOptimizer(mat, DefaultConditions), cat
}

func TestMetricModels(t *testing.T) {
	o, _ := testOptimizer(t)
	base := Params{RadiusMM: 440, LengthMM: 2500, ShapeFactor: 1.5, TPSThickMM: 25}

	t.Run("all metrics positive", func(t *testing.T) {
		m := o.Evaluate(base)
		if m.DragN <= 0 || m.HeatLoadW <= 0 || m.MassKg <= 0 || m.StressMPa <= 0 {
			t.Fatalf("expected positive metrics, got %+v", m)
		}
		if m.SafetyFactor <= 0 {
			t.Fatalf("expected positive safety factor, got %g", m.SafetyFactor)
		}
	})

	t.Run("thicker tps lowers heat load", func(t *testing.T) {
		thick := base
		thick.TPSThickMM = 50
		if o.heatLoad(thick) >= o.heatLoad(base) {
			t.Fatalf("heat load must fall with tps thickness")
		}
	})

	t.Run("thicker tps lowers stress", func(t *testing.T) {
		thick := base
		thick.TPSThickMM = 50
		if o.stress(thick) >= o.stress(base) {
			t.Fatalf("stress must fall with tps thickness")
		}
	})

	t.Run("larger radius raises drag and mass", func(t *testing.T) {
		wide := base
		wide.RadiusMM = 500
		if o.drag(wide) <= o.drag(base) {
			t.Fatalf("drag must rise with radius")
		}
		if o.mass(wide) <= o.mass(base) {
			t.Fatalf("mass must rise with radius")
		}
	})

	t.Run("higher shape factor lowers drag", func(t *testing.T) {
		ogive := base
		ogive.ShapeFactor = 2.5
		if o.drag(ogive) >= o.drag(base) {
			t.Fatalf("drag must fall with shape factor")
		}
	})
}

func TestObjectivePenalties(t *testing.T) {
	o, _ := testOptimizer(t)

	inBounds := o.Objective([]float64{440, 2500, 1.5, 25})
	outOfBounds := o.Objective([]float64{900, 2500, 1.5, 25})
	if outOfBounds <= inBounds {
		t.Fatalf("bound violation must be penalized: in=%g out=%g", inBounds, outOfBounds)
	}
}

func TestRun(t *testing.T) {
	o, cat := testOptimizer(t)

	result, err := Run(cat, "gv-7")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	baseObj := o.Objective([]float64{
		result.Baseline.RadiusMM,
		result.Baseline.LengthMM,
		result.Baseline.ShapeFactor,
		result.Baseline.TPSThickMM,
	})
	if result.Objective > baseObj {
		t.Fatalf("optimization must not worsen the objective: base=%g opt=%g", baseObj, result.Objective)
	}
	if result.Evaluations == 0 {
		t.Fatalf("expected function evaluations to be counted")
	}

	// Soft bound penalties allow only marginal excursions.
	checks := []struct {
		name   string
		v      float64
		lo, hi float64
	}{
		{"radius", result.Optimized.RadiusMM, 380, 520},
		{"length", result.Optimized.LengthMM, 1900, 3100},
		{"shape", result.Optimized.ShapeFactor, 0.4, 2.6},
		{"tps", result.Optimized.TPSThickMM, 15, 55},
	}
	for _, c := range checks {
		if c.v < c.lo || c.v > c.hi {
			t.Fatalf("%s %g outside plausible range [%g, %g]", c.name, c.v, c.lo, c.hi)
		}
	}
}

func TestRunUnknownSystem(t *testing.T) {
	_, cat := testOptimizer(t)
	if _, err := Run(cat, "no-such-system"); err == nil {
		t.Fatalf("expected error for unknown system")
	}
}

func TestImprovementsIdentity(t *testing.T) {
	base := Metrics{DragN: 2000, HeatLoadW: 5e7, MassKg: 250, StressMPa: 600}
	opt := Metrics{DragN: 1500, HeatLoadW: 4e7, MassKg: 200, StressMPa: 480}

	claims := Improvements(base, opt)
	if len(claims) != 4 {
		t.Fatalf("expected 4 claims, got %d", len(claims))
	}
	for _, claim := range claims {
		want := (claim.Baseline - claim.Optimized) / claim.Baseline * 100
		if math.Abs(want-claim.Percent) > 0.005 {
			t.Fatalf("claim %s breaks the identity: stated %g, recomputed %g",
				claim.Metric, claim.Percent, want)
		}
	}
	if claims[0].Percent != 25.0 {
		t.Fatalf("expected 25%% drag reduction, got %g", claims[0].Percent)
	}
}

func TestImprovementsSkipsZeroBaseline(t *testing.T) {
	claims := Improvements(Metrics{}, Metrics{DragN: 10})
	if len(claims) != 0 {
		t.Fatalf("expected no claims for zero baselines, got %d", len(claims))
	}
}
