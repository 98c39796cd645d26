package optimize

import (
	"math"

	"aeroforge/internal/catalog"
)

// Improvements derives improvement claims from a baseline/optimized metric
// pair. Percent is always (baseline-optimized)/baseline*100, so the
// arithmetic identity the validator checks holds by construction.
func Improvements(base, opt Metrics) []catalog.ImprovementClaim {
	pairs := []struct {
		metric    string
		baseline  float64
		optimized float64
	}{
		{"drag_n", base.DragN, opt.DragN},
		{"heat_load_w", base.HeatLoadW, opt.HeatLoadW},
		{"mass_kg", base.MassKg, opt.MassKg},
		{"stress_mpa", base.StressMPa, opt.StressMPa},
	}

	out := make([]catalog.ImprovementClaim, 0, len(pairs))
	for _, p := range pairs {
		if p.baseline == 0 {
			continue
		}
		out = append(out, catalog.ImprovementClaim{
			Metric:    p.metric,
			Baseline:  p.baseline,
			Optimized: p.optimized,
			Percent:   round2Pct((p.baseline - p.optimized) / p.baseline * 100),
		})
	}
	return out
}

func round2Pct(v float64) float64 {
	return math.Round(v*100) / 100
}
