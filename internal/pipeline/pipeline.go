// Package pipeline chains catalog validation, geometry export,
// optimization and report generation into one run with per-stage status.
// A failing stage marks the run degraded but later stages still execute.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"aeroforge/internal/catalog"
	"aeroforge/internal/geom"
	"aeroforge/internal/report"
)

type Options struct {
	OutputDir  string
	Overlays   []string
	Systems    []string // empty runs every catalog system
	Scenarios  []string // empty runs every catalog scenario
	Format     report.Format
	Resolution int
	SkipCAD    bool
	RadiusKm   float64
	Now        time.Time
}

type StageStatus string

const (
	StagePassed  StageStatus = "passed"
	StageFailed  StageStatus = "failed"
	StageSkipped StageStatus = "skipped"
)

type StageResult struct {
	Name   string      `json:"name" yaml:"name"`
	Status StageStatus `json:"status" yaml:"status"`
	Detail string      `json:"detail,omitempty" yaml:"detail,omitempty"`
	Errors []string    `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Summary is the run record written at the end of every pipeline run.
type Summary struct {
	Kind        string        `json:"kind" yaml:"kind"`
	GeneratedAt time.Time     `json:"generated_at" yaml:"generated_at"`
	Stages      []StageResult `json:"stages" yaml:"stages"`
	Degraded    bool          `json:"degraded" yaml:"degraded"`
}

// Run executes the full pipeline. It fails hard only when the catalog
// cannot be loaded or validated; downstream stage failures degrade the
// run and are recorded in the summary.
func Run(logger *zap.Logger, opts Options) (*Summary, error) {
	if opts.Format == "" {
		opts.Format = report.FormatJSON
	}
	if opts.RadiusKm <= 0 {
		opts.RadiusKm = 300
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	summary := &Summary{
		Kind:        "pipeline",
		GeneratedAt: opts.Now.UTC().Truncate(time.Second),
	}

	cat, err := loadStage(logger, opts, summary)
	if err != nil {
		return nil, err
	}

	systems := opts.Systems
	if len(systems) == 0 {
		for _, s := range cat.Systems {
			systems = append(systems, s.ID)
		}
	}
	scenarios := opts.Scenarios
	if len(scenarios) == 0 {
		for _, s := range cat.Scenarios {
			scenarios = append(scenarios, s.ID)
		}
	}

	geometryStage(logger, cat, systems, opts, summary)
	optimizationStage(logger, cat, systems, opts, summary)
	reportStage(logger, cat, systems, scenarios, opts, summary)

	for _, st := range summary.Stages {
		if st.Status == StageFailed {
			summary.Degraded = true
		}
	}

	summaryPath := filepath.Join(opts.OutputDir, "summary.yaml")
	data, err := yaml.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encoding run summary: %w", err)
	}
	if err := os.WriteFile(summaryPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing run summary: %w", err)
	}
	logger.Info("pipeline finished",
		zap.Bool("degraded", summary.Degraded),
		zap.String("summary", summaryPath))

	return summary, nil
}

// loadStage loads the catalog and runs validation. Validation errors stop
// the run; everything downstream would be built on bad facts.
func loadStage(logger *zap.Logger, opts Options, summary *Summary) (*catalog.Catalog, error) {
	cat, err := catalog.Load(opts.Overlays...)
	if err != nil {
		return nil, fmt.Errorf("pipeline catalog stage: %w", err)
	}
	vr := cat.Validate()
	if errs := vr.Errors(); len(errs) > 0 {
		for _, issue := range errs {
			logger.Error("catalog invalid",
				zap.String("entity", issue.Entity),
				zap.String("code", issue.Code),
				zap.String("message", issue.Message))
		}
		return nil, fmt.Errorf("pipeline catalog stage: %d validation errors", len(errs))
	}
	for _, issue := range vr.Warnings() {
		logger.Warn("catalog warning",
			zap.String("entity", issue.Entity),
			zap.String("message", issue.Message))
	}
	summary.Stages = append(summary.Stages, StageResult{
		Name:   "catalog",
		Status: StagePassed,
		Detail: fmt.Sprintf("%d warnings", len(vr.Warnings())),
	})
	return cat, nil
}

func geometryStage(logger *zap.Logger, cat *catalog.Catalog, systems []string, opts Options, summary *Summary) {
	if opts.SkipCAD {
		summary.Stages = append(summary.Stages, StageResult{Name: "geometry", Status: StageSkipped})
		return
	}

	st := StageResult{Name: "geometry", Status: StagePassed}
	exported := 0
	for _, id := range systems {
		dir := filepath.Join(opts.OutputDir, "cad", id)
		if _, err := geom.ExportSystem(logger, cat, id, geom.ExportOptions{Dir: dir, Resolution: opts.Resolution}); err != nil {
			logger.Error("geometry export failed", zap.String("system", id), zap.Error(err))
			st.Status = StageFailed
			st.Errors = append(st.Errors, err.Error())
			continue
		}
		exported++
	}
	st.Detail = fmt.Sprintf("%d/%d systems exported", exported, len(systems))
	summary.Stages = append(summary.Stages, st)
}

func optimizationStage(logger *zap.Logger, cat *catalog.Catalog, systems []string, opts Options, summary *Summary) {
	st := StageResult{Name: "optimization", Status: StagePassed}
	done := 0
	for _, id := range systems {
		doc, err := report.BuildOptimization(cat, id, opts.Now)
		if err != nil {
			logger.Error("optimization failed", zap.String("system", id), zap.Error(err))
			st.Status = StageFailed
			st.Errors = append(st.Errors, err.Error())
			continue
		}
		path := filepath.Join(opts.OutputDir, "optimization_"+id+"."+ext(opts.Format))
		if err := writeReport(path, opts.Format, doc); err != nil {
			st.Status = StageFailed
			st.Errors = append(st.Errors, err.Error())
			continue
		}
		done++
	}
	st.Detail = fmt.Sprintf("%d/%d systems optimized", done, len(systems))
	summary.Stages = append(summary.Stages, st)
}

func reportStage(logger *zap.Logger, cat *catalog.Catalog, systems, scenarios []string, opts Options, summary *Summary) {
	st := StageResult{Name: "reports", Status: StagePassed}
	written := 0

	fail := func(err error) {
		logger.Error("report generation failed", zap.Error(err))
		st.Status = StageFailed
		st.Errors = append(st.Errors, err.Error())
	}

	for _, id := range systems {
		doc, err := report.BuildCapability(cat, id, opts.Now)
		if err != nil {
			fail(err)
			continue
		}
		path := filepath.Join(opts.OutputDir, "capability_"+id+"."+ext(opts.Format))
		if err := writeReport(path, opts.Format, doc); err != nil {
			fail(err)
			continue
		}
		written++
	}

	for _, id := range scenarios {
		doc, err := report.BuildScenario(cat, id, opts.Now)
		if err != nil {
			fail(err)
			continue
		}
		path := filepath.Join(opts.OutputDir, "scenario_"+id+"."+ext(opts.Format))
		if err := writeReport(path, opts.Format, doc); err != nil {
			fail(err)
			continue
		}

		sc, err := cat.Scenario(id)
		if err != nil {
			fail(err)
			continue
		}
		posture := report.BuildPosture(cat, sc.Location, opts.RadiusKm, opts.Now)
		path = filepath.Join(opts.OutputDir, "posture_"+id+"."+ext(opts.Format))
		if err := writeReport(path, opts.Format, posture); err != nil {
			fail(err)
			continue
		}
		written += 2
	}

	st.Detail = fmt.Sprintf("%d documents written", written)
	summary.Stages = append(summary.Stages, st)
}

func writeReport(path string, format report.Format, doc any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := report.Render(f, format, doc); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

func ext(format report.Format) string {
	if format == report.FormatMarkdown {
		return "md"
	}
	return string(format)
}
