// Package bench runs optimization passes against a mesh, verifies that
// each pass preserved the mesh content, and reports efficiency metrics
// for every configured cache model.
package bench

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshbench/internal/config"
	"github.com/Faultbox/meshbench/pkg/analyze"
	"github.com/Faultbox/meshbench/pkg/mesh"
	"github.com/Faultbox/meshbench/pkg/optimize"
)

// ErrVerification wraps content mismatches detected after a pass ran.
var ErrVerification = errors.New("pass verification failed")

// CacheResult is one cache model's view of a pass result.
type CacheResult struct {
	Model string
	Stats analyze.CacheStats
}

// Report holds the outcome of running one pass.
type Report struct {
	Name     string
	Duration time.Duration
	Cache    []CacheResult
	Fetch    analyze.FetchStats
	Overdraw analyze.OverdrawStats
}

// Runner executes passes and analyzes the results. All passes in one run
// share the cache models and the input mesh, so their reports compare
// directly.
type Runner struct {
	log  *zap.Logger
	sims []config.CacheSimConfig
}

// NewRunner builds a runner from the benchmark configuration.
func NewRunner(cfg *config.Config, log *zap.Logger) *Runner {
	return &Runner{
		log:  log,
		sims: cfg.Bench.CacheSims,
	}
}

// Run clones the mesh, applies the transform, verifies that the result is
// content-equivalent to the input, and reports metrics. The clone is
// discarded; the input mesh is never modified.
func (r *Runner) Run(name string, original *mesh.Mesh, transform optimize.Transform) (*Report, error) {
	m := original.Clone()

	start := time.Now()
	transform(m)
	elapsed := time.Since(start)

	if err := mesh.CheckEquivalent(original, m); err != nil {
		return nil, fmt.Errorf("%w: pass %s: %v", ErrVerification, name, err)
	}

	report := &Report{
		Name:     name,
		Duration: elapsed,
		Fetch:    analyze.VertexFetch(m.Indices, len(m.Vertices), mesh.VertexSize),
		Overdraw: analyze.Overdraw(m.Indices, m.Vertices),
	}
	for _, sim := range r.sims {
		report.Cache = append(report.Cache, CacheResult{
			Model: sim.Name,
			Stats: analyze.VertexCache(m.Indices, len(m.Vertices), sim.CacheSize, sim.WarpSize, sim.PrimGroupSize),
		})
	}

	r.logReport(report)
	return report, nil
}

func (r *Runner) logReport(report *Report) {
	fields := []zap.Field{
		zap.String("pass", report.Name),
		zap.Duration("duration", report.Duration),
		zap.Float64("overfetch", report.Fetch.Overfetch),
		zap.Float64("overdraw", report.Overdraw.Overdraw),
	}
	for _, c := range report.Cache {
		fields = append(fields,
			zap.Float64("acmr_"+c.Model, c.Stats.ACMR),
			zap.Float64("atvr_"+c.Model, c.Stats.ATVR),
		)
	}
	r.log.Info("pass complete", fields...)
}
