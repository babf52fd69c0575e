// Package main is the entry point for the meshbench harness.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/meshbench/internal/bench"
	"github.com/Faultbox/meshbench/internal/config"
	"github.com/Faultbox/meshbench/internal/logger"
	"github.com/Faultbox/meshbench/pkg/codec"
	"github.com/Faultbox/meshbench/pkg/mesh"
	"github.com/Faultbox/meshbench/pkg/optimize"
	"github.com/Faultbox/meshbench/pkg/quantize"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== meshbench ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	m, err := loadMesh(cfg)
	if err != nil {
		logger.Error("failed to load mesh", zap.Error(err))
		os.Exit(1)
	}
	if err := m.Validate(); err != nil {
		logger.Error("invalid input mesh", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("mesh loaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
	)

	runner := bench.NewRunner(cfg, logger.Log)
	if err := run(runner, cfg, m); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("benchmark complete")
}

func loadMesh(cfg *config.Config) (*mesh.Mesh, error) {
	if cfg.Input.OBJPath != "" {
		return mesh.LoadOBJ(cfg.Input.OBJPath)
	}
	return mesh.GeneratePlane(cfg.Input.PlaneSize), nil
}

func run(runner *bench.Runner, cfg *config.Config, m *mesh.Mesh) error {
	passes := []struct {
		name      string
		transform optimize.Transform
	}{
		{"none", optimize.None},
		{"shuffle", optimize.RandomShuffle(cfg.Bench.ShuffleSeed)},
		{"cache", optimize.VertexCache},
		{"cache_fifo", optimize.VertexCacheFIFO(16)},
		{"overdraw", optimize.Overdraw(cfg.Bench.OverdrawThreshold)},
		{"fetch", optimize.VertexFetch},
		{"fetch_remap", optimize.VertexFetchViaRemap},
		{"complete", optimize.Complete},
	}

	bar := progressbar.NewOptions(len(passes),
		progressbar.OptionSetDescription("passes"),
		progressbar.OptionSetWriter(os.Stderr),
	)
	for _, p := range passes {
		report, err := runner.Run(p.name, m, p.transform)
		if err != nil {
			return err
		}
		printReport(report)
		bar.Add(1)
	}
	bar.Finish()

	if err := reportStrips(m); err != nil {
		return err
	}
	reportShadow(m)
	reportMeshlets(cfg, m)

	if err := reportCodecs(runner, m); err != nil {
		return err
	}
	return verifyCodecBoundaries(m)
}

func printReport(r *bench.Report) {
	fmt.Printf("%-12s %10v  overfetch %.3f  overdraw %.3f\n",
		r.Name, r.Duration.Round(time.Microsecond), r.Fetch.Overfetch, r.Overdraw.Overdraw)
	for _, c := range r.Cache {
		fmt.Printf("  %-10s ACMR %.3f  ATVR %.3f\n", c.Model, c.Stats.ACMR, c.Stats.ATVR)
	}
}

func reportStrips(m *mesh.Mesh) error {
	strip := optimize.Stripify(m.Indices)
	restored := &mesh.Mesh{Vertices: m.Vertices, Indices: optimize.Unstripify(strip)}
	if err := mesh.CheckEquivalent(m, restored); err != nil {
		return fmt.Errorf("strip round trip: %w", err)
	}

	logger.Info("stripify",
		zap.Int("list_indices", len(m.Indices)),
		zap.Int("strip_indices", len(strip)),
	)
	fmt.Printf("strips: %d indices vs %d (%.2f per triangle)\n",
		len(strip), len(m.Indices), float64(len(strip))/float64(m.TriangleCount()))
	return nil
}

func reportShadow(m *mesh.Mesh) {
	shadow := optimize.ShadowIndexBuffer(m.Indices, m.Vertices)

	unique := make(map[uint32]struct{}, len(m.Vertices))
	for _, v := range shadow {
		unique[v] = struct{}{}
	}
	logger.Info("shadow index buffer",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("position_unique", len(unique)),
	)
	fmt.Printf("shadow: %d vertices collapse to %d positions\n", len(m.Vertices), len(unique))
}

func reportMeshlets(cfg *config.Config, m *mesh.Mesh) {
	meshlets := optimize.BuildMeshlets(m.Indices, cfg.Meshlets.MaxVertices, cfg.Meshlets.MaxTriangles)

	var triangles int
	for _, ml := range meshlets {
		triangles += len(ml.Triangles) / 3
	}
	var avgRadius float64
	for _, ml := range meshlets {
		avgRadius += float64(optimize.ComputeMeshletBounds(ml, m.Vertices).Radius)
	}
	if len(meshlets) > 0 {
		avgRadius /= float64(len(meshlets))
	}

	logger.Info("meshlets",
		zap.Int("count", len(meshlets)),
		zap.Int("triangles", triangles),
		zap.Float64("avg_radius", avgRadius),
	)
	fmt.Printf("meshlets: %d (%.1f triangles each, avg radius %.2f)\n",
		len(meshlets), float64(triangles)/float64(max(len(meshlets), 1)), avgRadius)
}

func reportCodecs(runner *bench.Runner, m *mesh.Mesh) error {
	index, err := runner.RunIndexCodec(m)
	if err != nil {
		return err
	}
	vertex, err := runner.RunVertexCodec(m)
	if err != nil {
		return err
	}
	pack := runner.ReportPackSizes(m)

	fmt.Printf("index codec: %d -> %d bytes (%.3f)\n", index.RawBytes, index.EncodedBytes, index.Ratio)
	fmt.Printf("vertex codec: %d -> %d bytes (%.3f)\n", vertex.RawBytes, vertex.EncodedBytes, vertex.Ratio)
	fmt.Printf("pack: raw %d / packed %d / oct %d bytes\n", pack.RawBytes, pack.PackedBytes, pack.OctBytes)
	return nil
}

// verifyCodecBoundaries exercises the codecs' failure paths on small
// fixtures: truncated streams must fail, exact streams must succeed. The
// index fixture deliberately mixes sequential and non-sequential triangles.
func verifyCodecBoundaries(m *mesh.Mesh) error {
	indices := []uint32{0, 1, 2, 2, 1, 3, 4, 6, 5, 7, 8, 9}
	if err := codec.VerifyIndexBoundaries(indices, 10); err != nil {
		return fmt.Errorf("index boundaries: %w", err)
	}

	sample := m.Vertices
	if len(sample) > 16 {
		sample = sample[:16]
	}
	data := quantize.BytesOct(quantize.PackVerticesOct(sample))
	if err := codec.VerifyVertexBoundaries(data, len(sample), quantize.PackedVertexOctSize); err != nil {
		return fmt.Errorf("vertex boundaries: %w", err)
	}

	logger.Info("codec boundary checks passed")
	return nil
}
