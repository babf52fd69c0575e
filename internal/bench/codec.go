package bench

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshbench/pkg/codec"
	"github.com/Faultbox/meshbench/pkg/mesh"
	"github.com/Faultbox/meshbench/pkg/quantize"
)

// ErrCodecMismatch wraps decode results that differ from the input.
var ErrCodecMismatch = errors.New("codec round trip mismatch")

// CodecReport holds size and timing results for one codec run.
type CodecReport struct {
	Name         string
	RawBytes     int
	EncodedBytes int
	// Ratio is encoded size relative to raw. Below 1.0 means compression.
	Ratio          float64
	EncodeDuration time.Duration
	DecodeDuration time.Duration
}

// RunIndexCodec encodes and decodes the mesh's index buffer, timing both
// directions, and verifies the decode reproduced the input exactly.
func (r *Runner) RunIndexCodec(m *mesh.Mesh) (*CodecReport, error) {
	buf := make([]byte, codec.EncodeIndexBound(len(m.Indices), len(m.Vertices)))

	start := time.Now()
	n := codec.EncodeIndex(buf, m.Indices)
	encodeTime := time.Since(start)
	if n == 0 && len(m.Indices) > 0 {
		return nil, fmt.Errorf("%w: index encode produced no output", ErrCodecMismatch)
	}

	// allocate outside the timed window
	decoded := make([]uint32, len(m.Indices))

	start = time.Now()
	err := codec.DecodeIndex(decoded, buf[:n])
	decodeTime := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("index decode: %w", err)
	}
	for i := range decoded {
		if decoded[i] != m.Indices[i] {
			return nil, fmt.Errorf("%w: index %d decoded as %d, want %d",
				ErrCodecMismatch, i, decoded[i], m.Indices[i])
		}
	}

	report := r.codecReport("index", len(m.Indices)*4, n, encodeTime, decodeTime)
	return report, nil
}

// RunVertexCodec quantizes the vertex buffer into the octahedral packed
// layout, then encodes and decodes it, timing both directions.
func (r *Runner) RunVertexCodec(m *mesh.Mesh) (*CodecReport, error) {
	raw := quantize.BytesOct(quantize.PackVerticesOct(m.Vertices))
	count := len(m.Vertices)
	size := quantize.PackedVertexOctSize

	buf := make([]byte, codec.EncodeVertexBound(count, size))

	start := time.Now()
	n := codec.EncodeVertex(buf, raw, count, size)
	encodeTime := time.Since(start)
	if n == 0 && count > 0 {
		return nil, fmt.Errorf("%w: vertex encode produced no output", ErrCodecMismatch)
	}

	decoded := make([]byte, len(raw))

	start = time.Now()
	err := codec.DecodeVertex(decoded, count, size, buf[:n])
	decodeTime := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("vertex decode: %w", err)
	}
	if !bytes.Equal(decoded, raw) {
		return nil, fmt.Errorf("%w: vertex data differs after decode", ErrCodecMismatch)
	}

	report := r.codecReport("vertex", len(raw), n, encodeTime, decodeTime)
	return report, nil
}

// PackReport compares vertex memory layouts.
type PackReport struct {
	RawBytes    int
	PackedBytes int
	OctBytes    int
}

// ReportPackSizes reports how much the quantized layouts save over the
// full-precision vertex.
func (r *Runner) ReportPackSizes(m *mesh.Mesh) PackReport {
	report := PackReport{
		RawBytes:    len(m.Vertices) * mesh.VertexSize,
		PackedBytes: len(m.Vertices) * quantize.PackedVertexSize,
		OctBytes:    len(m.Vertices) * quantize.PackedVertexOctSize,
	}
	r.log.Info("vertex pack sizes",
		zap.Int("raw", report.RawBytes),
		zap.Int("packed", report.PackedBytes),
		zap.Int("oct", report.OctBytes),
	)
	return report
}

func (r *Runner) codecReport(name string, rawBytes, encodedBytes int, enc, dec time.Duration) *CodecReport {
	report := &CodecReport{
		Name:           name,
		RawBytes:       rawBytes,
		EncodedBytes:   encodedBytes,
		EncodeDuration: enc,
		DecodeDuration: dec,
	}
	if rawBytes > 0 {
		report.Ratio = float64(encodedBytes) / float64(rawBytes)
	}
	r.log.Info("codec complete",
		zap.String("codec", report.Name),
		zap.Int("raw_bytes", report.RawBytes),
		zap.Int("encoded_bytes", report.EncodedBytes),
		zap.Float64("ratio", report.Ratio),
		zap.Duration("encode", report.EncodeDuration),
		zap.Duration("decode", report.DecodeDuration),
	)
	return report
}
