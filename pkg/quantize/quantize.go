// Package quantize converts full-precision vertex attributes into compact
// fixed-point and half-float records for codec and size experiments.
package quantize

import "math"

// Half converts a float32 to IEEE half-float bits. Out-of-range values
// clamp to infinity, NaN stays NaN.
func Half(v float32) uint16 {
	ui := math.Float32bits(v)

	s := (ui >> 16) & 0x8000
	em := ui & 0x7fffffff

	// round mantissa to nearest, rebias exponent
	h := (em - (112 << 23) + (1 << 12)) >> 13
	if em < (113 << 23) {
		h = 0
	}
	if em >= (143 << 23) {
		h = 0x7c00
	}
	if em > (255 << 23) {
		h = 0x7e00
	}

	return uint16(s | h)
}

// Snorm quantizes v in [-1, 1] to a signed normalized integer of the given
// bit width. Values outside the range clamp.
func Snorm(v float32, bits int) int {
	scale := float32(int(1)<<(bits-1) - 1)

	round := float32(0.5)
	if v < 0 {
		round = -0.5
	}
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}
	return int(v*scale + round)
}

// Unorm quantizes v in [0, 1] to an unsigned normalized integer of the
// given bit width. Values outside the range clamp.
func Unorm(v float32, bits int) int {
	scale := float32(int(1)<<bits - 1)

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(v*scale + 0.5)
}
