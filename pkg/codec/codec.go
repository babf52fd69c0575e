// Package codec implements compact binary codecs for index and vertex
// buffers, plus the exhaustive boundary verification the harness runs
// against them. Both codecs are length-delimited with a one-byte versioned
// header; encoders never write past the caller-provided capacity and
// decoders never read past the buffer they were given, at every truncation
// boundary.
package codec

import "errors"

// Codec errors. All decode failures wrap one of these.
var (
	ErrInvalidHeader     = errors.New("invalid codec header")
	ErrUnexpectedEnd     = errors.New("unexpected end of encoded stream")
	ErrTrailingData      = errors.New("trailing bytes after encoded stream")
	ErrInvalidStream     = errors.New("malformed encoded stream")
	ErrSizeMismatch      = errors.New("destination size mismatch")
	ErrBoundaryViolation = errors.New("codec boundary violation")
)

// byteWriter appends to a fixed-capacity destination. Writing past the
// capacity sets overflow instead of touching memory outside dst; the
// encoders translate overflow into a zero return.
type byteWriter struct {
	dst      []byte
	pos      int
	overflow bool
}

func (w *byteWriter) writeByte(b byte) {
	if w.pos < len(w.dst) {
		w.dst[w.pos] = b
		w.pos++
	} else {
		w.overflow = true
	}
}

func (w *byteWriter) writeVarint(v uint32) {
	for v >= 0x80 {
		w.writeByte(byte(v) | 0x80)
		v >>= 7
	}
	w.writeByte(byte(v))
}

// byteReader consumes a fixed buffer and fails on overrun instead of
// reading past it.
type byteReader struct {
	src []byte
	pos int
}

func (r *byteReader) readByte() (byte, error) {
	if r.pos >= len(r.src) {
		return 0, ErrUnexpectedEnd
	}
	b := r.src[r.pos]
	r.pos++
	return b, nil
}

func (r *byteReader) readVarint() (uint32, error) {
	var v uint32
	var shift uint
	for {
		if shift >= 35 {
			return 0, ErrInvalidStream
		}
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		v |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
}

// done checks that the reader consumed the stream exactly; decoders call
// it last so over-long input is rejected rather than ignored.
func (r *byteReader) done() error {
	if r.pos != len(r.src) {
		return ErrTrailingData
	}
	return nil
}

func varintLen(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func zigzag(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

func unzigzag(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}
