package resampler

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/hackathonweekly/community-sub007/pkg/audio/pcm"
)

// sampleBytes is the size of one mono 16-bit sample.
const sampleBytes = 2

// readSize is how many destination bytes one Read tries to produce.
const readSize = 8192

// Reader wraps an io.Reader of src-format PCM and yields dst-format PCM.
// It is not safe for concurrent use.
type Reader struct {
	src      io.Reader
	from, to pcm.Format

	rs       resampling.Resampler
	readBuf  []byte
	leftover []byte
	err      error
}

// New creates a Reader converting from one format to another. A trailing odd
// byte in src is dropped.
func New(src io.Reader, from, to pcm.Format) (*Reader, error) {
	r := &Reader{src: src, from: from, to: to}
	if from.SampleRate() == to.SampleRate() {
		return r, nil
	}
	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(from.SampleRate()),
		OutputRate: float64(to.SampleRate()),
		Channels:   to.Channels(),
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("resampler: %s -> %s: %w", from, to, err)
	}
	r.rs = rs
	return r, nil
}

// Read copies converted audio into p.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(r.leftover) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.fill(max(len(p), readSize))
	}
	n := copy(p, r.leftover)
	r.leftover = r.leftover[n:]
	return n, nil
}

// fill reads one block from src and appends its conversion to leftover.
func (r *Reader) fill(dstBytes int) {
	srcBytes := dstBytes
	if r.rs != nil {
		srcBytes = dstBytes * r.from.SampleRate() / r.to.SampleRate()
	}
	srcBytes = max(srcBytes/sampleBytes*sampleBytes, sampleBytes)
	if cap(r.readBuf) < srcBytes {
		r.readBuf = make([]byte, srcBytes)
	}

	n, err := io.ReadFull(r.src, r.readBuf[:srcBytes])
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		r.err = io.EOF
	case err != nil:
		r.err = err
	}
	n = n / sampleBytes * sampleBytes
	if n == 0 {
		return
	}

	if r.rs == nil {
		r.leftover = append(r.leftover[:0], r.readBuf[:n]...)
		return
	}

	out, perr := r.rs.Process(toFloat(r.readBuf[:n]))
	if perr != nil {
		r.err = fmt.Errorf("resampler: %w", perr)
		return
	}
	r.leftover = appendInt16(r.leftover[:0], out)
}

// Resample converts a whole buffer.
func Resample(data []byte, from, to pcm.Format) ([]byte, error) {
	if from.SampleRate() == to.SampleRate() {
		return data[:len(data)/sampleBytes*sampleBytes], nil
	}
	r, err := New(bytes.NewReader(data), from, to)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	out.Grow(len(data) * to.SampleRate() / from.SampleRate())
	if _, err := io.Copy(&out, r); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// toFloat converts little-endian int16 samples to [-1, 1).
func toFloat(b []byte) []float64 {
	out := make([]float64, len(b)/sampleBytes)
	for i := range out {
		s := int16(b[2*i]) | int16(b[2*i+1])<<8
		out[i] = float64(s) / 32768.0
	}
	return out
}

// appendInt16 converts samples back to little-endian int16, clipping.
func appendInt16(dst []byte, samples []float64) []byte {
	for _, f := range samples {
		var s int16
		switch {
		case f >= 1.0:
			s = 32767
		case f <= -1.0:
			s = -32768
		default:
			s = int16(f * 32767.0)
		}
		dst = append(dst, byte(s), byte(s>>8))
	}
	return dst
}
