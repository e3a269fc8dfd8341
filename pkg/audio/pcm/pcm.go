package pcm

import (
	"fmt"
	"iter"
	"time"
)

const (
	// L16Mono16K represents audio/L16; rate=16000; channels=1
	L16Mono16K Format = iota
	// L16Mono24K represents audio/L16; rate=24000; channels=1
	L16Mono24K
	// L16Mono48K represents audio/L16; rate=48000; channels=1
	L16Mono48K
)

// Format represents an audio format configuration.
type Format int

// FormatForRate returns the mono 16-bit format with the given sample rate.
func FormatForRate(sampleRate int) (Format, bool) {
	switch sampleRate {
	case 16000:
		return L16Mono16K, true
	case 24000:
		return L16Mono24K, true
	case 48000:
		return L16Mono48K, true
	}
	return 0, false
}

// SampleRate returns the sample rate in Hz for this format.
func (f Format) SampleRate() int {
	switch f {
	case L16Mono16K:
		return 16000
	case L16Mono24K:
		return 24000
	case L16Mono48K:
		return 48000
	}
	panic("pcm: invalid audio type")
}

// Channels returns the number of audio channels for this format.
func (f Format) Channels() int {
	return 1
}

// Depth returns the bit depth for this format.
func (f Format) Depth() int {
	return 16
}

// BytesInDuration returns the number of bytes in the given duration.
func (f Format) BytesInDuration(d time.Duration) int64 {
	samples := int64(time.Duration(f.SampleRate()) * d / time.Second)
	return samples * int64(f.Channels()) * int64(f.Depth()) / 8
}

// Duration returns the duration of the given number of bytes.
func (f Format) Duration(bytes int64) time.Duration {
	samples := bytes * 8 / int64(f.Channels()) / int64(f.Depth())
	return time.Duration(samples) * time.Second / time.Duration(f.SampleRate())
}

// String returns a human-readable string representation of the format.
func (f Format) String() string {
	switch f {
	case L16Mono16K, L16Mono24K, L16Mono48K:
		return fmt.Sprintf("audio/L16; rate=%d; channels=1", f.SampleRate())
	}
	return fmt.Sprintf("pcm.Format(%d)", int(f))
}

// Chunks yields consecutive slices of data, each size bytes long except
// possibly the last. The index is the chunk ordinal. Slices alias data.
// Chunks panics if size is not positive.
func Chunks(data []byte, size int) iter.Seq2[int, []byte] {
	if size <= 0 {
		panic("pcm: chunk size must be positive")
	}
	return func(yield func(int, []byte) bool) {
		for i, off := 0, 0; off < len(data); i, off = i+1, off+size {
			end := min(off+size, len(data))
			if !yield(i, data[off:end]) {
				return
			}
		}
	}
}

// ChunkCount returns how many chunks Chunks yields for n bytes.
func ChunkCount(n, size int) int {
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
