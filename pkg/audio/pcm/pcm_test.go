package pcm

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestFormatBytesInDuration(t *testing.T) {
	tests := []struct {
		format Format
		d      time.Duration
		want   int64
	}{
		{L16Mono16K, 100 * time.Millisecond, 3200},
		{L16Mono16K, 20 * time.Millisecond, 640},
		{L16Mono24K, 100 * time.Millisecond, 4800},
		{L16Mono48K, time.Second, 96000},
	}
	for _, tt := range tests {
		if got := tt.format.BytesInDuration(tt.d); got != tt.want {
			t.Errorf("%v.BytesInDuration(%v) = %d, want %d", tt.format, tt.d, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := L16Mono16K.Duration(32000); got != time.Second {
		t.Errorf("Duration(32000) = %v, want 1s", got)
	}
}

func TestFormatForRate(t *testing.T) {
	if f, ok := FormatForRate(24000); !ok || f != L16Mono24K {
		t.Errorf("FormatForRate(24000) = %v, %v", f, ok)
	}
	if _, ok := FormatForRate(8000); ok {
		t.Error("FormatForRate(8000) should not be supported")
	}
}

func TestChunks(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{"empty", 0, 3200, nil},
		{"exact", 32000, 3200, []int{3200, 3200, 3200, 3200, 3200, 3200, 3200, 3200, 3200, 3200}},
		{"short tail", 7000, 3200, []int{3200, 3200, 600}},
		{"smaller than chunk", 10, 3200, []int{10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, tt.n)
			for i := range data {
				data[i] = byte(i)
			}
			var (
				sizes  []int
				joined []byte
			)
			for i, c := range Chunks(data, tt.size) {
				if i != len(sizes) {
					t.Fatalf("index = %d, want %d", i, len(sizes))
				}
				sizes = append(sizes, len(c))
				joined = append(joined, c...)
			}
			if len(sizes) != len(tt.sizes) {
				t.Fatalf("chunk sizes = %v, want %v", sizes, tt.sizes)
			}
			for i := range sizes {
				if sizes[i] != tt.sizes[i] {
					t.Fatalf("chunk sizes = %v, want %v", sizes, tt.sizes)
				}
			}
			if !bytes.Equal(joined, data) {
				t.Fatal("chunks do not reassemble to the input")
			}
			if got := ChunkCount(tt.n, tt.size); got != len(tt.sizes) {
				t.Errorf("ChunkCount = %d, want %d", got, len(tt.sizes))
			}
		})
	}
}

func TestChunksStopEarly(t *testing.T) {
	n := 0
	for range Chunks(make([]byte, 100), 10) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("iterated %d chunks, want 3", n)
	}
}

func TestWAVRoundTrip(t *testing.T) {
	samples := bytes.Repeat([]byte{0x01, 0x02}, 800)
	w, err := ParseWAV(EncodeWAV(L16Mono16K, samples))
	if err != nil {
		t.Fatalf("ParseWAV: %v", err)
	}
	if w.Format != L16Mono16K {
		t.Errorf("Format = %v, want %v", w.Format, L16Mono16K)
	}
	if !bytes.Equal(w.Data, samples) {
		t.Error("Data mismatch")
	}
}

func TestParseWAVSkipsUnknownChunks(t *testing.T) {
	raw := EncodeWAV(L16Mono24K, []byte{1, 2, 3, 4})
	// Insert an odd-sized LIST chunk (padded) between fmt and data.
	list := []byte{'L', 'I', 'S', 'T', 3, 0, 0, 0, 'a', 'b', 'c', 0}
	b := append(append(append([]byte{}, raw[:36]...), list...), raw[36:]...)

	w, err := ParseWAV(b)
	if err != nil {
		t.Fatalf("ParseWAV: %v", err)
	}
	if w.Format != L16Mono24K || !bytes.Equal(w.Data, []byte{1, 2, 3, 4}) {
		t.Fatalf("got %v %v", w.Format, w.Data)
	}
}

func TestParseWAVErrors(t *testing.T) {
	stereo := EncodeWAV(L16Mono16K, []byte{0, 0})
	stereo[22] = 2

	rate := EncodeWAV(L16Mono16K, []byte{0, 0})
	rate[24], rate[25] = 0x40, 0x1f // 8000 Hz

	noData := EncodeWAV(L16Mono16K, nil)[:36]

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"raw pcm", []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, ErrNotWAV},
		{"stereo", stereo, ErrUnsupportedWAV},
		{"8k", rate, ErrUnsupportedWAV},
		{"no data", noData, ErrMissingWAVChunk},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseWAV(tt.data); !errors.Is(err, tt.want) {
				t.Fatalf("ParseWAV err = %v, want %v", err, tt.want)
			}
		})
	}
}
