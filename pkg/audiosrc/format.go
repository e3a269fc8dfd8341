package audiosrc

import (
	"bytes"
	"fmt"

	"github.com/hackathonweekly/community-sub007/pkg/audio/pcm"
	"github.com/hackathonweekly/community-sub007/pkg/audio/resampler"
)

// Format names an input container.
type Format string

const (
	FormatAuto Format = ""
	FormatPCM  Format = "pcm"
	FormatWAV  Format = "wav"
)

// ParseFormat validates a --format style value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatAuto, FormatPCM, FormatWAV:
		return f, nil
	}
	return "", fmt.Errorf("audiosrc: unknown format %q (want pcm or wav)", s)
}

// PCM16K returns raw 16 kHz 16-bit mono samples from data. FormatAuto treats
// data starting with a RIFF header as WAV and anything else as raw PCM.
// 24 kHz and 48 kHz WAV is resampled; raw PCM is taken to be 16 kHz.
func PCM16K(data []byte, f Format) ([]byte, error) {
	if f == FormatAuto {
		f = FormatPCM
		if bytes.HasPrefix(data, []byte("RIFF")) {
			f = FormatWAV
		}
	}
	switch f {
	case FormatPCM:
		if len(data)%2 != 0 {
			return nil, fmt.Errorf("audiosrc: odd PCM length %d", len(data))
		}
		return data, nil
	case FormatWAV:
		w, err := pcm.ParseWAV(data)
		if err != nil {
			return nil, fmt.Errorf("audiosrc: %w", err)
		}
		if w.Format == pcm.L16Mono16K {
			return w.Data, nil
		}
		out, err := resampler.Resample(w.Data, w.Format, pcm.L16Mono16K)
		if err != nil {
			return nil, fmt.Errorf("audiosrc: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("audiosrc: unknown format %q", string(f))
}
