package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrNotWAV            = errors.New("pcm: not a RIFF/WAVE file")
	ErrUnsupportedWAV    = errors.New("pcm: unsupported WAV encoding")
	ErrMissingWAVChunk   = errors.New("pcm: missing WAV chunk")
	ErrTruncatedWAVChunk = errors.New("pcm: truncated WAV chunk")
)

const wavFormatPCM = 1

// WAV is a parsed 16-bit mono PCM WAV file.
type WAV struct {
	Format Format
	// Data aliases the input buffer.
	Data []byte
}

// ParseWAV parses a RIFF/WAVE container holding 16-bit mono linear PCM at one
// of the supported sample rates.
func ParseWAV(b []byte) (*WAV, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return nil, ErrNotWAV
	}

	var (
		fmtFound bool
		format   Format
		data     []byte
	)
	for off := 12; off+8 <= len(b); {
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		body := off + 8
		if size < 0 || body+size > len(b) {
			if id == "data" {
				// Streaming writers leave the data size unset; take the rest.
				data = b[body:]
				break
			}
			return nil, fmt.Errorf("%w: %q", ErrTruncatedWAVChunk, id)
		}

		switch id {
		case "fmt ":
			f, err := parseFmtChunk(b[body : body+size])
			if err != nil {
				return nil, err
			}
			format, fmtFound = f, true
		case "data":
			data = b[body : body+size]
		}
		if data != nil && fmtFound {
			break
		}
		// Chunks are word aligned.
		off = body + size + size&1
	}

	if !fmtFound {
		return nil, fmt.Errorf("%w: %q", ErrMissingWAVChunk, "fmt ")
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingWAVChunk, "data")
	}
	return &WAV{Format: format, Data: data}, nil
}

func parseFmtChunk(b []byte) (Format, error) {
	if len(b) < 16 {
		return 0, fmt.Errorf("%w: %q", ErrTruncatedWAVChunk, "fmt ")
	}
	audioFormat := binary.LittleEndian.Uint16(b[0:2])
	channels := binary.LittleEndian.Uint16(b[2:4])
	sampleRate := binary.LittleEndian.Uint32(b[4:8])
	bits := binary.LittleEndian.Uint16(b[14:16])

	if audioFormat != wavFormatPCM || channels != 1 || bits != 16 {
		return 0, fmt.Errorf("%w: format=%d channels=%d bits=%d", ErrUnsupportedWAV, audioFormat, channels, bits)
	}
	f, ok := FormatForRate(int(sampleRate))
	if !ok {
		return 0, fmt.Errorf("%w: sample rate %d", ErrUnsupportedWAV, sampleRate)
	}
	return f, nil
}

// EncodeWAV wraps 16-bit mono samples in a minimal RIFF/WAVE container.
func EncodeWAV(f Format, data []byte) []byte {
	out := make([]byte, 44+len(data))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(data)))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(out[22:24], uint16(f.Channels()))
	binary.LittleEndian.PutUint32(out[24:28], uint32(f.SampleRate()))
	binary.LittleEndian.PutUint32(out[28:32], uint32(f.SampleRate()*f.Channels()*f.Depth()/8))
	binary.LittleEndian.PutUint16(out[32:34], uint16(f.Channels()*f.Depth()/8))
	binary.LittleEndian.PutUint16(out[34:36], uint16(f.Depth()))
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(data)))
	copy(out[44:], data)
	return out
}
