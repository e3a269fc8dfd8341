// Package pcm provides the PCM formats accepted by the streaming recognizer
// and helpers to split raw sample buffers into fixed-duration frames.
//
// Key types:
//   - Format: 16-bit little-endian mono audio at a fixed sample rate
//   - Chunks: iterator over fixed-size slices of a sample buffer
//   - WAV: a parsed RIFF/WAVE container
//
// Example usage:
//
//	// 100ms of 16kHz mono audio is 3200 bytes
//	size := pcm.L16Mono16K.BytesInDuration(100 * time.Millisecond)
//
//	for i, chunk := range pcm.Chunks(audio, int(size)) {
//	    send(i, chunk)
//	}
package pcm
