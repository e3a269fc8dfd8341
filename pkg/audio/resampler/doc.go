// Package resampler converts mono 16-bit PCM between the sample rates of
// [pcm.Format].
//
// Conversion runs in pure Go on github.com/tphakala/go-audio-resampling at
// its high quality preset. Equal source and destination formats pass the
// audio through untouched.
//
// Example usage:
//
//	r, err := resampler.New(audioReader, pcm.L16Mono48K, pcm.L16Mono16K)
//	if err != nil {
//	    return err
//	}
//	io.Copy(output, r)
//
// or, for a whole buffer:
//
//	pcm16k, err := resampler.Resample(pcm48k, pcm.L16Mono48K, pcm.L16Mono16K)
package resampler
