// Package asr is a streaming speech-to-text client for the Volcengine SAUC
// BigModel websocket API.
//
// One call opens one websocket, sends a config frame, the audio in 3200-byte
// chunks and an end-of-audio frame, then folds the server's result frames
// into a single transcript:
//
//	client := asr.NewClient(asr.Config{
//	    AppID:       "your-app-id",
//	    AccessToken: "your-access-token",
//	}, asr.WithLogger(logger))
//
//	text, err := client.TranscribePCM(ctx, pcm16k)
//	if errors.Is(err, asr.ErrNoResult) {
//	    // the server closed cleanly without recognizing anything
//	}
//
// Input is raw little-endian 16-bit mono PCM at 16 kHz. Nothing is retried;
// every call resolves to exactly one transcript or one *Error.
package asr
