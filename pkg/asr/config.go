package asr

import (
	"time"

	"github.com/hackathonweekly/community-sub007/pkg/audio/pcm"
)

const (
	// DefaultEndpoint is the production SAUC BigModel endpoint.
	DefaultEndpoint = "wss://openspeech.bytedance.com/api/v3/sauc/bigmodel_nostream"

	// ResourceASRStream is the duration-billed streaming ASR resource.
	ResourceASRStream = "volc.bigasr.sauc.duration"

	// ResourceASRStreamV2 is the 2.0 streaming ASR resource.
	ResourceASRStreamV2 = "volc.seedasr.sauc.duration"

	DefaultModelName     = "bigmodel"
	DefaultEndWindowSize = 800
	DefaultTimeout       = 60 * time.Second

	MinEndWindowSize = 200
	MaxEndWindowSize = 10000
)

// DefaultChunkSize is 100 ms of 16 kHz 16-bit mono audio.
var DefaultChunkSize = int(pcm.L16Mono16K.BytesInDuration(100 * time.Millisecond))

// Config is everything a transcription call needs besides the audio.
type Config struct {
	Endpoint   string
	ResourceID string

	// AppID and AccessToken are required.
	AppID       string
	AccessToken string

	ModelName       string
	EnableNonStream bool
	EnableITN       bool
	EnablePunc      bool
	ShowUtterances  bool

	// EndWindowSize is the end-of-utterance silence window in milliseconds.
	// Values outside [MinEndWindowSize, MaxEndWindowSize] are clamped; zero
	// means DefaultEndWindowSize.
	EndWindowSize int

	// Timeout bounds the whole socket lifecycle. Zero disables it.
	Timeout time.Duration

	// ChunkSize is the audio bytes per frame. Zero means DefaultChunkSize.
	ChunkSize int

	// UserID is sent as user.uid when non-empty.
	UserID string
}

// DefaultConfig returns a Config with every optional field set to its
// default. Credentials are left empty.
func DefaultConfig() Config {
	return Config{
		Endpoint:        DefaultEndpoint,
		ResourceID:      ResourceASRStream,
		ModelName:       DefaultModelName,
		EnableNonStream: true,
		EnableITN:       true,
		EnablePunc:      true,
		ShowUtterances:  true,
		EndWindowSize:   DefaultEndWindowSize,
		Timeout:         DefaultTimeout,
		ChunkSize:       DefaultChunkSize,
	}
}

// withDefaults fills empty string and size fields. Booleans and Timeout are
// taken as given.
func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.ResourceID == "" {
		c.ResourceID = ResourceASRStream
	}
	if c.ModelName == "" {
		c.ModelName = DefaultModelName
	}
	if c.EndWindowSize == 0 {
		c.EndWindowSize = DefaultEndWindowSize
	}
	c.EndWindowSize = ClampEndWindowSize(c.EndWindowSize)
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	return c
}

// ClampEndWindowSize clamps ms to [MinEndWindowSize, MaxEndWindowSize].
func ClampEndWindowSize(ms int) int {
	return min(max(ms, MinEndWindowSize), MaxEndWindowSize)
}

func (c Config) checkCredentials() error {
	switch {
	case c.AppID == "":
		return &Error{Kind: KindMissingCredentials, Message: "app id is empty"}
	case c.AccessToken == "":
		return &Error{Kind: KindMissingCredentials, Message: "access token is empty"}
	}
	return nil
}
