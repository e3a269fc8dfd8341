// Package restasr transcribes audio by URL through an OpenAI-compatible chat
// completions endpoint. The audio URL is sent as an input_audio content part
// and the transcript is the assistant reply.
//
// It is the single request/response counterpart of package asr; nothing is
// streamed.
package restasr

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
	DefaultModel   = "qwen3-asr-flash"
)

// ErrEmptyURL is returned by Transcribe for an empty audio URL.
var ErrEmptyURL = errors.New("restasr: audio url is empty")

// Transcriber transcribes the audio at a URL.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (*Result, error)
}

// Result is a transcription and the raw response it came from.
type Result struct {
	Transcript string `json:"transcript"`
	Raw        string `json:"raw"`
}

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client is a Transcriber backed by openai-go.
type Client struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

// New creates a Client. Extra request options are appended after the ones
// derived from cfg.
func New(cfg Config, logger *zap.Logger, opts ...option.RequestOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("restasr: api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	}, opts...)
	return &Client{
		client: openai.NewClient(reqOpts...),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Transcribe sends one chat completion for audioURL.
func (c *Client) Transcribe(ctx context.Context, audioURL string) (*Result, error) {
	if strings.TrimSpace(audioURL) == "" {
		return nil, ErrEmptyURL
	}

	part := openai.InputAudioContentPart(openai.ChatCompletionContentPartInputAudioInputAudioParam{
		Data:   audioURL,
		Format: audioFormat(audioURL),
	})
	mp := openai.ChatCompletionUserMessageParam{
		Content: openai.ChatCompletionUserMessageParamContentUnion{
			OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{part},
		},
	}
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{{OfUser: &mp}},
	}

	c.logger.Debug("restasr request", zap.String("model", c.model), zap.String("url", audioURL))
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("restasr: chat completion: %w", err)
	}

	text := ""
	if len(resp.Choices) > 0 {
		text = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	return &Result{Transcript: text, Raw: resp.RawJSON()}, nil
}

// audioFormat guesses the input_audio format from the URL path.
func audioFormat(audioURL string) string {
	p := audioURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if strings.EqualFold(path.Ext(p), ".mp3") {
		return "mp3"
	}
	return "wav"
}

var _ Transcriber = (*Client)(nil)
