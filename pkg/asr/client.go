package asr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hackathonweekly/community-sub007/pkg/audio/pcm"
)

// Connection headers.
const (
	HeaderAppKey     = "X-Api-App-Key"
	HeaderAccessKey  = "X-Api-Access-Key"
	HeaderResourceID = "X-Api-Resource-Id"
	HeaderConnectID  = "X-Api-Connect-Id"
)

// Client transcribes PCM audio. A Client holds no connection between calls
// and is safe for concurrent use.
type Client struct {
	config Config
	logger *zap.Logger
	dialer *websocket.Dialer
	header http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDialer sets the websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) {
		c.dialer = d
	}
}

// WithHTTPHeader adds a header to every handshake. The credential headers
// cannot be overridden this way.
func WithHTTPHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Add(key, value)
	}
}

// NewClient creates a Client. Empty fields of cfg take their defaults;
// credentials are checked per call.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		config: cfg.withDefaults(),
		logger: zap.NewNop(),
		dialer: websocket.DefaultDialer,
		header: make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Result is a successful transcription.
type Result struct {
	Text string

	// ConnectID is the X-Api-Connect-Id of the connection that produced Text.
	ConnectID string

	// Frames is the number of frames sent: config, audio chunks and the
	// end-of-audio marker.
	Frames int

	// Duration is the length of the submitted audio.
	Duration time.Duration
}

// TranscribePCM returns the final transcript of 16 kHz 16-bit mono PCM audio.
func (c *Client) TranscribePCM(ctx context.Context, audio []byte) (string, error) {
	res, err := c.Transcribe(ctx, audio)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Transcribe is TranscribePCM with connection metadata.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (*Result, error) {
	if len(audio) == 0 {
		return nil, &Error{Kind: KindEmptyAudio, Message: "audio buffer is empty"}
	}
	if err := c.config.checkCredentials(); err != nil {
		return nil, err
	}

	s := newSession(c, audio)
	text, err := s.run(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{
		Text:      text,
		ConnectID: s.connectID,
		Frames:    s.sent,
		Duration:  pcm.L16Mono16K.Duration(int64(len(audio))),
	}, nil
}

// TranscribePCM is a one-off call on a Client built from cfg.
//
// Start cfg from DefaultConfig; a zero Config turns off every feature flag
// and the timeout.
func TranscribePCM(ctx context.Context, audio []byte, cfg Config) (string, error) {
	return NewClient(cfg).TranscribePCM(ctx, audio)
}

func (c *Client) handshakeHeader(connectID string) http.Header {
	h := c.header.Clone()
	h.Set(HeaderAppKey, c.config.AppID)
	h.Set(HeaderAccessKey, c.config.AccessToken)
	h.Set(HeaderResourceID, c.config.ResourceID)
	h.Set(HeaderConnectID, connectID)
	return h
}

// dial opens the websocket. Handshake failures carry the HTTP status and
// response body.
func (c *Client) dial(ctx context.Context, connectID string) (*websocket.Conn, error) {
	conn, resp, err := c.dialer.DialContext(ctx, c.config.Endpoint, c.handshakeHeader(connectID))
	if err != nil {
		e := &Error{Kind: KindConnection, Err: err}
		if resp != nil {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			e.HTTPStatus = resp.StatusCode
			e.Message = fmt.Sprintf("websocket connect failed: status=%s, body=%s", resp.Status, string(body))
		}
		return nil, e
	}
	return conn, nil
}

func newConnectID() string {
	return uuid.New().String()
}
