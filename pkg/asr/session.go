package asr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hackathonweekly/community-sub007/pkg/audio/pcm"
	"github.com/hackathonweekly/community-sub007/pkg/protocol"
	"github.com/hackathonweekly/community-sub007/pkg/transcript"
)

const (
	// writeWait bounds close-frame writes.
	writeWait = time.Second

	// closeWait is how long a locally initiated close waits for the server's
	// close frame before the connection is treated as closed.
	closeWait = 5 * time.Second
)

// ================== 会话状态 ==================

type state int

const (
	stateIdle state = iota
	stateConnecting
	stateAwaitingResult
	stateSettled
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateConnecting:
		return "connecting"
	case stateAwaitingResult:
		return "awaiting_result"
	case stateSettled:
		return "settled"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type eventKind int

const (
	eventConnected eventKind = iota
	eventMessage
	eventSocketError
	eventClose
	eventTimeout
	eventCanceled
)

type event struct {
	kind eventKind

	// eventMessage
	data []byte

	// eventSocketError, eventCanceled
	err error

	// eventClose
	code   int
	reason string
}

// session is one transcription call: one socket, one result.
//
// Every field except done is owned by the goroutine running run; the read
// loop only touches conn and done.
type session struct {
	client    *Client
	logger    *zap.Logger
	audio     []byte
	connectID string

	conn    *websocket.Conn
	state   state
	closing bool

	latest    string
	serverErr *Error
	writeErr  *Error
	sent      int
	received  int

	settleOnce sync.Once
	done       chan struct{}
	text       string
	err        error
}

func newSession(c *Client, audio []byte) *session {
	id := newConnectID()
	return &session{
		client:    c,
		logger:    c.logger.With(zap.String("connect_id", id)),
		audio:     audio,
		connectID: id,
		done:      make(chan struct{}),
	}
}

// run drives the session until it settles and returns the outcome.
func (s *session) run(ctx context.Context) (string, error) {
	runCtx := ctx
	if timeout := s.client.config.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s.transition(stateConnecting)
	s.logger.Info("asr connecting",
		zap.String("endpoint", s.client.config.Endpoint),
		zap.Int("audio_frames", pcm.ChunkCount(len(s.audio), s.client.config.ChunkSize)),
	)

	conn, err := s.client.dial(runCtx, s.connectID)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			s.handle(event{kind: eventCanceled, err: ctx.Err()})
		case runCtx.Err() != nil:
			s.handle(event{kind: eventTimeout})
		default:
			s.handle(event{kind: eventSocketError, err: err})
		}
		return s.text, s.err
	}
	s.conn = conn
	defer conn.Close()
	if deadline, ok := runCtx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}

	// Reading starts before the audio burst so an error frame sent while we
	// are still writing is not lost.
	events := make(chan event)
	go s.readLoop(events)

	s.handle(event{kind: eventConnected})
	for s.state != stateSettled {
		select {
		case ev := <-events:
			s.handle(ev)
		case <-runCtx.Done():
			if ctx.Err() != nil {
				s.handle(event{kind: eventCanceled, err: ctx.Err()})
			} else {
				s.handle(event{kind: eventTimeout})
			}
		}
	}
	return s.text, s.err
}

// readLoop turns socket reads into events until the first read error.
func (s *session) readLoop(events chan<- event) {
	for {
		_, data, err := s.conn.ReadMessage()
		ev := event{kind: eventMessage, data: data}
		if err != nil {
			ev = event{kind: eventSocketError, err: err}
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				ev = event{kind: eventClose, code: ce.Code, reason: ce.Text}
			}
		}
		select {
		case events <- ev:
		case <-s.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// handle is the single dispatcher for every session event.
func (s *session) handle(ev event) {
	if s.state == stateSettled {
		return
	}
	switch ev.kind {
	case eventConnected:
		s.onConnected()
	case eventMessage:
		s.onMessage(ev.data)
	case eventClose:
		s.onClose(ev.code, ev.reason)
	case eventSocketError:
		if s.closing {
			// We asked for the close; a failed read is its end.
			s.onClose(websocket.CloseNoStatusReceived, "")
			return
		}
		s.settle("", connectionError(ev.err))
	case eventTimeout:
		if s.closing {
			s.onClose(websocket.CloseNoStatusReceived, "")
			return
		}
		s.settle("", &Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("no result within %s", s.client.config.Timeout),
		})
	case eventCanceled:
		if s.closing && s.serverErr != nil {
			s.onClose(websocket.CloseNoStatusReceived, "")
			return
		}
		s.settle("", &Error{Kind: KindConnection, Err: ev.err})
	}
}

// onConnected sends config, audio and the end-of-audio marker in one burst.
func (s *session) onConnected() {
	s.transition(stateAwaitingResult)
	cfg := s.client.config

	payload, err := requestJSON(cfg)
	if err != nil {
		s.settle("", &Error{Kind: KindProtocol, Message: "encode request", Err: err})
		return
	}
	if err := s.send(protocol.Frame{
		Type:          protocol.FullClientRequest,
		Serialization: protocol.SerializationJSON,
		Payload:       payload,
	}); err != nil {
		s.writeFailed(err)
		return
	}

	for _, chunk := range pcm.Chunks(s.audio, cfg.ChunkSize) {
		if err := s.send(protocol.Frame{
			Type:    protocol.AudioOnlyClientRequest,
			Payload: chunk,
		}); err != nil {
			s.writeFailed(err)
			return
		}
	}

	if err := s.send(protocol.Frame{
		Type:  protocol.AudioOnlyClientRequest,
		Flags: protocol.FlagLast,
	}); err != nil {
		s.writeFailed(err)
		return
	}

	s.logger.Debug("asr audio sent",
		zap.Int("frames", s.sent),
		zap.Int("audio_bytes", len(s.audio)),
	)
}

// writeFailed stops the burst and leaves the outcome to the read side. err
// is reported only if no server error or transcript arrives.
func (s *session) writeFailed(err *Error) {
	if err.Kind == KindProtocol {
		s.settle("", err)
		return
	}
	s.writeErr = err
	s.logger.Debug("asr write failed",
		zap.Error(err),
		zap.Int("frames_sent", s.sent),
	)
	s.beginClose()
}

func (s *session) send(f protocol.Frame) *Error {
	data, err := protocol.Encode(f)
	if err != nil {
		return &Error{Kind: KindProtocol, Message: "encode frame", Err: err}
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return connectionError(err)
	}
	s.sent++
	return nil
}

func (s *session) onMessage(data []byte) {
	msg, err := protocol.Decode(data)
	if err != nil {
		s.settle("", &Error{Kind: KindProtocol, Message: "decode server frame", Err: err})
		return
	}
	s.received++

	info := msg.FrameInfo()
	s.logger.Debug("asr frame received",
		zap.Stringer("type", info.Type),
		zap.Uint8("flags", uint8(info.Flags)),
		zap.Int32("sequence", info.Sequence),
		zap.Int("size", len(data)),
	)

	switch m := msg.(type) {
	case *protocol.ErrorMessage:
		text := strings.TrimSpace(m.Message)
		if text == "" {
			text = fmt.Sprintf("server error code %d", m.Code)
		}
		s.serverErr = &Error{Kind: KindServerReported, Code: int(m.Code), Message: text}
		s.logger.Info("asr server error", zap.Uint32("code", m.Code), zap.String("message", text))
		s.beginClose()
	case *protocol.ResultMessage:
		if text := strings.TrimSpace(transcript.Extract(m.JSON)); text != "" {
			s.latest = text
		}
	}
}

// onClose resolves the session from what was recorded and the close code.
func (s *session) onClose(code int, reason string) {
	switch {
	case s.serverErr != nil:
		s.settle("", s.serverErr)
	case s.latest != "":
		s.settle(s.latest, nil)
	case s.writeErr != nil:
		s.settle("", s.writeErr)
	case code == websocket.CloseNormalClosure || code == websocket.CloseNoStatusReceived:
		s.settle("", &Error{Kind: KindNoResult, Message: "connection closed without a transcript"})
	default:
		s.settle("", &Error{Kind: KindAbnormalClose, Code: code, Reason: reason})
	}
}

// beginClose sends a close frame and bounds the wait for the server's reply.
func (s *session) beginClose() {
	if s.closing || s.conn == nil {
		return
	}
	s.closing = true
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	_ = s.conn.SetReadDeadline(time.Now().Add(closeWait))
}

// settle records the outcome once and closes the socket.
func (s *session) settle(text string, err error) {
	s.settleOnce.Do(func() {
		s.transition(stateSettled)
		s.text, s.err = text, err
		close(s.done)

		if s.conn != nil {
			s.beginClose()
			s.conn.Close()
		}

		if err != nil {
			s.logger.Info("asr failed",
				zap.Error(err),
				zap.Int("frames_sent", s.sent),
				zap.Int("frames_received", s.received),
			)
			return
		}
		s.logger.Info("asr done",
			zap.Int("text_len", len(text)),
			zap.Int("frames_sent", s.sent),
			zap.Int("frames_received", s.received),
		)
	})
}

func (s *session) transition(to state) {
	s.logger.Debug("asr state", zap.Stringer("from", s.state), zap.Stringer("to", to))
	s.state = to
}

func connectionError(err error) *Error {
	if e, ok := AsError(err); ok {
		return e
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindConnection, Err: err}
}
