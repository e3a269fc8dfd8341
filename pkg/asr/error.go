package asr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别
type Kind int

const (
	KindEmptyAudio Kind = iota + 1
	KindMissingCredentials
	KindProtocol
	KindServerReported
	KindConnection
	KindNoResult
	KindAbnormalClose
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindEmptyAudio:
		return "empty audio"
	case KindMissingCredentials:
		return "missing credentials"
	case KindProtocol:
		return "protocol error"
	case KindServerReported:
		return "server error"
	case KindConnection:
		return "connection error"
	case KindNoResult:
		return "no result"
	case KindAbnormalClose:
		return "abnormal close"
	case KindTimeout:
		return "timeout"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrEmptyAudio         = &Error{Kind: KindEmptyAudio}
	ErrMissingCredentials = &Error{Kind: KindMissingCredentials}
	ErrProtocol           = &Error{Kind: KindProtocol}
	ErrServerReported     = &Error{Kind: KindServerReported}
	ErrConnection         = &Error{Kind: KindConnection}
	ErrNoResult           = &Error{Kind: KindNoResult}
	ErrAbnormalClose      = &Error{Kind: KindAbnormalClose}
	ErrTimeout            = &Error{Kind: KindTimeout}
)

// Error 识别失败
type Error struct {
	Kind Kind

	// Code 服务端错误码 (KindServerReported) 或 websocket 关闭码 (KindAbnormalClose)
	Code int

	// Reason websocket 关闭原因 (KindAbnormalClose)
	Reason string

	// Message 错误消息
	Message string

	// HTTPStatus 握手失败时的 HTTP 状态码
	HTTPStatus int

	// Err 底层错误
	Err error
}

func (e *Error) Error() string {
	s := "asr: " + e.Kind.String()
	switch e.Kind {
	case KindServerReported:
		s += fmt.Sprintf(" (code=%d)", e.Code)
	case KindAbnormalClose:
		s += fmt.Sprintf(" (code=%d, reason=%q)", e.Code, e.Reason)
	}
	if e.HTTPStatus != 0 {
		s += fmt.Sprintf(" (http_status=%d)", e.HTTPStatus)
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// IsAuthError 是否为认证错误
func (e *Error) IsAuthError() bool {
	return e.Kind == KindMissingCredentials ||
		e.HTTPStatus == http.StatusUnauthorized || e.HTTPStatus == http.StatusForbidden
}

// AsError 尝试将 error 转换为 *Error
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
