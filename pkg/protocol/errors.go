package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedFrame         = errors.New("protocol: malformed frame")
	ErrUnsupportedCompression = errors.New("protocol: unsupported compression")
)

// MalformedFrameError reports a frame whose header or body is truncated or
// internally inconsistent.
type MalformedFrameError struct {
	Reason string
	Err    error
}

func (e *MalformedFrameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: malformed frame: %s: %v", e.Reason, e.Err)
	}
	return "protocol: malformed frame: " + e.Reason
}

func (e *MalformedFrameError) Is(target error) bool {
	return target == ErrMalformedFrame
}

func (e *MalformedFrameError) Unwrap() error {
	return e.Err
}

// UnsupportedCompressionError reports a compression code other than none or
// gzip.
type UnsupportedCompressionError struct {
	Code Compression
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("protocol: unsupported compression %#x", byte(e.Code))
}

func (e *UnsupportedCompressionError) Is(target error) bool {
	return target == ErrUnsupportedCompression
}

func malformed(reason string) error {
	return &MalformedFrameError{Reason: reason}
}
