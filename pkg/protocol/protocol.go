package protocol

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
)

// ================== 协议常量 ==================

// MessageType is the 4-bit message type in header byte 1.
type MessageType byte

// Flags is the 4-bit message-type-specific flag field in header byte 1.
type Flags byte

// Serialization is the 4-bit payload serialization method in header byte 2.
type Serialization byte

// Compression is the 4-bit payload compression method in header byte 2.
type Compression byte

const (
	// Version is the protocol version carried in the high nibble of byte 0.
	Version byte = 0b0001

	// HeaderSize is the size in bytes of the header emitted by Encode.
	HeaderSize = 4

	headerWords byte = HeaderSize / 4
)

const (
	FullClientRequest      MessageType = 0b0001
	AudioOnlyClientRequest MessageType = 0b0010
	FullServerResponse     MessageType = 0b1001
	ServerErrorResponse    MessageType = 0b1111
)

const (
	FlagNone         Flags = 0b0000
	FlagSequence     Flags = 0b0001 // positive sequence follows the header
	FlagLast         Flags = 0b0010 // last packet, no sequence
	FlagLastSequence Flags = 0b0011 // last packet, negative sequence follows the header
)

const (
	SerializationNone Serialization = 0b0000
	SerializationJSON Serialization = 0b0001
)

const (
	CompressionNone Compression = 0b0000
	CompressionGzip Compression = 0b0001
)

// HasSequence reports whether a frame with the given flags carries a 4-byte
// sequence number after the header.
func HasSequence(flags Flags) bool {
	return flags == FlagSequence || flags == FlagLastSequence
}

func (t MessageType) String() string {
	switch t {
	case FullClientRequest:
		return "full_client_request"
	case AudioOnlyClientRequest:
		return "audio_only_client_request"
	case FullServerResponse:
		return "full_server_response"
	case ServerErrorResponse:
		return "server_error_response"
	}
	return fmt.Sprintf("message_type(%#x)", byte(t))
}

// ================== 协议结构 ==================

// Frame is an outbound frame. Payload holds the uncompressed bytes; Encode
// compresses them according to Compression.
type Frame struct {
	Type          MessageType
	Flags         Flags
	Serialization Serialization
	Compression   Compression

	// Sequence is written only when HasSequence(Flags).
	Sequence int32

	Payload []byte
}

// ErrorFrame is an outbound SERVER_ERROR_RESPONSE frame. Clients never send
// these; the encoder exists for servers and test doubles.
type ErrorFrame struct {
	Flags    Flags
	Sequence int32
	Code     uint32
	Message  string
}

// Info is the header metadata shared by every decoded message.
type Info struct {
	Type          MessageType
	Flags         Flags
	Serialization Serialization
	Compression   Compression

	// HeaderSize is the header length in bytes as declared by the frame.
	HeaderSize int

	// Sequence is valid only when HasSequence is true.
	Sequence    int32
	HasSequence bool
}

// FrameInfo returns the header metadata.
func (i Info) FrameInfo() Info {
	return i
}

// Message is a decoded frame: either *ErrorMessage or *ResultMessage.
type Message interface {
	FrameInfo() Info
}

// ErrorMessage is a decoded SERVER_ERROR_RESPONSE frame.
type ErrorMessage struct {
	Info
	Code    uint32
	Message string
}

// ResultMessage is any decoded frame that is not an error frame.
type ResultMessage struct {
	Info

	// Payload is the decompressed payload.
	Payload []byte

	// JSON is set only when Serialization is JSON and Payload is non-empty.
	JSON json.RawMessage
}

var (
	_ Message = (*ErrorMessage)(nil)
	_ Message = (*ResultMessage)(nil)
)

// gzipCompress gzip 压缩
func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// gzipDecompress gzip 解压
func gzipDecompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
