package protocol

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Decode parses one wire frame.
//
// Bytes after the declared payload are ignored. A JSON-serialized payload that
// fails to parse is returned as an error rather than skipped.
func Decode(data []byte) (Message, error) {
	if len(data) < HeaderSize {
		return nil, malformed("header too short")
	}

	headerSize := int(data[0]&0x0f) * 4
	if headerSize < HeaderSize {
		return nil, malformed("invalid header size")
	}
	if len(data) < headerSize {
		return nil, malformed("missing header")
	}

	info := Info{
		Type:          MessageType(data[1] >> 4),
		Flags:         Flags(data[1] & 0x0f),
		Serialization: Serialization(data[2] >> 4),
		Compression:   Compression(data[2] & 0x0f),
		HeaderSize:    headerSize,
	}

	r := reader{buf: data, off: headerSize}

	if HasSequence(info.Flags) {
		seq, ok := r.uint32()
		if !ok {
			return nil, malformed("missing sequence")
		}
		info.Sequence = int32(seq)
		info.HasSequence = true
	}

	if info.Type == ServerErrorResponse {
		return decodeError(info, &r)
	}
	return decodeResult(info, &r)
}

func decodeError(info Info, r *reader) (*ErrorMessage, error) {
	code, ok := r.uint32()
	if !ok {
		return nil, malformed("missing error code")
	}
	size, ok := r.uint32()
	if !ok {
		return nil, malformed("missing error size")
	}
	text, ok := r.bytes(size)
	if !ok {
		return nil, malformed("missing error message")
	}
	return &ErrorMessage{
		Info:    info,
		Code:    code,
		Message: string(text),
	}, nil
}

func decodeResult(info Info, r *reader) (*ResultMessage, error) {
	size, ok := r.uint32()
	if !ok {
		return nil, malformed("missing payload size")
	}
	encoded, ok := r.bytes(size)
	if !ok {
		return nil, malformed("missing payload")
	}

	payload, err := decompress(info.Compression, encoded)
	if err != nil {
		return nil, err
	}

	msg := &ResultMessage{
		Info:    info,
		Payload: payload,
	}
	if info.Serialization == SerializationJSON && len(payload) > 0 {
		var raw json.RawMessage
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("protocol: decode json payload: %w", err)
		}
		msg.JSON = raw
	}
	return msg, nil
}

func decompress(c Compression, payload []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionGzip:
		if len(payload) == 0 {
			return payload, nil
		}
		out, err := gzipDecompress(payload)
		if err != nil {
			return nil, &MalformedFrameError{Reason: "gzip payload", Err: err}
		}
		return out, nil
	default:
		return nil, &UnsupportedCompressionError{Code: c}
	}
}

// reader is a bounds-checked cursor over a frame.
type reader struct {
	buf []byte
	off int
}

func (r *reader) uint32() (uint32, bool) {
	if len(r.buf)-r.off < 4 {
		return 0, false
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, true
}

func (r *reader) bytes(n uint32) ([]byte, bool) {
	if uint64(len(r.buf)-r.off) < uint64(n) {
		return nil, false
	}
	b := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return b, true
}
