package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Encode serializes f into a single wire frame.
//
// The payload is compressed first, so the written payload size is the
// compressed length when Compression is gzip.
func Encode(f Frame) ([]byte, error) {
	payload, err := compress(f.Compression, f.Payload)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	buf.Grow(HeaderSize + 8 + len(payload))
	writeHeader(buf, f.Type, f.Flags, f.Serialization, f.Compression)

	if HasSequence(f.Flags) {
		binary.Write(buf, binary.BigEndian, f.Sequence)
	}
	binary.Write(buf, binary.BigEndian, uint32(len(payload)))
	buf.Write(payload)

	return buf.Bytes(), nil
}

// EncodeError serializes an error frame. The message is written as raw UTF-8
// bytes and is never compressed.
func EncodeError(f ErrorFrame) []byte {
	buf := new(bytes.Buffer)
	buf.Grow(HeaderSize + 12 + len(f.Message))
	writeHeader(buf, ServerErrorResponse, f.Flags, SerializationJSON, CompressionNone)

	if HasSequence(f.Flags) {
		binary.Write(buf, binary.BigEndian, f.Sequence)
	}
	binary.Write(buf, binary.BigEndian, f.Code)
	binary.Write(buf, binary.BigEndian, uint32(len(f.Message)))
	buf.WriteString(f.Message)

	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, t MessageType, flags Flags, s Serialization, c Compression) {
	buf.WriteByte(Version<<4 | headerWords)
	buf.WriteByte(byte(t)<<4 | byte(flags)&0x0f)
	buf.WriteByte(byte(s)<<4 | byte(c)&0x0f)
	buf.WriteByte(0x00) // reserved
}

func compress(c Compression, payload []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return payload, nil
	case CompressionGzip:
		compressed, err := gzipCompress(payload)
		if err != nil {
			return nil, fmt.Errorf("gzip compress: %w", err)
		}
		return compressed, nil
	default:
		return nil, &UnsupportedCompressionError{Code: c}
	}
}
