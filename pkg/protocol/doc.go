// Package protocol implements the binary framing used by the Volcengine
// streaming ASR (SAUC) WebSocket API.
//
// Every WebSocket binary message carries exactly one frame:
//
//	offset  size  field
//	0       1     version (4 bits) | header size in 4-byte words (4 bits), always 0x11 on encode
//	1       1     message type (4 bits) | message flags (4 bits)
//	2       1     serialization (4 bits) | compression (4 bits)
//	3       1     reserved, 0x00
//	4       4     [optional] sequence, present iff flags is 0b0001 or 0b0011
//	next    4     payload size (error frames: error code + error size)
//	next    N     payload (error frames: UTF-8 error message)
//
// All integers are big-endian. The payload size always describes the encoded
// (possibly gzip-compressed) payload, never the decompressed length.
//
// Encoding:
//
//	data, err := protocol.Encode(protocol.Frame{
//	    Type:          protocol.FullClientRequest,
//	    Serialization: protocol.SerializationJSON,
//	    Payload:       body,
//	})
//
// Decoding:
//
//	msg, err := protocol.Decode(data)
//	switch m := msg.(type) {
//	case *protocol.ErrorMessage:
//	    // m.Code, m.Message
//	case *protocol.ResultMessage:
//	    // m.Payload, m.JSON
//	}
package protocol
