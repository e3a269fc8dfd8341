// Package history records finished transcriptions keyed by the digest of the
// submitted audio, so repeated requests for the same audio can be answered
// without a new recognition call.
//
// Records are msgpack-encoded under keys of the form
//
//	transcript:{digest}
//
// The package includes a BadgerDB-backed store for the CLI and an in-memory
// store for tests.
package history

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound is returned when no record exists for a digest.
var ErrNotFound = errors.New("history: not found")

const keyPrefix = "transcript:"

// Record is one finished transcription.
type Record struct {
	Digest     string    `json:"digest" msgpack:"digest"`
	ResourceID string    `json:"resource_id" msgpack:"rid"`
	Text       string    `json:"text" msgpack:"text"`
	ConnectID  string    `json:"connect_id,omitempty" msgpack:"cid,omitempty"`
	AudioBytes int       `json:"audio_bytes" msgpack:"n"`
	CreatedAt  time.Time `json:"created_at" msgpack:"ts"`
}

// Store persists Records.
type Store interface {
	// Put stores rec under rec.Digest, replacing any previous record.
	Put(ctx context.Context, rec Record) error

	// Get returns the record for digest, or ErrNotFound.
	Get(ctx context.Context, digest string) (*Record, error)

	// List iterates over all records ordered by digest.
	List(ctx context.Context) iter.Seq2[Record, error]

	// Clear removes every record.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// Digest returns the hex SHA-256 of audio.
func Digest(audio []byte) string {
	sum := sha256.Sum256(audio)
	return hex.EncodeToString(sum[:])
}

func key(digest string) []byte {
	return []byte(keyPrefix + digest)
}

func encode(rec Record) ([]byte, error) {
	if rec.Digest == "" {
		return nil, errors.New("history: record digest is empty")
	}
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("history: marshal record: %w", err)
	}
	return data, nil
}

func decode(data []byte) (Record, error) {
	var rec Record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("history: unmarshal record: %w", err)
	}
	return rec, nil
}
