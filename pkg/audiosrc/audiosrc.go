// Package audiosrc loads audio for transcription from the local filesystem or
// from S3-compatible object storage, and normalizes it to raw 16 kHz PCM.
//
// Sources are either a filesystem path or an s3://bucket/key URL:
//
//	loader := audiosrc.NewLoader(audiosrc.WithS3Client(client))
//	data, err := loader.Load(ctx, "s3://recordings/2026/03/call.wav")
//	pcm16k, err := audiosrc.PCM16K(data, audiosrc.FormatAuto)
package audiosrc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// DefaultMaxBytes bounds how much audio a single Load reads.
const DefaultMaxBytes = 256 << 20

// ErrTooLarge is returned when a source exceeds the loader's size limit.
var ErrTooLarge = errors.New("audiosrc: audio exceeds size limit")

// S3Client abstracts the S3 API operations used by [Loader].
// The [s3.Client] type satisfies this interface.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader reads audio bytes from a source string.
type Loader struct {
	s3       S3Client
	maxBytes int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithS3Client enables s3:// sources.
func WithS3Client(c S3Client) Option {
	return func(l *Loader) {
		l.s3 = c
	}
}

// WithMaxBytes sets the size limit. Non-positive values keep the default.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the bytes at src. Missing sources return an error wrapping
// os.ErrNotExist.
func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	if bucket, key, ok := ParseS3URL(src); ok {
		return l.loadS3(ctx, bucket, key)
	}
	return l.loadFile(src)
}

func (l *Loader) loadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiosrc: %w", err)
	}
	defer f.Close()
	return l.readAll(path, f)
}

func (l *Loader) loadS3(ctx context.Context, bucket, key string) ([]byte, error) {
	if l.s3 == nil {
		return nil, fmt.Errorf("audiosrc: s3://%s/%s: no S3 client configured", bucket, key)
	}
	out, err := l.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, fmt.Errorf("audiosrc: s3://%s/%s: %w", bucket, key, os.ErrNotExist)
		}
		return nil, fmt.Errorf("audiosrc: s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()
	return l.readAll("s3://"+bucket+"/"+key, out.Body)
}

func (l *Loader) readAll(name string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("audiosrc: read %s: %w", name, err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: %s is over %d bytes", ErrTooLarge, name, l.maxBytes)
	}
	return data, nil
}

// ParseS3URL splits s3://bucket/key. ok is false for anything else,
// including URLs without a key.
func ParseS3URL(src string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(src, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// isS3NotFound reports whether err indicates the S3 object does not exist.
func isS3NotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}
	return false
}
