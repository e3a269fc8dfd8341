package restasr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"
	"go.uber.org/zap/zaptest"
)

const completion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1760000000,
  "model": "qwen3-asr-flash",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": " 今天天气不错 "}
  }],
  "usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func TestTranscribe(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &body); err != nil {
			t.Errorf("request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completion)
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "qwen3-asr-flash"},
		zaptest.NewLogger(t), option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := c.Transcribe(context.Background(), "https://cdn.example.com/a.mp3?sig=1")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Transcript != "今天天气不错" {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	if !strings.Contains(res.Raw, "chatcmpl-1") {
		t.Errorf("Raw = %q", res.Raw)
	}

	if body["model"] != "qwen3-asr-flash" {
		t.Errorf("model = %v", body["model"])
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("messages = %v", body["messages"])
	}
	msg := msgs[0].(map[string]any)
	parts, _ := msg["content"].([]any)
	if msg["role"] != "user" || len(parts) != 1 {
		t.Fatalf("message = %v", msg)
	}
	part := parts[0].(map[string]any)
	audio, _ := part["input_audio"].(map[string]any)
	if part["type"] != "input_audio" || audio["data"] != "https://cdn.example.com/a.mp3?sig=1" || audio["format"] != "mp3" {
		t.Errorf("content part = %v", part)
	}
}

func TestTranscribeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	c, err := New(Config{APIKey: "sk-bad", BaseURL: srv.URL}, nil, option.WithMaxRetries(0))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Transcribe(context.Background(), "  "); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("empty url err = %v", err)
	}
	if _, err := c.Transcribe(context.Background(), "https://x/a.wav"); err == nil {
		t.Error("expected error for 401")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestAudioFormat(t *testing.T) {
	tests := map[string]string{
		"https://x/a.mp3":          "mp3",
		"https://x/a.MP3?x=1":      "mp3",
		"https://x/a.wav":          "wav",
		"https://x/a":              "wav",
		"https://x/a.mp3.wav#frag": "wav",
	}
	for in, want := range tests {
		if got := audioFormat(in); got != want {
			t.Errorf("audioFormat(%q) = %q, want %q", in, got, want)
		}
	}
}
