package asr

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Endpoint != DefaultEndpoint || c.ResourceID != ResourceASRStream {
		t.Errorf("endpoint/resource = %q/%q", c.Endpoint, c.ResourceID)
	}
	if !c.EnableNonStream || !c.EnableITN || !c.EnablePunc || !c.ShowUtterances {
		t.Errorf("feature flags should default to true: %+v", c)
	}
	if c.EndWindowSize != 800 || c.ChunkSize != 3200 || c.Timeout != 60*time.Second {
		t.Errorf("window=%d chunk=%d timeout=%v", c.EndWindowSize, c.ChunkSize, c.Timeout)
	}
}

func TestClampEndWindowSize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 200},
		{100, 200},
		{200, 200},
		{800, 800},
		{10000, 10000},
		{20000, 10000},
	}
	for _, tt := range tests {
		if got := ClampEndWindowSize(tt.in); got != tt.want {
			t.Errorf("ClampEndWindowSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	c := Config{EndWindowSize: 50}.withDefaults()
	if c.Endpoint != DefaultEndpoint || c.ResourceID != ResourceASRStream || c.ModelName != DefaultModelName {
		t.Errorf("string defaults not applied: %+v", c)
	}
	if c.EndWindowSize != MinEndWindowSize {
		t.Errorf("EndWindowSize = %d, want %d", c.EndWindowSize, MinEndWindowSize)
	}
	if c.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize = %d", c.ChunkSize)
	}
	if c.Timeout != 0 {
		t.Errorf("Timeout = %v, zero must stay disabled", c.Timeout)
	}
}

func TestCheckCredentials(t *testing.T) {
	if err := (Config{AppID: "a", AccessToken: "t"}).checkCredentials(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Config{AccessToken: "t"}.checkCredentials()
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("err = %v, want missing credentials", err)
	}
	if e, _ := AsError(err); !e.IsAuthError() {
		t.Error("missing credentials should be an auth error")
	}
}

func TestRequestJSON(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantUser bool
	}{
		{"anonymous", DefaultConfig(), false},
		{"with user", func() Config { c := DefaultConfig(); c.UserID = "u-1"; return c }(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := requestJSON(tt.cfg.withDefaults())
			if err != nil {
				t.Fatal(err)
			}
			var got map[string]map[string]any
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatal(err)
			}
			if _, ok := got["user"]; ok != tt.wantUser {
				t.Errorf("user present = %v, want %v", ok, tt.wantUser)
			}
			if tt.wantUser && got["user"]["uid"] != "u-1" {
				t.Errorf("uid = %v", got["user"]["uid"])
			}
			wantAudio := map[string]any{"format": "pcm", "rate": 16000.0, "bits": 16.0, "channel": 1.0}
			for k, v := range wantAudio {
				if got["audio"][k] != v {
					t.Errorf("audio.%s = %v, want %v", k, got["audio"][k], v)
				}
			}
			wantReq := map[string]any{
				"model_name":       "bigmodel",
				"enable_nonstream": true,
				"enable_itn":       true,
				"enable_punc":      true,
				"show_utterances":  true,
				"result_type":      "full",
				"end_window_size":  800.0,
			}
			for k, v := range wantReq {
				if got["request"][k] != v {
					t.Errorf("request.%s = %v, want %v", k, got["request"][k], v)
				}
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindNoResult, Message: "connection closed without a transcript"}, "asr: no result: connection closed without a transcript"},
		{&Error{Kind: KindServerReported, Code: 45000001, Message: "bad"}, "asr: server error (code=45000001): bad"},
		{&Error{Kind: KindAbnormalClose, Code: 1011, Reason: "x"}, `asr: abnormal close (code=1011, reason="x")`},
		{&Error{Kind: KindConnection, Err: errors.New("refused")}, "asr: connection error: refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
