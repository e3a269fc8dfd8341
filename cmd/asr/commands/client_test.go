package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hackathonweekly/community-sub007/pkg/asr"
	"github.com/hackathonweekly/community-sub007/pkg/cli"
)

func TestASRConfig(t *testing.T) {
	def := asr.DefaultConfig()

	tests := []struct {
		name  string
		ctx   cli.Context
		check func(t *testing.T, cfg asr.Config)
	}{
		{
			name: "defaults",
			ctx:  cli.Context{AppID: "app", AccessToken: "tok"},
			check: func(t *testing.T, cfg asr.Config) {
				if cfg.AppID != "app" || cfg.AccessToken != "tok" {
					t.Errorf("credentials = %q/%q", cfg.AppID, cfg.AccessToken)
				}
				if cfg.Endpoint != def.Endpoint || cfg.ResourceID != def.ResourceID {
					t.Errorf("endpoint/resource = %q/%q", cfg.Endpoint, cfg.ResourceID)
				}
				if cfg.Timeout != def.Timeout || cfg.EndWindowSize != def.EndWindowSize {
					t.Errorf("timeout/window = %v/%d", cfg.Timeout, cfg.EndWindowSize)
				}
			},
		},
		{
			name: "overrides",
			ctx: cli.Context{
				ResourceID: asr.ResourceASRStreamV2,
				Endpoint:   "ws://localhost:9000/asr",
				Timeout:    5,
				UserID:     "u-1",
			},
			check: func(t *testing.T, cfg asr.Config) {
				if cfg.ResourceID != asr.ResourceASRStreamV2 || cfg.Endpoint != "ws://localhost:9000/asr" {
					t.Errorf("endpoint/resource = %q/%q", cfg.Endpoint, cfg.ResourceID)
				}
				if cfg.Timeout != 5*time.Second || cfg.UserID != "u-1" {
					t.Errorf("timeout/user = %v/%q", cfg.Timeout, cfg.UserID)
				}
			},
		},
		{
			name: "window clamped",
			ctx:  cli.Context{EndWindowSize: 50},
			check: func(t *testing.T, cfg asr.Config) {
				if cfg.EndWindowSize != asr.MinEndWindowSize {
					t.Errorf("EndWindowSize = %d, want %d", cfg.EndWindowSize, asr.MinEndWindowSize)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, asrConfig(&tt.ctx))
		})
	}
}

func TestLoadASRConfig_Options(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	data := "model_name: bigmodel_v2\nenable_itn: false\nend_window_size: 20000\nchunk_size: 6400\ntimeout: 0\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	base := asr.DefaultConfig()
	cfg, err := loadASRConfig(&cli.Context{AppID: "app"}, path)
	if err != nil {
		t.Fatalf("loadASRConfig error: %v", err)
	}
	if cfg.ModelName != "bigmodel_v2" || cfg.EnableITN {
		t.Errorf("model/itn = %q/%v", cfg.ModelName, cfg.EnableITN)
	}
	if cfg.EnablePunc != base.EnablePunc {
		t.Errorf("EnablePunc changed without being set")
	}
	if cfg.EndWindowSize != asr.MaxEndWindowSize {
		t.Errorf("EndWindowSize = %d, want %d", cfg.EndWindowSize, asr.MaxEndWindowSize)
	}
	if cfg.ChunkSize != 6400 || cfg.Timeout != 0 {
		t.Errorf("chunk/timeout = %d/%v", cfg.ChunkSize, cfg.Timeout)
	}

	if _, err := loadASRConfig(&cli.Context{}, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing options file")
	}
}

func TestS3Config_Env(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ACCESS_KEY_ID", "env-key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "env-secret")
	t.Setenv("AWS_ENDPOINT_URL_S3", "")

	got := s3Config(&cli.Context{S3: &cli.S3Settings{AccessKeyID: "ctx-key", PathStyle: true}})
	if got.Region != "eu-west-1" || got.AccessKeyID != "ctx-key" || got.SecretAccessKey != "env-secret" || !got.PathStyle {
		t.Errorf("s3Config = %+v", got)
	}

	got = s3Config(nil)
	if got.AccessKeyID != "env-key" {
		t.Errorf("s3Config(nil).AccessKeyID = %q", got.AccessKeyID)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"你好世界你好世界", 6, "你好世..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
