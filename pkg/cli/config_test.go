package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"1234", "****"},
		{"12345678", "********"},
		{"123456789", "1234*6789"},
		{"abcdefghij", "abcd**ghij"},
		{"sk-1234567890abcdef", "sk-1***********cdef"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := MaskAPIKey(tt.key)
			if got != tt.want {
				t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestContext_Masked(t *testing.T) {
	ctx := &Context{
		Name:        "prod",
		AppID:       "1234567890",
		AccessToken: "token-abcdefgh",
		REST:        &RESTSettings{APIKey: "sk-1234567890abcdef"},
		S3:          &S3Settings{AccessKeyID: "AKIA", SecretAccessKey: "secret-secret"},
	}

	m := ctx.Masked()
	if m.AccessToken == ctx.AccessToken || m.REST.APIKey == ctx.REST.APIKey ||
		m.S3.SecretAccessKey == ctx.S3.SecretAccessKey {
		t.Errorf("secrets not masked: %+v", m)
	}
	if m.AppID != ctx.AppID || m.S3.AccessKeyID != "AKIA" {
		t.Errorf("non-secret fields changed: %+v", m)
	}
	// The original must be untouched.
	if ctx.AccessToken != "token-abcdefgh" || ctx.REST.APIKey != "sk-1234567890abcdef" {
		t.Errorf("Masked modified the original: %+v", ctx)
	}
}

func TestLoadConfig_NewConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Contexts == nil {
		t.Error("Contexts should be initialized")
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("config file should be created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config mode = %o, want 600", perm)
	}
}

func TestConfig_ContextLifecycle(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if err := cfg.AddContext("prod", &Context{
		AppID:         "app-1",
		AccessToken:   "token-1",
		ResourceID:    "volc.seedasr.sauc.duration",
		Timeout:       30,
		EndWindowSize: 1200,
		REST:          &RESTSettings{APIKey: "sk-x", Model: "qwen3-asr-flash"},
	}); err != nil {
		t.Fatalf("AddContext error: %v", err)
	}
	if err := cfg.AddContext("dev", &Context{AppID: "app-2", AccessToken: "token-2"}); err != nil {
		t.Fatalf("AddContext error: %v", err)
	}
	if err := cfg.UseContext("prod"); err != nil {
		t.Fatalf("UseContext error: %v", err)
	}

	// Reload from disk.
	cfg, err = LoadConfig(configPath)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if got := cfg.ListContexts(); strings.Join(got, ",") != "dev,prod" {
		t.Errorf("ListContexts() = %v, want [dev prod]", got)
	}
	ctx, err := cfg.ResolveContext("")
	if err != nil {
		t.Fatalf("ResolveContext error: %v", err)
	}
	if ctx.Name != "prod" || ctx.AppID != "app-1" || ctx.ResourceID != "volc.seedasr.sauc.duration" ||
		ctx.Timeout != 30 || ctx.EndWindowSize != 1200 {
		t.Errorf("current context = %+v", ctx)
	}
	if ctx.REST == nil || ctx.REST.Model != "qwen3-asr-flash" {
		t.Errorf("REST = %+v", ctx.REST)
	}
	if ctx, err := cfg.ResolveContext("dev"); err != nil || ctx.AppID != "app-2" {
		t.Errorf("ResolveContext(dev) = %+v, %v", ctx, err)
	}

	if err := cfg.DeleteContext("prod"); err != nil {
		t.Fatalf("DeleteContext error: %v", err)
	}
	if cfg.CurrentContext != "" {
		t.Errorf("CurrentContext = %q, want empty after deleting it", cfg.CurrentContext)
	}
	if _, err := cfg.ResolveContext(""); err == nil {
		t.Error("ResolveContext should fail without a current context")
	}
}

func TestConfig_Errors(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if err := cfg.AddContext("", &Context{}); err == nil {
		t.Error("AddContext with empty name should fail")
	}
	if err := cfg.UseContext("missing"); err == nil {
		t.Error("UseContext(missing) should fail")
	}
	if err := cfg.DeleteContext("missing"); err == nil {
		t.Error("DeleteContext(missing) should fail")
	}
	if _, err := cfg.GetContext("missing"); err == nil {
		t.Error("GetContext(missing) should fail")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("contexts: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should fail on invalid YAML")
	}
}

func TestLoadConfig_NamesFromKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	data := "current_context: a\ncontexts:\n  a:\n    app_id: x\n    access_token: y\n"
	if err := os.WriteFile(configPath, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	ctx, err := cfg.ResolveContext("")
	if err != nil {
		t.Fatalf("ResolveContext error: %v", err)
	}
	if ctx.Name != "a" || ctx.AppID != "x" || ctx.AccessToken != "y" {
		t.Errorf("context = %+v", ctx)
	}
}
