package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config is the CLI configuration file.
type Config struct {
	// CurrentContext is the name of the currently active context
	CurrentContext string `yaml:"current_context,omitempty"`

	// Contexts is a map of context name to context configuration
	Contexts map[string]*Context `yaml:"contexts,omitempty"`

	configPath string
}

// Context is one named set of credentials and defaults.
type Context struct {
	Name string `yaml:"name"`

	// AppID and AccessToken authenticate against the streaming ASR service.
	AppID       string `yaml:"app_id,omitempty"`
	AccessToken string `yaml:"access_token,omitempty"`

	// ResourceID overrides the default streaming resource.
	ResourceID string `yaml:"resource_id,omitempty"`

	// Endpoint overrides the websocket endpoint.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Timeout is the per-call timeout in seconds. Zero uses the default.
	Timeout int `yaml:"timeout,omitempty"`

	// EndWindowSize is the end-of-utterance window in milliseconds.
	EndWindowSize int `yaml:"end_window_size,omitempty"`

	// UserID is reported to the service as user.uid.
	UserID string `yaml:"user_id,omitempty"`

	// REST holds the OpenAI-compatible endpoint used by transcribe-url.
	REST *RESTSettings `yaml:"rest,omitempty"`

	// S3 holds object storage settings for s3:// audio sources.
	S3 *S3Settings `yaml:"s3,omitempty"`
}

// RESTSettings configures the OpenAI-compatible REST ASR endpoint.
type RESTSettings struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// S3Settings configures an S3-compatible object store.
type S3Settings struct {
	Region          string `yaml:"region,omitempty"`
	Endpoint        string `yaml:"endpoint,omitempty"`
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
	PathStyle       bool   `yaml:"path_style,omitempty"`
}

// LoadConfig loads the configuration file, creating an empty one if it does
// not exist. An empty path means ~/.asr/config.yaml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := NewPaths()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = p.ConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		Contexts:   make(map[string]*Context),
		configPath: path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	for name, ctx := range cfg.Contexts {
		if ctx == nil {
			return nil, fmt.Errorf("failed to parse config: context %q is empty", name)
		}
		ctx.Name = name
	}
	cfg.configPath = path

	return cfg, nil
}

// Save writes the configuration to disk. The file holds credentials, so it is
// created with mode 0600.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// AddContext adds or replaces a context
func (c *Config) AddContext(name string, ctx *Context) error {
	if name == "" {
		return fmt.Errorf("context name is required")
	}
	ctx.Name = name
	c.Contexts[name] = ctx
	return c.Save()
}

// DeleteContext removes a context
func (c *Config) DeleteContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return c.Save()
}

// UseContext sets the current context
func (c *Config) UseContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	c.CurrentContext = name
	return c.Save()
}

// GetContext returns a specific context
func (c *Config) GetContext(name string) (*Context, error) {
	ctx, ok := c.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("context %q not found", name)
	}
	return ctx, nil
}

// ResolveContext returns the named context, or the current one if name is
// empty.
func (c *Config) ResolveContext(name string) (*Context, error) {
	if name == "" {
		if c.CurrentContext == "" {
			return nil, fmt.Errorf("no current context set")
		}
		name = c.CurrentContext
	}
	return c.GetContext(name)
}

// ListContexts returns all context names, sorted
func (c *Config) ListContexts() []string {
	names := make([]string, 0, len(c.Contexts))
	for name := range c.Contexts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Masked returns a copy of ctx with secrets masked for display.
func (ctx *Context) Masked() *Context {
	cp := *ctx
	cp.AccessToken = MaskAPIKey(ctx.AccessToken)
	if ctx.REST != nil {
		rest := *ctx.REST
		rest.APIKey = MaskAPIKey(rest.APIKey)
		cp.REST = &rest
	}
	if ctx.S3 != nil {
		s3 := *ctx.S3
		s3.SecretAccessKey = MaskAPIKey(s3.SecretAccessKey)
		cp.S3 = &s3
	}
	return &cp
}

// MaskAPIKey masks the API key for display
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
