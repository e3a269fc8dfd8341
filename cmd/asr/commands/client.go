package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hackathonweekly/community-sub007/pkg/asr"
	"github.com/hackathonweekly/community-sub007/pkg/audiosrc"
	"github.com/hackathonweekly/community-sub007/pkg/cli"
	"github.com/hackathonweekly/community-sub007/pkg/history"
)

// requestOptions is the -f options file for transcribe. Unset fields keep
// the context's values.
type requestOptions struct {
	ModelName       *string `yaml:"model_name" json:"model_name"`
	EnableNonStream *bool   `yaml:"enable_nonstream" json:"enable_nonstream"`
	EnableITN       *bool   `yaml:"enable_itn" json:"enable_itn"`
	EnablePunc      *bool   `yaml:"enable_punc" json:"enable_punc"`
	ShowUtterances  *bool   `yaml:"show_utterances" json:"show_utterances"`
	EndWindowSize   *int    `yaml:"end_window_size" json:"end_window_size"`
	UserID          *string `yaml:"user_id" json:"user_id"`
	ChunkSize       *int    `yaml:"chunk_size" json:"chunk_size"`

	// Timeout is in seconds; 0 disables it.
	Timeout *int `yaml:"timeout" json:"timeout"`
}

func (o *requestOptions) apply(cfg *asr.Config) {
	if o.ModelName != nil {
		cfg.ModelName = *o.ModelName
	}
	if o.EnableNonStream != nil {
		cfg.EnableNonStream = *o.EnableNonStream
	}
	if o.EnableITN != nil {
		cfg.EnableITN = *o.EnableITN
	}
	if o.EnablePunc != nil {
		cfg.EnablePunc = *o.EnablePunc
	}
	if o.ShowUtterances != nil {
		cfg.ShowUtterances = *o.ShowUtterances
	}
	if o.EndWindowSize != nil {
		cfg.EndWindowSize = asr.ClampEndWindowSize(*o.EndWindowSize)
	}
	if o.UserID != nil {
		cfg.UserID = *o.UserID
	}
	if o.ChunkSize != nil {
		cfg.ChunkSize = *o.ChunkSize
	}
	if o.Timeout != nil {
		cfg.Timeout = time.Duration(*o.Timeout) * time.Second
	}
}

// asrConfig maps a context onto the client configuration.
func asrConfig(c *cli.Context) asr.Config {
	cfg := asr.DefaultConfig()
	cfg.AppID = c.AppID
	cfg.AccessToken = c.AccessToken
	cfg.UserID = c.UserID
	if c.ResourceID != "" {
		cfg.ResourceID = c.ResourceID
	}
	if c.Endpoint != "" {
		cfg.Endpoint = c.Endpoint
	}
	if c.Timeout > 0 {
		cfg.Timeout = time.Duration(c.Timeout) * time.Second
	}
	if c.EndWindowSize != 0 {
		cfg.EndWindowSize = asr.ClampEndWindowSize(c.EndWindowSize)
	}
	return cfg
}

// loadASRConfig resolves the context and applies the -f options file.
func loadASRConfig(c *cli.Context, optionsFile string) (asr.Config, error) {
	cfg := asrConfig(c)
	if optionsFile == "" {
		return cfg, nil
	}
	var opts requestOptions
	if err := cli.LoadRequest(optionsFile, &opts); err != nil {
		return asr.Config{}, err
	}
	opts.apply(&cfg)
	return cfg, nil
}

// s3Config returns the context's S3 settings with AWS_* environment
// variables filling the gaps.
func s3Config(c *cli.Context) audiosrc.S3Config {
	var cfg audiosrc.S3Config
	if c != nil && c.S3 != nil {
		cfg = audiosrc.S3Config{
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			PathStyle:       c.S3.PathStyle,
		}
	}
	fill := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&cfg.Region, "AWS_REGION")
	fill(&cfg.Endpoint, "AWS_ENDPOINT_URL_S3")
	fill(&cfg.AccessKeyID, "AWS_ACCESS_KEY_ID")
	fill(&cfg.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	return cfg
}

// newLoader builds an audio loader; S3 is wired only for s3:// sources.
func newLoader(c *cli.Context, src string) (*audiosrc.Loader, error) {
	if _, _, ok := audiosrc.ParseS3URL(src); !ok {
		return audiosrc.NewLoader(), nil
	}
	client, err := audiosrc.NewS3Client(s3Config(c))
	if err != nil {
		return nil, err
	}
	return audiosrc.NewLoader(audiosrc.WithS3Client(client)), nil
}

// openHistory opens the on-disk history store under ~/.asr/history.
func openHistory(logger *zap.Logger) (history.Store, error) {
	paths, err := cli.NewPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	if err := paths.EnsureHistoryDir(); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	store, err := history.NewBadger(history.BadgerOptions{
		Dir:    paths.HistoryDir(),
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// cachedTranscript returns a stored transcript for the same audio and
// resource, if any.
func cachedTranscript(ctx context.Context, store history.Store, digest, resourceID string) (*history.Record, bool) {
	rec, err := store.Get(ctx, digest)
	if err != nil || rec.ResourceID != resourceID {
		return nil, false
	}
	return rec, true
}
