package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hackathonweekly/community-sub007/pkg/asr"
	"github.com/hackathonweekly/community-sub007/pkg/audio/pcm"
	"github.com/hackathonweekly/community-sub007/pkg/audiosrc"
	"github.com/hackathonweekly/community-sub007/pkg/cli"
	"github.com/hackathonweekly/community-sub007/pkg/history"
)

var (
	transcribeAudio   string
	transcribeFormat  string
	transcribeNoCache bool
)

// transcribeOutput is what transcribe prints.
type transcribeOutput struct {
	Text      string  `yaml:"text" json:"text"`
	ConnectID string  `yaml:"connect_id" json:"connect_id"`
	Frames    int     `yaml:"frames" json:"frames"`
	Duration  float64 `yaml:"duration" json:"duration"`
	Cached    bool    `yaml:"cached" json:"cached"`
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe PCM or WAV audio over the streaming ASR websocket",
	Long: `Transcribe 16-bit mono audio and print the final transcript.

The audio is sent as one config frame, 100 ms chunks and an end-of-audio
frame over a single websocket. WAV input must be 16-bit mono PCM; 24 kHz
and 48 kHz files are resampled to 16 kHz first.

Finished transcripts are recorded in ~/.asr/history. Submitting the same
audio with the same resource ID again returns the recorded transcript unless
--no-cache is given.

Request options (model_name, enable_itn, enable_punc, enable_nonstream,
show_utterances, end_window_size, user_id, chunk_size, timeout) can be
overridden with -f options.yaml.

Example:
  asr transcribe --audio call.wav
  asr transcribe --audio s3://recordings/call.pcm --format pcm --json
  asr transcribe --audio call.wav -q .text`,
	RunE: runTranscribe,
}

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeAudio, "audio", "a", "", "audio path or s3://bucket/key (required)")
	transcribeCmd.Flags().StringVar(&transcribeFormat, "format", "", "audio format: pcm or wav (default: detect)")
	transcribeCmd.Flags().BoolVar(&transcribeNoCache, "no-cache", false, "ignore recorded transcripts")
	_ = transcribeCmd.MarkFlagRequired("audio")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := getLogger()

	c, err := getContext()
	if err != nil {
		return err
	}
	cfg, err := loadASRConfig(c, inputFile)
	if err != nil {
		return err
	}
	format, err := audiosrc.ParseFormat(transcribeFormat)
	if err != nil {
		return err
	}

	loader, err := newLoader(c, transcribeAudio)
	if err != nil {
		return err
	}
	raw, err := loader.Load(ctx, transcribeAudio)
	if err != nil {
		return err
	}
	audio, err := audiosrc.PCM16K(raw, format)
	if err != nil {
		return err
	}

	printVerbose("Using context: %s", c.Name)
	printVerbose("Endpoint: %s", cfg.Endpoint)
	printVerbose("Resource: %s", cfg.ResourceID)
	printVerbose("Audio: %s (%s)", cli.FormatBytes(int64(len(audio))),
		cli.FormatDuration(pcm.L16Mono16K.Duration(int64(len(audio)))))

	store, err := openHistory(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	digest := history.Digest(audio)
	if !transcribeNoCache {
		if rec, ok := cachedTranscript(ctx, store, digest, cfg.ResourceID); ok {
			printVerbose("Using recorded transcript %s", shortDigest(digest))
			return outputResult(transcribeOutput{
				Text:      rec.Text,
				ConnectID: rec.ConnectID,
				Duration:  pcm.L16Mono16K.Duration(int64(rec.AudioBytes)).Seconds(),
				Cached:    true,
			})
		}
	}

	client := asr.NewClient(cfg, asr.WithLogger(logger))
	start := time.Now()
	res, err := client.Transcribe(ctx, audio)
	if err != nil {
		return describeASRError(err)
	}
	printVerbose("Recognized in %s", cli.FormatDuration(time.Since(start)))

	if err := store.Put(ctx, history.Record{
		Digest:     digest,
		ResourceID: cfg.ResourceID,
		Text:       res.Text,
		ConnectID:  res.ConnectID,
		AudioBytes: len(audio),
		CreatedAt:  time.Now(),
	}); err != nil {
		logger.Warn("record transcript", zap.Error(err))
	}

	return outputResult(transcribeOutput{
		Text:      res.Text,
		ConnectID: res.ConnectID,
		Frames:    res.Frames,
		Duration:  res.Duration.Seconds(),
	})
}

// describeASRError adds a hint for errors the user can act on.
func describeASRError(err error) error {
	e, ok := asr.AsError(err)
	if !ok {
		return err
	}
	switch {
	case e.IsAuthError():
		return fmt.Errorf("%w (check app_id and access_token of the context)", err)
	case e.Kind == asr.KindTimeout:
		return fmt.Errorf("%w (raise timeout in the context or options file)", err)
	}
	return err
}
