package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hackathonweekly/community-sub007/pkg/restasr"
)

var (
	urlModel   string
	urlBaseURL string
	urlAPIKey  string
	urlRaw     bool
)

var transcribeURLCmd = &cobra.Command{
	Use:   "transcribe-url <audio-url>",
	Short: "Transcribe an audio URL through an OpenAI-compatible endpoint",
	Long: `Transcribe a publicly reachable audio URL with a chat-completions model
that accepts audio input (default: qwen3-asr-flash on DashScope).

Settings come from the rest section of the context and can be overridden
with flags.

Example:
  asr transcribe-url https://cdn.example.com/call.mp3
  asr transcribe-url https://cdn.example.com/call.wav --model qwen3-asr-flash --raw`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribeURL,
}

func init() {
	transcribeURLCmd.Flags().StringVar(&urlModel, "model", "", "model name")
	transcribeURLCmd.Flags().StringVar(&urlBaseURL, "base-url", "", "OpenAI-compatible base URL")
	transcribeURLCmd.Flags().StringVar(&urlAPIKey, "api-key", "", "API key (default: from context)")
	transcribeURLCmd.Flags().BoolVar(&urlRaw, "raw", false, "include the raw response")
}

func runTranscribeURL(cmd *cobra.Command, args []string) error {
	var cfg restasr.Config
	if c, err := getContext(); err == nil && c.REST != nil {
		cfg = restasr.Config{APIKey: c.REST.APIKey, BaseURL: c.REST.BaseURL, Model: c.REST.Model}
	} else if err != nil && urlAPIKey == "" {
		return err
	}
	if urlAPIKey != "" {
		cfg.APIKey = urlAPIKey
	}
	if urlBaseURL != "" {
		cfg.BaseURL = urlBaseURL
	}
	if urlModel != "" {
		cfg.Model = urlModel
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("no API key: set rest.api_key in the context or pass --api-key")
	}

	client, err := restasr.New(cfg, getLogger())
	if err != nil {
		return err
	}
	printVerbose("Model: %s", cfg.Model)

	res, err := client.Transcribe(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !urlRaw {
		res.Raw = ""
	}
	return outputResult(res)
}
