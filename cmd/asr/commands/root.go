package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hackathonweekly/community-sub007/pkg/cli"
)

var (
	// Global flags
	cfgFile     string
	contextName string
	outputFile  string
	inputFile   string
	outputJSON  bool
	queryExpr   string
	verbose     bool

	// Global configuration
	globalConfig *cli.Config
	globalLogger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asr",
	Short: "Streaming speech recognition CLI",
	Long: `asr - A command line client for the Volcengine SAUC streaming ASR service
(火山引擎大模型流式语音识别).

Audio is raw 16 kHz 16-bit mono PCM or a 16/24/48 kHz mono WAV file, read from a
local path or from s3://bucket/key. Each call opens one websocket and prints
one final transcript.

Configuration is stored in ~/.asr/ and supports multiple contexts,
similar to kubectl's context management.

Examples:
  # Set up a new context
  asr config add-context prod --app-id YOUR_APP_ID --access-token YOUR_TOKEN

  # Transcribe a file
  asr -c prod transcribe --audio call.wav

  # Pipe only the text to another command
  asr transcribe --audio s3://recordings/call.pcm -q .text --json

  # Transcribe an audio URL through an OpenAI-compatible endpoint
  asr transcribe-url https://cdn.example.com/call.mp3
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if globalLogger != nil {
			_ = globalLogger.Sync()
		}
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.asr/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "request options file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().StringVarP(&queryExpr, "query", "q", "", "jq expression applied to the output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(transcribeURLCmd)
	rootCmd.AddCommand(historyCmd)
}

func initConfig() {
	var err error
	globalConfig, err = cli.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
	globalLogger, err = cli.NewLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getLogger returns the CLI logger
func getLogger() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// getContext returns the context configuration to use
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		if contextName == "" {
			return nil, fmt.Errorf("no context specified. Use -c flag or set a default context with 'asr config use-context'")
		}
		return nil, err
	}
	return ctx, nil
}

// outputResult outputs the result using cli package
func outputResult(result any) error {
	format := cli.FormatYAML
	if outputJSON {
		format = cli.FormatJSON
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		Query:  queryExpr,
		File:   outputFile,
	})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
