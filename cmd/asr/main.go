// Package main provides the asr CLI tool.
//
// Usage:
//
//	asr [flags] <command> [args]
//
// Commands:
//
//	transcribe     - Streaming transcription of PCM/WAV audio (local or s3://)
//	transcribe-url - One-shot transcription of an audio URL via a REST endpoint
//	history        - Previously recorded transcriptions
//	config         - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.asr/
//	Use 'asr config' commands to manage contexts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hackathonweekly/community-sub007/cmd/asr/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
