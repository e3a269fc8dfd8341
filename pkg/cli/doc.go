// Package cli provides the shared pieces of the asr command-line tool.
//
// This package includes:
//   - Configuration management (kubectl-style contexts)
//   - Output formatting (YAML, JSON, raw) with optional jq filtering
//   - Option file loading (YAML/JSON)
//   - Styled status messages and the CLI logger
//
// Configuration is stored in ~/.asr/config.yaml:
//
//	current_context: prod
//	contexts:
//	  prod:
//	    name: prod
//	    app_id: "1234567890"
//	    access_token: xxxxxxxx
//	    resource_id: volc.bigasr.sauc.duration
//	    timeout: 60
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("")
//	ctx, err := cfg.ResolveContext(name)
//
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    Query:  ".text",
//	})
package cli
