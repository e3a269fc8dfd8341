package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hackathonweekly/community-sub007/pkg/asr"
	"github.com/hackathonweekly/community-sub007/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and contexts.

Contexts allow you to manage multiple credential sets,
similar to kubectl's context management.

Configuration is stored in ~/.asr/config.yaml`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context with the specified name.

The streaming ASR service requires:
  - App ID: Your application ID (X-Api-App-Key)
  - Access Token: Your access token (X-Api-Access-Key)

Optional settings:
  - Resource ID (default volc.bigasr.sauc.duration)
  - Endpoint, timeout (seconds), end window size (ms), user id
  - REST endpoint for transcribe-url (--rest-*)
  - S3 storage for s3:// audio (--s3-*)

Example:
  asr config add-context prod --app-id YOUR_APP_ID --access-token YOUR_TOKEN

  asr config add-context seed \
    --app-id YOUR_APP_ID --access-token YOUR_TOKEN \
    --resource-id volc.seedasr.sauc.duration --timeout 30 \
    --s3-endpoint http://127.0.0.1:9000 --s3-path-style \
    --s3-access-key-id minio --s3-secret-access-key minio123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		f := cmd.Flags()

		appID, _ := f.GetString("app-id")
		if appID == "" {
			return fmt.Errorf("--app-id is required")
		}
		token, _ := f.GetString("access-token")
		if token == "" {
			return fmt.Errorf("--access-token is required")
		}

		ctx := &cli.Context{
			AppID:       appID,
			AccessToken: token,
		}
		ctx.ResourceID, _ = f.GetString("resource-id")
		ctx.Endpoint, _ = f.GetString("endpoint")
		ctx.Timeout, _ = f.GetInt("timeout")
		ctx.UserID, _ = f.GetString("user-id")

		window, _ := f.GetInt("end-window-size")
		if window != 0 {
			clamped := asr.ClampEndWindowSize(window)
			if clamped != window {
				cli.PrintWarning("end window size %d clamped to %d", window, clamped)
			}
			ctx.EndWindowSize = clamped
		}

		rest := &cli.RESTSettings{}
		rest.APIKey, _ = f.GetString("rest-api-key")
		rest.BaseURL, _ = f.GetString("rest-base-url")
		rest.Model, _ = f.GetString("rest-model")
		if *rest != (cli.RESTSettings{}) {
			ctx.REST = rest
		}

		s3 := &cli.S3Settings{}
		s3.Region, _ = f.GetString("s3-region")
		s3.Endpoint, _ = f.GetString("s3-endpoint")
		s3.AccessKeyID, _ = f.GetString("s3-access-key-id")
		s3.SecretAccessKey, _ = f.GetString("s3-secret-access-key")
		s3.PathStyle, _ = f.GetBool("s3-path-style")
		if *s3 != (cli.S3Settings{}) {
			ctx.S3 = s3
		}

		cfg := getConfig()
		if err := cfg.AddContext(name, ctx); err != nil {
			return err
		}
		if cfg.CurrentContext == "" {
			if err := cfg.UseContext(name); err != nil {
				return err
			}
		}

		cli.PrintSuccess("Context %q added successfully", name)
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if err := getConfig().DeleteContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q deleted", name)
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if err := getConfig().UseContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Switched to context %q", name)
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Display the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if cfg.CurrentContext == "" {
			fmt.Println("No current context set")
			return nil
		}

		fmt.Println(cfg.CurrentContext)
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:     "list-contexts",
	Aliases: []string{"get-contexts"},
	Short:   "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if len(cfg.Contexts) == 0 {
			fmt.Println("No contexts configured")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tAPP_ID\tRESOURCE_ID\tREST\tS3")

		for _, name := range cfg.ListContexts() {
			ctx := cfg.Contexts[name]
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			resource := ctx.ResourceID
			if resource == "" {
				resource = asr.ResourceASRStream
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				current, name, ctx.AppID, resource, yesNo(ctx.REST != nil), yesNo(ctx.S3 != nil))
		}

		return w.Flush()
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display the configuration with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		view := struct {
			Path           string                  `yaml:"path" json:"path"`
			CurrentContext string                  `yaml:"current_context" json:"current_context"`
			Contexts       map[string]*cli.Context `yaml:"contexts" json:"contexts"`
		}{
			Path:           cfg.Path(),
			CurrentContext: cfg.CurrentContext,
			Contexts:       make(map[string]*cli.Context, len(cfg.Contexts)),
		}
		for name, ctx := range cfg.Contexts {
			view.Contexts[name] = ctx.Masked()
		}
		return outputResult(view)
	},
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}

func init() {
	f := configAddContextCmd.Flags()
	f.String("app-id", "", "application ID (required)")
	f.String("access-token", "", "access token (required)")
	f.String("resource-id", "", "resource ID (default "+asr.ResourceASRStream+")")
	f.String("endpoint", "", "websocket endpoint (default "+asr.DefaultEndpoint+")")
	f.Int("timeout", 0, "per-call timeout in seconds (default 60)")
	f.Int("end-window-size", 0, "end-of-utterance window in ms, 200-10000 (default 800)")
	f.String("user-id", "", "user id reported to the service")
	f.String("rest-api-key", "", "API key for transcribe-url")
	f.String("rest-base-url", "", "OpenAI-compatible base URL for transcribe-url")
	f.String("rest-model", "", "model for transcribe-url")
	f.String("s3-region", "", "S3 region")
	f.String("s3-endpoint", "", "S3-compatible endpoint URL")
	f.String("s3-access-key-id", "", "S3 access key id")
	f.String("s3-secret-access-key", "", "S3 secret access key")
	f.Bool("s3-path-style", false, "use path-style S3 addressing")

	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}
