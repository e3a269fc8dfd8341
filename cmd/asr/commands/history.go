package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hackathonweekly/community-sub007/pkg/cli"
	"github.com/hackathonweekly/community-sub007/pkg/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded transcripts",
	Long: `Inspect transcripts recorded by 'asr transcribe'.

Records are keyed by the SHA-256 of the submitted PCM and stored in
~/.asr/history.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded transcripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(getLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		var records []history.Record
		for rec, err := range store.List(cmd.Context()) {
			if err != nil {
				return err
			}
			records = append(records, rec)
		}

		if outputJSON || queryExpr != "" {
			return outputResult(records)
		}
		if len(records) == 0 {
			cli.PrintInfo("No recorded transcripts.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "DIGEST\tRESOURCE_ID\tAUDIO\tCREATED\tTEXT")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				shortDigest(rec.Digest), rec.ResourceID, cli.FormatBytes(int64(rec.AudioBytes)),
				rec.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(rec.Text, 40))
		}
		return w.Flush()
	},
}

var historyGetCmd = &cobra.Command{
	Use:   "get <digest>",
	Short: "Show a recorded transcript by digest or unique digest prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(getLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := findRecord(cmd, store, args[0])
		if err != nil {
			return err
		}
		return outputResult(rec)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded transcripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(getLogger())
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		cli.PrintSuccess("History cleared")
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyGetCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// findRecord resolves a full digest or a prefix matching exactly one record.
func findRecord(cmd *cobra.Command, store history.Store, prefix string) (*history.Record, error) {
	ctx := cmd.Context()
	if rec, err := store.Get(ctx, prefix); err == nil {
		return rec, nil
	}

	var matches []history.Record
	for rec, err := range store.List(ctx) {
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(rec.Digest, prefix) {
			matches = append(matches, rec)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no transcript matches %q", prefix)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d transcripts, use a longer prefix", prefix, len(matches))
	}
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
