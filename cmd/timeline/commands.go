package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"SamuraiArchive/internal/service"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Rebuild battle and birth entries from all battles and samourais",
	Long: `Generate walks every battle and every samourai with a birth date and
creates or refreshes their timeline entries in a single transaction.
Running it twice without data changes creates nothing the second time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := generator.GenerateTimeline(cmd.Context())
		if err != nil {
			return fmt.Errorf("generate timeline: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), stats)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the built-in historical events (deduplicated by title and year)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := generator.SyncHistoricalEvents(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync historical events: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), stats)
	},
}

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print timeline entries sorted by date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := service.NewTimelineService(store).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list timeline: %w", err)
		}
		if listJSON {
			return printJSON(cmd.OutOrStdout(), events)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tTYPE\tTITLE")
		for _, e := range events {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Date, e.Type, e.Title)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print as JSON")
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
