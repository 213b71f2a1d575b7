package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/msto63/keplerkv/foundation/kql"
	"github.com/msto63/keplerkv/internal/history"
)

var (
	historyLimit  int
	historyStatus string
	historyStats  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently executed queries",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "number of queries to show (default from config)")
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "only show queries with this status (ok, error, parse_error)")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "show a summary instead of the queries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.HistoryEnabled() {
		return fmt.Errorf("query history is disabled in the configuration")
	}

	journal, err := history.Open(cmd.Context(), history.Config{
		Backend: cfg.History.Backend,
		Path:    cfg.History.Path,
	})
	if err != nil {
		return err
	}
	defer journal.Close()

	if historyStats {
		stats, err := journal.Stats(cmd.Context())
		if err != nil {
			return err
		}
		printfOut(cmd, "%s", renderHistoryStats(stats))
		return nil
	}

	limit := historyLimit
	if limit <= 0 {
		limit = cfg.History.Limit
	}
	records, err := journal.Query(cmd.Context(), history.Filter{Status: historyStatus, Limit: limit})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		printfOut(cmd, "No queries recorded.\n")
		return nil
	}
	printfOut(cmd, "%s\n", renderHistory(records))
	return nil
}

// renderHistory lays out records oldest first
func renderHistory(records []kql.Record) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TIME", "STATUS", "DURATION", "QUERY", "ERROR")

	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		t.Row(
			r.At.Local().Format(time.DateTime),
			r.Status,
			r.Duration.Round(time.Microsecond).String(),
			r.Query,
			r.Error,
		)
	}
	return t.String()
}

func renderHistoryStats(stats history.Stats) string {
	out := fmt.Sprintf("Queries:  %d\nSessions: %d\n", stats.Total, stats.Sessions)
	for _, status := range []string{kql.StatusOK, kql.StatusError, kql.StatusParseError} {
		out += fmt.Sprintf("  %-12s %d\n", status, stats.ByStatus[status])
	}
	if !stats.LastQuery.IsZero() {
		out += fmt.Sprintf("Last:     %s\n", stats.LastQuery.Local().Format(time.DateTime))
	}
	return out
}
