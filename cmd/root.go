package cmd

import (
	"context"

	"github.com/abhisek/darsplan/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "darsplan",
	Short: "Plan and time classroom lesson decks",
	Long: "Darsplan generates lesson slide decks with an LLM, splits the class period\n" +
		"across the slides and presents them with a per-slide timer.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DARS_DB env var)")
	rootCmd.PersistentFlags().String("log", "", "Log mode: dev, prod or off (overrides DARS_LOG env var)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(allocateCmd)
	rootCmd.AddCommand(presentCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DARS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
