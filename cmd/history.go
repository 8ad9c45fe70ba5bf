package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/darsplan/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List generated decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		events, err := env.store.EventRepo().QueryDeckEvents(commandContext(cmd), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query decks: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No decks generated yet.")
			return nil
		}

		fmt.Fprintf(w, "%-36s  %-16s  %-6s  %-4s  %6s  %4s  %s\n",
			"ID", "Created", "Grade", "Lang", "Slides", "Min", "Title")
		fmt.Fprintln(w, strings.Repeat("─", 100))
		for _, e := range events {
			title := e.Title
			if title == "" {
				title = e.Topic
			}
			fmt.Fprintf(w, "%-36s  %-16s  %-6s  %-4s  %6d  %4d  %s\n",
				e.DeckID,
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(e.Grade, 6),
				e.Language,
				e.SlideCount,
				e.TotalMinutes,
				title,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of decks to show")
}
