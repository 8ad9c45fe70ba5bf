package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/darsplan/internal/deck"
	"github.com/abhisek/darsplan/internal/export"
	"github.com/abhisek/darsplan/internal/ui/components"
	"github.com/spf13/cobra"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate <file>",
	Short: "Split a class period across the slides in a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readDeckFile(args[0])
		if err != nil {
			return err
		}
		if err := retimeFromFlags(cmd, d); err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		if format == "" && out == "" {
			if d.Title != "" {
				fmt.Fprintln(cmd.OutOrStdout(), d.Title)
			}
			fmt.Fprintln(cmd.OutOrStdout(), components.TimingTable(d.Slides))
			return nil
		}
		return writeDeck(cmd, d)
	},
}

// readDeckFile loads the slides in path into an untimed deck.
func readDeckFile(path string) (*deck.Deck, error) {
	f, err := export.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open slide file: %w", err)
	}
	defer file.Close()

	title, slides, err := export.ReadSlides(file, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &deck.Deck{Title: title, Slides: slides}, nil
}

// retimeFromFlags runs the allocator with --minutes, falling back to
// DARS_TOTAL_MINUTES and then the default period.
func retimeFromFlags(cmd *cobra.Command, d *deck.Deck) error {
	cfg, err := deck.ConfigFromEnv()
	if err != nil {
		return err
	}
	minutes := cfg.TotalMinutes
	if cmd.Flags().Changed("minutes") {
		minutes, _ = cmd.Flags().GetInt("minutes")
	}
	if err := deck.Retime(d, minutes); err != nil {
		return fmt.Errorf("allocate %d minutes: %w", minutes, err)
	}
	return nil
}

func init() {
	allocateCmd.Flags().IntP("minutes", "m", 0, "Class period in minutes (overrides DARS_TOTAL_MINUTES)")
	allocateCmd.Flags().StringP("format", "f", "", "Export format instead of the timing table: markdown, json or yaml")
	allocateCmd.Flags().StringP("out", "o", "", "Write the timed deck to a file")
}
