package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/darsplan/internal/deck"
	"github.com/abhisek/darsplan/internal/presenter"
	"github.com/spf13/cobra"
)

var presentCmd = &cobra.Command{
	Use:   "present <deck-id|file>",
	Short: "Present a stored deck or a slide file with a per-slide timer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := resolveDeck(cmd, args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("minutes") || d.TotalMinutes == 0 {
			if err := retimeFromFlags(cmd, d); err != nil {
				return err
			}
		}
		return presenter.Run(commandContext(cmd), d)
	},
}

// resolveDeck treats ref as a file when one exists at that path and as a
// deck ID otherwise.
func resolveDeck(cmd *cobra.Command, ref string) (*deck.Deck, error) {
	if _, err := os.Stat(ref); err == nil {
		return readDeckFile(ref)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", ref, err)
	}

	env, err := openEnv(cmd)
	if err != nil {
		return nil, err
	}
	defer env.Close()

	return deck.Load(commandContext(cmd), env.store.EventRepo(), ref)
}

func init() {
	presentCmd.Flags().IntP("minutes", "m", 0, "Retime the deck to this many minutes before presenting")
}
