package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/abhisek/darsplan/internal/deck"
	"github.com/abhisek/darsplan/internal/export"
	"github.com/abhisek/darsplan/internal/llm"
	"github.com/abhisek/darsplan/internal/presenter"
	"github.com/spf13/cobra"
)

// newProvider builds the LLM provider used by plan.
var newProvider = llm.NewProviderFromEnv

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a timed lesson deck",
	Example: `  darsplan plan --topic "الكسور" --grade 4 --subject رياضيات
  darsplan plan --topic "Photosynthesis" --language en --minutes 45 --out lesson.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := deck.Request{}
		req.Topic, _ = cmd.Flags().GetString("topic")
		req.Subject, _ = cmd.Flags().GetString("subject")
		req.Grade, _ = cmd.Flags().GetString("grade")
		req.Language, _ = cmd.Flags().GetString("language")
		req.SlideCount, _ = cmd.Flags().GetInt("slides")
		req.Objectives, _ = cmd.Flags().GetStringArray("objective")
		if err := req.Validate(); err != nil {
			return err
		}

		cfg, err := deck.ConfigFromEnv()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("minutes") {
			cfg.TotalMinutes, _ = cmd.Flags().GetInt("minutes")
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := commandContext(cmd)
		provider, llmCfg, err := newProvider(ctx, llm.Deps{
			Events: env.store.EventRepo(),
			KV:     env.kv,
			Logger: env.log,
		})
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		env.log.Debug("llm provider ready", "provider", llmCfg.Provider)

		svc := deck.NewService(provider, cfg,
			deck.WithEventRepo(env.store.EventRepo()),
			deck.WithCache(env.kv),
			deck.WithLogger(env.log),
		)

		d, err := svc.Generate(ctx, req)
		if err != nil {
			if deck.IsBudgetError(err) {
				return fmt.Errorf("%w (try a longer period with --minutes or fewer --slides)", err)
			}
			return err
		}

		if err := writeDeck(cmd, d); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved deck %s (%d slides, %d min)\n", d.ID, len(d.Slides), d.TotalMinutes)

		if present, _ := cmd.Flags().GetBool("present"); present {
			return presenter.Run(ctx, d)
		}
		return nil
	},
}

// writeDeck exports d to --out, or to stdout when --out is empty. The format
// comes from --format, then the --out extension, then markdown.
func writeDeck(cmd *cobra.Command, d *deck.Deck) error {
	out, _ := cmd.Flags().GetString("out")
	f, err := outputFormat(cmd, out)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		file, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer file.Close()
		w = file
	}

	if err := export.Write(w, d, f); err != nil {
		return fmt.Errorf("export deck: %w", err)
	}
	return nil
}

func outputFormat(cmd *cobra.Command, out string) (export.Format, error) {
	if raw, _ := cmd.Flags().GetString("format"); raw != "" {
		return export.ParseFormat(raw)
	}
	if out != "" {
		return export.FormatFromPath(out)
	}
	return export.Markdown, nil
}

func init() {
	planCmd.Flags().StringP("topic", "t", "", "Lesson topic (required)")
	planCmd.Flags().StringP("subject", "s", "", "School subject")
	planCmd.Flags().StringP("grade", "g", "", "Grade level")
	planCmd.Flags().StringP("language", "l", "ar", "Deck language: ar, en or fr")
	planCmd.Flags().IntP("slides", "n", 0, "Number of slides (0 lets the model choose)")
	planCmd.Flags().IntP("minutes", "m", 0, "Class period in minutes (overrides DARS_TOTAL_MINUTES)")
	planCmd.Flags().StringArray("objective", nil, "Learning objective (repeatable)")
	planCmd.Flags().StringP("format", "f", "", "Output format: markdown, json or yaml")
	planCmd.Flags().StringP("out", "o", "", "Write the deck to a file instead of stdout")
	planCmd.Flags().Bool("present", false, "Open the presenter after generating")
	_ = planCmd.MarkFlagRequired("topic")
}
