package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"tamper.dev/pkg/tamper/internal/domain"
	m "tamper.dev/pkg/tamper/internal/model"
	"tamper.dev/pkg/tamper/internal/stats"
)

var scoreNullFlag string
var scorePriorFlag string
var scoreDirectionFlag string

// scoreCmd represents the score command.
var scoreCmd = newScoreCmd()

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <evaluations.tsv>",
		Short: "Aggregate corruption-persistence evaluations",
		Long: `Aggregate per-corruption persistence evaluations (1 = error fully
present, 0.5 = ambiguous, 0 = removed) into summary statistics: mean
error score, clean/partial/full rates, and a Beta-Binomial posterior mean
of the clean rate. With --null, the mean error score is additionally
tested against a permutation null distribution.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Score(context.Background(), domain.ScoreArgs{
				EvalFile:  m.Path(args[0]),
				NullFile:  m.Path(scoreNullFlag),
				Prior:     scorePriorFlag,
				Direction: stats.Direction(scoreDirectionFlag),
			})
		},
	}

	cmd.Flags().StringVar(&scoreNullFlag, "null", "", "evaluation TSV holding the permutation null distribution")
	cmd.Flags().StringVar(&scorePriorFlag, "prior", "uniform", "posterior prior: uniform, none or observed")
	cmd.Flags().StringVar(&scoreDirectionFlag, "direction", string(stats.DirectionUndefined), "test direction: UP, DOWN or UNDEFINED")

	return cmd
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
