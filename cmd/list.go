package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tamper.dev/pkg/tamper/internal/domain"
	m "tamper.dev/pkg/tamper/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [pathways...]",
		Short: "List pathways with step counts and bank coverage",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Coverage(context.Background(), domain.CoverageArgs{
				PathwayFiles: parsePaths(args),
				BankFile:     m.Path(viper.GetString(bankConfigKey)),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
