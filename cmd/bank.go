package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tamper.dev/pkg/tamper/internal/domain"
	m "tamper.dev/pkg/tamper/internal/model"
)

var bankValidateFixOutFlag string
var bankImportPathwayFlag string
var bankImportModelFlag string
var bankImportSeedFlag int64
var bankImportOutFlag string

// bankCmd groups corruption-bank maintenance commands.
var bankCmd = newBankCmd()

func newBankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Validate and import corruption banks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newBankValidateCmd())
	cmd.AddCommand(newBankImportCmd())

	return cmd
}

func newBankValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [pathways...]",
		Short: "Validate a generated bank against the true pathway texts",
		Long: `Validate a corruption bank the way the dataset generator does: replace
entries whose original statement drifted from the pathway text are
auto-corrected (and logged), structural problems and missing
(error type, difficulty) combinations fail hard.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.ValidateBank(context.Background(), domain.ValidateBankArgs{
				BankFile:     m.Path(viper.GetString(bankConfigKey)),
				PathwayFiles: parsePaths(args),
				OutFile:      m.Path(bankValidateFixOutFlag),
			})
		},
	}

	cmd.Flags().StringVar(&bankValidateFixOutFlag, "fix-output", "", "write the auto-corrected bank to this file")

	return cmd
}

func newBankImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <raw.json>",
		Short: "Import raw LLM corruption JSON into a bank TSV",
		Long: `Parse raw corruption-generation output (possibly code-fenced or mildly
damaged JSON), stamp provenance columns, validate it against the pathway
and write a bank TSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			outFile := bankImportOutFlag
			if outFile == "" {
				outFile = viper.GetString(bankConfigKey)
			}

			return workflow.ImportBank(context.Background(), domain.ImportBankArgs{
				RawJSON:     raw,
				PathwayFile: m.Path(bankImportPathwayFlag),
				ModelName:   bankImportModelFlag,
				Seed:        bankImportSeedFlag,
				OutFile:     m.Path(outFile),
			})
		},
	}

	cmd.Flags().StringVar(&bankImportPathwayFlag, "pathway", "", "pathway TSV the corruptions target")
	cmd.Flags().StringVar(&bankImportModelFlag, "model", "", "name of the model that generated the corruptions")
	cmd.Flags().Int64Var(&bankImportSeedFlag, seedFlagName, defaultSeed, "generation seed recorded as provenance")
	cmd.Flags().StringVar(&bankImportOutFlag, "output-bank", "", "bank TSV to write (defaults to the configured bank)")
	_ = cmd.MarkFlagRequired("pathway")

	return cmd
}

func init() {
	rootCmd.AddCommand(bankCmd)
}
