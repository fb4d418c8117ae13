package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tamper.dev/pkg/tamper/internal/domain"
	m "tamper.dev/pkg/tamper/internal/model"
)

const corruptLongDescription = `Corrupt one or more pathway files using a precomputed corruption bank.

Each pathway gets a seeded corruption plan: the requested fraction of its
steps is converted into a per-category error budget, distinct steps are
sampled without replacement, and the matching bank entries are applied
(replace / insert_before / insert_after). Outputs land in a directory
named after the error types, difficulty and fraction; a metadata TSV
records every applied corruption.

A YAML manifest can batch several runs against the same bank:

  runs:
    - errors: [wrong_entity, wrong_direction]
      difficulty: 1
      fraction: 0.3
      seed: 42`

var corruptErrorsFlag []string
var corruptDifficultyFlag int
var corruptFractionFlag float64
var corruptSeedFlag int64
var corruptParallelFlag int
var corruptManifestFlag string

// corruptCmd represents the corrupt command.
var corruptCmd = newCorruptCmd()

func newCorruptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corrupt [pathways...]",
		Short: "Inject corruptions into pathway files",
		Long:  corruptLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			paths := parsePaths(args)
			bankFile := m.Path(viper.GetString(bankConfigKey))
			outputDir := m.Path(viper.GetString(outputFlagName))
			threads := viper.GetInt(parallelConfigKey)

			runs, err := resolveRuns(corruptManifestFlag)
			if err != nil {
				return err
			}

			for _, run := range runs {
				err := workflow.Corrupt(context.Background(), domain.CorruptArgs{
					PathwayFiles: paths,
					BankFile:     bankFile,
					Run:          run,
					OutputDir:    outputDir,
					Threads:      threads,
				})
				if err != nil {
					return err
				}
			}

			return nil
		},
	}

	configureCorruptFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(corruptCmd)
}

func configureCorruptFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&corruptErrorsFlag, errorsFlagName, "e", viper.GetStringSlice(errorsFlagName), "error types to introduce")
	bindFlagToConfig(cmd.Flags().Lookup(errorsFlagName), errorsFlagName)

	cmd.Flags().IntVarP(&corruptDifficultyFlag, difficultyFlagName, "d", viper.GetInt(difficultyFlagName), "corruption difficulty (1-2)")
	bindFlagToConfig(cmd.Flags().Lookup(difficultyFlagName), difficultyFlagName)

	cmd.Flags().Float64VarP(&corruptFractionFlag, fractionFlagName, "f", viper.GetFloat64(fractionFlagName), "fraction of the pathway to corrupt (0-1]")
	bindFlagToConfig(cmd.Flags().Lookup(fractionFlagName), fractionFlagName)

	cmd.Flags().Int64VarP(&corruptSeedFlag, seedFlagName, "s", viper.GetInt64(seedFlagName), "sampling seed")
	bindFlagToConfig(cmd.Flags().Lookup(seedFlagName), seedFlagName)

	cmd.Flags().IntVarP(&corruptParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel workers")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().StringVarP(&corruptManifestFlag, "manifest", "m", "", "YAML manifest of run specs (overrides the run flags)")
}

// resolveRuns returns the manifest runs when a manifest is given, and the
// single flag-configured run otherwise.
func resolveRuns(manifestPath string) ([]m.RunSpec, error) {
	if manifestPath == "" {
		return []m.RunSpec{{
			ErrorTypes: parseErrorTypes(viper.GetStringSlice(errorsFlagName)),
			Difficulty: viper.GetInt(difficultyFlagName),
			Fraction:   viper.GetFloat64(fractionFlagName),
			Seed:       viper.GetInt64(seedFlagName),
		}}, nil
	}

	content, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(content, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", manifestPath, err)
	}

	if len(manifest.Runs) == 0 {
		return nil, fmt.Errorf("manifest %s contains no runs", manifestPath)
	}

	return manifest.Runs, nil
}
