// Package cmd provides the root command and CLI setup for tamper.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tamper.dev/pkg/tamper/internal/adapter"
	"tamper.dev/pkg/tamper/internal/controller"
	"tamper.dev/pkg/tamper/internal/domain"
	m "tamper.dev/pkg/tamper/internal/model"
	"tamper.dev/pkg/tamper/internal/stats"
)

var pathwayStore adapter.PathwayStore
var bankStore adapter.BankStore
var evalStore adapter.EvalStore
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that write outputs.
var outputDirFlag string

// bankFileFlag is a root-level flag naming the corruption bank file.
var bankFileFlag string

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	pathwayStore = adapter.NewLocalPathwayStore()
	bankStore = adapter.NewLocalBankStore()
	evalStore = adapter.NewLocalEvalStore()
	workflow = domain.NewWorkflow(pathwayStore, bankStore, evalStore, ui, stats.Priors())
}

const rootLongDescription = `Tamper injects categorized, seeded textual errors into biomedical pathway
files to benchmark hypothesis-repair systems. It samples corruptions from a
precomputed bank, applies them deterministically, and scores how many
injected errors persist in candidate outputs.

Pathway files are TSVs with a single 'name' column: the first row is the
title, the remaining rows are ordered mechanism steps.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tamper",
		Short: "Pathway corruption benchmarking tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for corrupted pathways and metadata",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&bankFileFlag, bankFlagName, "b", viper.GetString(bankConfigKey), "corruption bank TSV file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(bankFlagName), bankConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func parseErrorTypes(names []string) []m.ErrorType {
	errorTypes := make([]m.ErrorType, 0, len(names))
	for _, name := range names {
		errorTypes = append(errorTypes, m.ErrorType(name))
	}

	return errorTypes
}
