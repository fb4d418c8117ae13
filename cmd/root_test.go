package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "tamper.dev/pkg/tamper/internal/model"
)

func TestRootCommandRegistration(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"corrupt", "bank", "list", "score", "init", "version"} {
		require.True(t, names[want], "missing %q subcommand", want)
	}
}

func TestRootPersistentFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("output"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("bank"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestParsePaths(t *testing.T) {
	require.Equal(t, []m.Path{"a.tsv", "b.tsv"}, parsePaths([]string{"a.tsv", "b.tsv"}))
	require.Empty(t, parsePaths(nil))
}

func TestParseErrorTypes(t *testing.T) {
	got := parseErrorTypes([]string{"wrong_entity", "wrong_direction"})
	require.Equal(t, []m.ErrorType{m.ErrorWrongEntity, m.ErrorWrongDirection}, got)
}
