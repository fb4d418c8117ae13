package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	m "tamper.dev/pkg/tamper/internal/model"
)

func newCapturedUI() (*SimpleUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	return NewSimpleUI(cmd), buf
}

func TestSimpleUI_DisplayRunInfo(t *testing.T) {
	ui, buf := newCapturedUI()

	run := m.RunSpec{ErrorTypes: []m.ErrorType{m.ErrorWrongEntity}, Difficulty: 2, Fraction: 0.3, Seed: 42}
	ui.DisplayRunInfo(context.Background(), run, 3, 2)

	out := buf.String()
	require.Contains(t, out, "Corrupting 3 pathway(s) with 2 worker(s)")
	require.Contains(t, out, "difficulty=2")
	require.Contains(t, out, "seed=42")
}

func TestSimpleUI_DisplayPathwayDone(t *testing.T) {
	ui, buf := newCapturedUI()

	applied := []m.AppliedCorruption{{
		BankEntry: m.BankEntry{
			ErrorType: m.ErrorWrongEntity, Difficulty: 1,
			Operation: m.OpReplace, CorruptedStatement: "B binds X",
		},
		CorruptedStepIndex: 1,
	}}

	ui.DisplayPathwayDone(context.Background(), "p1", applied)

	out := buf.String()
	require.Contains(t, out, "p1: 1 corruption(s) applied")
	require.Contains(t, out, "replace")
	require.Contains(t, out, "wrong_entity")
	require.Contains(t, out, "B binds X")
}

func TestSimpleUI_DisplayBankCoverage(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.DisplayBankCoverage(context.Background(), []BankCoverage{
		{PathwayID: "p1", Steps: 5, WrongEntity: 2, WrongDirection: 1, UnsupportedStep: 3},
		{PathwayID: "p2", Steps: 4, WrongEntity: 1},
	})

	out := buf.String()
	require.Contains(t, out, "p1")
	require.Contains(t, out, "p2")
	require.Contains(t, out, "Total Pathways 2")
	require.Contains(t, out, "7 entries")
}

func TestSimpleUI_DisplayBankValidation(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.DisplayBankValidation(context.Background(), 12, 3)

	require.Contains(t, buf.String(), "Validated 12 bank entries (3 auto-corrected)")
}

func TestSimpleUI_DisplayScore(t *testing.T) {
	ui, buf := newCapturedUI()

	pv := 0.04
	ui.DisplayScore(context.Background(), ScoreView{
		Evaluations:        8,
		MeanErrorScore:     0.375,
		CleanRate:          0.5,
		PriorName:          "uniform",
		PosteriorCleanRate: 0.5,
		PValue:             &pv,
	})

	out := buf.String()
	require.Contains(t, out, "0.3750")
	require.Contains(t, out, "posterior clean rate (uniform prior)")
	require.Contains(t, out, "permutation p-value")
	require.Contains(t, out, "0.0400")
}

func TestSimpleUI_CanceledContextSuppressesOutput(t *testing.T) {
	ui, buf := newCapturedUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.DisplayBankValidation(ctx, 1, 0)
	ui.DisplayScore(ctx, ScoreView{Evaluations: 1})

	require.Empty(t, buf.String())
}
