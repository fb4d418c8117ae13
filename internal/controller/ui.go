// Package controller provides output adapters for displaying corruption
// run results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "tamper.dev/pkg/tamper/internal/model"
)

// BankCoverage holds per-pathway corruption bank coverage counts.
type BankCoverage struct {
	PathwayID       string
	Steps           int
	WrongEntity     int
	WrongDirection  int
	UnsupportedStep int
}

// ScoreView holds persistence-scoring results for display.
type ScoreView struct {
	Evaluations         int
	MeanErrorScore      float64
	CleanRate           float64
	PartialErrorRate    float64
	FullPersistenceRate float64
	PosteriorCleanRate  float64
	PriorName           string
	PValue              *float64
}

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeCorrupt StartMode = iota
	ModeReport
)

// StartOption is a functional option for Start.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  StartMode
	total int
}

// WithCorruptMode sets the UI to corruption-run mode with the expected
// number of pathways.
func WithCorruptMode(totalPathways int) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCorrupt
		c.total = totalPathways
	}
}

// WithReportMode sets the UI to report-only mode.
func WithReportMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeReport
	}
}

// UI defines the interface for displaying corruption run progress and
// results. Implementations can use different output methods (simple
// text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayRunInfo(ctx context.Context, run m.RunSpec, pathwayCount, threads int)
	DisplayPathwayDone(ctx context.Context, pathwayID string, applied []m.AppliedCorruption)
	DisplayBankCoverage(ctx context.Context, coverage []BankCoverage)
	DisplayBankValidation(ctx context.Context, entries, fixed int)
	DisplayScore(ctx context.Context, view ScoreView)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewUI picks the interactive TUI on terminals and the plain renderer
// everywhere else.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}
