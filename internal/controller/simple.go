package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "tamper.dev/pkg/tamper/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayRunInfo prints the run parameters before corruption starts.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, run m.RunSpec, pathwayCount, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Corrupting %d pathway(s) with %d worker(s): errors=%v difficulty=%d fraction=%v seed=%d\n",
		pathwayCount, threads, run.ErrorTypes, run.Difficulty, run.Fraction, run.Seed)
}

// DisplayPathwayDone prints the applied corruptions for one pathway.
func (s *SimpleUI) DisplayPathwayDone(ctx context.Context, pathwayID string, applied []m.AppliedCorruption) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s: %d corruption(s) applied\n%s", pathwayID, len(applied), renderAppliedTable(applied))
}

func renderAppliedTable(applied []m.AppliedCorruption) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Index", "Operation", "Type", "Difficulty", "Statement"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, record := range applied {
		table.Append([]string{
			strconv.Itoa(record.CorruptedStepIndex),
			string(record.Operation),
			string(record.ErrorType),
			strconv.Itoa(record.Difficulty),
			record.CorruptedStatement,
		})
	}

	table.Render()

	return buf.String()
}

// DisplayBankCoverage prints the per-pathway coverage table.
func (s *SimpleUI) DisplayBankCoverage(ctx context.Context, coverage []BankCoverage) {
	if err := ctx.Err(); err != nil {
		return
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Pathway", "Steps", "Wrong Entity", "Wrong Direction", "Unsupported Step"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	totalSteps, totalEntries := 0, 0

	for _, row := range coverage {
		table.Append([]string{
			row.PathwayID,
			strconv.Itoa(row.Steps),
			strconv.Itoa(row.WrongEntity),
			strconv.Itoa(row.WrongDirection),
			strconv.Itoa(row.UnsupportedStep),
		})

		totalSteps += row.Steps
		totalEntries += row.WrongEntity + row.WrongDirection + row.UnsupportedStep
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Pathways %d", len(coverage)),
		strconv.Itoa(totalSteps),
		"", "",
		fmt.Sprintf("%d entries", totalEntries),
	})
	table.Render()

	s.printf("\n%s", buf.String())
}

// DisplayBankValidation prints the bank validation outcome.
func (s *SimpleUI) DisplayBankValidation(ctx context.Context, entries, fixed int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Validated %d bank entries (%d auto-corrected)\n", entries, fixed)
}

// DisplayScore prints the persistence-scoring summary.
func (s *SimpleUI) DisplayScore(ctx context.Context, view ScoreView) {
	if err := ctx.Err(); err != nil {
		return
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	table.Append([]string{"evaluations", strconv.Itoa(view.Evaluations)})
	table.Append([]string{"mean error score", formatRate(view.MeanErrorScore)})
	table.Append([]string{"clean rate", formatRate(view.CleanRate)})
	table.Append([]string{"partial error rate", formatRate(view.PartialErrorRate)})
	table.Append([]string{"full persistence rate", formatRate(view.FullPersistenceRate)})
	table.Append([]string{fmt.Sprintf("posterior clean rate (%s prior)", view.PriorName), formatRate(view.PosteriorCleanRate)})

	if view.PValue != nil {
		table.Append([]string{"permutation p-value", formatRate(*view.PValue)})
	}

	table.Render()

	s.printf("\n%s", buf.String())
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
