package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "tamper.dev/pkg/tamper/internal/model"
)

var (
	tuiTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tuiPathwayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	tuiFaintStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display of batch
// corruption runs. Static views (coverage, validation, scores) render
// without entering the alternate screen.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress program when in corrupt mode.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := StartConfig{}
	for _, option := range options {
		option(&cfg)
	}

	if cfg.mode != ModeCorrupt || cfg.total == 0 {
		return nil
	}

	p.done = make(chan struct{})
	p.program = tea.NewProgram(newRunModel(cfg.total), tea.WithOutput(p.output))

	go func() {
		defer close(p.done)

		_, _ = p.program.Run()
	}()

	return nil
}

// Close stops the progress program and waits for it to finish rendering.
func (p *TUI) Close(_ context.Context) {
	if p.program == nil {
		return
	}

	p.program.Send(runFinishedMsg{})
	<-p.done
	p.program = nil
}

// DisplayRunInfo shows the run parameters.
func (p *TUI) DisplayRunInfo(ctx context.Context, run m.RunSpec, pathwayCount, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	header := tuiTitleStyle.Render("tamper") + tuiFaintStyle.Render(
		fmt.Sprintf("  %d pathway(s), %d worker(s), errors=%v difficulty=%d fraction=%v seed=%d",
			pathwayCount, threads, run.ErrorTypes, run.Difficulty, run.Fraction, run.Seed))

	if p.program != nil {
		p.program.Send(runInfoMsg{header: header})
		return
	}

	fmt.Fprintln(p.output, header)
}

// DisplayPathwayDone advances the progress bar for one finished pathway.
func (p *TUI) DisplayPathwayDone(ctx context.Context, pathwayID string, applied []m.AppliedCorruption) {
	if err := ctx.Err(); err != nil {
		return
	}

	line := fmt.Sprintf("%s %s", tuiPathwayStyle.Render(pathwayID),
		tuiFaintStyle.Render(fmt.Sprintf("%d corruption(s)", len(applied))))

	if p.program != nil {
		p.program.Send(pathwayDoneMsg{line: line})
		return
	}

	fmt.Fprintln(p.output, line)
}

// DisplayBankCoverage renders the coverage table statically.
func (p *TUI) DisplayBankCoverage(ctx context.Context, coverage []BankCoverage) {
	if err := ctx.Err(); err != nil {
		return
	}

	var b strings.Builder

	b.WriteString(tuiTitleStyle.Render("bank coverage") + "\n")

	for _, row := range coverage {
		fmt.Fprintf(&b, "  %s  steps=%d  wrong_entity=%d  wrong_direction=%d  add_unsupported_step=%d\n",
			tuiPathwayStyle.Render(row.PathwayID), row.Steps, row.WrongEntity, row.WrongDirection, row.UnsupportedStep)
	}

	fmt.Fprint(p.output, b.String())
}

// DisplayBankValidation renders the validation outcome statically.
func (p *TUI) DisplayBankValidation(ctx context.Context, entries, fixed int) {
	if err := ctx.Err(); err != nil {
		return
	}

	fmt.Fprintf(p.output, "%s %d entries (%d auto-corrected)\n", tuiTitleStyle.Render("bank validated:"), entries, fixed)
}

// DisplayScore renders the scoring summary statically.
func (p *TUI) DisplayScore(ctx context.Context, view ScoreView) {
	if err := ctx.Err(); err != nil {
		return
	}

	var b strings.Builder

	b.WriteString(tuiTitleStyle.Render("persistence score") + "\n")
	fmt.Fprintf(&b, "  evaluations            %d\n", view.Evaluations)
	fmt.Fprintf(&b, "  mean error score       %.4f\n", view.MeanErrorScore)
	fmt.Fprintf(&b, "  clean rate             %.4f\n", view.CleanRate)
	fmt.Fprintf(&b, "  partial error rate     %.4f\n", view.PartialErrorRate)
	fmt.Fprintf(&b, "  full persistence rate  %.4f\n", view.FullPersistenceRate)
	fmt.Fprintf(&b, "  posterior clean rate   %.4f (%s prior)\n", view.PosteriorCleanRate, view.PriorName)

	if view.PValue != nil {
		fmt.Fprintf(&b, "  permutation p-value    %.4f\n", *view.PValue)
	}

	fmt.Fprint(p.output, b.String())
}

type runInfoMsg struct {
	header string
}

type pathwayDoneMsg struct {
	line string
}

type runFinishedMsg struct{}

// runModel is the Bubble Tea model for batch corruption progress.
type runModel struct {
	bar      progress.Model
	header   string
	lines    []string
	total    int
	finished int
	quitting bool
}

func newRunModel(total int) runModel {
	return runModel{
		bar:   progress.New(progress.WithDefaultGradient()),
		total: total,
	}
}

func (rm runModel) Init() tea.Cmd {
	return nil
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.bar.Width = msg.Width - 4

		return rm, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			rm.quitting = true
			return rm, tea.Quit
		}

		return rm, nil

	case runInfoMsg:
		rm.header = msg.header

		return rm, nil

	case pathwayDoneMsg:
		rm.finished++
		rm.lines = append(rm.lines, msg.line)

		return rm, nil

	case runFinishedMsg:
		rm.quitting = true

		return rm, tea.Quit
	}

	return rm, nil
}

func (rm runModel) View() string {
	var b strings.Builder

	if rm.header != "" {
		b.WriteString(rm.header + "\n\n")
	}

	for _, line := range rm.lines {
		b.WriteString("  " + line + "\n")
	}

	ratio := 0.0
	if rm.total > 0 {
		ratio = float64(rm.finished) / float64(rm.total)
	}

	b.WriteString("\n  " + rm.bar.ViewAs(ratio) + "\n")

	if rm.quitting {
		b.WriteString("\n")
	}

	return b.String()
}
