package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tamper.dev/pkg/tamper/internal/adapter"
	"tamper.dev/pkg/tamper/internal/controller"
	m "tamper.dev/pkg/tamper/internal/model"
	"tamper.dev/pkg/tamper/internal/state"
	"tamper.dev/pkg/tamper/internal/stats"
	pkg "tamper.dev/pkg/tamper/pkg"
)

// CorruptArgs parameterizes one corruption run over a batch of pathway
// files sharing a bank.
type CorruptArgs struct {
	PathwayFiles []m.Path
	BankFile     m.Path
	Run          m.RunSpec
	OutputDir    m.Path
	Threads      int
}

// ValidateBankArgs parameterizes generation-time bank validation.
type ValidateBankArgs struct {
	BankFile     m.Path
	PathwayFiles []m.Path
	OutFile      m.Path // when set, the fixed bank is written here
}

// ImportBankArgs parameterizes intake of raw LLM corruption JSON.
type ImportBankArgs struct {
	RawJSON     []byte
	PathwayFile m.Path
	ModelName   string
	Seed        int64
	OutFile     m.Path
}

// CoverageArgs parameterizes the bank coverage listing.
type CoverageArgs struct {
	PathwayFiles []m.Path
	BankFile     m.Path
}

// ScoreArgs parameterizes persistence scoring of candidate evaluations.
type ScoreArgs struct {
	EvalFile  m.Path
	NullFile  m.Path // optional null distribution for a permutation test
	Prior     string
	Direction stats.Direction
}

// Workflow wires stores, budget, planner and applier into the operations
// exposed by the CLI.
type Workflow interface {
	Corrupt(ctx context.Context, args CorruptArgs) error
	ValidateBank(ctx context.Context, args ValidateBankArgs) error
	ImportBank(ctx context.Context, args ImportBankArgs) error
	Coverage(ctx context.Context, args CoverageArgs) error
	Score(ctx context.Context, args ScoreArgs) error
}

type workflow struct {
	pathways adapter.PathwayStore
	banks    adapter.BankStore
	evals    adapter.EvalStore
	ui       controller.UI
	priors   map[string]stats.PriorFunc
	history  *state.History[ScoreSummary]
}

// NewWorkflow constructs a Workflow backed by the provided adapters. The
// prior registry is injected rather than read from package state so tests
// can supply fakes.
func NewWorkflow(
	pathways adapter.PathwayStore,
	banks adapter.BankStore,
	evals adapter.EvalStore,
	ui controller.UI,
	priors map[string]stats.PriorFunc,
) Workflow {
	return &workflow{
		pathways: pathways,
		banks:    banks,
		evals:    evals,
		ui:       ui,
		priors:   priors,
		history:  state.NewHistory[ScoreSummary](),
	}
}

// Corrupt runs one corruption spec over every pathway file, fanning out
// across a bounded worker pool. Each pathway's outputs (corrupted TSV +
// metadata TSV) are written only after its whole plan applied cleanly.
func (w *workflow) Corrupt(ctx context.Context, args CorruptArgs) error {
	if len(args.PathwayFiles) == 0 {
		return fmt.Errorf("%w: no pathway files given", ErrInvalidParameter)
	}

	bank, err := w.banks.Load(args.BankFile)
	if err != nil {
		return err
	}

	if err := w.ui.Start(ctx, controller.WithCorruptMode(len(args.PathwayFiles))); err != nil {
		return err
	}
	defer w.ui.Close(ctx)

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	w.ui.DisplayRunInfo(ctx, args.Run, len(args.PathwayFiles), threads)

	saveDir := filepath.Join(string(args.OutputDir), args.Run.DirName())

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, pathwayFile := range args.PathwayFiles {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			applied, pathwayID, err := w.corruptOne(pathwayFile, bank, args.Run, m.Path(saveDir))
			if err != nil {
				return fmt.Errorf("%s: %w", pathwayFile, err)
			}

			w.ui.DisplayPathwayDone(groupCtx, pathwayID, applied)

			return nil
		})
	}

	return group.Wait()
}

func (w *workflow) corruptOne(pathwayFile m.Path, bank m.Bank, run m.RunSpec, saveDir m.Path) ([]m.AppliedCorruption, string, error) {
	pathway, err := w.pathways.Load(pathwayFile)
	if err != nil {
		return nil, "", err
	}

	perCategory, err := ErrorsPerCategory(run.Fraction, pathway.Len(), len(run.ErrorTypes), DefaultMinPerCategory)
	if err != nil {
		return nil, "", err
	}

	plan, err := BuildPlan(run.ErrorTypes, run.Difficulty, perCategory, pathway.Len(), run.Seed)
	if err != nil {
		return nil, "", err
	}

	pathwayBank := bank.ForPathway(pathway.ID)

	modified, applied, err := ApplyPlan(pathway.Steps, pathwayBank, plan, run.Seed)
	if err != nil {
		return nil, "", err
	}

	corrupted := m.Pathway{ID: pathway.ID, Title: pathway.Title, Steps: modified}

	pathwayOut := m.Path(filepath.Join(string(saveDir), pathway.ID+".tsv"))
	if err := w.pathways.Write(pathwayOut, corrupted); err != nil {
		return nil, "", err
	}

	metadataOut := m.Path(filepath.Join(string(saveDir), pathway.ID+".metadata.tsv"))
	if err := w.banks.WriteMetadata(metadataOut, bank.Columns, applied); err != nil {
		return nil, "", err
	}

	slog.Info("corrupted pathway written",
		"pathway_id", pathway.ID, "corruptions", len(applied), "output", pathwayOut)

	return applied, pathway.ID, nil
}

// ValidateBank checks a generated bank against the true pathway texts,
// auto-correcting replace originals and enforcing combination coverage.
func (w *workflow) ValidateBank(ctx context.Context, args ValidateBankArgs) error {
	bank, err := w.banks.Load(args.BankFile)
	if err != nil {
		return err
	}

	if err := w.ui.Start(ctx, controller.WithReportMode()); err != nil {
		return err
	}
	defer w.ui.Close(ctx)

	steps := make(map[string][]string, len(args.PathwayFiles))

	for _, pathwayFile := range args.PathwayFiles {
		pathway, err := w.pathways.Load(pathwayFile)
		if err != nil {
			return err
		}

		steps[pathway.ID] = pathway.Steps
	}

	totalFixed := 0
	covered := make([]m.BankEntry, 0, len(bank.Entries))

	byPathway := make(map[string][]int)
	for i, entry := range bank.Entries {
		byPathway[entry.PathwayID] = append(byPathway[entry.PathwayID], i)
	}

	for pathwayID, indices := range byPathway {
		pathwaySteps, ok := steps[pathwayID]
		if !ok {
			slog.Warn("bank covers pathway with no supplied pathway file", "pathway_id", pathwayID)
			continue
		}

		entries := make([]m.BankEntry, 0, len(indices))
		for _, i := range indices {
			entries = append(entries, bank.Entries[i])
		}

		fixedEntries, fixed, err := ValidateAndFixEntries(entries, pathwaySteps)
		if err != nil {
			return err
		}

		for j, i := range indices {
			bank.Entries[i] = fixedEntries[j]
		}

		totalFixed += fixed
		covered = append(covered, fixedEntries...)
	}

	if err := CheckCombinationCoverage(covered); err != nil {
		return err
	}

	if args.OutFile != "" {
		if err := w.banks.Write(args.OutFile, bank); err != nil {
			return err
		}
	}

	w.ui.DisplayBankValidation(ctx, len(bank.Entries), totalFixed)

	return nil
}

// importBankColumns is the column order of freshly imported banks,
// provenance first.
var importBankColumns = []string{
	"corruption_id", "created_at", "model_name", "seed",
	"pathway_id", "pathway_title", "anchor_step_index", "operation",
	"error_type", "difficulty", "original_statement", "corrupted_statement",
	"category_rationale",
}

// ImportBank parses raw LLM corruption JSON, stamps provenance, validates
// it against the pathway and writes a bank TSV.
func (w *workflow) ImportBank(ctx context.Context, args ImportBankArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pathway, err := w.pathways.Load(args.PathwayFile)
	if err != nil {
		return err
	}

	var raw m.RawCorruptionList
	if err := pkg.DecodeJSON(string(args.RawJSON), &raw, pkg.DefaultStrategies()); err != nil {
		return err
	}

	if len(raw.Corruptions) == 0 {
		return fmt.Errorf("%w: no corruptions in input", ErrInvalidParameter)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	entries := make([]m.BankEntry, 0, len(raw.Corruptions))

	for _, c := range raw.Corruptions {
		entries = append(entries, m.BankEntry{
			PathwayID:          pathway.ID,
			AnchorStepIndex:    c.AnchorStepIndex,
			ErrorType:          c.ErrorType,
			Difficulty:         c.Difficulty,
			Operation:          c.Operation,
			OriginalStatement:  c.OriginalStatement,
			CorruptedStatement: c.CorruptedStatement,
			Extra: map[string]string{
				"corruption_id":      uuid.NewString(),
				"created_at":         now,
				"model_name":         args.ModelName,
				"seed":               strconv.FormatInt(args.Seed, 10),
				"pathway_title":      pathway.Title,
				"category_rationale": c.CategoryRationale,
			},
		})
	}

	entries, fixed, err := ValidateAndFixEntries(entries, pathway.Steps)
	if err != nil {
		return err
	}

	if err := CheckCombinationCoverage(entries); err != nil {
		return err
	}

	if err := w.banks.Write(args.OutFile, m.Bank{Columns: importBankColumns, Entries: entries}); err != nil {
		return err
	}

	slog.Info("bank imported", "pathway_id", pathway.ID, "entries", len(entries), "auto_corrected", fixed)
	w.ui.DisplayBankValidation(ctx, len(entries), fixed)

	return nil
}

// Coverage lists each pathway's step count and per-category bank entries.
func (w *workflow) Coverage(ctx context.Context, args CoverageArgs) error {
	bank, err := w.banks.Load(args.BankFile)
	if err != nil {
		return err
	}

	rows := make([]controller.BankCoverage, 0, len(args.PathwayFiles))

	for _, pathwayFile := range args.PathwayFiles {
		pathway, err := w.pathways.Load(pathwayFile)
		if err != nil {
			return err
		}

		row := controller.BankCoverage{PathwayID: pathway.ID, Steps: pathway.Len()}

		for _, entry := range bank.ForPathway(pathway.ID).Entries {
			switch entry.ErrorType {
			case m.ErrorWrongEntity:
				row.WrongEntity++
			case m.ErrorWrongDirection:
				row.WrongDirection++
			case m.ErrorUnsupportedStep:
				row.UnsupportedStep++
			}
		}

		rows = append(rows, row)
	}

	w.ui.DisplayBankCoverage(ctx, rows)

	return nil
}

// Score aggregates persistence evaluations into summary statistics and
// records the summary in the in-process history.
func (w *workflow) Score(ctx context.Context, args ScoreArgs) error {
	scores, err := w.evals.LoadScores(args.EvalFile)
	if err != nil {
		return err
	}

	summary, err := SummarizeScores(scores, w.priors, args.Prior)
	if err != nil {
		return err
	}

	view := controller.ScoreView{
		Evaluations:         summary.Evaluations,
		MeanErrorScore:      summary.MeanErrorScore,
		CleanRate:           summary.CleanRate,
		PartialErrorRate:    summary.PartialErrorRate,
		FullPersistenceRate: summary.FullPersistenceRate,
		PosteriorCleanRate:  summary.PosteriorCleanRate,
		PriorName:           summary.PriorName,
	}

	if args.NullFile != "" {
		null, err := w.evals.LoadScores(args.NullFile)
		if err != nil {
			return err
		}

		pv := stats.PValue(summary.MeanErrorScore, null, args.Direction)
		view.PValue = &pv
	}

	w.history.Set(summary)
	slog.Info("scored evaluations",
		"file", args.EvalFile, "evaluations", summary.Evaluations,
		"mean_error_score", summary.MeanErrorScore, "runs_in_session", w.history.Len())

	w.ui.DisplayScore(ctx, view)

	return nil
}

// ScoreHistory exposes the summaries recorded in this process, newest
// last.
func (w *workflow) ScoreHistory() []ScoreSummary {
	return w.history.All()
}
