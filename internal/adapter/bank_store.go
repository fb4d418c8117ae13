package adapter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	m "tamper.dev/pkg/tamper/internal/model"
)

// Bank columns with fixed meaning. Any other column is provenance and
// passes through unchanged.
const (
	colPathwayID          = "pathway_id"
	colAnchorStepIndex    = "anchor_step_index"
	colErrorType          = "error_type"
	colDifficulty         = "difficulty"
	colOperation          = "operation"
	colOriginalStatement  = "original_statement"
	colCorruptedStatement = "corrupted_statement"

	colCorruptedStepIndex   = "corrupted_step_index"
	colOriginalRefStepIndex = "original_ref_step_index"
	colOriginalRefStepText  = "original_ref_step_text"
	colSamplingSeed         = "sampling_seed"
)

var requiredBankColumns = []string{
	colPathwayID, colAnchorStepIndex, colErrorType, colDifficulty,
	colOperation, colOriginalStatement, colCorruptedStatement,
}

// BankStore abstracts corruption bank and metadata file access.
type BankStore interface {
	Load(path m.Path) (m.Bank, error)
	Write(path m.Path, bank m.Bank) error
	WriteMetadata(path m.Path, columns []string, applied []m.AppliedCorruption) error
}

// LocalBankStore reads and writes corruption bank TSV files on the local
// filesystem.
type LocalBankStore struct{}

// NewLocalBankStore constructs a LocalBankStore.
func NewLocalBankStore() *LocalBankStore {
	return &LocalBankStore{}
}

// Load reads a corruption bank TSV, preserving header order and any
// provenance columns.
func (s *LocalBankStore) Load(path m.Path) (m.Bank, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return m.Bank{}, fmt.Errorf("failed to open bank file: %w", err)
	}

	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return m.Bank{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(records) == 0 {
		return m.Bank{}, fmt.Errorf("empty bank file %s", path)
	}

	header := records[0]
	index := make(map[string]int, len(header))

	for i, name := range header {
		index[name] = i
	}

	for _, name := range requiredBankColumns {
		if _, ok := index[name]; !ok {
			return m.Bank{}, fmt.Errorf("missing %q column in %s", name, path)
		}
	}

	entries := make([]m.BankEntry, 0, len(records)-1)

	for rowNum, record := range records[1:] {
		anchor, err := strconv.Atoi(record[index[colAnchorStepIndex]])
		if err != nil {
			return m.Bank{}, fmt.Errorf("row %d of %s: bad anchor_step_index: %w", rowNum+2, path, err)
		}

		difficulty, err := strconv.Atoi(record[index[colDifficulty]])
		if err != nil {
			return m.Bank{}, fmt.Errorf("row %d of %s: bad difficulty: %w", rowNum+2, path, err)
		}

		entry := m.BankEntry{
			PathwayID:          record[index[colPathwayID]],
			AnchorStepIndex:    anchor,
			ErrorType:          m.ErrorType(record[index[colErrorType]]),
			Difficulty:         difficulty,
			Operation:          m.Operation(record[index[colOperation]]),
			OriginalStatement:  record[index[colOriginalStatement]],
			CorruptedStatement: record[index[colCorruptedStatement]],
			Extra:              make(map[string]string),
		}

		for i, name := range header {
			if !isFixedBankColumn(name) {
				entry.Extra[name] = record[i]
			}
		}

		entries = append(entries, entry)
	}

	return m.Bank{Columns: header, Entries: entries}, nil
}

// Write serializes a bank back to TSV in its original column order.
func (s *LocalBankStore) Write(path m.Path, bank m.Bank) error {
	columns := bank.Columns
	if len(columns) == 0 {
		columns = requiredBankColumns
	}

	rows := [][]string{columns}
	for _, entry := range bank.Entries {
		rows = append(rows, bankRow(columns, entry))
	}

	return s.writeRows(path, rows)
}

// WriteMetadata writes applied-corruption records: the bank columns plus
// the post-insertion index, the replace-only reference index/text and the
// sampling seed.
func (s *LocalBankStore) WriteMetadata(path m.Path, columns []string, applied []m.AppliedCorruption) error {
	if len(columns) == 0 {
		columns = requiredBankColumns
	}

	header := make([]string, 0, len(columns)+4)
	header = append(header, columns...)
	header = append(header, colCorruptedStepIndex, colOriginalRefStepIndex, colOriginalRefStepText, colSamplingSeed)

	rows := [][]string{header}

	for _, record := range applied {
		row := bankRow(columns, record.BankEntry)

		refIdx := ""
		if record.OriginalRefStepIndex != nil {
			refIdx = strconv.Itoa(*record.OriginalRefStepIndex)
		}

		row = append(row,
			strconv.Itoa(record.CorruptedStepIndex),
			refIdx,
			record.OriginalRefStepText,
			strconv.FormatInt(record.SamplingSeed, 10),
		)

		rows = append(rows, row)
	}

	return s.writeRows(path, rows)
}

func bankRow(columns []string, entry m.BankEntry) []string {
	row := make([]string, 0, len(columns))

	for _, name := range columns {
		switch name {
		case colPathwayID:
			row = append(row, entry.PathwayID)
		case colAnchorStepIndex:
			row = append(row, strconv.Itoa(entry.AnchorStepIndex))
		case colErrorType:
			row = append(row, string(entry.ErrorType))
		case colDifficulty:
			row = append(row, strconv.Itoa(entry.Difficulty))
		case colOperation:
			row = append(row, string(entry.Operation))
		case colOriginalStatement:
			row = append(row, entry.OriginalStatement)
		case colCorruptedStatement:
			row = append(row, entry.CorruptedStatement)
		default:
			row = append(row, entry.Extra[name])
		}
	}

	return row
}

func isFixedBankColumn(name string) bool {
	for _, fixed := range requiredBankColumns {
		if name == fixed {
			return true
		}
	}

	return false
}

func (s *LocalBankStore) writeRows(path m.Path, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(string(path))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	writer.Comma = '\t'

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	writer.Flush()

	return writer.Error()
}
