// Package adapter contains file-format and infrastructure adapters for the
// tamper CLI. Adapters hide direct os access so the domain logic can be
// tested against fakes.
package adapter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "tamper.dev/pkg/tamper/internal/model"
)

// PathwayStore abstracts pathway file access.
type PathwayStore interface {
	// Load reads a pathway TSV: a single `name` column whose first row is
	// the title and whose remaining rows are the ordered steps.
	Load(path m.Path) (m.Pathway, error)

	// Write serializes a pathway back to the same row structure, with the
	// title de-underscored to spaces.
	Write(path m.Path, pathway m.Pathway) error
}

// LocalPathwayStore reads and writes pathway TSV files on the local
// filesystem.
type LocalPathwayStore struct{}

// NewLocalPathwayStore constructs a LocalPathwayStore.
func NewLocalPathwayStore() *LocalPathwayStore {
	return &LocalPathwayStore{}
}

// Load reads the pathway file at path. The pathway ID is the file stem;
// the title is normalized to lowercase with underscores.
func (s *LocalPathwayStore) Load(path m.Path) (m.Pathway, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return m.Pathway{}, fmt.Errorf("failed to open pathway file: %w", err)
	}

	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return m.Pathway{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(records) == 0 || records[0][0] != "name" {
		return m.Pathway{}, fmt.Errorf("missing 'name' column in %s", path)
	}

	if len(records) < 3 {
		return m.Pathway{}, fmt.Errorf("no steps found in %s (only a title row present)", path)
	}

	title := strings.ReplaceAll(strings.ToLower(records[1][0]), " ", "_")

	steps := make([]string, 0, len(records)-2)
	for _, record := range records[2:] {
		steps = append(steps, record[0])
	}

	stem := strings.TrimSuffix(filepath.Base(string(path)), filepath.Ext(string(path)))

	return m.Pathway{ID: stem, Title: title, Steps: steps}, nil
}

// Write serializes the pathway to path, replacing title underscores with
// spaces.
func (s *LocalPathwayStore) Write(path m.Path, pathway m.Pathway) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(string(path))
	if err != nil {
		return fmt.Errorf("failed to create pathway file: %w", err)
	}

	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	writer.Comma = '\t'

	rows := [][]string{{"name"}, {strings.ReplaceAll(pathway.Title, "_", " ")}}
	for _, step := range pathway.Steps {
		rows = append(rows, []string{step})
	}

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	writer.Flush()

	return writer.Error()
}
