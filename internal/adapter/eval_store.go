package adapter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	m "tamper.dev/pkg/tamper/internal/model"
)

const colScore = "score"

// EvalStore reads persistence-evaluation files: TSVs with a `score`
// column holding one value per applied corruption (1 = error fully
// present, 0.5 = ambiguous, 0 = removed).
type EvalStore interface {
	LoadScores(path m.Path) ([]float64, error)
}

// LocalEvalStore reads evaluation TSV files from the local filesystem.
type LocalEvalStore struct{}

// NewLocalEvalStore constructs a LocalEvalStore.
func NewLocalEvalStore() *LocalEvalStore {
	return &LocalEvalStore{}
}

// LoadScores extracts the score column from the evaluation file at path.
func (s *LocalEvalStore) LoadScores(path m.Path) ([]float64, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open evaluation file: %w", err)
	}

	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty evaluation file %s", path)
	}

	scoreCol := -1

	for i, name := range records[0] {
		if name == colScore {
			scoreCol = i
			break
		}
	}

	if scoreCol < 0 {
		return nil, fmt.Errorf("missing %q column in %s", colScore, path)
	}

	scores := make([]float64, 0, len(records)-1)

	for rowNum, record := range records[1:] {
		score, err := strconv.ParseFloat(record[scoreCol], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s: bad score: %w", rowNum+2, path, err)
		}

		scores = append(scores, score)
	}

	return scores, nil
}
