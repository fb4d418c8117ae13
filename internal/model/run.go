package model

import (
	"fmt"
	"strconv"
	"strings"
)

// RunSpec describes one corruption run: which error categories to inject,
// at what difficulty, covering what fraction of the pathway, under what
// sampling seed.
type RunSpec struct {
	ErrorTypes []ErrorType `yaml:"errors"`
	Difficulty int         `yaml:"difficulty"`
	Fraction   float64     `yaml:"fraction"`
	Seed       int64       `yaml:"seed"`
}

// DirName returns the output directory name for this run, concatenating
// the requested error types, difficulty and fraction.
func (r RunSpec) DirName() string {
	names := make([]string, 0, len(r.ErrorTypes))
	for _, errorType := range r.ErrorTypes {
		names = append(names, string(errorType))
	}

	fraction := strconv.FormatFloat(r.Fraction, 'g', -1, 64)

	return fmt.Sprintf("%s_difficulty_%d_fraction_%s", strings.Join(names, "_"), r.Difficulty, fraction)
}

// Manifest is a YAML batch of run specs executed against the same bank.
type Manifest struct {
	Runs []RunSpec `yaml:"runs"`
}
