package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSpecDirName(t *testing.T) {
	cases := []struct {
		name string
		run  RunSpec
		want string
	}{
		{
			"single error type",
			RunSpec{ErrorTypes: []ErrorType{ErrorWrongEntity}, Difficulty: 1, Fraction: 0.3},
			"wrong_entity_difficulty_1_fraction_0.3",
		},
		{
			"multiple error types joined in order",
			RunSpec{ErrorTypes: []ErrorType{ErrorWrongEntity, ErrorWrongDirection}, Difficulty: 2, Fraction: 0.5},
			"wrong_entity_wrong_direction_difficulty_2_fraction_0.5",
		},
		{
			"whole fraction drops the decimal point",
			RunSpec{ErrorTypes: []ErrorType{ErrorUnsupportedStep}, Difficulty: 3, Fraction: 1},
			"add_unsupported_step_difficulty_3_fraction_1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.run.DirName())
		})
	}
}
