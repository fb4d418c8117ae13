// Package pkg provides shared utilities for tamper.
package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrUnparseable reports that no parse strategy could decode the input.
var ErrUnparseable = errors.New("failed to parse JSON after all repair strategies")

var (
	fenceOpenRe  = regexp.MustCompile(`(?i)^` + "```" + `(?:json)?\s*`)
	fenceCloseRe = regexp.MustCompile(`\s*` + "```" + `$`)
)

// ParseStrategy is one fallible attempt at recovering valid JSON text.
// Strategies are tried in order; the first whose output unmarshals wins.
type ParseStrategy struct {
	Name      string
	Transform func(raw string) (string, error)
}

// DefaultStrategies returns the repair pipeline applied to LLM output:
// the text as-is, then with control characters escaped inside string
// values, then a full structural repair.
func DefaultStrategies() []ParseStrategy {
	return []ParseStrategy{
		{Name: "strict", Transform: func(raw string) (string, error) { return raw, nil }},
		{Name: "escape_ctrl_chars", Transform: func(raw string) (string, error) {
			return EscapeControlChars(raw), nil
		}},
		{Name: "repair", Transform: jsonrepair.JSONRepair},
	}
}

// DecodeJSON strips code fences once, then tries each strategy in order,
// unmarshaling the first recovered candidate into v.
func DecodeJSON(raw string, v any, strategies []ParseStrategy) error {
	stripped := StripCodeFences(raw)
	failures := make([]error, 0, len(strategies))

	for _, strategy := range strategies {
		candidate, err := strategy.Transform(stripped)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", strategy.Name, err))
			continue
		}

		if err := json.Unmarshal([]byte(candidate), v); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", strategy.Name, err))
			continue
		}

		return nil
	}

	return fmt.Errorf("%w: %w", ErrUnparseable, errors.Join(failures...))
}

// StripCodeFences removes backtick-wrapped code fences, if present.
func StripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	content = fenceOpenRe.ReplaceAllString(content, "")

	return strings.TrimSpace(fenceCloseRe.ReplaceAllString(content, ""))
}

// EscapeControlChars escapes raw control characters that appear inside
// JSON string values, which strict parsers reject.
func EscapeControlChars(s string) string {
	var out strings.Builder

	inString := false
	escaped := false

	for _, ch := range s {
		switch {
		case !inString:
			out.WriteRune(ch)

			if ch == '"' {
				inString = true
			}
		case escaped:
			out.WriteRune(ch)

			escaped = false
		case ch == '\\':
			out.WriteRune(ch)

			escaped = true
		case ch == '"':
			out.WriteRune(ch)

			inString = false
		case ch < 0x20 || ch == 0x7F:
			switch ch {
			case '\n':
				out.WriteString(`\n`)
			case '\r':
				out.WriteString(`\r`)
			case '\t':
				out.WriteString(`\t`)
			default:
				fmt.Fprintf(&out, `\u%04x`, ch)
			}
		default:
			out.WriteRune(ch)
		}
	}

	return out.String()
}
