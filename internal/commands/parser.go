// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// TOKENIZER
// =============================================================================

// Tokenize splits one line of user input into argument tokens.
//
// Rules, in priority order:
//   - a backslash escapes the next character, inside or outside quotes
//   - a single quote toggles single-quote mode unless inside double quotes
//   - a double quote toggles double-quote mode unless inside single quotes
//   - unquoted whitespace ends the current token; runs of it collapse
//
// Quote characters are never part of a token unless escaped. Unterminated
// quotes and a trailing backslash close silently at end of input. Only
// non-empty tokens are emitted, so `a''b` yields ["ab"] and `''` yields nothing.
func Tokenize(line string) []string {
	var tokens []string
	var current strings.Builder
	var inSingleQuote, inDoubleQuote, escaped bool

	for _, char := range line {
		switch {
		case escaped:
			current.WriteRune(char)
			escaped = false

		case char == '\\':
			escaped = true

		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote

		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote

		case unicode.IsSpace(char) && !inSingleQuote && !inDoubleQuote:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// Quote renders a token so that Tokenize(Quote(s)) returns []string{s}.
// Whitespace, quotes and backslashes are backslash-escaped. The empty
// string renders as "" which tokenizes to nothing.
func Quote(s string) string {
	if s == "" {
		return `""`
	}
	var b strings.Builder
	for _, char := range s {
		if char == '\\' || char == '\'' || char == '"' || unicode.IsSpace(char) {
			b.WriteRune('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}

// Join quotes each token and joins them with single spaces.
func Join(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = Quote(t)
	}
	return strings.Join(quoted, " ")
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ExtractCommandName extracts just the command name from input.
// e.g., "list 2024-01-01" -> "list"
func ExtractCommandName(input string) string {
	tokens := Tokenize(input)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// GetPartialArg returns the index and partial text of the argument being
// typed at the end of input. Index 0 is the first argument after the
// command name; -1 means the command name itself is still being typed.
func GetPartialArg(input string) (int, string) {
	parts := Tokenize(input)
	last, _ := utf8.DecodeLastRuneInString(input)
	endsWithSpace := input != "" && unicode.IsSpace(last)

	switch {
	case len(parts) == 0:
		return -1, ""
	case len(parts) == 1 && !endsWithSpace:
		return -1, parts[0]
	case endsWithSpace:
		return len(parts) - 1, ""
	default:
		return len(parts) - 2, parts[len(parts)-1]
	}
}

// ValidateArgs validates positional arguments against a command's schema.
func ValidateArgs(cmd *Command, args []string) error {
	if cmd == nil {
		return nil
	}

	for i, argDef := range cmd.Args {
		if i >= len(args) {
			if argDef.Required {
				return &InvalidArgumentsError{
					Command:  cmd.Name,
					Arg:      argDef.Name,
					Reason:   "required argument missing",
					Expected: cmd.UsageLine(),
				}
			}
			continue
		}

		if argDef.Required && strings.TrimSpace(args[i]) == "" {
			return &InvalidArgumentsError{
				Command:  cmd.Name,
				Arg:      argDef.Name,
				Reason:   "argument must not be empty",
				Expected: argDef.Description,
			}
		}

		if argDef.Type == ArgTypeEnum && len(argDef.Values) > 0 {
			values := args[i : i+1]
			if argDef.Variadic {
				values = args[i:]
			}
			for _, v := range values {
				if !containsString(argDef.Values, v) {
					return &InvalidArgumentsError{
						Command:  cmd.Name,
						Arg:      argDef.Name,
						Reason:   "invalid value",
						Got:      v,
						Expected: strings.Join(argDef.Values, ", "),
					}
				}
			}
		}
	}

	if limit := cmd.MaxArgs(); limit >= 0 && len(args) > limit {
		return &InvalidArgumentsError{
			Command:  cmd.Name,
			Reason:   "too many arguments",
			Got:      strings.Join(args[limit:], " "),
			Expected: cmd.UsageLine(),
		}
	}

	return nil
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
