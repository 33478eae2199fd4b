package scanner

import "strings"

// Arguments is the decomposed form of one registration call: the raw
// comma-separated fields with the description spliced out, plus the
// description itself with sentinels restored.
type Arguments struct {
	Fields      []string
	Description string
}

// DecomposeCall isolates the argument list of a raw match span and
// separates the trailing quoted description from the positional fields.
// Field positions are fixed per registration pattern, so callers index
// into Fields directly.
func DecomposeCall(match string) Arguments {
	inner := innerArguments(match)
	remainder, description := extractDescription(inner)
	return Arguments{
		Fields:      strings.Split(remainder, ","),
		Description: description,
	}
}

// SplitArguments decomposes a call whose pattern carries no description
// field (global values, datablock properties).
func SplitArguments(match string) []string {
	return strings.Split(innerArguments(match), ",")
}

// innerArguments returns the substring between the first opening
// parenthesis and the rightmost closing parenthesis of the statement.
func innerArguments(match string) string {
	opening := strings.IndexByte(match, '(')
	closing := strings.LastIndexByte(match, ')')
	if opening < 0 || closing <= opening {
		return ""
	}
	return match[opening+1 : closing]
}

// extractDescription recovers the quoted description from an argument
// string. The description is the last quoted field and may contain commas
// and neutralized semicolons, so the preceding field separator cannot be
// found with a plain split: scan backward from the closing quote,
// toggling an inside-quotation flag on every quote, until a comma outside
// quotation is hit. If no closing quote or no qualifying comma exists the
// boundary degrades to -1 and the description is empty.
func extractDescription(source string) (string, string) {
	descEnd := strings.LastIndexByte(source, '"')
	if descEnd < 0 {
		return source, ""
	}

	descBegin := -1
	insideQuotation := true
	for i := descEnd - 1; i >= 0; i-- {
		switch source[i] {
		case ',':
			if !insideQuotation {
				descBegin = i
			}
		case '"':
			insideQuotation = !insideQuotation
		}
		if descBegin >= 0 {
			break
		}
	}

	if descBegin < 0 {
		// No qualifying separator: the boundary degrades to -1 and the
		// description is empty.
		return source[descEnd:], ""
	}

	description := strings.TrimSpace(source[descBegin+1 : descEnd])
	// Decompiler casts like (int)"..." leak into the field text.
	description = strings.TrimPrefix(description, `(int)"`)
	description = strings.TrimPrefix(description, `"`)
	description = RestoreSentinels(description)

	remainder := source[:descBegin+1] + source[descEnd:]
	return remainder, description
}
