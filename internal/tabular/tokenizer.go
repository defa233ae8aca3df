// Package tabular implements the structural parse path: row tokenization,
// header resolution, and conversion of data rows into normalized
// transactions.
package tabular

import "strings"

// delimiters the sniffer considers, in preference order for ties.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// SplitRow splits one row of delimited text into fields. Quoted segments may
// contain the delimiter or escaped quotes (`""` resolves to one literal
// quote). Every field is trimmed of whitespace and surrounding quote
// characters, and the blank synthetic column produced by a trailing
// delimiter is dropped. The function carries no cross-row state, so a
// malformed row fails in isolation.
func SplitRow(line string, delim rune) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				b.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == delim && !inQuotes:
			fields = append(fields, cleanField(b.String()))
			b.Reset()
		default:
			b.WriteRune(ch)
		}
	}
	fields = append(fields, cleanField(b.String()))

	if n := len(fields); n > 1 && fields[n-1] == "" {
		fields = fields[:n-1]
	}
	return fields
}

// DetectDelimiter sniffs the delimiter from a header line by counting
// candidate characters outside quoted segments. Comma wins ties.
func DetectDelimiter(line string) rune {
	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	for _, ch := range line {
		if ch == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		for _, d := range candidateDelimiters {
			if ch == d {
				counts[d]++
			}
		}
	}

	best := ','
	bestCount := 0
	for _, d := range candidateDelimiters {
		if counts[d] > bestCount {
			best = d
			bestCount = counts[d]
		}
	}
	return best
}

// cleanField trims surrounding whitespace only. Enclosing quotes and ""
// escapes are already resolved by the tokenizing loop, so a quote remaining
// here is literal field content and must survive.
func cleanField(s string) string {
	return strings.TrimSpace(s)
}
