// Package amount converts raw statement amount strings into decimal values
// and resolves transaction direction from whichever columns a source exposes.
package amount

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finsight/ledgerparse/internal/domain"
)

// currencyWords matches spelled-out currency markers such as "Rs.", "Rs",
// "INR", "USD", "EUR", "GBP" anywhere in the string.
var currencyWords = regexp.MustCompile(`(?i)\b(?:rs\.?|inr|usd|eur|gbp)\b\.?`)

// currencySymbols removes symbol and separator characters that may surround
// the numeral itself.
var currencySymbols = strings.NewReplacer(
	"₹", "",
	"$", "",
	"£", "",
	"€", "",
	",", "",
	" ", "",
	"\t", "",
	" ", "", // non-breaking space
)

// incomeKeywords is the fixed vocabulary used when a signed amount of exactly
// zero leaves direction undecidable from the numerals alone.
var incomeKeywords = []string{
	"salary", "credit", "deposit", "refund", "interest",
	"freelance", "commission", "receipt",
}

// Parse converts a raw amount string into a decimal value. Currency symbols
// and whitespace are stripped first, then a parenthesized numeral is treated
// as negative, and anything that still fails to parse yields zero rather
// than an error. Stripping must precede the parenthesis check: accounting
// exports write the symbol outside the wrapper, as in "$(123.45)".
func Parse(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	s = currencyWords.ReplaceAllString(s, "")
	s = currencySymbols.Replace(s)
	s = strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	if s == "" || s == "-" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d
}

// ResolveDebitCredit resolves amount and direction when the source exposes
// separate debit and credit columns. When both carry a value the larger one
// wins, with a tie going to expense. When both are zero the row is not a
// transaction and ok is false.
func ResolveDebitCredit(debit, credit decimal.Decimal) (decimal.Decimal, domain.TransactionType, bool) {
	d := debit.Abs()
	c := credit.Abs()

	switch {
	case d.IsZero() && c.IsZero():
		return decimal.Zero, "", false
	case d.IsPositive() && c.IsPositive():
		if d.GreaterThanOrEqual(c) {
			return d, domain.TypeExpense, true
		}
		return c, domain.TypeIncome, true
	case d.IsPositive():
		return d, domain.TypeExpense, true
	default:
		return c, domain.TypeIncome, true
	}
}

// ResolveSigned resolves amount and direction when the source exposes a
// single signed amount column. A positive value is income, a negative value
// is an expense, and an exact zero falls back to the income-keyword
// heuristic over the description.
func ResolveSigned(value decimal.Decimal, description string) (decimal.Decimal, domain.TransactionType) {
	switch {
	case value.IsPositive():
		return value, domain.TypeIncome
	case value.IsNegative():
		return value.Abs(), domain.TypeExpense
	default:
		if HasIncomeKeyword(description) {
			return decimal.Zero, domain.TypeIncome
		}
		return decimal.Zero, domain.TypeExpense
	}
}

// HasIncomeKeyword reports whether the description matches the fixed
// income-indicating vocabulary.
func HasIncomeKeyword(description string) bool {
	lower := strings.ToLower(description)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
