package tabular

import (
	"strings"

	"github.com/finsight/ledgerparse/internal/amount"
	"github.com/finsight/ledgerparse/internal/classify"
	"github.com/finsight/ledgerparse/internal/domain"
)

// ParseStatement runs the structural parse over a delimited text blob:
// tokenize the header, resolve canonical columns, then convert each data row
// into a transaction. It returns domain.ErrHeaderUnresolved when no date
// column can be found (the layout is non-standard) and
// domain.ErrZeroTransactions when the parse ran but produced nothing; both
// signal the router to fall back to the generative path.
func ParseStatement(text string) ([]domain.ParsedTransaction, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, domain.ErrHeaderUnresolved
	}

	delim := DetectDelimiter(lines[0])
	headers := SplitRow(lines[0], delim)
	cols := ResolveHeader(headers)

	if _, ok := cols[domain.FieldDate]; !ok {
		return nil, domain.ErrHeaderUnresolved
	}

	txs := make([]domain.ParsedTransaction, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := SplitRow(line, delim)
		if tx, ok := rowToTransaction(fields, cols); ok {
			txs = append(txs, tx)
		}
	}

	if len(txs) == 0 {
		return nil, domain.ErrZeroTransactions
	}
	return txs, nil
}

// rowToTransaction converts one tokenized data row. Rows that carry no
// parseable date or no amount information are skipped; a malformed row
// never corrupts its neighbors.
func rowToTransaction(fields []string, cols ColumnMap) (domain.ParsedTransaction, bool) {
	get := func(f domain.CanonicalField) string {
		idx, ok := cols[f]
		if !ok || idx >= len(fields) {
			return ""
		}
		return fields[idx]
	}

	date, ok := ParseDate(get(domain.FieldDate))
	if !ok {
		return domain.ParsedTransaction{}, false
	}

	desc := get(domain.FieldDescription)
	merchant := get(domain.FieldMerchant)

	_, hasDebit := cols[domain.FieldDebit]
	_, hasCredit := cols[domain.FieldCredit]
	_, hasAmount := cols[domain.FieldAmount]

	tx := domain.ParsedTransaction{
		Date:        date,
		Description: desc,
		Merchant:    merchant,
		Category:    classify.Classify(strings.TrimSpace(desc + " " + merchant)),
	}

	switch {
	case hasDebit || hasCredit:
		debit := amount.Parse(get(domain.FieldDebit))
		credit := amount.Parse(get(domain.FieldCredit))
		amt, typ, ok := amount.ResolveDebitCredit(debit, credit)
		if !ok {
			return domain.ParsedTransaction{}, false
		}
		tx.Amount = amt
		tx.Type = typ
	case hasAmount:
		if cols[domain.FieldAmount] >= len(fields) {
			// row is too short to carry an amount at all
			return domain.ParsedTransaction{}, false
		}
		signed := amount.Parse(get(domain.FieldAmount))
		tx.Amount, tx.Type = amount.ResolveSigned(signed, desc)
	default:
		return domain.ParsedTransaction{}, false
	}

	return tx, true
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
