package tabular

import (
	"strings"

	"github.com/finsight/ledgerparse/internal/domain"
)

// ColumnMap maps each resolved canonical field to its column index.
// Resolution is pure and stateless given the header row; a field resolves
// to at most one column.
type ColumnMap map[domain.CanonicalField]int

// fieldSynonyms is the fixed synonym list per canonical field, matched by
// case-insensitive substring containment. Order within a list does not
// matter; the left-most header containing any synonym for a field wins.
var fieldSynonyms = []struct {
	field domain.CanonicalField
	words []string
}{
	{domain.FieldDate, []string{"date"}},
	{domain.FieldDescription, []string{"description", "particulars", "narration", "details", "remarks"}},
	{domain.FieldDebit, []string{"debit", "withdrawal"}},
	{domain.FieldCredit, []string{"credit", "deposit"}},
	{domain.FieldAmount, []string{"amount"}},
	{domain.FieldMerchant, []string{"merchant", "payee", "vendor"}},
}

// ResolveHeader maps the normalized header row to canonical columns.
func ResolveHeader(headers []string) ColumnMap {
	cols := make(ColumnMap)
	for _, fs := range fieldSynonyms {
		for idx, header := range headers {
			if headerMatches(header, fs.words) {
				cols[fs.field] = idx
				break
			}
		}
	}
	return cols
}

func headerMatches(header string, words []string) bool {
	lower := strings.ToLower(header)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
