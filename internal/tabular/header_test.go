package tabular

import (
	"testing"

	"github.com/finsight/ledgerparse/internal/domain"
)

func TestResolveHeader(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    map[domain.CanonicalField]int
	}{
		{
			name:    "bank style capitalized",
			headers: []string{"Debit", "Credit", "Date", "Description"},
			want: map[domain.CanonicalField]int{
				domain.FieldDebit:       0,
				domain.FieldCredit:      1,
				domain.FieldDate:        2,
				domain.FieldDescription: 3,
			},
		},
		{
			name:    "synonym style lowercase",
			headers: []string{"date", "narration", "withdrawal amt", "deposit amt"},
			want: map[domain.CanonicalField]int{
				domain.FieldDate:        0,
				domain.FieldDescription: 1,
				domain.FieldDebit:       2,
				domain.FieldCredit:      3,
			},
		},
		{
			name:    "single amount column",
			headers: []string{"Date", "Description", "Amount"},
			want: map[domain.CanonicalField]int{
				domain.FieldDate:        0,
				domain.FieldDescription: 1,
				domain.FieldAmount:      2,
			},
		},
		{
			name:    "substring containment",
			headers: []string{"Transaction Date", "Transaction Particulars", "Merchant Name"},
			want: map[domain.CanonicalField]int{
				domain.FieldDate:        0,
				domain.FieldDescription: 1,
				domain.FieldMerchant:    2,
			},
		},
		{
			name:    "no canonical columns",
			headers: []string{"foo", "bar"},
			want:    map[domain.CanonicalField]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveHeader(tt.headers)
			if len(got) != len(tt.want) {
				t.Fatalf("resolved %d fields, want %d (%v)", len(got), len(tt.want), got)
			}
			for field, idx := range tt.want {
				gotIdx, ok := got[field]
				if !ok || gotIdx != idx {
					t.Errorf("field %q: got index %d (present=%v), want %d", field, gotIdx, ok, idx)
				}
			}
		})
	}
}

// The left-most header containing a synonym wins when several match.
func TestResolveHeader_LeftmostWins(t *testing.T) {
	cols := ResolveHeader([]string{"Posting Date", "Value Date", "Narration"})
	if cols[domain.FieldDate] != 0 {
		t.Errorf("expected date to resolve to column 0, got %d", cols[domain.FieldDate])
	}
}
