package classify

import (
	"testing"

	"github.com/finsight/ledgerparse/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		desc string
		want domain.Category
	}{
		{"Rent", domain.CategoryRent},
		{"UPI swiggy@paytm order", domain.CategoryFood},
		{"ZOMATO ONLINE", domain.CategoryFood},
		{"Uber trip 4821", domain.CategoryTransport},
		{"OLA ride", domain.CategoryTransport},
		{"Parabola Labs invoice", domain.CategoryOther}, // "ola" must not match inside a word
		{"Electricity bill payment", domain.CategoryUtilities},
		{"Amazon order 403-291", domain.CategoryShopping},
		{"Apollo pharmacy", domain.CategoryHealthcare},
		{"Netflix subscription", domain.CategoryEntertainment},
		{"SIP installment", domain.CategoryInvestment},
		{"Monthly salary credit", domain.CategorySalary},
		{"Miscellaneous", domain.CategoryOther},
		{"", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Classify(tt.desc); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

// A description matching multiple rule vocabularies must yield the category
// of the earliest rule in the fixed order.
func TestClassify_FirstMatchWins(t *testing.T) {
	// "bigbasket store" matches food ("bigbasket") and shopping ("store");
	// food is earlier in the rule list.
	if got := Classify("BigBasket store order"); got != domain.CategoryFood {
		t.Errorf("expected food to win over shopping, got %q", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	const desc = "Swiggy Instamart grocery"
	first := Classify(desc)
	for i := 0; i < 50; i++ {
		if got := Classify(desc); got != first {
			t.Fatalf("classification changed between calls: %q vs %q", first, got)
		}
	}
}
