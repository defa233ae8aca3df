// Package classify assigns taxonomy categories to transaction descriptions.
//
// Classification is an explicit ordered rule list evaluated top to bottom;
// the first matching rule wins. The order is part of the contract: a
// description can match several rules' vocabularies (a grocery-delivery
// brand overlaps food and shopping) and reordering would change results.
package classify

import (
	"regexp"
	"strings"

	"github.com/finsight/ledgerparse/internal/domain"
)

// rule pairs a predicate with the category it yields. Keywords match by
// substring containment on the lower-cased input; pattern, when set, matches
// short tokens that need word boundaries ("ola" must not match "cola").
type rule struct {
	category domain.Category
	keywords []string
	pattern  *regexp.Regexp
}

// rules is the fixed priority list. Do not reorder.
var rules = []rule{
	{
		category: domain.CategoryFood,
		keywords: []string{
			"swiggy", "zomato", "restaurant", "cafe", "grocery", "bigbasket",
			"blinkit", "zepto", "instamart", "dominos", "pizza", "mcdonald",
			"kfc", "starbucks", "bakery", "dining", "food",
		},
	},
	{
		category: domain.CategoryTransport,
		keywords: []string{
			"uber", "rapido", "fuel", "petrol", "diesel", "irctc", "railway",
			"flight", "airlines", "parking", "toll", "metro card",
		},
		pattern: regexp.MustCompile(`\b(?:ola|bus|cab|taxi|metro)\b`),
	},
	{
		category: domain.CategoryUtilities,
		keywords: []string{
			"electricity", "water bill", "gas bill", "broadband", "internet",
			"wifi", "recharge", "postpaid", "prepaid", "utility", "bill payment",
		},
		pattern: regexp.MustCompile(`\bdth\b`),
	},
	{
		category: domain.CategoryRent,
		keywords: []string{"rent", "landlord", "lease", "society maintenance"},
	},
	{
		category: domain.CategoryHealthcare,
		keywords: []string{
			"hospital", "pharmacy", "medical", "clinic", "apollo", "medplus",
			"diagnostic", "doctor",
		},
	},
	{
		category: domain.CategoryEntertainment,
		keywords: []string{
			"netflix", "spotify", "prime video", "hotstar", "bookmyshow",
			"cinema", "movie", "pvr", "gaming",
		},
	},
	{
		category: domain.CategoryEducation,
		keywords: []string{
			"udemy", "coursera", "tuition", "school fee", "college fee",
			"course fee", "exam fee",
		},
	},
	{
		category: domain.CategoryShopping,
		keywords: []string{
			"amazon", "flipkart", "myntra", "ajio", "nykaa", "decathlon",
			"mall", "store", "shopping", "retail",
		},
	},
	{
		category: domain.CategoryInvestment,
		keywords: []string{
			"mutual fund", "zerodha", "groww", "dividend", "brokerage",
			"fixed deposit", "ppf",
		},
		pattern: regexp.MustCompile(`\b(?:sip|etf|nps)\b`),
	},
	{
		category: domain.CategorySalary,
		keywords: []string{"salary", "payroll", "stipend", "wages"},
	},
}

// Classify maps a description (optionally including merchant text) to a
// taxonomy category. It always terminates with a value; unmatched input is
// CategoryOther. Pure: the same input yields the same category on every call.
func Classify(description string) domain.Category {
	lower := strings.ToLower(description)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
		if r.pattern != nil && r.pattern.MatchString(lower) {
			return r.category
		}
	}
	return domain.CategoryOther
}
