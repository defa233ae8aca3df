package domain

// Category is a member of the fixed, closed spending/income taxonomy.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryRent          Category = "rent"
	CategoryHealthcare    Category = "healthcare"
	CategoryEntertainment Category = "entertainment"
	CategoryEducation     Category = "education"
	CategoryInvestment    Category = "investment"
	CategorySalary        Category = "salary"
	CategoryOther         Category = "other"
)

// Categories lists every taxonomy member in a stable order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryUtilities,
	CategoryRent,
	CategoryHealthcare,
	CategoryEntertainment,
	CategoryEducation,
	CategoryInvestment,
	CategorySalary,
	CategoryOther,
}

// ValidCategory reports whether c is a member of the taxonomy.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
