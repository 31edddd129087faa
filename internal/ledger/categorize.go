package ledger

import "strings"

// Category is a spending category label.
type Category string

// Spending categories.
const (
	CategoryIncome         Category = "Income"
	CategoryFood           Category = "Food & Dining"
	CategoryGroceries      Category = "Groceries"
	CategoryFuel           Category = "Fuel"
	CategoryEntertainment  Category = "Entertainment"
	CategoryHealthcare     Category = "Healthcare"
	CategoryShopping       Category = "Shopping"
	CategoryTransportation Category = "Transportation"
	CategoryUtilities      Category = "Utilities"
	CategoryRentEMI        Category = "Rent/EMI"
	CategoryOthers         Category = "Others"
)

type categoryRule struct {
	category Category
	keywords []string
}

// categoryRules are evaluated in order; the first category with a matching
// keyword wins.
var categoryRules = []categoryRule{
	{CategoryFood, []string{"food", "swiggy", "zomato", "restaurant"}},
	{CategoryGroceries, []string{"grocery", "supermarket", "vegetables"}},
	{CategoryFuel, []string{"fuel", "petrol", "diesel", "gas"}},
	{CategoryEntertainment, []string{"movie", "entertainment", "netflix", "spotify"}},
	{CategoryHealthcare, []string{"medical", "hospital", "pharmacy", "doctor"}},
	{CategoryShopping, []string{"shopping", "amazon", "flipkart", "myntra"}},
	{CategoryTransportation, []string{"transport", "uber", "ola", "metro"}},
	{CategoryUtilities, []string{"recharge", "mobile", "internet", "wifi"}},
	{CategoryRentEMI, []string{"rent", "emi", "loan"}},
}

// Categorize assigns a spending category by testing the description against
// the keyword rules. The Income rule is checked first; only debit rows are
// ever categorized, so it never fires in practice, but it stays to keep the
// rule table aligned with the statement taxonomy.
func Categorize(description string) Category {
	desc := strings.ToLower(description)

	if strings.Contains(desc, "salary") ||
		(strings.Contains(desc, "transfer") && strings.Contains(desc, "credit")) {
		return CategoryIncome
	}
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.category
			}
		}
	}
	return CategoryOthers
}
