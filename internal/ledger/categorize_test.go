package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeKeywords(t *testing.T) {
	cases := map[string]Category{
		"Swiggy order #1234":        CategoryFood,
		"DMart Supermarket":         CategoryGroceries,
		"HP Petrol Pump":            CategoryFuel,
		"NETFLIX.COM subscription":  CategoryEntertainment,
		"Apollo Pharmacy":           CategoryHealthcare,
		"Amazon.in purchase":        CategoryShopping,
		"Uber trip":                 CategoryTransportation,
		"Jio recharge":              CategoryUtilities,
		"House rent March":          CategoryRentEMI,
		"Cash withdrawal ATM":       CategoryOthers,
		"Monthly salary":            CategoryIncome,
		"Transfer credited to a/c":  CategoryIncome,
		"Transfer to savings":       CategoryOthers,
	}
	for desc, want := range cases {
		assert.Equal(t, want, Categorize(desc), "description=%q", desc)
	}
}

func TestCategorizePriorityOrder(t *testing.T) {
	// Groceries is checked before Shopping, so a description matching both
	// resolves to Groceries.
	assert.Equal(t, CategoryGroceries, Categorize("amazon grocery delivery"))

	// Food is checked before Groceries.
	assert.Equal(t, CategoryFood, Categorize("food from the supermarket"))
}

func TestCategorizeIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, CategoryFood, Categorize("ZOMATO ORDER"))
	assert.Equal(t, CategoryShopping, Categorize("FLIPKART"))
}
