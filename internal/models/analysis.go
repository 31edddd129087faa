package models

// AnalysisSummary represents the behavioral metrics derived from a ledger
type AnalysisSummary struct {
	TotalTransactions  int                `json:"totalTransactions"`
	AvgMonthlySpending float64            `json:"avgMonthlySpending"`
	AvgMonthlyIncome   float64            `json:"avgMonthlyIncome"`
	ConsistentSpending bool               `json:"consistentSpending"`
	RegularIncome      bool               `json:"regularIncome"`
	FinancialStability int                `json:"financialStability"`
	SpendingCategories map[string]float64 `json:"spendingCategories"`
	MonthlyTrends      []MonthlyTrend     `json:"monthlyTrends"`
	LargestExpenses    []ExpenseItem      `json:"largestExpenses"`
}

// MonthlyTrend represents income and spending for a single month
type MonthlyTrend struct {
	Month    string  `json:"month"` // Format: YYYY-MM
	Income   float64 `json:"income"`
	Spending float64 `json:"spending"`
	NetFlow  float64 `json:"netFlow"`
}

// ExpenseItem represents one of the largest debit transactions
type ExpenseItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}
