package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/trucred/score-service/internal/models"
)

// monthlyAggregate accumulates credits, debits and transaction count for a
// single YYYY-MM key.
type monthlyAggregate struct {
	credits float64
	debits  float64
	count   int
}

// Analyze ingests a raw CSV ledger and derives behavioral metrics from it.
// The first row must be a header; columns are matched by name, not position.
// Rows with an unparseable or non-positive amount are dropped silently.
func Analyze(r io.Reader) (*models.AnalysisSummary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrEmptyLedger
	}

	roles := resolveColumns(records[0])
	if roles.date == -1 || roles.amount == -1 || roles.description == -1 {
		return nil, &MissingColumnsError{Format: ExpectedFormat}
	}

	transactions := normalizeRows(records[1:], roles)
	if len(transactions) == 0 {
		return nil, ErrEmptyLedger
	}

	monthly := make(map[string]*monthlyAggregate)
	categories := make(map[string]float64)
	for _, t := range transactions {
		key := monthKey(t.Date)
		agg := monthly[key]
		if agg == nil {
			agg = &monthlyAggregate{}
			monthly[key] = agg
		}
		agg.count++
		if t.Type == models.TypeCredit {
			agg.credits += t.Amount
		} else {
			agg.debits += t.Amount
			categories[string(Categorize(t.Description))] += t.Amount
		}
	}

	// Lexicographic order of YYYY-MM keys is chronological.
	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)

	var totalSpending, totalIncome float64
	for _, m := range months {
		totalSpending += monthly[m].debits
		totalIncome += monthly[m].credits
	}
	var avgSpending, avgIncome float64
	if len(months) > 0 {
		avgSpending = totalSpending / float64(len(months))
		avgIncome = totalIncome / float64(len(months))
	}

	// Spending consistency via coefficient of variation across months.
	var variance float64
	if len(months) > 1 {
		for _, m := range months {
			diff := monthly[m].debits - avgSpending
			variance += diff * diff
		}
		variance /= float64(len(months))
	}
	coefficient := 1.0 // zero average spending counts as maximally inconsistent
	if avgSpending > 0 {
		coefficient = math.Sqrt(variance) / avgSpending
	}
	consistentSpending := coefficient < 0.3

	// Regular income: credits exceed half the average spending in at least
	// 70% of months.
	incomeMonths := 0
	for _, m := range months {
		if monthly[m].credits > avgSpending*0.5 {
			incomeMonths++
		}
	}
	regularIncome := float64(incomeMonths) >= float64(len(months))*0.7

	stability := 0
	if consistentSpending {
		stability += 25
	}
	if regularIncome {
		stability += 25
	}
	if avgIncome > avgSpending {
		stability += 20 // positive cash flow
	}
	if len(transactions) > 50 {
		stability += 15 // substantial transaction history
	}
	if avgSpending > 5000 && avgSpending < 100000 {
		stability += 15 // reasonable spending range
	}
	if stability > 100 {
		stability = 100
	}

	trends := make([]models.MonthlyTrend, 0, len(months))
	for _, m := range months {
		trends = append(trends, models.MonthlyTrend{
			Month:    m,
			Income:   monthly[m].credits,
			Spending: monthly[m].debits,
			NetFlow:  monthly[m].credits - monthly[m].debits,
		})
	}

	return &models.AnalysisSummary{
		TotalTransactions:  len(transactions),
		AvgMonthlySpending: math.Round(avgSpending),
		AvgMonthlyIncome:   math.Round(avgIncome),
		ConsistentSpending: consistentSpending,
		RegularIncome:      regularIncome,
		FinancialStability: stability,
		SpendingCategories: categories,
		MonthlyTrends:      trends,
		LargestExpenses:    largestExpenses(transactions),
	}, nil
}

// normalizeRows converts raw CSV rows into typed transactions, dropping rows
// whose amount is missing, unparseable or non-positive.
func normalizeRows(rows [][]string, roles columnRoles) []models.Transaction {
	var transactions []models.Transaction
	for _, row := range rows {
		amount, err := strconv.ParseFloat(field(row, roles.amount), 64)
		if err != nil || math.IsNaN(amount) {
			amount = 0
		}
		amount = math.Abs(amount)
		if amount <= 0 {
			continue
		}

		description := field(row, roles.description)
		txType := models.TypeDebit
		if roles.txType != -1 {
			if strings.Contains(strings.ToLower(field(row, roles.txType)), "credit") {
				txType = models.TypeCredit
			}
		} else {
			// No type column; infer direction from the description.
			desc := strings.ToLower(description)
			if strings.Contains(desc, "credit") || strings.Contains(desc, "salary") ||
				strings.Contains(desc, "refund") {
				txType = models.TypeCredit
			}
		}

		t := models.Transaction{
			Date:        field(row, roles.date),
			Amount:      amount,
			Type:        txType,
			Description: description,
		}
		if roles.balance != -1 {
			if b, err := strconv.ParseFloat(field(row, roles.balance), 64); err == nil {
				t.Balance = b
			}
		}
		transactions = append(transactions, t)
	}
	return transactions
}

// largestExpenses returns the five largest debit transactions, descending by
// amount. The sort is stable, so equal amounts keep ledger order.
func largestExpenses(transactions []models.Transaction) []models.ExpenseItem {
	var debits []models.Transaction
	for _, t := range transactions {
		if t.Type == models.TypeDebit {
			debits = append(debits, t)
		}
	}
	sort.SliceStable(debits, func(i, j int) bool { return debits[i].Amount > debits[j].Amount })
	if len(debits) > 5 {
		debits = debits[:5]
	}

	items := make([]models.ExpenseItem, 0, len(debits))
	for _, t := range debits {
		items = append(items, models.ExpenseItem{
			Description: t.Description,
			Amount:      t.Amount,
			Date:        t.Date,
		})
	}
	return items
}

// monthKey extracts the YYYY-MM prefix of a date string.
func monthKey(date string) string {
	if len(date) > 7 {
		return date[:7]
	}
	return date
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
