package models

// Transaction directions.
const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Transaction represents a single normalized ledger entry
type Transaction struct {
	Date        string  `json:"date"` // Format: YYYY-MM-DD
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Balance     float64 `json:"balance,omitempty"`
}
