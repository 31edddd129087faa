package ledger

import "errors"

// ExpectedFormat is the hint included in caller-facing column errors.
const ExpectedFormat = "Required CSV format: Date (YYYY-MM-DD), Amount (number), Description (text), Type (Credit/Debit - optional)"

// ErrEmptyLedger is returned when a ledger contains no usable transactions,
// either because it has no data rows or because every row was dropped during
// normalization.
var ErrEmptyLedger = errors.New("no transactions found in ledger")

// MissingColumnsError is returned when the mandatory Date, Amount or
// Description columns cannot be resolved from the header row.
type MissingColumnsError struct {
	Format string
}

func (e *MissingColumnsError) Error() string {
	return "required columns missing. " + e.Format
}
