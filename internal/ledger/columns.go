package ledger

import "strings"

// columnRoles holds the resolved index of each logical column role, or -1
// when the role is absent from the header.
type columnRoles struct {
	date        int
	amount      int
	txType      int
	description int
	balance     int
}

// resolveColumns binds header names to column roles using case-insensitive
// substring matches. The first header that matches a role wins; later
// matches for the same role are ignored.
func resolveColumns(header []string) columnRoles {
	roles := columnRoles{date: -1, amount: -1, txType: -1, description: -1, balance: -1}
	for i, name := range header {
		lower := strings.ToLower(name)
		if roles.date == -1 && strings.Contains(lower, "date") {
			roles.date = i
		}
		if roles.amount == -1 && strings.Contains(lower, "amount") {
			roles.amount = i
		}
		if roles.txType == -1 && (strings.Contains(lower, "type") || strings.Contains(lower, "transaction")) {
			roles.txType = i
		}
		if roles.description == -1 && (strings.Contains(lower, "description") ||
			strings.Contains(lower, "narration") || strings.Contains(lower, "details")) {
			roles.description = i
		}
		if roles.balance == -1 && strings.Contains(lower, "balance") {
			roles.balance = i
		}
	}
	return roles
}
