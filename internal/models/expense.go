package models

import "github.com/samber/lo"

// Expense is one recorded payment split among a set of debtors.
// Expenses are append-only: once recorded they are never edited or deleted.
type Expense struct {
	// Seq is the expense's position in its group's log, starting at 0.
	// Together with GroupID it identifies the expense.
	Seq int

	// GroupID is the group this expense belongs to.
	GroupID string

	// Title is a short label for the expense (e.g., "Dinner").
	Title string

	// Description is a longer note (e.g., "Restaurant dinner, last night").
	Description string

	// Category is a free-form grouping label (e.g., "Food").
	Category string

	// Amount is the full amount paid, in the smallest currency unit.
	// Always positive.
	Amount int64

	// PayerID is the member who paid and submitted the expense.
	PayerID string

	// Splits holds each debtor's exact share in debtor-list order.
	// The shares sum to exactly Amount.
	Splits []Split

	// ReceiptRef is an optional free-form receipt reference (URL, hash).
	// May be empty.
	ReceiptRef string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one debtor's exact share of an expense.
type Split struct {
	// DebtorID is the member who owes this share.
	DebtorID string

	// Share is the debtor's portion in the smallest currency unit.
	Share int64
}

// Debtors returns the debtor IDs in split order.
func (e *Expense) Debtors() []string {
	return lo.Map(e.Splits, func(s Split, _ int) string { return s.DebtorID })
}
