package ledger

import "errors"

// Rejection reasons for registry and ledger operations. Every rejected
// operation is a no-op; callers can match these with errors.Is.
var (
	// ErrGroupNotFound is returned when a group ID resolves to nothing.
	ErrGroupNotFound = errors.New("group not found")

	// ErrNotMember is returned when the acting user, or a referenced
	// debtor, is not a current member of the group.
	ErrNotMember = errors.New("not a group member")

	// ErrNoMembers rejects group creation with an empty member list.
	ErrNoMembers = errors.New("at least one member required")

	// ErrNoDebtors rejects an expense with an empty debtor list.
	ErrNoDebtors = errors.New("at least one debtor required")

	// ErrInvalidAmount rejects a zero or negative expense amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrEmptyField rejects a blank required string field. Wrapped with
	// the field name.
	ErrEmptyField = errors.New("required field is empty")
)
