package models

// MemberBalance is one member's net position in a group.
type MemberBalance struct {
	// MemberID is the user the balance belongs to. The user may have been
	// removed from the group; removal never clears an accrued balance.
	MemberID string

	// Net is the member's position in the smallest currency unit.
	// Positive means the group owes them, negative means they owe the group.
	Net int64
}
