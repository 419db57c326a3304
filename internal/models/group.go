package models

// Group is the registry-level view of one expense group: its identity plus
// the metadata fixed at creation. Live accounting state (membership, the
// expense log, balances) lives in ledger.Ledger; this struct is what gets
// persisted and shipped over the wire.
type Group struct {
	// ID is the registry-assigned identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Trip to Paris").
	Name string

	// Description is a free-form note about what the group is for.
	Description string

	// CreatorID is the user who created the group. Immutable.
	CreatorID string

	// IsActive is set at creation and never cleared in the current
	// surface. Reserved for group archival.
	IsActive bool

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
