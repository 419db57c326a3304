// Package ledger implements the accounting core: a registry of expense
// groups and, per group, a balance-correct expense ledger.
//
// The Registry is the single point of creation and discovery for groups.
// It assigns group IDs, keeps the append-only list of all groups, and
// maintains per-user reverse indices (groups created, groups joined).
// A Ledger owns one group's membership, its append-only expense log and
// the derived per-member balances.
//
// Every mutating operation takes the acting user explicitly. Operations
// are atomic: all preconditions are checked before any state changes, so
// a rejected call leaves the ledger untouched. Each ledger carries its
// own lock; operations on different groups never contend.
//
// The invariant the package is built around: for every expense, the
// payer's credit equals the sum of the debtors' shares, so the sum of
// all balances in a ledger is always exactly zero.
package ledger
