// Package models defines the core domain types for splitchain.
//
// # Identity
//
// Users register an account and are referred to everywhere else by their
// user ID (UUID string). Groups are likewise identified by a registry-assigned
// UUID. Both IDs are opaque handles: nothing parses them.
//
// # Money
//
// All amounts are int64 values in the smallest currency unit (cents).
// There is no floating point in the accounting path; equal splits distribute
// the integer remainder deterministically so shares always sum exactly to
// the expense amount. Formatting for humans happens at the edges (CLI).
//
// # Mutability
//
// Group metadata (name, description, creator) is immutable after creation.
// Expenses are append-only: recorded once, never edited or deleted.
// Membership is the only mutable set, and removing a member never rewrites
// history: their accrued balance survives removal.
package models
