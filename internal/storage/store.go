// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"splitchain/internal/models"
)

// LedgerRecord is everything needed to rebuild one group's ledger:
// metadata, current members (insertion order), every member ever added
// (for the registry's memberOf index) and the expense log with persisted
// per-debtor shares so replayed balances reproduce the original rounding.
type LedgerRecord struct {
	Group       models.Group
	Members     []string
	EverMembers []string
	Expenses    []models.Expense
}

// Store defines the persistence surface consumed by the services.
// The in-memory registry is the source of truth while running; the store
// is written through on every successful mutation and read back only at
// startup. This abstraction keeps the backend swappable.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	// Returns nil, nil if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns nil, nil if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// SaveGroup persists a newly created group and its initial members.
	SaveGroup(ctx context.Context, group *models.Group, members []string) error

	// AddMember records a membership addition. Re-adding a previously
	// removed member revives the existing row.
	AddMember(ctx context.Context, groupID, userID string) error

	// RemoveMember marks a membership as removed. The row is kept so the
	// ever-member history survives restarts.
	RemoveMember(ctx context.Context, groupID, userID string) error

	// AppendExpense persists one expense with its splits.
	AppendExpense(ctx context.Context, exp *models.Expense) error

	// LoadLedgers returns every group in creation order, ready for
	// registry restore.
	LoadLedgers(ctx context.Context) ([]LedgerRecord, error)

	// Close releases any resources held by the store.
	Close() error
}
