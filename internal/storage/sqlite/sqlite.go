// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"splitchain/internal/models"
	"splitchain/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveGroup persists a new group and its initial member list.
func (s *SQLiteStore) SaveGroup(ctx context.Context, group *models.Group, members []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, description, creator_id, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Description, group.CreatorID, boolToInt(group.IsActive), group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, userID := range members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id, position) VALUES (?, ?, ?)",
			group.ID, userID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AddMember records a membership addition. A previously removed member's
// row is revived with a fresh position so enumeration order matches the
// in-memory ledger.
func (s *SQLiteStore) AddMember(ctx context.Context, groupID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO group_members (group_id, user_id, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM group_members WHERE group_id = ?))
		ON CONFLICT(group_id, user_id) DO UPDATE SET
			removed = 0,
			position = (SELECT COALESCE(MAX(position) + 1, 0) FROM group_members WHERE group_id = excluded.group_id)
	`, groupID, userID, groupID)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember flags a membership as removed, keeping the row.
func (s *SQLiteStore) RemoveMember(ctx context.Context, groupID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE group_members SET removed = 1 WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// AppendExpense persists one expense and its splits.
func (s *SQLiteStore) AppendExpense(ctx context.Context, exp *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO expenses (group_id, seq, title, description, category, amount, payer_id, receipt_ref, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exp.GroupID, exp.Seq, exp.Title, exp.Description, exp.Category,
		exp.Amount, exp.PayerID, exp.ReceiptRef, exp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range exp.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (group_id, expense_seq, debtor_id, share, position) VALUES (?, ?, ?, ?, ?)",
			exp.GroupID, exp.Seq, split.DebtorID, split.Share, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadLedgers returns every group in creation order with members and
// expenses, ready for registry restore.
func (s *SQLiteStore) LoadLedgers(ctx context.Context) ([]storage.LedgerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, creator_id, is_active, created_at FROM groups ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var records []storage.LedgerRecord
	for rows.Next() {
		var rec storage.LedgerRecord
		var active int
		if err := rows.Scan(&rec.Group.ID, &rec.Group.Name, &rec.Group.Description,
			&rec.Group.CreatorID, &active, &rec.Group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		rec.Group.IsActive = active != 0
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for i := range records {
		rec := &records[i]
		if rec.Members, rec.EverMembers, err = s.loadMembers(ctx, rec.Group.ID); err != nil {
			return nil, err
		}
		if rec.Expenses, err = s.loadExpenses(ctx, rec.Group.ID); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context, groupID string) (members, ever []string, err error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, removed FROM group_members WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var removed int
		if err := rows.Scan(&userID, &removed); err != nil {
			return nil, nil, fmt.Errorf("failed to scan member: %w", err)
		}
		ever = append(ever, userID)
		if removed == 0 {
			members = append(members, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, ever, nil
}

func (s *SQLiteStore) loadExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, title, description, category, amount, payer_id, receipt_ref, created_at
		FROM expenses WHERE group_id = ? ORDER BY seq`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		exp := models.Expense{GroupID: groupID}
		if err := rows.Scan(&exp.Seq, &exp.Title, &exp.Description, &exp.Category,
			&exp.Amount, &exp.PayerID, &exp.ReceiptRef, &exp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		exp := &expenses[i]
		splitRows, err := s.db.QueryContext(ctx,
			"SELECT debtor_id, share FROM expense_splits WHERE group_id = ? AND expense_seq = ? ORDER BY position",
			groupID, exp.Seq,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get splits: %w", err)
		}
		for splitRows.Next() {
			var split models.Split
			if err := splitRows.Scan(&split.DebtorID, &split.Share); err != nil {
				splitRows.Close()
				return nil, fmt.Errorf("failed to scan split: %w", err)
			}
			exp.Splits = append(exp.Splits, split)
		}
		if err := splitRows.Err(); err != nil {
			splitRows.Close()
			return nil, fmt.Errorf("failed to iterate splits: %w", err)
		}
		splitRows.Close()
	}
	return expenses, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
