package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"splitchain/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitchain-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail = %+v, want ID %s", byEmail, user.ID)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID == nil || byID.Email != user.Email {
		t.Errorf("GetUserByID = %+v, want email %s", byID, user.Email)
	}

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}

	// Duplicate email violates the unique constraint.
	dup := models.NewUser("alice@example.com", "Other Alice", "hash2")
	if err := store.CreateUser(ctx, dup); err == nil {
		t.Error("expected error for duplicate email")
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{
		ID:          "g-1",
		Name:        "Trip to Paris",
		Description: "Vacation expenses",
		CreatorID:   "alice",
		IsActive:    true,
		CreatedAt:   1700000000,
	}
	if err := store.SaveGroup(ctx, group, []string{"alice", "bob", "carol"}); err != nil {
		t.Fatalf("SaveGroup failed: %v", err)
	}

	exp := &models.Expense{
		Seq: 0, GroupID: "g-1", Title: "Dinner", Description: "Restaurant dinner",
		Category: "Food", Amount: 101, PayerID: "alice", ReceiptRef: "r-123",
		Splits:    []models.Split{{DebtorID: "bob", Share: 51}, {DebtorID: "carol", Share: 50}},
		CreatedAt: 1700000100,
	}
	if err := store.AppendExpense(ctx, exp); err != nil {
		t.Fatalf("AppendExpense failed: %v", err)
	}

	if err := store.AddMember(ctx, "g-1", "dave"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := store.RemoveMember(ctx, "g-1", "carol"); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	records, err := store.LoadLedgers(ctx)
	if err != nil {
		t.Fatalf("LoadLedgers failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1", len(records))
	}
	rec := records[0]

	if rec.Group.Name != group.Name || rec.Group.CreatorID != group.CreatorID || !rec.Group.IsActive {
		t.Errorf("group = %+v, want %+v", rec.Group, *group)
	}
	if want := []string{"alice", "bob", "dave"}; !slices.Equal(rec.Members, want) {
		t.Errorf("members = %v, want %v", rec.Members, want)
	}
	if want := []string{"alice", "bob", "carol", "dave"}; !slices.Equal(rec.EverMembers, want) {
		t.Errorf("ever members = %v, want %v", rec.EverMembers, want)
	}

	if len(rec.Expenses) != 1 {
		t.Fatalf("expense count = %d, want 1", len(rec.Expenses))
	}
	got := rec.Expenses[0]
	if got.Title != exp.Title || got.Amount != exp.Amount || got.PayerID != exp.PayerID || got.ReceiptRef != exp.ReceiptRef {
		t.Errorf("expense = %+v, want %+v", got, *exp)
	}
	if len(got.Splits) != 2 || got.Splits[0].Share != 51 || got.Splits[1].Share != 50 {
		t.Errorf("splits = %v, want exact persisted shares", got.Splits)
	}
}

func TestReAddedMemberMovesToEnd(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{ID: "g-2", Name: "Roommates", Description: "Bills", CreatorID: "alice", IsActive: true, CreatedAt: 1}
	if err := store.SaveGroup(ctx, group, []string{"alice", "bob", "carol"}); err != nil {
		t.Fatalf("SaveGroup failed: %v", err)
	}

	if err := store.RemoveMember(ctx, "g-2", "bob"); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if err := store.AddMember(ctx, "g-2", "bob"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	records, err := store.LoadLedgers(ctx)
	if err != nil {
		t.Fatalf("LoadLedgers failed: %v", err)
	}
	if want := []string{"alice", "carol", "bob"}; !slices.Equal(records[0].Members, want) {
		t.Errorf("members = %v, want %v", records[0].Members, want)
	}
}

func TestGroupsLoadInCreationOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"g-a", "g-b", "g-c"} {
		group := &models.Group{ID: id, Name: id, Description: "d", CreatorID: "alice", IsActive: true, CreatedAt: int64(i)}
		if err := store.SaveGroup(ctx, group, []string{"alice"}); err != nil {
			t.Fatalf("SaveGroup failed: %v", err)
		}
	}

	records, err := store.LoadLedgers(ctx)
	if err != nil {
		t.Fatalf("LoadLedgers failed: %v", err)
	}
	var ids []string
	for _, rec := range records {
		ids = append(ids, rec.Group.ID)
	}
	if want := []string{"g-a", "g-b", "g-c"}; !slices.Equal(ids, want) {
		t.Errorf("load order = %v, want %v", ids, want)
	}
}
