package ledger

import (
	"errors"
	"slices"
	"testing"
)

// newTestLedger builds a three-member group created by "alice".
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	r := NewRegistry()
	led, err := r.CreateGroup("alice", "Trip to Paris", "Vacation expenses", []string{"alice", "bob", "carol"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return led
}

// balanceSum adds up every tracked balance; it must always be zero.
func balanceSum(l *Ledger) int64 {
	var sum int64
	for _, b := range l.Balances() {
		sum += b.Net
	}
	return sum
}

func TestAddExpense(t *testing.T) {
	tests := []struct {
		name     string
		caller   string
		input    ExpenseInput
		wantErr  error
		validate func(t *testing.T, l *Ledger)
	}{
		{
			name:   "payer credited and debtors debited",
			caller: "alice",
			input: ExpenseInput{
				Title:       "Dinner",
				Description: "Restaurant dinner",
				Category:    "Food",
				Amount:      10000,
				Debtors:     []string{"bob", "carol"},
			},
			validate: func(t *testing.T, l *Ledger) {
				if got := l.Balance("alice"); got != 10000 {
					t.Errorf("alice balance = %d, want 10000", got)
				}
				if got := l.Balance("bob"); got != -5000 {
					t.Errorf("bob balance = %d, want -5000", got)
				}
				if got := l.Balance("carol"); got != -5000 {
					t.Errorf("carol balance = %d, want -5000", got)
				}
				if got := len(l.Expenses()); got != 1 {
					t.Errorf("expense count = %d, want 1", got)
				}
			},
		},
		{
			name:   "odd amount splits exactly",
			caller: "alice",
			input: ExpenseInput{
				Title:       "Taxi",
				Description: "Airport ride",
				Category:    "Transport",
				Amount:      101,
				Debtors:     []string{"bob", "carol"},
			},
			validate: func(t *testing.T, l *Ledger) {
				if got := l.Balance("bob"); got != -51 {
					t.Errorf("bob balance = %d, want -51", got)
				}
				if got := l.Balance("carol"); got != -50 {
					t.Errorf("carol balance = %d, want -50", got)
				}
			},
		},
		{
			name:   "self-inclusion nets the payer's own share",
			caller: "alice",
			input: ExpenseInput{
				Title:       "Groceries",
				Description: "Weekly shop",
				Category:    "Food",
				Amount:      9000,
				Debtors:     []string{"alice", "bob", "carol"},
			},
			validate: func(t *testing.T, l *Ledger) {
				if got := l.Balance("alice"); got != 6000 {
					t.Errorf("alice balance = %d, want 6000", got)
				}
				if got := l.Balance("bob"); got != -3000 {
					t.Errorf("bob balance = %d, want -3000", got)
				}
			},
		},
		{
			name:   "duplicate debtors collapse to one share",
			caller: "alice",
			input: ExpenseInput{
				Title:       "Museum",
				Description: "Entry tickets",
				Category:    "Leisure",
				Amount:      100,
				Debtors:     []string{"bob", "bob", "carol"},
			},
			validate: func(t *testing.T, l *Ledger) {
				if got := l.Balance("bob"); got != -50 {
					t.Errorf("bob balance = %d, want -50", got)
				}
				exp := l.Expenses()[0]
				if got := len(exp.Splits); got != 2 {
					t.Errorf("split count = %d, want 2", got)
				}
			},
		},
		{
			name:   "non-member caller rejected",
			caller: "mallory",
			input: ExpenseInput{
				Title:       "Dinner",
				Description: "Restaurant dinner",
				Category:    "Food",
				Amount:      100,
				Debtors:     []string{"bob"},
			},
			wantErr: ErrNotMember,
		},
		{
			name:   "non-member debtor rejected",
			caller: "alice",
			input: ExpenseInput{
				Title:       "Dinner",
				Description: "Restaurant dinner",
				Category:    "Food",
				Amount:      100,
				Debtors:     []string{"bob", "mallory"},
			},
			wantErr: ErrNotMember,
		},
		{
			name:   "zero amount rejected",
			caller: "alice",
			input: ExpenseInput{
				Title:       "Dinner",
				Description: "Restaurant dinner",
				Category:    "Food",
				Amount:      0,
				Debtors:     []string{"bob"},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:   "negative amount rejected",
			caller: "alice",
			input: ExpenseInput{
				Title:       "Dinner",
				Description: "Restaurant dinner",
				Category:    "Food",
				Amount:      -50,
				Debtors:     []string{"bob"},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:   "empty debtor list rejected",
			caller: "alice",
			input: ExpenseInput{
				Title:       "Dinner",
				Description: "Restaurant dinner",
				Category:    "Food",
				Amount:      100,
				Debtors:     nil,
			},
			wantErr: ErrNoDebtors,
		},
		{
			name:   "blank title rejected",
			caller: "alice",
			input: ExpenseInput{
				Title:       "",
				Description: "Restaurant dinner",
				Category:    "Food",
				Amount:      100,
				Debtors:     []string{"bob"},
			},
			wantErr: ErrEmptyField,
		},
		{
			name:   "blank category rejected",
			caller: "alice",
			input: ExpenseInput{
				Title:       "Dinner",
				Description: "Restaurant dinner",
				Category:    "",
				Amount:      100,
				Debtors:     []string{"bob"},
			},
			wantErr: ErrEmptyField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			exp, err := l.AddExpense(tt.caller, tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AddExpense() error = %v, want %v", err, tt.wantErr)
				}
				// A rejected expense must leave no trace.
				if got := len(l.Expenses()); got != 0 {
					t.Errorf("expense count after rejection = %d, want 0", got)
				}
				if got := balanceSum(l); got != 0 {
					t.Errorf("balance sum after rejection = %d, want 0", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("AddExpense() failed: %v", err)
			}
			if exp.Seq != 0 {
				t.Errorf("first expense seq = %d, want 0", exp.Seq)
			}
			if exp.PayerID != tt.caller {
				t.Errorf("payer = %s, want %s", exp.PayerID, tt.caller)
			}
			if exp.CreatedAt == 0 {
				t.Error("expected non-zero CreatedAt")
			}
			if got := balanceSum(l); got != 0 {
				t.Errorf("balance sum = %d, want 0", got)
			}
			if tt.validate != nil {
				tt.validate(t, l)
			}
		})
	}
}

func TestBalancesAlwaysReconcile(t *testing.T) {
	l := newTestLedger(t)

	expenses := []struct {
		caller string
		in     ExpenseInput
	}{
		{"alice", ExpenseInput{Title: "Hotel", Description: "Two nights", Category: "Lodging", Amount: 33333, Debtors: []string{"alice", "bob", "carol"}}},
		{"bob", ExpenseInput{Title: "Lunch", Description: "Cafe", Category: "Food", Amount: 4501, Debtors: []string{"alice", "carol"}}},
		{"carol", ExpenseInput{Title: "Tickets", Description: "Train", Category: "Transport", Amount: 9999, Debtors: []string{"alice", "bob", "carol"}}},
		{"bob", ExpenseInput{Title: "Snacks", Description: "Station kiosk", Category: "Food", Amount: 7, Debtors: []string{"alice", "bob", "carol"}}},
	}

	for i, e := range expenses {
		if _, err := l.AddExpense(e.caller, e.in); err != nil {
			t.Fatalf("expense %d failed: %v", i, err)
		}
		if got := balanceSum(l); got != 0 {
			t.Fatalf("balance sum after expense %d = %d, want 0", i, got)
		}
	}

	if got := len(l.Expenses()); got != len(expenses) {
		t.Errorf("expense count = %d, want %d", got, len(expenses))
	}
	// Sequence numbers follow creation order.
	for i, exp := range l.Expenses() {
		if exp.Seq != i {
			t.Errorf("expense %d has seq %d", i, exp.Seq)
		}
	}
}

func TestMembership(t *testing.T) {
	t.Run("add then remove restores original set", func(t *testing.T) {
		l := newTestLedger(t)
		before := l.Members()

		if err := l.AddMember("alice", "dave"); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if !l.IsMember("dave") {
			t.Error("expected dave to be a member")
		}
		if err := l.RemoveMember("alice", "dave"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}

		after := l.Members()
		if !slices.Equal(before, after) {
			t.Errorf("members = %v, want %v", after, before)
		}
	})

	t.Run("adding an existing member is a no-op", func(t *testing.T) {
		l := newTestLedger(t)
		if err := l.AddMember("alice", "bob"); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if got := len(l.Members()); got != 3 {
			t.Errorf("member count = %d, want 3", got)
		}
	})

	t.Run("removing a non-member is a no-op", func(t *testing.T) {
		l := newTestLedger(t)
		if err := l.RemoveMember("alice", "dave"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if got := len(l.Members()); got != 3 {
			t.Errorf("member count = %d, want 3", got)
		}
	})

	t.Run("non-member caller cannot change membership", func(t *testing.T) {
		l := newTestLedger(t)
		if err := l.AddMember("mallory", "dave"); !errors.Is(err, ErrNotMember) {
			t.Errorf("AddMember error = %v, want ErrNotMember", err)
		}
		if err := l.RemoveMember("mallory", "bob"); !errors.Is(err, ErrNotMember) {
			t.Errorf("RemoveMember error = %v, want ErrNotMember", err)
		}
	})

	t.Run("removal preserves balances", func(t *testing.T) {
		l := newTestLedger(t)
		if _, err := l.AddExpense("alice", ExpenseInput{
			Title: "Dinner", Description: "Restaurant dinner", Category: "Food",
			Amount: 10000, Debtors: []string{"bob", "carol"},
		}); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}

		if err := l.RemoveMember("alice", "bob"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}

		if got := l.Balance("bob"); got != -5000 {
			t.Errorf("removed member balance = %d, want -5000", got)
		}
		if got := l.Balance("alice"); got != 10000 {
			t.Errorf("alice balance = %d, want 10000", got)
		}
		if got := balanceSum(l); got != 0 {
			t.Errorf("balance sum = %d, want 0", got)
		}

		// Removed members cannot be charged again.
		_, err := l.AddExpense("alice", ExpenseInput{
			Title: "Drinks", Description: "Bar round", Category: "Food",
			Amount: 100, Debtors: []string{"bob"},
		})
		if !errors.Is(err, ErrNotMember) {
			t.Errorf("AddExpense error = %v, want ErrNotMember", err)
		}
	})

	t.Run("re-added member rejoins at the end", func(t *testing.T) {
		l := newTestLedger(t)
		if err := l.RemoveMember("alice", "bob"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if err := l.AddMember("alice", "bob"); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		want := []string{"alice", "carol", "bob"}
		if got := l.Members(); !slices.Equal(got, want) {
			t.Errorf("members = %v, want %v", got, want)
		}
	})
}

func TestBalancesIncludeRemovedMembers(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.AddExpense("alice", ExpenseInput{
		Title: "Dinner", Description: "Restaurant dinner", Category: "Food",
		Amount: 100, Debtors: []string{"bob", "carol"},
	}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if err := l.RemoveMember("alice", "carol"); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	balances := l.Balances()
	if got := len(balances); got != 3 {
		t.Fatalf("balance entries = %d, want 3", got)
	}
	// Current members lead in insertion order, removed members follow.
	if balances[0].MemberID != "alice" || balances[1].MemberID != "bob" {
		t.Errorf("unexpected member order: %v", balances)
	}
	if balances[2].MemberID != "carol" || balances[2].Net != -50 {
		t.Errorf("removed member entry = %+v, want carol with -50", balances[2])
	}
}
