package ledger

import (
	"errors"
	"slices"
	"testing"

	"splitchain/internal/models"
)

func TestCreateGroup(t *testing.T) {
	tests := []struct {
		name        string
		creator     string
		groupName   string
		description string
		members     []string
		wantErr     error
		wantMembers []string
	}{
		{
			name:        "creator listed explicitly",
			creator:     "alice",
			groupName:   "Trip to Paris",
			description: "Vacation expenses",
			members:     []string{"alice", "bob", "carol"},
			wantMembers: []string{"alice", "bob", "carol"},
		},
		{
			name:        "creator added implicitly",
			creator:     "alice",
			groupName:   "Roommates",
			description: "Apartment bills",
			members:     []string{"bob", "carol"},
			wantMembers: []string{"alice", "bob", "carol"},
		},
		{
			name:        "duplicate members collapsed",
			creator:     "alice",
			groupName:   "Work Lunch",
			description: "Office lunches",
			members:     []string{"bob", "bob", "alice"},
			wantMembers: []string{"alice", "bob"},
		},
		{
			name:        "empty member list rejected",
			creator:     "alice",
			groupName:   "Ghost Town",
			description: "Nobody here",
			members:     nil,
			wantErr:     ErrNoMembers,
		},
		{
			name:        "blank name rejected",
			creator:     "alice",
			groupName:   "",
			description: "No name",
			members:     []string{"bob"},
			wantErr:     ErrEmptyField,
		},
		{
			name:        "blank creator rejected",
			creator:     "",
			groupName:   "Orphan",
			description: "No creator",
			members:     []string{"bob"},
			wantErr:     ErrEmptyField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			led, err := r.CreateGroup(tt.creator, tt.groupName, tt.description, tt.members)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CreateGroup() error = %v, want %v", err, tt.wantErr)
				}
				if got := len(r.AllGroups()); got != 0 {
					t.Errorf("group count after rejection = %d, want 0", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateGroup() failed: %v", err)
			}

			if led.ID() == "" {
				t.Error("expected non-empty group ID")
			}
			if led.Name() != tt.groupName {
				t.Errorf("name = %s, want %s", led.Name(), tt.groupName)
			}
			if led.Creator() != tt.creator {
				t.Errorf("creator = %s, want %s", led.Creator(), tt.creator)
			}
			if !led.IsActive() {
				t.Error("new group should be active")
			}
			if got := led.Members(); !slices.Equal(got, tt.wantMembers) {
				t.Errorf("members = %v, want %v", got, tt.wantMembers)
			}
		})
	}
}

func TestRegistryIndices(t *testing.T) {
	r := NewRegistry()

	// No groups yet.
	if got := len(r.AllGroups()); got != 0 {
		t.Fatalf("initial group count = %d, want 0", got)
	}
	if got := r.GroupsOf("alice"); len(got) != 0 {
		t.Fatalf("unknown user groups = %v, want empty", got)
	}

	g1, err := r.CreateGroup("alice", "Weekend Trip", "Short trip expenses", []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	g2, err := r.CreateGroup("bob", "Roommates", "Apartment bills", []string{"bob", "carol"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	all := r.AllGroups()
	if want := []string{g1.ID(), g2.ID()}; !slices.Equal(all, want) {
		t.Errorf("AllGroups() = %v, want %v", all, want)
	}

	if got := r.CreatedBy("alice"); !slices.Equal(got, []string{g1.ID()}) {
		t.Errorf("alice created = %v, want [%s]", got, g1.ID())
	}
	if got := r.CreatedBy("bob"); !slices.Equal(got, []string{g2.ID()}) {
		t.Errorf("bob created = %v, want [%s]", got, g2.ID())
	}
	if got := r.CreatedBy("carol"); len(got) != 0 {
		t.Errorf("carol created = %v, want empty", got)
	}

	if got := r.GroupsOf("bob"); !slices.Equal(got, []string{g1.ID(), g2.ID()}) {
		t.Errorf("bob member of = %v, want both groups", got)
	}
	if got := r.GroupsOf("carol"); !slices.Equal(got, []string{g2.ID()}) {
		t.Errorf("carol member of = %v, want [%s]", got, g2.ID())
	}
}

func TestGroupLookup(t *testing.T) {
	r := NewRegistry()
	created, err := r.CreateGroup("alice", "Test Group", "Lookup test", []string{"alice", "bob"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	// Lookup returns the same canonical ledger, not a copy.
	found, err := r.Group(created.ID())
	if err != nil {
		t.Fatalf("Group() failed: %v", err)
	}
	if found != created {
		t.Error("lookup returned a different ledger instance")
	}

	// A write through one handle is visible through the other.
	if err := found.AddMember("alice", "dave"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if !created.IsMember("dave") {
		t.Error("membership change not visible through creation handle")
	}

	if _, err := r.Group("no-such-id"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("Group() error = %v, want ErrGroupNotFound", err)
	}
}

func TestIndexMember(t *testing.T) {
	r := NewRegistry()
	g, err := r.CreateGroup("alice", "Test Group", "Index test", []string{"alice"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if err := r.IndexMember(g.ID(), "dave"); err != nil {
		t.Fatalf("IndexMember failed: %v", err)
	}
	// Indexing twice must not duplicate the entry.
	if err := r.IndexMember(g.ID(), "dave"); err != nil {
		t.Fatalf("IndexMember failed: %v", err)
	}
	if got := r.GroupsOf("dave"); !slices.Equal(got, []string{g.ID()}) {
		t.Errorf("dave member of = %v, want [%s]", got, g.ID())
	}

	if err := r.IndexMember("no-such-id", "dave"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("IndexMember error = %v, want ErrGroupNotFound", err)
	}
}

func TestRestore(t *testing.T) {
	r := NewRegistry()
	meta := models.Group{
		ID:          "g-1",
		Name:        "Restored",
		Description: "Rebuilt from storage",
		CreatorID:   "alice",
		IsActive:    true,
		CreatedAt:   1700000000,
	}
	expenses := []models.Expense{
		{
			Seq: 0, GroupID: "g-1", Title: "Dinner", Description: "Restaurant dinner",
			Category: "Food", Amount: 101, PayerID: "alice",
			Splits:    []models.Split{{DebtorID: "bob", Share: 51}, {DebtorID: "carol", Share: 50}},
			CreatedAt: 1700000100,
		},
	}

	// carol was removed at some point but stays in the ever-member index.
	led := r.Restore(meta, []string{"alice", "bob"}, []string{"alice", "bob", "carol"}, expenses)

	if got := led.Balance("alice"); got != 101 {
		t.Errorf("alice balance = %d, want 101", got)
	}
	if got := led.Balance("bob"); got != -51 {
		t.Errorf("bob balance = %d, want -51", got)
	}
	if got := led.Balance("carol"); got != -50 {
		t.Errorf("carol balance = %d, want -50", got)
	}
	if led.IsMember("carol") {
		t.Error("carol should not be a current member")
	}
	if got := r.GroupsOf("carol"); !slices.Equal(got, []string{"g-1"}) {
		t.Errorf("carol member of = %v, want [g-1]", got)
	}
	if got := r.AllGroups(); !slices.Equal(got, []string{"g-1"}) {
		t.Errorf("AllGroups() = %v, want [g-1]", got)
	}

	// Restored ledgers keep accepting expenses with continuing sequence.
	exp, err := led.AddExpense("bob", ExpenseInput{
		Title: "Coffee", Description: "Morning round", Category: "Food",
		Amount: 10, Debtors: []string{"alice"},
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if exp.Seq != 1 {
		t.Errorf("seq = %d, want 1", exp.Seq)
	}
}
