package ledger

import (
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"splitchain/internal/models"
)

// Ledger is one group's accounting state: membership, the append-only
// expense log and the derived per-member balances.
//
// All methods are safe for concurrent use. Mutations lock the ledger for
// their full duration, so no caller ever observes a partially applied
// expense.
type Ledger struct {
	mu sync.RWMutex

	id          string
	name        string
	description string
	creatorID   string
	active      bool
	createdAt   int64

	members  []string        // current members, insertion order
	present  map[string]bool // membership lookup
	expenses []models.Expense
	balances map[string]int64
}

// newLedger builds an active ledger. members must already be deduplicated
// and include the creator; the Registry takes care of that.
func newLedger(id, name, description, creatorID string, members []string, createdAt int64) *Ledger {
	l := &Ledger{
		id:          id,
		name:        name,
		description: description,
		creatorID:   creatorID,
		active:      true,
		createdAt:   createdAt,
		members:     slices.Clone(members),
		present:     make(map[string]bool, len(members)),
		balances:    make(map[string]int64),
	}
	for _, m := range members {
		l.present[m] = true
	}
	return l
}

// ID returns the registry-assigned group identifier.
func (l *Ledger) ID() string { return l.id }

// Name returns the group's display name.
func (l *Ledger) Name() string { return l.name }

// Description returns the group's description.
func (l *Ledger) Description() string { return l.description }

// Creator returns the user ID of the group's creator.
func (l *Ledger) Creator() string { return l.creatorID }

// CreatedAt returns the group's creation Unix timestamp.
func (l *Ledger) CreatedAt() int64 { return l.createdAt }

// IsActive reports whether the group is active. Nothing in the current
// surface deactivates a group; the flag is reserved for archival.
func (l *Ledger) IsActive() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Meta returns the group's immutable metadata as a persistable record.
func (l *Ledger) Meta() models.Group {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return models.Group{
		ID:          l.id,
		Name:        l.name,
		Description: l.description,
		CreatorID:   l.creatorID,
		IsActive:    l.active,
		CreatedAt:   l.createdAt,
	}
}

// ExpenseInput carries the caller-supplied fields of a new expense.
type ExpenseInput struct {
	Title       string
	Description string
	Category    string
	Amount      int64 // smallest currency unit, must be positive
	Debtors     []string
	ReceiptRef  string // optional
}

// AddExpense records an expense paid by caller and split equally among the
// debtors. Duplicate debtors are deduplicated (order-preserving). The
// expense is appended to the log and balances are updated in one step:
// the payer is credited the full amount and each debtor debited their
// share. A payer who lists themselves as a debtor nets out their own share.
//
// Returns the new expense's sequence number. The caller and every debtor
// must be current members.
func (l *Ledger) AddExpense(caller string, in ExpenseInput) (*models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.present[caller] {
		return nil, fmt.Errorf("%w: %s", ErrNotMember, caller)
	}
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title", ErrEmptyField)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description", ErrEmptyField)
	}
	if in.Category == "" {
		return nil, fmt.Errorf("%w: category", ErrEmptyField)
	}
	debtors := lo.Uniq(in.Debtors)
	if len(debtors) == 0 {
		return nil, ErrNoDebtors
	}
	for _, d := range debtors {
		if !l.present[d] {
			return nil, fmt.Errorf("%w: debtor %s", ErrNotMember, d)
		}
	}

	shares := SplitEqually(in.Amount, len(debtors))
	splits := make([]models.Split, len(debtors))
	for i, d := range debtors {
		splits[i] = models.Split{DebtorID: d, Share: shares[i]}
	}

	exp := models.Expense{
		Seq:         len(l.expenses),
		GroupID:     l.id,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		PayerID:     caller,
		Splits:      splits,
		ReceiptRef:  in.ReceiptRef,
		CreatedAt:   time.Now().Unix(),
	}
	l.apply(exp)
	return &exp, nil
}

// apply appends an expense and folds it into the balances. Preconditions
// must already hold; shares are trusted as persisted or computed.
func (l *Ledger) apply(exp models.Expense) {
	l.expenses = append(l.expenses, exp)
	l.balances[exp.PayerID] += exp.Amount
	for _, s := range exp.Splits {
		l.balances[s.DebtorID] -= s.Share
	}
}

// AddMember adds user to the group. Adding an existing member is a no-op
// success. The caller must be a current member.
func (l *Ledger) AddMember(caller, user string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.present[caller] {
		return fmt.Errorf("%w: %s", ErrNotMember, caller)
	}
	if user == "" {
		return fmt.Errorf("%w: user", ErrEmptyField)
	}
	if l.present[user] {
		return nil
	}
	l.present[user] = true
	l.members = append(l.members, user)
	return nil
}

// RemoveMember removes user from the group. Removing a non-member is a
// no-op success. Past expenses and the removed user's accrued balance are
// untouched; they only lose eligibility for future expenses. The caller
// must be a current member.
func (l *Ledger) RemoveMember(caller, user string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.present[caller] {
		return fmt.Errorf("%w: %s", ErrNotMember, caller)
	}
	if !l.present[user] {
		return nil
	}
	delete(l.present, user)
	l.members = slices.DeleteFunc(l.members, func(m string) bool { return m == user })
	return nil
}

// IsMember reports whether user is a current member.
func (l *Ledger) IsMember(user string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.present[user]
}

// Members returns the current members in insertion order.
func (l *Ledger) Members() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.members)
}

// Expenses returns the full expense log in creation order.
func (l *Ledger) Expenses() []models.Expense {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.expenses)
}

// Balance returns user's net position. Users with no recorded activity,
// members or not, read as zero.
func (l *Ledger) Balance(user string) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[user]
}

// Balances returns every member's net position: current members first in
// insertion order, then removed members with recorded activity, sorted by
// ID for stable output.
func (l *Ledger) Balances() []models.MemberBalance {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.MemberBalance, 0, len(l.members))
	for _, m := range l.members {
		out = append(out, models.MemberBalance{MemberID: m, Net: l.balances[m]})
	}
	var removed []string
	for id := range l.balances {
		if !l.present[id] {
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	for _, id := range removed {
		out = append(out, models.MemberBalance{MemberID: id, Net: l.balances[id]})
	}
	return out
}
