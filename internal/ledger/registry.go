package ledger

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"splitchain/internal/models"
)

// Registry creates groups and indexes them. It owns no financial logic:
// after creation, callers interact with the returned Ledger directly and
// the registry only answers discovery queries.
//
// The group list and the per-user index sequences are append-only. All
// index writes happen under the registry lock, which gives the
// single-writer-per-key ordering guarantee for concurrent creations.
type Registry struct {
	mu        sync.RWMutex
	ledgers   map[string]*Ledger
	allGroups []string            // creation order, never shrinks
	createdBy map[string][]string // user ID -> groups they created
	memberOf  map[string][]string // user ID -> groups they were ever added to
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ledgers:   make(map[string]*Ledger),
		createdBy: make(map[string][]string),
		memberOf:  make(map[string][]string),
	}
}

// CreateGroup instantiates a new ledger and records it. The creator is
// always a member, whether or not initialMembers lists them; duplicates
// in initialMembers are collapsed, preserving first-seen order.
func (r *Registry) CreateGroup(creator, name, description string, initialMembers []string) (*Ledger, error) {
	if creator == "" {
		return nil, fmt.Errorf("%w: creator", ErrEmptyField)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrEmptyField)
	}
	if description == "" {
		return nil, fmt.Errorf("%w: description", ErrEmptyField)
	}
	if len(initialMembers) == 0 {
		return nil, ErrNoMembers
	}

	members := lo.Uniq(append([]string{creator}, initialMembers...))
	led := newLedger(uuid.New().String(), name, description, creator, members, time.Now().Unix())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.install(led, members)
	return led, nil
}

// install records a ledger in the group list and both reverse indices.
// Callers hold r.mu.
func (r *Registry) install(led *Ledger, everMembers []string) {
	r.ledgers[led.ID()] = led
	r.allGroups = append(r.allGroups, led.ID())
	r.createdBy[led.Creator()] = append(r.createdBy[led.Creator()], led.ID())
	for _, m := range everMembers {
		r.memberOf[m] = append(r.memberOf[m], led.ID())
	}
}

// Group resolves a group ID to its one canonical ledger. Handles obtained
// at creation and through lookup share the same state.
func (r *Registry) Group(id string) (*Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	led, ok := r.ledgers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}
	return led, nil
}

// AllGroups returns every group ID in creation order.
func (r *Registry) AllGroups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.allGroups)
}

// CreatedBy returns the IDs of groups the user created, in creation order.
// Unknown users get an empty slice.
func (r *Registry) CreatedBy(user string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.createdBy[user])
}

// GroupsOf returns the IDs of groups the user was ever added to. Removal
// from a group does not remove the index entry.
func (r *Registry) GroupsOf(user string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.memberOf[user])
}

// IndexMember records that user was added to an existing group after
// creation, keeping the memberOf index in step with ledger membership.
// Indexing the same pair twice is a no-op.
func (r *Registry) IndexMember(groupID, user string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ledgers[groupID]; !ok {
		return fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	if slices.Contains(r.memberOf[user], groupID) {
		return nil
	}
	r.memberOf[user] = append(r.memberOf[user], groupID)
	return nil
}

// Restore rebuilds a group from persisted state and installs it, replaying
// the stored expense splits into balances. Used by the startup loader;
// groups must be restored in their original creation order.
func (r *Registry) Restore(meta models.Group, members, everMembers []string, expenses []models.Expense) *Ledger {
	led := newLedger(meta.ID, meta.Name, meta.Description, meta.CreatorID, members, meta.CreatedAt)
	led.active = meta.IsActive
	for _, exp := range expenses {
		led.apply(exp)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.install(led, everMembers)
	return led
}
