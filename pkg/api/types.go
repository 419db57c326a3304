package api

// User is the wire form of an account. The password hash never leaves
// the server.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

// Group is the wire form of a group: metadata plus current members.
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CreatorID   string   `json:"creator_id"`
	IsActive    bool     `json:"is_active"`
	CreatedAt   int64    `json:"created_at"`
	Members     []string `json:"members"`
}

// Split is one debtor's exact share of an expense.
type Split struct {
	DebtorID string `json:"debtor_id"`
	Share    int64  `json:"share"`
}

// Expense is the wire form of one recorded expense.
type Expense struct {
	Seq         int     `json:"seq"`
	GroupID     string  `json:"group_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      int64   `json:"amount"`
	PayerID     string  `json:"payer_id"`
	Splits      []Split `json:"splits"`
	ReceiptRef  string  `json:"receipt_ref,omitempty"`
	CreatedAt   int64   `json:"created_at"`
}

// MemberBalance is one member's net position in the smallest currency unit.
type MemberBalance struct {
	MemberID string `json:"member_id"`
	Net      int64  `json:"net"`
}

// AuthService messages.

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// RegistryService messages. The acting user always comes from the
// authenticated context, never from the request body.

type CreateGroupRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Members     []string `json:"members" validate:"required,min=1,dive,required"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	GroupIDs []string `json:"group_ids"`
}

type ListUserCreatedGroupsRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type ListUserCreatedGroupsResponse struct {
	GroupIDs []string `json:"group_ids"`
}

type ListUserGroupsRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type ListUserGroupsResponse struct {
	GroupIDs []string `json:"group_ids"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

// LedgerService messages.

type AddExpenseRequest struct {
	GroupID     string   `json:"group_id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Amount      int64    `json:"amount" validate:"required,gt=0"`
	Debtors     []string `json:"debtors" validate:"required,min=1,dive,required"`
	ReceiptRef  string   `json:"receipt_ref,omitempty"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type AddMemberRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}

type AddMemberResponse struct{}

type RemoveMemberRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}

type RemoveMemberResponse struct{}

type ListMembersRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type ListMembersResponse struct {
	MemberIDs []string `json:"member_ids"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type GetMemberBalanceRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}

type GetMemberBalanceResponse struct {
	// Net is positive when the group owes the member.
	Net int64 `json:"net"`
}

type GetBalancesRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

type GetBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
}
