package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/samber/lo"

	"splitchain/internal/ledger"
	"splitchain/internal/middleware"
	"splitchain/internal/models"
	"splitchain/internal/storage"
	"splitchain/pkg/api"
)

// LedgerService exposes per-group accounting: expenses, membership and
// balances. Every call resolves the group through the registry, so all
// handles share the one canonical ledger.
type LedgerService struct {
	registry *ledger.Registry
	store    storage.Store
}

// NewLedgerService creates a LedgerService over the given registry and
// store.
func NewLedgerService(registry *ledger.Registry, store storage.Store) *LedgerService {
	return &LedgerService{registry: registry, store: store}
}

// AddExpense records an expense paid by the caller.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	caller := middleware.CallerID(ctx)
	if caller == "" {
		return nil, callerError()
	}
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}

	led, err := s.registry.Group(req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}

	exp, err := led.AddExpense(caller, ledger.ExpenseInput{
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		Category:    req.Msg.Category,
		Amount:      req.Msg.Amount,
		Debtors:     req.Msg.Debtors,
		ReceiptRef:  req.Msg.ReceiptRef,
	})
	if err != nil {
		return nil, rpcError(err)
	}

	if err := s.store.AppendExpense(ctx, exp); err != nil {
		slog.Error("Failed to persist expense", "group_id", led.ID(), "seq", exp.Seq, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Expense recorded",
		"group_id", led.ID(),
		"seq", exp.Seq,
		"payer", caller,
		"amount", exp.Amount,
		"debtors", len(exp.Splits),
	)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: expenseToWire(exp)}), nil
}

// AddMember adds a user to the group's member set.
func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	caller := middleware.CallerID(ctx)
	if caller == "" {
		return nil, callerError()
	}
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}

	led, err := s.registry.Group(req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}
	if err := led.AddMember(caller, req.Msg.UserID); err != nil {
		return nil, rpcError(err)
	}
	if err := s.registry.IndexMember(led.ID(), req.Msg.UserID); err != nil {
		return nil, rpcError(err)
	}
	if err := s.store.AddMember(ctx, led.ID(), req.Msg.UserID); err != nil {
		slog.Error("Failed to persist member", "group_id", led.ID(), "user_id", req.Msg.UserID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Member added", "group_id", led.ID(), "user_id", req.Msg.UserID, "caller", caller)
	return connect.NewResponse(&api.AddMemberResponse{}), nil
}

// RemoveMember removes a user from the group's member set. The user's
// accrued balance and past expenses are untouched.
func (s *LedgerService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	caller := middleware.CallerID(ctx)
	if caller == "" {
		return nil, callerError()
	}
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}

	led, err := s.registry.Group(req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}
	if err := led.RemoveMember(caller, req.Msg.UserID); err != nil {
		return nil, rpcError(err)
	}
	if err := s.store.RemoveMember(ctx, led.ID(), req.Msg.UserID); err != nil {
		slog.Error("Failed to persist member removal", "group_id", led.ID(), "user_id", req.Msg.UserID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Member removed", "group_id", led.ID(), "user_id", req.Msg.UserID, "caller", caller)
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// ListMembers returns the current members in insertion order.
func (s *LedgerService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}
	led, err := s.registry.Group(req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.ListMembersResponse{MemberIDs: led.Members()}), nil
}

// ListExpenses returns the full expense log in creation order.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}
	led, err := s.registry.Group(req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}
	expenses := led.Expenses()
	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses: lo.Map(expenses, func(exp models.Expense, _ int) api.Expense {
			return expenseToWire(&exp)
		}),
	}), nil
}

// GetMemberBalance returns one user's net position, zero for users with
// no recorded activity.
func (s *LedgerService) GetMemberBalance(ctx context.Context, req *connect.Request[api.GetMemberBalanceRequest]) (*connect.Response[api.GetMemberBalanceResponse], error) {
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}
	led, err := s.registry.Group(req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.GetMemberBalanceResponse{Net: led.Balance(req.Msg.UserID)}), nil
}

// GetBalances returns every tracked balance in the group.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}
	led, err := s.registry.Group(req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.GetBalancesResponse{
		Balances: lo.Map(led.Balances(), func(b models.MemberBalance, _ int) api.MemberBalance {
			return api.MemberBalance{MemberID: b.MemberID, Net: b.Net}
		}),
	}), nil
}

func expenseToWire(exp *models.Expense) api.Expense {
	return api.Expense{
		Seq:         exp.Seq,
		GroupID:     exp.GroupID,
		Title:       exp.Title,
		Description: exp.Description,
		Category:    exp.Category,
		Amount:      exp.Amount,
		PayerID:     exp.PayerID,
		Splits: lo.Map(exp.Splits, func(s models.Split, _ int) api.Split {
			return api.Split{DebtorID: s.DebtorID, Share: s.Share}
		}),
		ReceiptRef: exp.ReceiptRef,
		CreatedAt:  exp.CreatedAt,
	}
}
