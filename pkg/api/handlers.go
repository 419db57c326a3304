package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AuthHandler is the server-side interface of the AuthService.
type AuthHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// RegistryHandler is the server-side interface of the RegistryService.
type RegistryHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	ListUserCreatedGroups(context.Context, *connect.Request[ListUserCreatedGroupsRequest]) (*connect.Response[ListUserCreatedGroupsResponse], error)
	ListUserGroups(context.Context, *connect.Request[ListUserGroupsRequest]) (*connect.Response[ListUserGroupsResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
}

// LedgerHandler is the server-side interface of the LedgerService.
type LedgerHandler interface {
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	GetMemberBalance(context.Context, *connect.Request[GetMemberBalanceRequest]) (*connect.Response[GetMemberBalanceResponse], error)
	GetBalances(context.Context, *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// NewAuthServiceHandler builds an HTTP handler for an AuthHandler.
// It returns the path prefix to mount the handler on.
func NewAuthServiceHandler(svc AuthHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthRegisterProcedure, connect.NewUnaryHandler(AuthRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthLoginProcedure, connect.NewUnaryHandler(AuthLoginProcedure, svc.Login, opts...))
	return "/splitchain.v1.AuthService/", mux
}

// NewRegistryServiceHandler builds an HTTP handler for a RegistryHandler.
// It returns the path prefix to mount the handler on.
func NewRegistryServiceHandler(svc RegistryHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(RegistryCreateGroupProcedure, connect.NewUnaryHandler(RegistryCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(RegistryListGroupsProcedure, connect.NewUnaryHandler(RegistryListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(RegistryListUserCreatedGroupsProcedure, connect.NewUnaryHandler(RegistryListUserCreatedGroupsProcedure, svc.ListUserCreatedGroups, opts...))
	mux.Handle(RegistryListUserGroupsProcedure, connect.NewUnaryHandler(RegistryListUserGroupsProcedure, svc.ListUserGroups, opts...))
	mux.Handle(RegistryGetGroupProcedure, connect.NewUnaryHandler(RegistryGetGroupProcedure, svc.GetGroup, opts...))
	return "/splitchain.v1.RegistryService/", mux
}

// NewLedgerServiceHandler builds an HTTP handler for a LedgerHandler.
// It returns the path prefix to mount the handler on.
func NewLedgerServiceHandler(svc LedgerHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerAddExpenseProcedure, connect.NewUnaryHandler(LedgerAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(LedgerAddMemberProcedure, connect.NewUnaryHandler(LedgerAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(LedgerRemoveMemberProcedure, connect.NewUnaryHandler(LedgerRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(LedgerListMembersProcedure, connect.NewUnaryHandler(LedgerListMembersProcedure, svc.ListMembers, opts...))
	mux.Handle(LedgerListExpensesProcedure, connect.NewUnaryHandler(LedgerListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(LedgerGetMemberBalanceProcedure, connect.NewUnaryHandler(LedgerGetMemberBalanceProcedure, svc.GetMemberBalance, opts...))
	mux.Handle(LedgerGetBalancesProcedure, connect.NewUnaryHandler(LedgerGetBalancesProcedure, svc.GetBalances, opts...))
	return "/splitchain.v1.LedgerService/", mux
}
