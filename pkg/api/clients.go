package api

import (
	"context"

	"connectrpc.com/connect"
)

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// AuthClient is a typed client for the AuthService.
type AuthClient struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthClient builds an AuthService client for the given base URL.
func NewAuthClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthClient {
	opts = clientOptions(opts)
	return &AuthClient{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthLoginProcedure, opts...),
	}
}

func (c *AuthClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// RegistryClient is a typed client for the RegistryService.
type RegistryClient struct {
	createGroup           *connect.Client[CreateGroupRequest, CreateGroupResponse]
	listGroups            *connect.Client[ListGroupsRequest, ListGroupsResponse]
	listUserCreatedGroups *connect.Client[ListUserCreatedGroupsRequest, ListUserCreatedGroupsResponse]
	listUserGroups        *connect.Client[ListUserGroupsRequest, ListUserGroupsResponse]
	getGroup              *connect.Client[GetGroupRequest, GetGroupResponse]
}

// NewRegistryClient builds a RegistryService client for the given base URL.
func NewRegistryClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RegistryClient {
	opts = clientOptions(opts)
	return &RegistryClient{
		createGroup:           connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+RegistryCreateGroupProcedure, opts...),
		listGroups:            connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+RegistryListGroupsProcedure, opts...),
		listUserCreatedGroups: connect.NewClient[ListUserCreatedGroupsRequest, ListUserCreatedGroupsResponse](httpClient, baseURL+RegistryListUserCreatedGroupsProcedure, opts...),
		listUserGroups:        connect.NewClient[ListUserGroupsRequest, ListUserGroupsResponse](httpClient, baseURL+RegistryListUserGroupsProcedure, opts...),
		getGroup:              connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+RegistryGetGroupProcedure, opts...),
	}
}

func (c *RegistryClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *RegistryClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *RegistryClient) ListUserCreatedGroups(ctx context.Context, req *connect.Request[ListUserCreatedGroupsRequest]) (*connect.Response[ListUserCreatedGroupsResponse], error) {
	return c.listUserCreatedGroups.CallUnary(ctx, req)
}

func (c *RegistryClient) ListUserGroups(ctx context.Context, req *connect.Request[ListUserGroupsRequest]) (*connect.Response[ListUserGroupsResponse], error) {
	return c.listUserGroups.CallUnary(ctx, req)
}

func (c *RegistryClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

// LedgerClient is a typed client for the LedgerService.
type LedgerClient struct {
	addExpense       *connect.Client[AddExpenseRequest, AddExpenseResponse]
	addMember        *connect.Client[AddMemberRequest, AddMemberResponse]
	removeMember     *connect.Client[RemoveMemberRequest, RemoveMemberResponse]
	listMembers      *connect.Client[ListMembersRequest, ListMembersResponse]
	listExpenses     *connect.Client[ListExpensesRequest, ListExpensesResponse]
	getMemberBalance *connect.Client[GetMemberBalanceRequest, GetMemberBalanceResponse]
	getBalances      *connect.Client[GetBalancesRequest, GetBalancesResponse]
}

// NewLedgerClient builds a LedgerService client for the given base URL.
func NewLedgerClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerClient {
	opts = clientOptions(opts)
	return &LedgerClient{
		addExpense:       connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+LedgerAddExpenseProcedure, opts...),
		addMember:        connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+LedgerAddMemberProcedure, opts...),
		removeMember:     connect.NewClient[RemoveMemberRequest, RemoveMemberResponse](httpClient, baseURL+LedgerRemoveMemberProcedure, opts...),
		listMembers:      connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+LedgerListMembersProcedure, opts...),
		listExpenses:     connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+LedgerListExpensesProcedure, opts...),
		getMemberBalance: connect.NewClient[GetMemberBalanceRequest, GetMemberBalanceResponse](httpClient, baseURL+LedgerGetMemberBalanceProcedure, opts...),
		getBalances:      connect.NewClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL+LedgerGetBalancesProcedure, opts...),
	}
}

func (c *LedgerClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *LedgerClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *LedgerClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *LedgerClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *LedgerClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *LedgerClient) GetMemberBalance(ctx context.Context, req *connect.Request[GetMemberBalanceRequest]) (*connect.Response[GetMemberBalanceResponse], error) {
	return c.getMemberBalance.CallUnary(ctx, req)
}

func (c *LedgerClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}
