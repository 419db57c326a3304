// Package api defines the wire surface of the splitchain services:
// request/response types, procedure routes and typed Connect handler and
// client constructors.
//
// The schema is hand-written. Messages are plain structs carried over
// Connect's unary protocol with a JSON codec, so there is no code
// generation step and no protobuf dependency. Handlers and clients are
// shaped like generated Connect code on purpose: servers get a
// (path, http.Handler) pair to mount, callers get a typed client.
package api

import "encoding/json"

// Procedure routes. The leading path segment doubles as the mount prefix
// for each service's handler.
const (
	AuthRegisterProcedure = "/splitchain.v1.AuthService/Register"
	AuthLoginProcedure    = "/splitchain.v1.AuthService/Login"

	RegistryCreateGroupProcedure           = "/splitchain.v1.RegistryService/CreateGroup"
	RegistryListGroupsProcedure            = "/splitchain.v1.RegistryService/ListGroups"
	RegistryListUserCreatedGroupsProcedure = "/splitchain.v1.RegistryService/ListUserCreatedGroups"
	RegistryListUserGroupsProcedure        = "/splitchain.v1.RegistryService/ListUserGroups"
	RegistryGetGroupProcedure              = "/splitchain.v1.RegistryService/GetGroup"

	LedgerAddExpenseProcedure       = "/splitchain.v1.LedgerService/AddExpense"
	LedgerAddMemberProcedure        = "/splitchain.v1.LedgerService/AddMember"
	LedgerRemoveMemberProcedure     = "/splitchain.v1.LedgerService/RemoveMember"
	LedgerListMembersProcedure      = "/splitchain.v1.LedgerService/ListMembers"
	LedgerListExpensesProcedure     = "/splitchain.v1.LedgerService/ListExpenses"
	LedgerGetMemberBalanceProcedure = "/splitchain.v1.LedgerService/GetMemberBalance"
	LedgerGetBalancesProcedure      = "/splitchain.v1.LedgerService/GetBalances"
)

// jsonCodec marshals messages with encoding/json. It replaces Connect's
// default protobuf-backed codecs, which require generated message types.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
