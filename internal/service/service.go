// Package service implements the Connect services on top of the
// accounting core. The registry is the working state; every successful
// mutation is written through to the store, and the registry is rebuilt
// from the store at startup.
package service

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"splitchain/internal/auth"
	"splitchain/internal/ledger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkRequest validates a request message's struct tags.
func checkRequest(msg any) error {
	if err := validate.Struct(msg); err != nil {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// rpcError maps core rejection reasons to Connect codes. Anything
// unrecognized is an internal error.
func rpcError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrGroupNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrNotMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, ledger.ErrNoMembers),
		errors.Is(err, ledger.ErrNoDebtors),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrEmptyField):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// callerError is returned when no authenticated user is on the context.
func callerError() error {
	return connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
}
