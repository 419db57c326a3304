package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"splitchain/internal/ledger"
	"splitchain/internal/middleware"
	"splitchain/internal/storage"
	"splitchain/pkg/api"
)

// RegistryService exposes group creation and discovery.
type RegistryService struct {
	registry *ledger.Registry
	store    storage.Store
}

// NewRegistryService creates a RegistryService over the given registry
// and store.
func NewRegistryService(registry *ledger.Registry, store storage.Store) *RegistryService {
	return &RegistryService{registry: registry, store: store}
}

// CreateGroup creates a new expense group with the caller as creator.
func (s *RegistryService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	caller := middleware.CallerID(ctx)
	if caller == "" {
		return nil, callerError()
	}
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}

	led, err := s.registry.CreateGroup(caller, req.Msg.Name, req.Msg.Description, req.Msg.Members)
	if err != nil {
		return nil, rpcError(err)
	}

	meta := led.Meta()
	if err := s.store.SaveGroup(ctx, &meta, led.Members()); err != nil {
		slog.Error("Failed to persist group", "group_id", led.ID(), "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", led.ID(), "creator", caller, "members", len(led.Members()))
	return connect.NewResponse(&api.CreateGroupResponse{Group: groupToWire(led)}), nil
}

// ListGroups returns every group ID in creation order.
func (s *RegistryService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return connect.NewResponse(&api.ListGroupsResponse{GroupIDs: s.registry.AllGroups()}), nil
}

// ListUserCreatedGroups returns the IDs of groups a user created.
func (s *RegistryService) ListUserCreatedGroups(ctx context.Context, req *connect.Request[api.ListUserCreatedGroupsRequest]) (*connect.Response[api.ListUserCreatedGroupsResponse], error) {
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ListUserCreatedGroupsResponse{
		GroupIDs: s.registry.CreatedBy(req.Msg.UserID),
	}), nil
}

// ListUserGroups returns the IDs of groups a user was ever added to.
func (s *RegistryService) ListUserGroups(ctx context.Context, req *connect.Request[api.ListUserGroupsRequest]) (*connect.Response[api.ListUserGroupsResponse], error) {
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ListUserGroupsResponse{
		GroupIDs: s.registry.GroupsOf(req.Msg.UserID),
	}), nil
}

// GetGroup returns one group's metadata and current members.
func (s *RegistryService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	if err := checkRequest(req.Msg); err != nil {
		return nil, err
	}
	led, err := s.registry.Group(req.Msg.GroupID)
	if err != nil {
		return nil, rpcError(err)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: groupToWire(led)}), nil
}

func groupToWire(led *ledger.Ledger) api.Group {
	return api.Group{
		ID:          led.ID(),
		Name:        led.Name(),
		Description: led.Description(),
		CreatorID:   led.Creator(),
		IsActive:    led.IsActive(),
		CreatedAt:   led.CreatedAt(),
		Members:     led.Members(),
	}
}
