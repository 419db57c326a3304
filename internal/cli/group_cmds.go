package cli

import (
	"context"
	"flag"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/subcommands"

	"splitchain/pkg/api"
)

type createGroupCmd struct {
	name        string
	description string
	members     string
}

func (*createGroupCmd) Name() string     { return "create-group" }
func (*createGroupCmd) Synopsis() string { return "create a new expense group" }
func (*createGroupCmd) Usage() string {
	return `create-group -name <name> -desc <description> -members <id,id,...>

  Creates a group with the given members. You are always included as a
  member and recorded as the creator.
`
}

func (c *createGroupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Group name (required)")
	f.StringVar(&c.description, "desc", "", "Group description (required)")
	f.StringVar(&c.members, "members", "", "Comma-separated member user IDs (required)")
}

func (c *createGroupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	members := splitList(c.members)
	if c.name == "" || c.description == "" || len(members) == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	req, err := withAuth(connect.NewRequest(&api.CreateGroupRequest{
		Name:        c.name,
		Description: c.description,
		Members:     members,
	}))
	if err != nil {
		return fail(err)
	}
	resp, err := registryClient().CreateGroup(ctx, req)
	if err != nil {
		return fail(err)
	}

	g := resp.Msg.Group
	fmt.Printf("Created group %q (%s) with %d members\n", g.Name, g.ID, len(g.Members))
	return subcommands.ExitSuccess
}

type groupsCmd struct {
	user    string
	created bool
}

func (*groupsCmd) Name() string     { return "groups" }
func (*groupsCmd) Synopsis() string { return "list groups" }
func (*groupsCmd) Usage() string {
	return `groups [-user <id> [-created]]

  Without flags, lists every group. With -user, lists the groups the
  user belongs to; add -created to list only the groups they created.
`
}

func (c *groupsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Filter by user ID")
	f.BoolVar(&c.created, "created", false, "Only groups the user created (needs -user)")
}

func (c *groupsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ids, status := c.groupIDs(ctx, f)
	if status != subcommands.ExitSuccess {
		return status
	}

	table := newTable([]string{"ID", "Name", "Creator", "Members"})
	for _, id := range ids {
		req, err := withAuth(connect.NewRequest(&api.GetGroupRequest{GroupID: id}))
		if err != nil {
			return fail(err)
		}
		resp, err := registryClient().GetGroup(ctx, req)
		if err != nil {
			return fail(err)
		}
		g := resp.Msg.Group
		table.Append([]string{g.ID, g.Name, g.CreatorID, fmt.Sprintf("%d", len(g.Members))})
	}
	table.Render()
	return subcommands.ExitSuccess
}

func (c *groupsCmd) groupIDs(ctx context.Context, f *flag.FlagSet) ([]string, subcommands.ExitStatus) {
	if c.created && c.user == "" {
		f.Usage()
		return nil, subcommands.ExitUsageError
	}

	switch {
	case c.created:
		req, err := withAuth(connect.NewRequest(&api.ListUserCreatedGroupsRequest{UserID: c.user}))
		if err != nil {
			return nil, fail(err)
		}
		resp, err := registryClient().ListUserCreatedGroups(ctx, req)
		if err != nil {
			return nil, fail(err)
		}
		return resp.Msg.GroupIDs, subcommands.ExitSuccess
	case c.user != "":
		req, err := withAuth(connect.NewRequest(&api.ListUserGroupsRequest{UserID: c.user}))
		if err != nil {
			return nil, fail(err)
		}
		resp, err := registryClient().ListUserGroups(ctx, req)
		if err != nil {
			return nil, fail(err)
		}
		return resp.Msg.GroupIDs, subcommands.ExitSuccess
	default:
		req, err := withAuth(connect.NewRequest(&api.ListGroupsRequest{}))
		if err != nil {
			return nil, fail(err)
		}
		resp, err := registryClient().ListGroups(ctx, req)
		if err != nil {
			return nil, fail(err)
		}
		return resp.Msg.GroupIDs, subcommands.ExitSuccess
	}
}

type addMemberCmd struct {
	group string
	user  string
}

func (*addMemberCmd) Name() string     { return "add-member" }
func (*addMemberCmd) Synopsis() string { return "add a member to a group" }
func (*addMemberCmd) Usage() string {
	return `add-member -group <group id> -user <user id>

  Adds a user to a group. Adding an existing member is a no-op.
`
}

func (c *addMemberCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Group ID (required)")
	f.StringVar(&c.user, "user", "", "User ID to add (required)")
}

func (c *addMemberCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.group == "" || c.user == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	req, err := withAuth(connect.NewRequest(&api.AddMemberRequest{GroupID: c.group, UserID: c.user}))
	if err != nil {
		return fail(err)
	}
	if _, err := ledgerClient().AddMember(ctx, req); err != nil {
		return fail(err)
	}

	fmt.Printf("Added %s to %s\n", c.user, c.group)
	return subcommands.ExitSuccess
}

type removeMemberCmd struct {
	group string
	user  string
}

func (*removeMemberCmd) Name() string     { return "remove-member" }
func (*removeMemberCmd) Synopsis() string { return "remove a member from a group" }
func (*removeMemberCmd) Usage() string {
	return `remove-member -group <group id> -user <user id>

  Removes a user from a group. Their past expenses and balance stay on
  the ledger; they just cannot take part in new expenses.
`
}

func (c *removeMemberCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Group ID (required)")
	f.StringVar(&c.user, "user", "", "User ID to remove (required)")
}

func (c *removeMemberCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.group == "" || c.user == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	req, err := withAuth(connect.NewRequest(&api.RemoveMemberRequest{GroupID: c.group, UserID: c.user}))
	if err != nil {
		return fail(err)
	}
	if _, err := ledgerClient().RemoveMember(ctx, req); err != nil {
		return fail(err)
	}

	fmt.Printf("Removed %s from %s\n", c.user, c.group)
	return subcommands.ExitSuccess
}
