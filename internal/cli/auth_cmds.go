package cli

import (
	"context"
	"flag"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/subcommands"

	"splitchain/pkg/api"
)

type registerCmd struct {
	email    string
	name     string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create an account on the server" }
func (*registerCmd) Usage() string {
	return `register -email <email> -name <display name> -password <password>

  Creates an account and stores the session token locally.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address (required)")
	f.StringVar(&c.name, "name", "", "Display name (required)")
	f.StringVar(&c.password, "password", "", "Password, at least 8 characters (required)")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.name == "" || c.password == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	resp, err := authClient().Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       c.email,
		DisplayName: c.name,
		Password:    c.password,
	}))
	if err != nil {
		return fail(err)
	}
	if err := saveToken(resp.Msg.Token); err != nil {
		return fail(err)
	}

	fmt.Printf("Registered as %s (user ID %s)\n", resp.Msg.User.DisplayName, resp.Msg.User.ID)
	return subcommands.ExitSuccess
}

type loginCmd struct {
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in and cache a session token" }
func (*loginCmd) Usage() string {
	return `login -email <email> -password <password>

  Authenticates against the server and stores the session token locally.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address (required)")
	f.StringVar(&c.password, "password", "", "Password (required)")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.email == "" || c.password == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	resp, err := authClient().Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    c.email,
		Password: c.password,
	}))
	if err != nil {
		return fail(err)
	}
	if err := saveToken(resp.Msg.Token); err != nil {
		return fail(err)
	}

	fmt.Printf("Logged in as %s (user ID %s)\n", resp.Msg.User.DisplayName, resp.Msg.User.ID)
	return subcommands.ExitSuccess
}
