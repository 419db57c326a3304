// Package cli implements the splitchain command-line client. It talks to
// a running server through the pkg/api Connect clients and renders
// results for humans; all accounting decisions stay server-side.
package cli

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
	"github.com/olekukonko/tablewriter"

	"splitchain/pkg/api"
)

// Commands returns every CLI command for registration.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&registerCmd{},
		&loginCmd{},
		&createGroupCmd{},
		&groupsCmd{},
		&addMemberCmd{},
		&removeMemberCmd{},
		&addExpenseCmd{},
		&expensesCmd{},
		&balancesCmd{},
	}
}

// serverURL is where the client sends requests. Overridable for
// non-local servers.
func serverURL() string {
	if url := os.Getenv("SPLITCHAIN_SERVER"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// currencyCode picks the display currency. The server only deals in
// minor units; the currency is a rendering concern.
func currencyCode() string {
	if code := os.Getenv("SPLITCHAIN_CURRENCY"); code != "" {
		return code
	}
	return money.USD
}

func authClient() *api.AuthClient {
	return api.NewAuthClient(http.DefaultClient, serverURL())
}

func registryClient() *api.RegistryClient {
	return api.NewRegistryClient(http.DefaultClient, serverURL())
}

func ledgerClient() *api.LedgerClient {
	return api.NewLedgerClient(http.DefaultClient, serverURL())
}

func tokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "splitchain", "token"), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// withAuth attaches the cached session token to a request.
func withAuth[T any](req *connect.Request[T]) (*connect.Request[T], error) {
	path, err := tokenPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("not logged in; run 'splitchain login' first")
	}
	req.Header().Set("Authorization", "Bearer "+strings.TrimSpace(string(data)))
	return req, nil
}

// formatAmount renders a minor-unit amount in the display currency.
func formatAmount(minor int64) string {
	return money.New(minor, currencyCode()).Display()
}

func formatDate(unix int64) string {
	return time.Unix(unix, 0).Format("2006-01-02")
}

// newTable returns a borderless left-aligned table on stdout.
func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// fail prints an error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// splitList parses a comma-separated flag value into IDs.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
