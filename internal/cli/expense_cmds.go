package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/subcommands"

	"splitchain/pkg/api"
)

type addExpenseCmd struct {
	group       string
	title       string
	description string
	category    string
	amount      int64
	debtors     string
	receipt     string
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record an expense you paid" }
func (*addExpenseCmd) Usage() string {
	return `add-expense -group <group id> -title <title> -desc <description> -category <category> -amount <minor units> -debtors <id,id,...> [-receipt <ref>]

  Records an expense you paid, split equally among the debtors. The
  amount is in minor currency units (cents): 1250 means 12.50.
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Group ID (required)")
	f.StringVar(&c.title, "title", "", "Short expense title (required)")
	f.StringVar(&c.description, "desc", "", "Expense description (required)")
	f.StringVar(&c.category, "category", "", "Expense category (required)")
	f.Int64Var(&c.amount, "amount", 0, "Amount in minor currency units (required)")
	f.StringVar(&c.debtors, "debtors", "", "Comma-separated debtor user IDs (required)")
	f.StringVar(&c.receipt, "receipt", "", "Optional receipt reference")
}

func (c *addExpenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	debtors := splitList(c.debtors)
	if c.group == "" || c.title == "" || c.description == "" || c.category == "" || c.amount <= 0 || len(debtors) == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	req, err := withAuth(connect.NewRequest(&api.AddExpenseRequest{
		GroupID:     c.group,
		Title:       c.title,
		Description: c.description,
		Category:    c.category,
		Amount:      c.amount,
		Debtors:     debtors,
		ReceiptRef:  c.receipt,
	}))
	if err != nil {
		return fail(err)
	}
	resp, err := ledgerClient().AddExpense(ctx, req)
	if err != nil {
		return fail(err)
	}

	exp := resp.Msg.Expense
	fmt.Printf("Recorded expense #%d: %s, %s split %d ways\n",
		exp.Seq, exp.Title, formatAmount(exp.Amount), len(exp.Splits))
	return subcommands.ExitSuccess
}

type expensesCmd struct {
	group string
}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "list a group's expense history" }
func (*expensesCmd) Usage() string {
	return `expenses -group <group id>

  Lists the group's full expense log in creation order.
`
}

func (c *expensesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Group ID (required)")
}

func (c *expensesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.group == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	req, err := withAuth(connect.NewRequest(&api.ListExpensesRequest{GroupID: c.group}))
	if err != nil {
		return fail(err)
	}
	resp, err := ledgerClient().ListExpenses(ctx, req)
	if err != nil {
		return fail(err)
	}

	table := newTable([]string{"#", "Date", "Title", "Category", "Amount", "Payer", "Debtors"})
	for _, exp := range resp.Msg.Expenses {
		var debtors []string
		for _, s := range exp.Splits {
			debtors = append(debtors, s.DebtorID)
		}
		table.Append([]string{
			fmt.Sprintf("%d", exp.Seq),
			formatDate(exp.CreatedAt),
			exp.Title,
			exp.Category,
			formatAmount(exp.Amount),
			exp.PayerID,
			strings.Join(debtors, ", "),
		})
	}
	table.Render()
	return subcommands.ExitSuccess
}

type balancesCmd struct {
	group string
	user  string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "show who owes and who is owed" }
func (*balancesCmd) Usage() string {
	return `balances -group <group id> [-user <user id>]

  Shows each member's net position. Positive means the group owes them,
  negative means they owe the group. With -user, shows one balance.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Group ID (required)")
	f.StringVar(&c.user, "user", "", "Show only this user's balance")
}

func (c *balancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.group == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	if c.user != "" {
		req, err := withAuth(connect.NewRequest(&api.GetMemberBalanceRequest{GroupID: c.group, UserID: c.user}))
		if err != nil {
			return fail(err)
		}
		resp, err := ledgerClient().GetMemberBalance(ctx, req)
		if err != nil {
			return fail(err)
		}
		fmt.Printf("%s: %s\n", c.user, formatAmount(resp.Msg.Net))
		return subcommands.ExitSuccess
	}

	req, err := withAuth(connect.NewRequest(&api.GetBalancesRequest{GroupID: c.group}))
	if err != nil {
		return fail(err)
	}
	resp, err := ledgerClient().GetBalances(ctx, req)
	if err != nil {
		return fail(err)
	}

	table := newTable([]string{"Member", "Net"})
	for _, b := range resp.Msg.Balances {
		table.Append([]string{b.MemberID, formatAmount(b.Net)})
	}
	table.Render()
	return subcommands.ExitSuccess
}
