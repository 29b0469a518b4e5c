package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/subcommands"

	"cryptodash/internal/portfolio"
	"cryptodash/internal/prices"
)

type pricesCmd struct {
	app       *App
	top       int
	portfolio bool
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "print current asset prices" }
func (*pricesCmd) Usage() string {
	return `cryptodash prices [-top <n>] [-portfolio] [<asset id>...]

  Fetches prices for the given asset ids, or the market assets from the
  config when none are given. With -top the top n assets by market cap are
  listed instead. With -portfolio the configured holdings are valued.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", 0, "List the top n assets by market cap.")
	f.BoolVar(&c.portfolio, "portfolio", false, "Value the configured holdings.")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.top < 0 || (c.portfolio && (c.top > 0 || f.NArg() > 0)) {
		f.Usage()
		return subcommands.ExitUsageError
	}
	cfg, err := c.app.loadConfig()
	if err != nil {
		return c.app.errorf("%v", err)
	}
	client := c.app.newClient(cfg)
	if cfg.API.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.API.Timeout)
		defer cancel()
	}

	var assets []prices.Asset
	switch {
	case c.portfolio:
		assets, err = client.Assets(ctx, cfg.Holdings.IDs())
	case c.top > 0:
		assets, err = client.Top(ctx, c.top)
	case f.NArg() > 0:
		assets, err = client.Assets(ctx, f.Args())
	default:
		assets, err = client.Assets(ctx, cfg.Market.Assets)
	}
	if err != nil {
		return c.app.errorf("%v", err)
	}

	if c.portfolio {
		fmt.Fprintln(c.app.Stdout, renderValuation(portfolio.Value(cfg.Holdings, assets)))
		return subcommands.ExitSuccess
	}
	fmt.Fprintln(c.app.Stdout, renderAssets(assets))
	return subcommands.ExitSuccess
}

func renderAssets(assets []prices.Asset) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "SYMBOL", "NAME", "PRICE (USD)", "24H")
	for _, a := range assets {
		t.Row(strconv.Itoa(a.Rank), a.Symbol, a.Name, portfolio.FormatUSD(a.PriceUSD), a.ChangePercent24Hr.StringFixed(2)+"%")
	}
	return t.Render()
}

func renderValuation(v portfolio.Valuation) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ASSET", "AMOUNT", "VALUE (USD)")
	for _, r := range v.Rows {
		t.Row(r.Name, portfolio.FormatAmount(r.Amount), portfolio.FormatUSD(r.Value))
	}
	return t.Render() + "\nTotal Portfolio Value: " + portfolio.FormatUSD(v.Total)
}
