package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"cryptodash/internal/portfolio"
	"cryptodash/internal/prices"
)

// assetFeed is the fetch loop shared by widgets that show an asset list.
type assetFeed struct {
	fetchState
	assets []prices.Asset
	load   func(seq int) tea.Cmd
}

func (f *assetFeed) start() tea.Cmd {
	if f.load == nil {
		return nil
	}
	return f.load(f.next())
}

func (f *assetFeed) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RefreshMsg:
		return f.start()
	case AssetsLoadedMsg:
		if f.accept(msg.Seq, msg.Err) && msg.Err == nil {
			f.assets = msg.Assets
		}
	}
	return nil
}

// view renders the loading and error states, or calls render.
func (f *assetFeed) view(width, height int, loadingText string, render func(width, height int) string) string {
	switch {
	case !f.loaded:
		return renderLoading(loadingText, width)
	case f.err != nil:
		return renderError(f.err, width)
	}
	return render(width, height)
}

var hundred = decimal.NewFromInt(100)

// formatPrice renders a USD price. Prices under a dollar keep up to six
// fraction digits.
func formatPrice(d decimal.Decimal) string {
	if d.Abs().LessThan(decimal.NewFromInt(1)) && !d.IsZero() {
		return "$" + d.Round(6).String()
	}
	return portfolio.FormatUSD(d)
}

// formatChange renders a percent change with sign and two decimals.
func formatChange(d decimal.Decimal) string {
	s := d.StringFixed(2) + "%"
	if !d.IsNegative() {
		s = "+" + s
	}
	return changeStyle(d.IsNegative()).Render(s)
}

// formatCompactUSD renders large USD amounts with a K/M/B/T suffix.
func formatCompactUSD(d decimal.Decimal) string {
	units := []struct {
		suffix string
		exp    int32
	}{{"T", 12}, {"B", 9}, {"M", 6}, {"K", 3}}
	for _, u := range units {
		scale := decimal.New(1, u.exp)
		if d.Abs().GreaterThanOrEqual(scale) {
			return "$" + d.Div(scale).StringFixed(2) + u.suffix
		}
	}
	return portfolio.FormatUSD(d)
}
