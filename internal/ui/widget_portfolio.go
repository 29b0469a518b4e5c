package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"cryptodash/internal/layout"
	"cryptodash/internal/portfolio"
	"cryptodash/internal/ui/textutil"
)

// PortfolioWidget values the configured holdings at current prices.
type PortfolioWidget struct {
	assetFeed
	holdings portfolio.Holdings
}

// NewPortfolioWidget creates the portfolio table widget.
func NewPortfolioWidget(deps Deps) *PortfolioWidget {
	w := &PortfolioWidget{holdings: deps.Holdings}
	ids := deps.Holdings.IDs()
	if deps.Prices != nil {
		w.load = func(seq int) tea.Cmd {
			return fetchAssetsCmd(deps.Prices, layout.Portfolio, seq, ids)
		}
	}
	return w
}

// Init implements Widget.
func (w *PortfolioWidget) Init() tea.Cmd { return w.start() }

// Update implements Widget.
func (w *PortfolioWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	return w, w.update(msg)
}

// Valuation returns the portfolio priced with the last fetched assets.
func (w *PortfolioWidget) Valuation() portfolio.Valuation {
	return portfolio.Value(w.holdings, w.assets)
}

// View implements Widget.
func (w *PortfolioWidget) View(width, height int) string {
	return w.view(width, height, "Loading portfolio...", w.render)
}

func (w *PortfolioWidget) render(width, height int) string {
	v := w.Valuation()
	rows := make([]table.Row, len(v.Rows))
	for i, r := range v.Rows {
		rows[i] = table.Row{r.Name, portfolio.FormatAmount(r.Amount), portfolio.FormatUSD(r.Value)}
	}
	// Each column carries one cell of padding on both sides.
	amountW, valueW := 12, 14
	assetW := max(6, width-amountW-valueW-6)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Asset", Width: assetW},
			{Title: "Amount", Width: amountW},
			{Title: "Value (USD)", Width: valueW},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
		table.WithFocused(false),
		table.WithStyles(tableStyles()),
	)
	total := Styles.Section.Render("Total Portfolio Value: " + portfolio.FormatUSD(v.Total))
	return t.View() + "\n" + total
}

// PortfolioPerformanceWidget shows the 24h change of the holdings.
type PortfolioPerformanceWidget struct {
	assetFeed
	holdings portfolio.Holdings
}

// NewPortfolioPerformanceWidget creates the portfolio performance widget.
func NewPortfolioPerformanceWidget(deps Deps) *PortfolioPerformanceWidget {
	w := &PortfolioPerformanceWidget{holdings: deps.Holdings}
	ids := deps.Holdings.IDs()
	if deps.Prices != nil {
		w.load = func(seq int) tea.Cmd {
			return fetchAssetsCmd(deps.Prices, layout.PortfolioPerformance, seq, ids)
		}
	}
	return w
}

// Init implements Widget.
func (w *PortfolioPerformanceWidget) Init() tea.Cmd { return w.start() }

// Update implements Widget.
func (w *PortfolioPerformanceWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	return w, w.update(msg)
}

// View implements Widget.
func (w *PortfolioPerformanceWidget) View(width, height int) string {
	return w.view(width, height, "Loading performance...", w.render)
}

// Change returns the 24h value change of the holdings and its percentage.
// Assets whose previous value cannot be derived are counted as unchanged.
func (w *PortfolioPerformanceWidget) Change() (delta, percent decimal.Decimal) {
	var now, before decimal.Decimal
	for _, a := range w.assets {
		value := w.holdings.Amount(a.ID).Mul(a.PriceUSD)
		factor := decimal.NewFromInt(1).Add(a.ChangePercent24Hr.Div(hundred))
		prev := value
		if factor.IsPositive() {
			prev = value.Div(factor)
		}
		now = now.Add(value)
		before = before.Add(prev)
	}
	delta = now.Sub(before)
	if before.IsZero() {
		return delta, decimal.Zero
	}
	return delta, delta.Div(before).Mul(hundred)
}

func (w *PortfolioPerformanceWidget) render(width, height int) string {
	delta, pct := w.Change()
	sign := "+"
	if delta.IsNegative() {
		sign = "-"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Styles.Section.Render("24h:"),
		changeStyle(delta.IsNegative()).Render(sign+portfolio.FormatUSD(delta.Abs()))+" ("+formatChange(pct)+")")
	for _, a := range w.assets {
		if w.holdings.Amount(a.ID).IsZero() {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", textutil.PadRight(a.Symbol, 6), formatChange(a.ChangePercent24Hr))
	}
	return strings.TrimRight(b.String(), "\n")
}
