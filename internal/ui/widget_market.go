package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/layout"
	"cryptodash/internal/prices"
	"cryptodash/internal/ui/textutil"
)

// moversShown is how many rows the movers widgets list.
const moversShown = 5

// MarketOverviewWidget shows price and 24h change of the watched assets.
type MarketOverviewWidget struct {
	assetFeed
}

// NewMarketOverviewWidget creates the market overview widget.
func NewMarketOverviewWidget(deps Deps) *MarketOverviewWidget {
	w := &MarketOverviewWidget{}
	ids := deps.Market.Assets
	if deps.Prices != nil {
		w.load = func(seq int) tea.Cmd {
			return fetchAssetsCmd(deps.Prices, layout.MarketOverview, seq, ids)
		}
	}
	return w
}

// Init implements Widget.
func (w *MarketOverviewWidget) Init() tea.Cmd { return w.start() }

// Update implements Widget.
func (w *MarketOverviewWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	return w, w.update(msg)
}

// View implements Widget.
func (w *MarketOverviewWidget) View(width, height int) string {
	return w.view(width, height, "Loading market...", func(width, height int) string {
		if len(w.assets) == 0 {
			return Styles.Empty.Render("No assets configured.")
		}
		var b strings.Builder
		for _, a := range w.assets {
			fmt.Fprintf(&b, "%s %s %s\n",
				textutil.PadRight(a.Symbol, 6),
				textutil.PadLeft(formatPrice(a.PriceUSD), 14),
				formatChange(a.ChangePercent24Hr))
		}
		return strings.TrimRight(b.String(), "\n")
	})
}

// TopAssetsWidget lists the top assets by market cap.
type TopAssetsWidget struct {
	assetFeed
}

// NewTopAssetsWidget creates the top crypto assets widget.
func NewTopAssetsWidget(deps Deps) *TopAssetsWidget {
	w := &TopAssetsWidget{}
	limit := deps.Market.TopLimit
	if deps.Prices != nil {
		w.load = func(seq int) tea.Cmd {
			return fetchTopCmd(deps.Prices, layout.TopCryptoAssets, seq, limit)
		}
	}
	return w
}

// Init implements Widget.
func (w *TopAssetsWidget) Init() tea.Cmd { return w.start() }

// Update implements Widget.
func (w *TopAssetsWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	return w, w.update(msg)
}

// View implements Widget.
func (w *TopAssetsWidget) View(width, height int) string {
	return w.view(width, height, "Loading assets...", func(width, height int) string {
		rows := make([]table.Row, len(w.assets))
		for i, a := range w.assets {
			rows[i] = table.Row{strconv.Itoa(a.Rank), a.Name, formatPrice(a.PriceUSD), formatCompactUSD(a.MarketCapUSD)}
		}
		priceW, capW := 12, 10
		nameW := max(6, width-priceW-capW-3-8)
		t := table.New(
			table.WithColumns([]table.Column{
				{Title: "#", Width: 3},
				{Title: "Name", Width: nameW},
				{Title: "Price", Width: priceW},
				{Title: "Mkt cap", Width: capW},
			}),
			table.WithRows(rows),
			table.WithHeight(min(len(rows), max(1, height-2))+2),
			table.WithFocused(false),
			table.WithStyles(tableStyles()),
		)
		return t.View()
	})
}

// moversWidget ranks the top assets by a key and lists the first few.
type moversWidget struct {
	assetFeed
	rank   func([]prices.Asset, int) []prices.Asset
	column func(prices.Asset) string
}

func newMoversWidget(deps Deps, id string, rank func([]prices.Asset, int) []prices.Asset, column func(prices.Asset) string) *moversWidget {
	w := &moversWidget{rank: rank, column: column}
	limit := deps.Market.TopLimit
	if deps.Prices != nil {
		w.load = func(seq int) tea.Cmd {
			return fetchTopCmd(deps.Prices, id, seq, limit)
		}
	}
	return w
}

// NewTopPerformersWidget lists the top assets with the best 24h change.
func NewTopPerformersWidget(deps Deps) Widget {
	return newMoversWidget(deps, layout.TopPerformers, prices.TopByChange, func(a prices.Asset) string {
		return formatChange(a.ChangePercent24Hr)
	})
}

// NewTrendingCoinsWidget lists the top assets with the highest 24h volume.
func NewTrendingCoinsWidget(deps Deps) Widget {
	return newMoversWidget(deps, layout.TrendingCoins, prices.TopByVolume, func(a prices.Asset) string {
		return formatCompactUSD(a.VolumeUSD24Hr)
	})
}

// Init implements Widget.
func (w *moversWidget) Init() tea.Cmd { return w.start() }

// Update implements Widget.
func (w *moversWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	return w, w.update(msg)
}

// View implements Widget.
func (w *moversWidget) View(width, height int) string {
	return w.view(width, height, "Loading...", func(width, height int) string {
		ranked := w.rank(w.assets, moversShown)
		if len(ranked) == 0 {
			return Styles.Empty.Render("No data.")
		}
		var b strings.Builder
		for i, a := range ranked {
			fmt.Fprintf(&b, "%d. %s %s\n", i+1, textutil.PadRight(a.Symbol, 6), w.column(a))
		}
		return strings.TrimRight(b.String(), "\n")
	})
}
