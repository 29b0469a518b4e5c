package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"cryptodash/internal/config"
	"cryptodash/internal/dashboard"
	"cryptodash/internal/layout"
	"cryptodash/internal/portfolio"
)

// Deps are the data sources and settings widgets are built with.
type Deps struct {
	Prices   PriceSource
	Market   config.MarketConfig
	Holdings portfolio.Holdings
	News     string
	// NewsStyle is the glamour style for the news widget. Empty means "dark".
	NewsStyle string
	Refresh   time.Duration
}

// DepsFromConfig builds widget deps from the loaded configuration.
func DepsFromConfig(cfg config.Config, src PriceSource) Deps {
	return Deps{
		Prices:   src,
		Market:   cfg.Market,
		Holdings: cfg.Holdings,
		News:     cfg.News.Markdown,
		Refresh:  cfg.API.Refresh,
	}
}

// NewWidgetRegistry registers a factory for every known widget id.
func NewWidgetRegistry(deps Deps) *dashboard.Registry[Widget] {
	r := dashboard.NewRegistry[Widget]()
	r.Register(layout.ChartWidget, func() Widget { return NewChartWidget(deps) })
	r.Register(layout.MarketOverview, func() Widget { return NewMarketOverviewWidget(deps) })
	r.Register(layout.GreedFearIndex, func() Widget { return NewFearGreedWidget(deps) })
	r.Register(layout.TopPerformers, func() Widget { return NewTopPerformersWidget(deps) })
	r.Register(layout.TrendingCoins, func() Widget { return NewTrendingCoinsWidget(deps) })
	r.Register(layout.CryptoNews, func() Widget { return NewNewsWidget(deps) })
	r.Register(layout.TokenPairExplorer, func() Widget {
		return NewStaticWidget("Token pair data needs a DEX source; none is configured.")
	})
	r.Register(layout.LiquidityPoolsOverview, func() Widget {
		return NewStaticWidget("Liquidity pool data needs a DEX source; none is configured.")
	})
	r.Register(layout.GasTracker, func() Widget {
		return NewStaticWidget("Gas prices need a chain RPC source; none is configured.")
	})
	r.Register(layout.DeFiOverview, func() Widget {
		return NewStaticWidget("DeFi totals need a protocol data source; none is configured.")
	})
	r.Register(layout.NFTMarketplace, func() Widget {
		return NewStaticWidget("NFT listings need a marketplace source; none is configured.")
	})
	r.Register(layout.BlockchainExplorer, func() Widget {
		return NewStaticWidget("Block data needs a chain RPC source; none is configured.")
	})
	r.Register(layout.TopCryptoAssets, func() Widget { return NewTopAssetsWidget(deps) })
	r.Register(layout.Portfolio, func() Widget { return NewPortfolioWidget(deps) })
	r.Register(layout.PortfolioPerformance, func() Widget { return NewPortfolioPerformanceWidget(deps) })
	r.Register(layout.TradeTerminal, func() Widget {
		return NewStaticWidget("Read-only dashboard: trading is not available.")
	})
	return r
}

// renderError renders an inline fetch error.
func renderError(err error, width int) string {
	return Styles.Error.Width(width).Render("Error: " + err.Error())
}

// renderLoading renders the loading placeholder.
func renderLoading(text string, width int) string {
	return Styles.Empty.Width(width).Render(text)
}

// clip cuts s to at most width cells per line and height lines.
func clip(s string, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		if lipgloss.Width(l) > width {
			lines[i] = lipgloss.NewStyle().MaxWidth(width).Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
