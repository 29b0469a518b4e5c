package ui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"cryptodash/internal/layout"
	"cryptodash/internal/prices"
)

// ChartWidget draws the price history of one asset as a bar chart.
type ChartWidget struct {
	fetchState
	asset    string
	interval string
	points   []prices.Point
	load     func(seq int) tea.Cmd
}

// NewChartWidget creates the price chart widget for the configured asset.
func NewChartWidget(deps Deps) *ChartWidget {
	w := &ChartWidget{asset: deps.Market.Chart, interval: deps.Market.Interval}
	if deps.Prices != nil {
		w.load = func(seq int) tea.Cmd {
			return fetchHistoryCmd(deps.Prices, layout.ChartWidget, seq, w.asset, w.interval)
		}
	}
	return w
}

func (w *ChartWidget) start() tea.Cmd {
	if w.load == nil {
		return nil
	}
	return w.load(w.next())
}

// Init implements Widget.
func (w *ChartWidget) Init() tea.Cmd { return w.start() }

// Update implements Widget.
func (w *ChartWidget) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		return w, w.start()
	case HistoryLoadedMsg:
		if w.accept(msg.Seq, msg.Err) && msg.Err == nil {
			w.points = msg.Points
		}
	}
	return w, nil
}

// View implements Widget.
func (w *ChartWidget) View(width, height int) string {
	switch {
	case !w.loaded:
		return renderLoading("Loading chart...", width)
	case w.err != nil:
		return renderError(w.err, width)
	case len(w.points) == 0:
		return Styles.Empty.Render("No price history.")
	}
	lo, hi := w.points[0].PriceUSD, w.points[0].PriceUSD
	for _, p := range w.points {
		lo = decimal.Min(lo, p.PriceUSD)
		hi = decimal.Max(hi, p.PriceUSD)
	}
	last := w.points[len(w.points)-1].PriceUSD
	header := fmt.Sprintf("%s %s  %s  %s",
		Styles.Section.Render(w.asset), Styles.Muted.Render("("+w.interval+")"),
		formatPrice(last),
		Styles.Muted.Render("lo "+formatPrice(lo)+" hi "+formatPrice(hi)))
	if height < 2 {
		return header
	}
	return header + "\n" + Sparkline(w.points, width, height-1)
}

// Sparkline renders points as a column chart of width columns and height rows.
// Points are bucketed left to right; each column shows the last price of its
// bucket, offset by the minimum so the range fills the chart.
func Sparkline(points []prices.Point, width, height int) string {
	if len(points) == 0 || width < 1 || height < 1 {
		return ""
	}
	values := bucketPrices(points, width)
	lo := values[0]
	for _, v := range values {
		lo = min(lo, v)
	}
	sl := sparkline.New(len(values), height, sparkline.WithStyle(Styles.Status))
	for _, v := range values {
		sl.Push(v - lo)
	}
	sl.Draw()
	return sl.View()
}

// bucketPrices reduces points to at most width values.
func bucketPrices(points []prices.Point, width int) []float64 {
	cols := min(width, len(points))
	values := make([]float64, cols)
	for i := range cols {
		end := (i + 1) * len(points) / cols
		values[i] = points[end-1].PriceUSD.InexactFloat64()
	}
	return values
}
