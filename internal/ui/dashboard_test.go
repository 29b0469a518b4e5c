package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptodash/internal/dashboard"
	"cryptodash/internal/layout"
	"cryptodash/internal/layoutstore"
)

const testRowLines = 3

// newTestController seeds an in-memory store with order and returns a
// controller configured for a terminal viewport.
func newTestController(t *testing.T, order ...string) (*dashboard.Controller, *layoutstore.Store) {
	t.Helper()
	store := layoutstore.New(layoutstore.NewMemoryKV())
	require.NoError(t, store.Save(order, nil))
	ctrl := dashboard.New(store, dashboard.Options{
		Breakpoints: layout.TerminalBreakpoints,
		RowHeight:   testRowLines,
	})
	return ctrl, store
}

func newTestDashboard(t *testing.T, order ...string) (*DashboardView, *layoutstore.Store) {
	t.Helper()
	ctrl, store := newTestController(t, order...)
	reg := NewWidgetRegistry(testDeps(&fakeSource{assets: testAssets()}))
	return NewDashboardView(ctrl, reg, testRowLines), store
}

func sendKeys(d *DashboardView, keys ...string) {
	for _, k := range keys {
		d.Update(keyMsg(k))
	}
}

func TestDashboardView_SkipsUnknownWidget(t *testing.T) {
	d, _ := newTestDashboard(t, layout.Portfolio, "BogusWidget", layout.MarketOverview)
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	_, ok := d.Widget("BogusWidget")
	assert.False(t, ok)
	assert.True(t, d.Controller().Contains("BogusWidget"), "unknown ids stay in the stored order")

	out := d.View()
	assert.Contains(t, out, "Customizable Dashboard")
	assert.Contains(t, out, layout.Portfolio)
	assert.Contains(t, out, layout.MarketOverview)
	assert.NotContains(t, out, "BogusWidget")
	assert.Contains(t, out, "2 widgets")

	d.Update(keyMsg("right"))
	assert.Equal(t, layout.MarketOverview, d.Selected(), "selection skips unknown ids")
}

func TestDashboardView_WindowSizeSetsColumns(t *testing.T) {
	d, _ := newTestDashboard(t, layout.Portfolio)
	assert.Equal(t, dashboard.DefaultColumns, d.Controller().Columns())

	tests := []struct {
		width int
		want  int
	}{
		{60, 1},
		{80, 4},
		{120, 8},
		{160, 12},
		{200, 16},
	}
	for _, tt := range tests {
		d.Update(tea.WindowSizeMsg{Width: tt.width, Height: 40})
		assert.Equal(t, tt.want, d.Controller().Columns(), "width %d", tt.width)
	}
}

func TestDashboardView_RemoveSelected(t *testing.T) {
	d, store := newTestDashboard(t, layout.Portfolio, layout.MarketOverview, layout.GreedFearIndex)
	require.Equal(t, layout.Portfolio, d.Selected())

	d.Update(RemoveWidgetMsg{})

	assert.Equal(t, []string{layout.MarketOverview, layout.GreedFearIndex}, d.Controller().Order())
	_, ok := d.Widget(layout.Portfolio)
	assert.False(t, ok)
	assert.Equal(t, layout.MarketOverview, d.Selected())

	order, _ := store.Load()
	assert.Equal(t, []string{layout.MarketOverview, layout.GreedFearIndex}, order)
}

func TestDashboardView_AddWidget(t *testing.T) {
	d, _ := newTestDashboard(t, layout.Portfolio)

	d.AddWidget(layout.CryptoNews)
	assert.Equal(t, []string{layout.Portfolio, layout.CryptoNews}, d.Controller().Order())
	assert.Equal(t, layout.CryptoNews, d.Selected())
	_, ok := d.Widget(layout.CryptoNews)
	assert.True(t, ok)

	assert.Nil(t, d.AddWidget(layout.CryptoNews), "adding a present widget does nothing")
	assert.Equal(t, 2, d.Controller().Len())
}

func TestDashboardView_AddStartsLoading(t *testing.T) {
	d, _ := newTestDashboard(t)
	cmd := d.AddWidget(layout.Portfolio)
	require.NotNil(t, cmd)

	w, ok := d.Widget(layout.Portfolio)
	require.True(t, ok)
	assert.True(t, w.(*PortfolioWidget).Loading())
}

func TestDashboardView_RoutesDataToWidget(t *testing.T) {
	d, _ := newTestDashboard(t, layout.Portfolio, layout.MarketOverview)
	d.Init()

	d.Update(AssetsLoadedMsg{Widget: layout.Portfolio, Seq: 1, Assets: testAssets()})

	p, _ := d.Widget(layout.Portfolio)
	m, _ := d.Widget(layout.MarketOverview)
	assert.False(t, p.(*PortfolioWidget).Loading())
	assert.True(t, m.(*MarketOverviewWidget).Loading(), "message for another widget is not applied")
}

func TestDashboardView_MoveCommit(t *testing.T) {
	d, store := newTestDashboard(t, layout.Portfolio, layout.MarketOverview, layout.GreedFearIndex)

	d.Update(StartMoveMsg{})
	require.Equal(t, ModeMove, d.Mode())
	sendKeys(d, "right", "right", "enter")

	assert.Equal(t, ModeDashboard, d.Mode())
	want := []string{layout.MarketOverview, layout.GreedFearIndex, layout.Portfolio}
	assert.Equal(t, want, d.Controller().Order())
	order, _ := store.Load()
	assert.Equal(t, want, order)
	assert.Equal(t, layout.Portfolio, d.Selected(), "moved widget stays selected")
}

func TestDashboardView_MoveCancelledIsNoop(t *testing.T) {
	d, _ := newTestDashboard(t, layout.Portfolio, layout.MarketOverview)

	d.Update(StartMoveMsg{})
	sendKeys(d, "right", "esc")

	assert.Equal(t, ModeDashboard, d.Mode())
	assert.Equal(t, []string{layout.Portfolio, layout.MarketOverview}, d.Controller().Order())
}

func TestDashboardView_MovePreviewDoesNotPersist(t *testing.T) {
	d, store := newTestDashboard(t, layout.Portfolio, layout.MarketOverview)
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	d.Update(StartMoveMsg{})
	sendKeys(d, "right")
	assert.Contains(t, d.View(), "move Portfolio to #2")

	order, _ := store.Load()
	assert.Equal(t, []string{layout.Portfolio, layout.MarketOverview}, order)
}

func TestDashboardView_ResizeCommit(t *testing.T) {
	d, store := newTestDashboard(t, layout.Portfolio, layout.MarketOverview)
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40}) // 8 columns of 15 cells

	d.Update(StartResizeMsg{})
	require.Equal(t, ModeResize, d.Mode())
	sendKeys(d, "right", "down", "enter")

	assert.Equal(t, ModeDashboard, d.Mode())
	want := layout.Size{Width: 5, Height: 4}
	assert.Equal(t, want, d.Controller().SizeOf(layout.Portfolio))
	_, sizes := store.Load()
	assert.Equal(t, want, sizes[layout.Portfolio])
}

func TestDashboardView_ResizeClampedToOneUnit(t *testing.T) {
	d, _ := newTestDashboard(t, layout.Portfolio)
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	d.Update(StartResizeMsg{})
	sendKeys(d, "left", "left", "left", "left", "left", "up", "up", "up", "up", "enter")

	assert.Equal(t, layout.Size{Width: 1, Height: 1}, d.Controller().SizeOf(layout.Portfolio))
}

func TestDashboardView_ResizeCancelled(t *testing.T) {
	d, _ := newTestDashboard(t, layout.Portfolio)
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	d.Update(StartResizeMsg{})
	sendKeys(d, "right", "esc")

	assert.Equal(t, ModeDashboard, d.Mode())
	assert.Equal(t, layout.DefaultSizes[layout.Portfolio], d.Controller().SizeOf(layout.Portfolio))
}

func TestDashboardView_ResizeNeedsViewport(t *testing.T) {
	d, _ := newTestDashboard(t, layout.Portfolio)
	d.Update(StartResizeMsg{})
	assert.Equal(t, ModeDashboard, d.Mode())
}

func TestDashboardView_ToggleExpand(t *testing.T) {
	d, store := newTestDashboard(t, layout.Portfolio, layout.MarketOverview)
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	d.Update(ToggleExpandMsg{})
	assert.True(t, d.Controller().IsExpanded(layout.Portfolio))
	assert.Contains(t, d.View(), "e:collapse")

	_, sizes := store.Load()
	assert.Empty(t, sizes, "expansion is not persisted")

	d.Update(ToggleExpandMsg{})
	assert.False(t, d.Controller().IsExpanded(layout.Portfolio))
}

func TestDashboardView_VerticalSelection(t *testing.T) {
	// 4 columns: Portfolio fills the first shelf, MarketOverview the second.
	d, _ := newTestDashboard(t, layout.Portfolio, layout.MarketOverview)
	d.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	d.View()

	d.Update(keyMsg("down"))
	assert.Equal(t, layout.MarketOverview, d.Selected())
	d.Update(keyMsg("up"))
	assert.Equal(t, layout.Portfolio, d.Selected())
}

func TestDashboardView_Empty(t *testing.T) {
	d, _ := newTestDashboard(t)
	assert.Contains(t, d.View(), "No widgets. Press a to add one.")
	assert.Equal(t, "", d.Selected())

	d.Update(RemoveWidgetMsg{})
	d.Update(StartMoveMsg{})
	assert.Equal(t, ModeDashboard, d.Mode())
}
