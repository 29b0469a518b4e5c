package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptodash/internal/layout"
)

func newTestApp(t *testing.T, order ...string) (*AppModel, tea.Model) {
	t.Helper()
	ctrl, _ := newTestController(t, order...)
	deps := testDeps(&fakeSource{assets: testAssets()})
	deps.Refresh = time.Minute
	m := NewAppModel(ctrl, deps, testRowLines)
	tm := m.AsTeaModel()
	tm.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, tm
}

// press sends keys to the model and feeds back any message the resulting
// command produces immediately. Commands that block (ticks, fetches) are not
// run.
func press(tm tea.Model, keys ...string) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		_, last = tm.Update(keyMsg(k))
	}
	return last
}

func TestApp_LeaderOpensAddWidgetDialog(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio)

	cmd := press(tm, " ", "w", "a")
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, ShowAddWidgetMsg{}, msg)
	tm.Update(msg)

	assert.Equal(t, 1, m.Overlays.Len())
	assert.True(t, m.Dashboard.Controller().AddDialogOpen())
	assert.Contains(t, tm.View(), "Add a new widget")
}

func TestApp_AddWidgetFromDialog(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio)
	tm.Update(ShowAddWidgetMsg{})

	cmd := press(tm, "enter")
	require.NotNil(t, cmd)
	msg := cmd()
	add, ok := msg.(AddWidgetMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, layout.ChartWidget, add.ID, "first registered widget is selected")
	tm.Update(msg)

	ctrl := m.Dashboard.Controller()
	assert.Equal(t, 0, m.Overlays.Len())
	assert.False(t, ctrl.AddDialogOpen())
	assert.Equal(t, []string{layout.Portfolio, layout.ChartWidget}, ctrl.Order())
	assert.Equal(t, layout.ChartWidget, m.Dashboard.Selected())
}

func TestApp_AddPresentWidgetOnlyClosesDialog(t *testing.T) {
	m, tm := newTestApp(t, layout.ChartWidget)
	tm.Update(ShowAddWidgetMsg{})
	tm.Update(AddWidgetMsg{ID: layout.ChartWidget})

	ctrl := m.Dashboard.Controller()
	assert.Equal(t, 0, m.Overlays.Len())
	assert.False(t, ctrl.AddDialogOpen())
	assert.Equal(t, []string{layout.ChartWidget}, ctrl.Order())
}

func TestApp_EscDismissesDialog(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio)
	tm.Update(ShowAddWidgetMsg{})

	cmd := press(tm, "esc")
	require.NotNil(t, cmd)
	tm.Update(cmd())

	assert.Equal(t, 0, m.Overlays.Len())
	assert.False(t, m.Dashboard.Controller().AddDialogOpen())
	assert.Equal(t, []string{layout.Portfolio}, m.Dashboard.Controller().Order())
}

func TestApp_DialogCapturesKeys(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio)
	tm.Update(ShowAddWidgetMsg{})

	cmd := press(tm, "x")
	if cmd != nil {
		_, quit := cmd().(tea.QuitMsg)
		assert.False(t, quit)
	}
	assert.Equal(t, []string{layout.Portfolio}, m.Dashboard.Controller().Order(), "x must not remove while the dialog is open")
}

func TestApp_ShowAddWidgetTwiceStacksOnce(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio)
	tm.Update(ShowAddWidgetMsg{})
	tm.Update(ShowAddWidgetMsg{})
	assert.Equal(t, 1, m.Overlays.Len())
}

func TestApp_QuitKeys(t *testing.T) {
	_, tm := newTestApp(t, layout.Portfolio)

	for _, k := range []string{"q", "ctrl+c"} {
		cmd := press(tm, k)
		require.NotNil(t, cmd, k)
		assert.IsType(t, tea.QuitMsg{}, cmd(), k)
	}
}

func TestApp_QCancelsMoveInsteadOfQuitting(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio, layout.MarketOverview)

	cmd := press(tm, "m")
	require.NotNil(t, cmd)
	tm.Update(cmd())
	require.Equal(t, ModeMove, m.Dashboard.Mode())

	assert.Nil(t, press(tm, "q"))
	assert.Equal(t, ModeDashboard, m.Dashboard.Mode())
}

func TestApp_RemoveKey(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio, layout.MarketOverview)

	cmd := press(tm, "x")
	require.NotNil(t, cmd)
	tm.Update(cmd())
	assert.Equal(t, []string{layout.MarketOverview}, m.Dashboard.Controller().Order())
}

func TestApp_TickRefreshesAndReschedules(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio)
	w, _ := m.Dashboard.Widget(layout.Portfolio)
	p := w.(*PortfolioWidget)
	p.Update(AssetsLoadedMsg{Widget: layout.Portfolio, Seq: 1, Assets: testAssets()})
	require.False(t, p.Loading())

	_, cmd := tm.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.True(t, p.Loading(), "tick starts a refetch")
}

func TestApp_LeaderHelpShown(t *testing.T) {
	_, tm := newTestApp(t, layout.Portfolio)
	press(tm, " ")
	out := tm.View()
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "Quit")

	press(tm, "esc")
	assert.NotContains(t, tm.View(), "cancel")
}

func TestApp_ResetLayoutAfterConfirm(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio)

	cmd := press(tm, " ", "w", "R")
	require.NotNil(t, cmd)
	tm.Update(cmd())
	require.Equal(t, 1, m.Overlays.Len())
	assert.Contains(t, tm.View(), "Reset layout?")

	cmd = press(tm, "y")
	require.NotNil(t, cmd)
	tm.Update(cmd())

	assert.Equal(t, 0, m.Overlays.Len())
	assert.Equal(t, layout.DefaultOrder, m.Dashboard.Controller().Order())
	_, ok := m.Dashboard.Widget(layout.ChartWidget)
	assert.True(t, ok)
}

func TestApp_ResetLayoutCancelled(t *testing.T) {
	m, tm := newTestApp(t, layout.Portfolio)
	tm.Update(ShowResetLayoutMsg{})

	cmd := press(tm, "esc")
	require.NotNil(t, cmd)
	tm.Update(cmd())

	assert.Equal(t, 0, m.Overlays.Len())
	assert.Equal(t, []string{layout.Portfolio}, m.Dashboard.Controller().Order())
}
