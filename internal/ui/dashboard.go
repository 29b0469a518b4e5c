package ui

import (
	"fmt"
	"log"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cryptodash/internal/dashboard"
	"cryptodash/internal/layout"
)

// Terminal size assumed until the first tea.WindowSizeMsg.
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// chromeLines is the number of lines used by the header and footer.
const chromeLines = 2

// DashboardView renders the widget grid and applies the user's edits to the
// dashboard controller.
type DashboardView struct {
	ctrl     *dashboard.Controller
	registry *dashboard.Registry[Widget]
	widgets  map[string]Widget
	unknown  map[string]bool // ids already reported as unknown

	focus  FocusRing
	follow bool // scroll the selection into view on next render

	mode     AppMode
	moveFrom int
	moveTo   int
	pending  dashboard.PixelSize

	width    int
	height   int
	rowLines int

	viewport viewport.Model
	spinner  spinner.Model
	shelves  [][]dashboard.Placement
	initCmds []tea.Cmd
}

// Ensure DashboardView implements View.
var _ View = (*DashboardView)(nil)

// NewDashboardView creates the grid view. rowLines is the number of terminal
// lines per grid row.
func NewDashboardView(ctrl *dashboard.Controller, registry *dashboard.Registry[Widget], rowLines int) *DashboardView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	d := &DashboardView{
		ctrl:     ctrl,
		registry: registry,
		widgets:  make(map[string]Widget),
		unknown:  make(map[string]bool),
		rowLines: max(1, rowLines),
		viewport: viewport.New(fallbackWidth, fallbackHeight-chromeLines),
		spinner:  s,
	}
	d.initCmds = d.syncWidgets()
	return d
}

// Controller returns the dashboard controller.
func (d *DashboardView) Controller() *dashboard.Controller {
	return d.ctrl
}

// Mode returns the current input mode.
func (d *DashboardView) Mode() AppMode {
	return d.mode
}

// Selected returns the id of the selected widget, or "".
func (d *DashboardView) Selected() string {
	return d.focus.Current
}

// Widget returns the live instance for id.
func (d *DashboardView) Widget(id string) (Widget, bool) {
	w, ok := d.widgets[id]
	return w, ok
}

// Init implements View.
func (d *DashboardView) Init() tea.Cmd {
	cmds := append([]tea.Cmd{d.spinner.Tick}, d.initCmds...)
	d.initCmds = nil
	return tea.Batch(cmds...)
}

// syncWidgets creates instances for new ids and drops instances for removed
// ones. It returns the Init commands of the new instances. Ids without a
// registered factory are logged once and skipped.
func (d *DashboardView) syncWidgets() []tea.Cmd {
	order := d.ctrl.Order()
	var cmds []tea.Cmd
	renderable := make([]string, 0, len(order))
	for _, id := range order {
		if _, ok := d.widgets[id]; ok {
			renderable = append(renderable, id)
			continue
		}
		w, err := d.registry.New(id)
		if err != nil {
			if !d.unknown[id] {
				d.unknown[id] = true
				log.Printf("ui.DashboardView: skipping widget: %v", err)
			}
			continue
		}
		d.widgets[id] = w
		renderable = append(renderable, id)
		cmds = append(cmds, w.Init())
	}
	for id := range d.widgets {
		if !slices.Contains(renderable, id) {
			delete(d.widgets, id)
		}
	}
	d.focus.Sync(renderable)
	return cmds
}

// AddWidget appends id to the dashboard and starts its data loading.
func (d *DashboardView) AddWidget(id string) tea.Cmd {
	if !d.ctrl.Add(id) {
		return nil
	}
	cmds := d.syncWidgets()
	if d.focus.SetFocus(id) {
		d.follow = true
	}
	return tea.Batch(cmds...)
}

// ResetLayout restores the default layout and starts loading any widget it
// brings back.
func (d *DashboardView) ResetLayout() tea.Cmd {
	d.ctrl.Reset()
	d.mode = ModeDashboard
	cmds := d.syncWidgets()
	d.follow = true
	return tea.Batch(cmds...)
}

// Update implements View.
func (d *DashboardView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height
		d.ctrl.SetViewportWidth(msg.Width)
		d.viewport.Width = msg.Width
		d.viewport.Height = max(1, msg.Height-chromeLines)
		d.follow = true
		return d, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd
	case targetedMsg:
		if w, ok := d.widgets[msg.target()]; ok {
			nw, cmd := w.Update(msg)
			d.widgets[msg.target()] = nw
			return d, cmd
		}
		return d, nil
	case RefreshMsg:
		var cmds []tea.Cmd
		for id, w := range d.widgets {
			nw, cmd := w.Update(msg)
			d.widgets[id] = nw
			cmds = append(cmds, cmd)
		}
		return d, tea.Batch(cmds...)
	case RemoveWidgetMsg:
		d.removeSelected()
		return d, nil
	case ToggleExpandMsg:
		if d.focus.Current != "" {
			d.ctrl.ToggleExpand(d.focus.Current)
			d.follow = true
		}
		return d, nil
	case StartMoveMsg:
		d.startMove()
		return d, nil
	case StartResizeMsg:
		d.startResize()
		return d, nil
	case tea.KeyMsg:
		return d, d.handleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DashboardView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch d.mode {
	case ModeMove:
		d.handleMoveKey(msg.String())
		return nil
	case ModeResize:
		d.handleResizeKey(msg.String())
		return nil
	}
	switch msg.String() {
	case "left", "h", "shift+tab":
		d.focus.Prev()
		d.follow = true
	case "right", "l", "tab":
		d.focus.Next()
		d.follow = true
	case "up", "k":
		d.selectVertical(-1)
	case "down", "j":
		d.selectVertical(1)
	case "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (d *DashboardView) removeSelected() {
	idx := slices.Index(d.ctrl.Order(), d.focus.Current)
	if idx < 0 {
		return
	}
	d.ctrl.Remove(idx)
	d.syncWidgets()
	d.follow = true
}

func (d *DashboardView) startMove() {
	idx := slices.Index(d.ctrl.Order(), d.focus.Current)
	if idx < 0 {
		return
	}
	d.mode = ModeMove
	d.moveFrom, d.moveTo = idx, idx
}

func (d *DashboardView) handleMoveKey(k string) {
	switch k {
	case "left", "h", "up", "k", "shift+tab":
		d.moveTo = max(0, d.moveTo-1)
	case "right", "l", "down", "j", "tab":
		d.moveTo = min(d.ctrl.Len()-1, d.moveTo+1)
	case "enter", "m", " ":
		to := d.moveTo
		if d.ctrl.Reorder(dashboard.DragResult{Source: d.moveFrom, Destination: &to}) {
			d.syncWidgets()
		}
		d.endMode()
	case "esc", "q":
		// Dropped outside the grid: no destination.
		d.ctrl.Reorder(dashboard.DragResult{Source: d.moveFrom})
		d.endMode()
	}
}

// previewOrder is the order as it would be after dropping at moveTo.
func (d *DashboardView) previewOrder() []string {
	order := d.ctrl.Order()
	if d.moveFrom < 0 || d.moveFrom >= len(order) || d.moveTo < 0 || d.moveTo >= len(order) {
		return order
	}
	id := order[d.moveFrom]
	order = slices.Delete(order, d.moveFrom, d.moveFrom+1)
	return slices.Insert(order, d.moveTo, id)
}

func (d *DashboardView) startResize() {
	id := d.focus.Current
	if id == "" || d.ctrl.ViewportWidth() <= 0 {
		return
	}
	size := d.ctrl.SizeOf(id)
	d.mode = ModeResize
	d.pending = dashboard.PixelSize{
		Width:  float64(size.Width) * d.ctrl.ColumnWidth(),
		Height: float64(size.Height) * d.ctrl.RowHeight(),
	}
}

func (d *DashboardView) handleResizeKey(k string) {
	colW, rowH := d.ctrl.ColumnWidth(), d.ctrl.RowHeight()
	switch k {
	case "left", "h":
		d.pending.Width -= colW
	case "right", "l":
		d.pending.Width += colW
	case "H", "shift+left":
		d.pending.Width--
	case "L", "shift+right":
		d.pending.Width++
	case "up", "k":
		d.pending.Height -= rowH
	case "down", "j":
		d.pending.Height += rowH
	case "enter", "r":
		d.ctrl.Resize(d.focus.Current, d.pending)
		d.endMode()
		return
	case "esc", "q":
		d.endMode()
		return
	}
	maxH := float64(d.height)
	if maxH <= 0 {
		maxH = fallbackHeight
	}
	d.pending.Width = math.Max(colW, math.Min(d.pending.Width, float64(d.ctrl.ViewportWidth())))
	d.pending.Height = math.Max(rowH, math.Min(d.pending.Height, maxH))
}

func (d *DashboardView) endMode() {
	d.mode = ModeDashboard
	d.follow = true
}

// placements returns the layout to draw, including move and resize previews.
func (d *DashboardView) placements() []dashboard.Placement {
	switch d.mode {
	case ModeMove:
		return d.withExpansion(layout.Pack(d.previewOrder(), d.ctrl.Sizes(), d.ctrl.Columns()))
	case ModeResize:
		if size, ok := d.ctrl.GridSize(d.pending); ok {
			sizes := d.ctrl.Sizes()
			sizes[d.focus.Current] = size
			return d.withExpansion(layout.Pack(d.ctrl.Order(), sizes, d.ctrl.Columns()))
		}
	}
	return d.ctrl.Layout()
}

func (d *DashboardView) withExpansion(entries []layout.Entry) []dashboard.Placement {
	out := make([]dashboard.Placement, len(entries))
	for i, e := range entries {
		out[i] = dashboard.Placement{Entry: e, Expanded: d.ctrl.IsExpanded(e.ID)}
	}
	return out
}

// selectVertical moves the selection to the widget in the shelf above or
// below whose columns overlap the selected one.
func (d *DashboardView) selectVertical(dir int) {
	cur, curX := -1, 0
	for i, shelf := range d.shelves {
		for _, p := range shelf {
			if p.ID == d.focus.Current {
				cur, curX = i, p.X
			}
		}
	}
	next := cur + dir
	if cur < 0 || next < 0 || next >= len(d.shelves) {
		return
	}
	target := d.shelves[next][0].ID
	for _, p := range d.shelves[next] {
		if p.X <= curX {
			target = p.ID
		}
	}
	d.focus.SetFocus(target)
	d.follow = true
}

func (d *DashboardView) size() (int, int) {
	w, h := d.width, d.height
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}
	return w, h
}

// renderGrid draws the placements shelf by shelf. Widgets sharing a grid row
// are joined side by side; shelves are stacked, so rows whose packed
// positions overlap are drawn one after the other. Expanded widgets take a
// shelf of their own spanning the full width and the visible height.
// It returns the grid and the line span of the selected widget.
func (d *DashboardView) renderGrid() (grid string, selTop, selBottom int) {
	total, _ := d.size()
	cols := max(1, d.ctrl.Columns())
	edge := func(x int) int {
		return min(total, int(math.Round(float64(x)*float64(total)/float64(cols))))
	}

	var blocks []string
	var shelves [][]dashboard.Placement
	var parts []string
	var shelf []dashboard.Placement
	lines, cursorX, shelfY := 0, 0, -1
	selTop, selBottom = -1, -1

	flush := func() {
		if len(parts) == 0 {
			return
		}
		block := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		blocks = append(blocks, block)
		shelves = append(shelves, shelf)
		for _, p := range shelf {
			if p.ID == d.focus.Current {
				selTop, selBottom = lines, lines+lipgloss.Height(block)
			}
		}
		lines += lipgloss.Height(block)
		parts, shelf, cursorX = nil, nil, 0
	}

	for _, p := range d.placements() {
		w, ok := d.widgets[p.ID]
		if !ok {
			continue
		}
		if p.Expanded {
			flush()
			parts = append(parts, d.renderBox(p.ID, w, total, max(p.H*d.rowLines, d.viewport.Height)))
			shelf = append(shelf, p)
			flush()
			shelfY = -1
			continue
		}
		if p.Y != shelfY {
			flush()
			shelfY = p.Y
		}
		left, right := edge(p.X), edge(p.X+p.W)
		if right <= left {
			continue
		}
		if gap := left - cursorX; gap > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
		}
		parts = append(parts, d.renderBox(p.ID, w, right-left, p.H*d.rowLines))
		shelf = append(shelf, p)
		cursorX = right
	}
	flush()
	d.shelves = shelves
	return strings.Join(blocks, "\n"), selTop, selBottom
}

// renderBox draws one widget in a bordered box of boxW x boxH cells.
func (d *DashboardView) renderBox(id string, w Widget, boxW, boxH int) string {
	style := Styles.Widget
	switch {
	case d.mode == ModeMove && d.movingID() == id:
		style = Styles.WidgetMoving
	case d.mode == ModeResize && d.focus.Current == id:
		style = Styles.WidgetMoving
	case d.focus.Current == id:
		style = Styles.WidgetSelected
	}
	innerW, innerH := max(1, boxW-2), max(1, boxH-2)

	title := Styles.WidgetTitle.Render(id)
	if d.focus.Current == id && d.mode == ModeDashboard {
		hint := "e:expand"
		if d.ctrl.IsExpanded(id) {
			hint = "e:collapse"
		}
		title += " " + Styles.Hint.Render(hint+" x:remove m:move r:resize")
	}
	content := clip(title, innerW, 1)
	if innerH > 1 {
		body := clip(w.View(innerW, innerH-1), innerW, innerH-1)
		content += "\n" + body
	}
	return style.Width(innerW).Height(innerH).Render(content)
}

func (d *DashboardView) movingID() string {
	order := d.ctrl.Order()
	if d.moveFrom < 0 || d.moveFrom >= len(order) {
		return ""
	}
	return order[d.moveFrom]
}

func (d *DashboardView) loading() bool {
	for _, w := range d.widgets {
		if lw, ok := w.(loadingWidget); ok && lw.Loading() {
			return true
		}
	}
	return false
}

// View implements View.
func (d *DashboardView) View() string {
	width, height := d.size()
	d.viewport.Width = width
	d.viewport.Height = max(1, height-chromeLines)

	grid, selTop, selBottom := d.renderGrid()
	if len(d.widgets) == 0 {
		grid = Styles.Empty.Render("No widgets. Press a to add one.")
	}
	d.viewport.SetContent(grid)
	if d.follow && selTop >= 0 {
		switch {
		case selTop < d.viewport.YOffset:
			d.viewport.SetYOffset(selTop)
		case selBottom > d.viewport.YOffset+d.viewport.Height:
			d.viewport.SetYOffset(max(selTop, selBottom-d.viewport.Height))
		}
		d.follow = false
	}
	return d.header() + "\n" + d.viewport.View() + "\n" + d.footer()
}

func (d *DashboardView) header() string {
	h := Styles.Title.Render("Customizable Dashboard")
	if d.loading() {
		h += " " + d.spinner.View()
	}
	return h + "  " + Styles.Muted.Render(fmt.Sprintf("%d cols · %d widgets", d.ctrl.Columns(), len(d.widgets)))
}

func (d *DashboardView) footer() string {
	switch d.mode {
	case ModeMove:
		return Styles.Hint.Render(fmt.Sprintf("move %s to #%d · ←→ move · enter drop · esc cancel", d.movingID(), d.moveTo+1))
	case ModeResize:
		size, _ := d.ctrl.GridSize(d.pending)
		return Styles.Hint.Render(fmt.Sprintf("resize %s to %d×%d · ←→↑↓ step · H/L fine · enter apply · esc cancel",
			d.focus.Current, size.Width, size.Height))
	}
	return Styles.Hint.Render("←→↑↓ select · a add · x remove · e expand · m move · r resize · R refresh · SPC menu · q quit")
}
