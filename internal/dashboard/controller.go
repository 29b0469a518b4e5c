package dashboard

import (
	"log"
	"math"
	"slices"

	"cryptodash/internal/layout"
)

//go:generate mockgen -source=controller.go -destination=mock_store_test.go -package=dashboard

// Store loads and saves the persisted layout inputs.
type Store interface {
	Load() ([]string, layout.Sizes)
	Save(order []string, sizes layout.Sizes) error
}

// DefaultRowHeight is the height of one grid row in viewport units (pixels).
const DefaultRowHeight = 50

// DefaultColumns is the column count before the first viewport signal.
const DefaultColumns = 12

// Options configures a Controller.
type Options struct {
	// Breakpoints resolves the column count from the viewport width.
	// Defaults to layout.DefaultBreakpoints.
	Breakpoints layout.Breakpoints
	// RowHeight is the viewport height of one grid row, used by Resize.
	// Defaults to DefaultRowHeight.
	RowHeight float64
	// DropSizeOnRemove forgets a widget's stored size when it is removed.
	DropSizeOnRemove bool
}

// PixelSize is a widget size in viewport units, as reported by the view at
// the end of a resize gesture.
type PixelSize struct {
	Width  float64
	Height float64
}

// DragResult describes the end of a drag gesture over the display order.
// Destination is nil when the drag was cancelled or dropped outside the grid.
type DragResult struct {
	Source      int
	Destination *int
}

// Placement is a layout entry plus its transient expansion state.
type Placement struct {
	layout.Entry
	Expanded bool
}

// Controller owns the dashboard state and applies the user's edits to it.
// It is not safe for concurrent use; callers drive it from a single event
// loop.
type Controller struct {
	store Store
	opts  Options

	order    []string
	sizes    layout.Sizes
	expanded map[string]bool
	viewport int
	columns  int
	addOpen  bool
}

// New creates a controller seeded from store.
func New(store Store, opts Options) *Controller {
	if len(opts.Breakpoints) == 0 {
		opts.Breakpoints = layout.DefaultBreakpoints
	}
	if opts.RowHeight <= 0 {
		opts.RowHeight = DefaultRowHeight
	}
	order, sizes := store.Load()
	if sizes == nil {
		sizes = layout.Sizes{}
	}
	return &Controller{
		store:    store,
		opts:     opts,
		order:    dedupe(order),
		sizes:    sizes,
		expanded: make(map[string]bool),
		columns:  DefaultColumns,
	}
}

func dedupe(order []string) []string {
	seen := make(map[string]bool, len(order))
	out := make([]string, 0, len(order))
	for _, id := range order {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Order returns a copy of the display order.
func (c *Controller) Order() []string {
	return slices.Clone(c.order)
}

// Sizes returns a copy of the stored size map.
func (c *Controller) Sizes() layout.Sizes {
	return c.sizes.Clone()
}

// SizeOf returns the effective size of id.
func (c *Controller) SizeOf(id string) layout.Size {
	return layout.SizeOf(id, c.sizes)
}

// Contains reports whether id is on the dashboard.
func (c *Controller) Contains(id string) bool {
	return slices.Contains(c.order, id)
}

// Len returns the number of widgets on the dashboard.
func (c *Controller) Len() int {
	return len(c.order)
}

// Columns returns the current column count.
func (c *Controller) Columns() int {
	return c.columns
}

// ViewportWidth returns the last viewport width seen.
func (c *Controller) ViewportWidth() int {
	return c.viewport
}

// IsExpanded reports whether id is expanded.
func (c *Controller) IsExpanded(id string) bool {
	return c.expanded[id]
}

// AddDialogOpen reports whether the add-widget dialog is showing.
func (c *Controller) AddDialogOpen() bool {
	return c.addOpen
}

// OpenAddDialog shows the add-widget dialog.
func (c *Controller) OpenAddDialog() {
	c.addOpen = true
}

// CloseAddDialog hides the add-widget dialog without adding anything.
func (c *Controller) CloseAddDialog() {
	c.addOpen = false
}

// SetViewportWidth records a new viewport width and re-resolves the column
// count. Returns true if the column count changed.
func (c *Controller) SetViewportWidth(width int) bool {
	c.viewport = width
	cols := c.opts.Breakpoints.Columns(width)
	if cols == c.columns {
		return false
	}
	c.columns = cols
	return true
}

// Layout packs the current order into the current column count.
func (c *Controller) Layout() []Placement {
	entries := layout.Pack(c.order, c.sizes, c.columns)
	out := make([]Placement, len(entries))
	for i, e := range entries {
		out[i] = Placement{Entry: e, Expanded: c.expanded[e.ID]}
	}
	return out
}

// Reorder moves the widget at r.Source to r.Destination. A missing
// destination or an out-of-range index leaves the order unchanged.
// Returns true if the order changed.
func (c *Controller) Reorder(r DragResult) bool {
	if r.Destination == nil {
		return false
	}
	src, dst := r.Source, *r.Destination
	if src < 0 || src >= len(c.order) || dst < 0 || dst >= len(c.order) || src == dst {
		return false
	}
	id := c.order[src]
	items := slices.Delete(slices.Clone(c.order), src, src+1)
	c.order = slices.Insert(items, dst, id)
	c.persist()
	return true
}

// Remove drops the widget at display index. Out-of-range indexes are
// ignored. Returns the removed id, or "" if nothing was removed.
func (c *Controller) Remove(index int) string {
	if index < 0 || index >= len(c.order) {
		return ""
	}
	id := c.order[index]
	c.order = slices.Delete(slices.Clone(c.order), index, index+1)
	delete(c.expanded, id)
	if c.opts.DropSizeOnRemove {
		delete(c.sizes, id)
	}
	c.persist()
	return id
}

// Add appends id unless it is already present. The add dialog is closed
// either way. Returns true if id was added.
func (c *Controller) Add(id string) bool {
	c.addOpen = false
	if id == "" || c.Contains(id) {
		return false
	}
	c.order = append(slices.Clone(c.order), id)
	c.persist()
	return true
}

// Reset restores the default order and sizes and collapses every widget.
func (c *Controller) Reset() {
	c.order = layout.DefaultOrderList()
	c.sizes = layout.DefaultSizeMap()
	c.expanded = make(map[string]bool)
	c.persist()
}

// Resize converts a viewport-unit size to grid units using the current
// viewport width, column count and row height, and stores it for id.
// Results are rounded to the nearest unit; values below one unit become
// one. Without a known viewport width the call is ignored.
func (c *Controller) Resize(id string, px PixelSize) (layout.Size, bool) {
	size, ok := c.GridSize(px)
	if !ok {
		return layout.Size{}, false
	}
	c.sizes[id] = size
	c.persist()
	return size, true
}

// GridSize converts a viewport-unit size to grid units the way Resize does,
// without storing it. ok is false while the viewport width is unknown.
func (c *Controller) GridSize(px PixelSize) (size layout.Size, ok bool) {
	if c.viewport <= 0 || c.columns <= 0 {
		return layout.Size{}, false
	}
	colWidth := float64(c.viewport) / float64(c.columns)
	return layout.Size{
		Width:  max(1, int(math.Round(px.Width/colWidth))),
		Height: max(1, int(math.Round(px.Height/c.opts.RowHeight))),
	}, true
}

// ToggleExpand flips the expansion state of id and returns the new state.
// Stored sizes are not touched.
func (c *Controller) ToggleExpand(id string) bool {
	c.expanded[id] = !c.expanded[id]
	return c.expanded[id]
}

// ColumnWidth returns the viewport width of one grid column.
func (c *Controller) ColumnWidth() float64 {
	if c.columns <= 0 {
		return 0
	}
	return float64(c.viewport) / float64(c.columns)
}

// RowHeight returns the viewport height of one grid row.
func (c *Controller) RowHeight() float64 {
	return c.opts.RowHeight
}

func (c *Controller) persist() {
	if err := c.store.Save(c.Order(), c.Sizes()); err != nil {
		log.Printf("dashboard.persist: failed to save layout: %v", err)
	}
}
