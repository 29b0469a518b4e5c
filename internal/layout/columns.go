package layout

// Breakpoint is one tier of a column table: viewports narrower than MaxWidth
// get Columns columns. A MaxWidth of zero means unbounded.
type Breakpoint struct {
	MaxWidth int
	Columns  int
}

// Breakpoints is an ordered tier table, narrowest first.
type Breakpoints []Breakpoint

// DefaultBreakpoints is the viewport table in pixels.
var DefaultBreakpoints = Breakpoints{
	{MaxWidth: 640, Columns: 1},
	{MaxWidth: 768, Columns: 2},
	{MaxWidth: 1024, Columns: 3},
	{MaxWidth: 1280, Columns: 4},
	{MaxWidth: 0, Columns: 6},
}

// TerminalBreakpoints is the viewport table in terminal cells.
var TerminalBreakpoints = Breakpoints{
	{MaxWidth: 70, Columns: 1},
	{MaxWidth: 100, Columns: 4},
	{MaxWidth: 140, Columns: 8},
	{MaxWidth: 180, Columns: 12},
	{MaxWidth: 0, Columns: 16},
}

// Columns resolves the column count for a viewport width.
// An empty table resolves to a single column.
func (b Breakpoints) Columns(width int) int {
	for _, bp := range b {
		if bp.MaxWidth == 0 || width < bp.MaxWidth {
			return bp.Columns
		}
	}
	if len(b) > 0 {
		return b[len(b)-1].Columns
	}
	return 1
}
