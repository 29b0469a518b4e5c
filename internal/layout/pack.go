package layout

// Entry is the placement of one widget on the grid, in grid units.
type Entry struct {
	ID string
	X  int
	Y  int
	W  int
	H  int
}

// Pack places widgets left to right, top to bottom, in a single greedy pass.
//
// Iteration follows order exactly. A widget that does not fit on the current
// shelf starts a new one; a widget wider than columns is placed at column 0
// and overflows (the renderer clips it). When a shelf fills up the row
// advances by the height of the widget that filled it, not by the tallest
// widget on the shelf, so mixed heights can overlap or leave gaps. A wrap
// likewise advances by the previous widget's height rather than by one row,
// which places B of two 8x6 widgets on 12 columns at (0,6).
func Pack(order []string, sizes Sizes, columns int) []Entry {
	if columns < 1 {
		columns = 1
	}
	entries := make([]Entry, 0, len(order))
	col, row, lastHeight := 0, 0, 0
	for _, id := range order {
		size := SizeOf(id, sizes)
		if col > 0 && col+size.Width > columns {
			col = 0
			row += lastHeight
		}
		entries = append(entries, Entry{ID: id, X: col, Y: row, W: size.Width, H: size.Height})
		lastHeight = size.Height
		col += size.Width
		if col >= columns {
			col = 0
			row += size.Height
		}
	}
	return entries
}
