package ui

import "slices"

// FocusRing tracks the selected widget and rotates selection through the
// display order.
type FocusRing struct {
	Current  string   // ID of the selected widget
	Order    []string // Rotation order
	OnChange func(from, to string)
}

// Sync replaces the rotation order. If the current selection is gone, the
// widget now at its old position (or the last one) is selected.
func (f *FocusRing) Sync(order []string) {
	idx := f.Index()
	f.Order = slices.Clone(order)
	if len(f.Order) == 0 {
		f.set("")
		return
	}
	if slices.Contains(f.Order, f.Current) {
		return
	}
	idx = max(0, min(idx, len(f.Order)-1))
	f.set(f.Order[idx])
}

// Index returns the position of the current selection, or -1.
func (f *FocusRing) Index() int {
	return slices.Index(f.Order, f.Current)
}

// Next advances selection to the next widget, wrapping around.
// Returns the new current ID.
func (f *FocusRing) Next() string {
	if len(f.Order) == 0 {
		return ""
	}
	f.set(f.Order[(f.Index()+1)%len(f.Order)])
	return f.Current
}

// Prev moves selection to the previous widget, wrapping around.
func (f *FocusRing) Prev() string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.Index() - 1
	if idx < 0 {
		idx = len(f.Order) - 1
	}
	f.set(f.Order[idx])
	return f.Current
}

// SetFocus selects the given ID.
// Returns true if the ID exists in order.
func (f *FocusRing) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.set(id)
	return true
}

func (f *FocusRing) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
