package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition for screens and modals; implements Bubble
// Tea's Init/Update/View.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Widget is one dashboard tile. Unlike a View it is rendered into a box
// whose size the grid decides.
type Widget interface {
	Init() tea.Cmd
	Update(tea.Msg) (Widget, tea.Cmd)
	View(width, height int) string
}

// loadingWidget is implemented by widgets that fetch data.
type loadingWidget interface {
	Loading() bool
}
