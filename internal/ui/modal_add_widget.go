package ui

import (
	"slices"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// AddWidgetModal lists the registered widget ids for adding to the dashboard.
type AddWidgetModal struct {
	list list.Model
}

type addWidgetItem struct {
	id      string
	present bool
}

func (i addWidgetItem) FilterValue() string { return i.id }
func (i addWidgetItem) Title() string {
	if i.present {
		return i.id + " ✓"
	}
	return i.id
}
func (i addWidgetItem) Description() string { return "" }

// Ensure AddWidgetModal implements View.
var _ View = (*AddWidgetModal)(nil)

// NewAddWidgetModal creates a picker over ids. Ids in present are marked as
// already on the dashboard; picking one again is allowed and changes nothing.
func NewAddWidgetModal(ids, present []string) *AddWidgetModal {
	items := make([]list.Item, len(ids))
	for i, id := range ids {
		items[i] = addWidgetItem{id: id, present: slices.Contains(present, id)}
	}
	l := list.New(items, NewCompactListDelegate(), 40, min(len(ids)+4, 20))
	l.Title = "Add a new widget"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &AddWidgetModal{list: l}
}

// Init implements View.
func (m *AddWidgetModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *AddWidgetModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			if sel, ok := m.list.SelectedItem().(addWidgetItem); ok {
				return m, func() tea.Msg { return AddWidgetMsg{ID: sel.id} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *AddWidgetModal) View() string {
	help := "Choose a widget to add to your dashboard.\nEnter: select  /: filter  Esc: cancel"
	return Styles.Box.Render(m.list.View() + "\n" + Styles.Hint.Render(help))
}

// Selected returns the id under the cursor.
func (m *AddWidgetModal) Selected() string {
	if sel, ok := m.list.SelectedItem().(addWidgetItem); ok {
		return sel.id
	}
	return ""
}
