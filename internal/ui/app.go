package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cryptodash/internal/dashboard"
)

// AppModel is the root model: the dashboard grid, the overlay stack for
// modals, and the SPC-leader keybind system.
type AppModel struct {
	Dashboard  *DashboardView
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Registry   *dashboard.Registry[Widget]
	// Refresh is the interval between automatic price refreshes.
	Refresh time.Duration

	width  int
	height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.Dashboard.Init(), tickCmd(a.Refresh))
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case tickMsg:
		_, cmd := a.Dashboard.Update(RefreshMsg{})
		return a, tea.Batch(cmd, tickCmd(a.Refresh))
	case ShowAddWidgetMsg:
		a.showAddWidget()
		return a, nil
	case AddWidgetMsg:
		a.Overlays.Pop()
		return a, a.Dashboard.AddWidget(msg.ID)
	case ShowResetLayoutMsg:
		if a.Overlays.Len() == 0 {
			a.Overlays.Push(Overlay{View: NewResetLayoutConfirmModal(a.Dashboard.Controller().Len())})
		}
		return a, nil
	case ResetLayoutMsg:
		a.Overlays.Pop()
		return a, a.Dashboard.ResetLayout()
	case DismissModalMsg:
		a.Overlays.Dismiss()
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.Overlays.Len() > 0 {
			cmd, _ := a.Overlays.UpdateTop(msg)
			return a, cmd
		}
		// Keybinds only apply while no widget is grabbed.
		if mode := a.Dashboard.Mode(); mode == ModeDashboard && a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg, mode); consumed {
				return a, keyCmd
			}
		}
		_, cmd := a.Dashboard.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	if a.Overlays.Len() > 0 {
		if _, isData := msg.(targetedMsg); !isData {
			cmd, _ := a.Overlays.UpdateTop(msg)
			cmds = append(cmds, cmd)
		}
	}
	_, cmd := a.Dashboard.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if a.Overlays.Len() > 0 {
		return a.Overlays.Render(a.width, a.height)
	}
	base := a.Dashboard.View()
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler, a.Dashboard.Mode())
	}
	return base
}

func (a *AppModel) showAddWidget() {
	if a.Overlays.Len() > 0 {
		return
	}
	ctrl := a.Dashboard.Controller()
	ctrl.OpenAddDialog()
	a.Overlays.Push(Overlay{
		View:      NewAddWidgetModal(a.Registry.IDs(), ctrl.Order()),
		OnDismiss: ctrl.CloseAddDialog,
	})
}

// NewKeybinds returns the default key bindings.
func NewKeybinds() *KeybindRegistry {
	send := func(msg tea.Msg) tea.Cmd {
		return func() tea.Msg { return msg }
	}
	dash := []AppMode{ModeDashboard}

	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDescForMode("R", send(RefreshMsg{}), "Refresh", dash)
	reg.BindWithDescForMode("SPC r", send(RefreshMsg{}), "Refresh prices", dash)

	reg.BindWithDescForMode("a", send(ShowAddWidgetMsg{}), "Add widget", dash)
	reg.BindWithDescForMode("x", send(RemoveWidgetMsg{}), "Remove widget", dash)
	reg.BindWithDescForMode("e", send(ToggleExpandMsg{}), "Expand widget", dash)
	reg.BindWithDescForMode("enter", send(ToggleExpandMsg{}), "Expand widget", dash)
	reg.BindWithDescForMode("m", send(StartMoveMsg{}), "Move widget", dash)
	reg.BindWithDescForMode("r", send(StartResizeMsg{}), "Resize widget", dash)

	reg.BindWithDescForMode("SPC w a", send(ShowAddWidgetMsg{}), "Add", dash)
	reg.BindWithDescForMode("SPC w d", send(RemoveWidgetMsg{}), "Remove", dash)
	reg.BindWithDescForMode("SPC w e", send(ToggleExpandMsg{}), "Expand/collapse", dash)
	reg.BindWithDescForMode("SPC w m", send(StartMoveMsg{}), "Move", dash)
	reg.BindWithDescForMode("SPC w r", send(StartResizeMsg{}), "Resize", dash)
	reg.BindWithDescForMode("SPC w R", send(ShowResetLayoutMsg{}), "Reset layout", dash)
	return reg
}

// NewAppModel creates the root application model.
func NewAppModel(ctrl *dashboard.Controller, deps Deps, rowLines int) *AppModel {
	registry := NewWidgetRegistry(deps)
	return &AppModel{
		Dashboard:  NewDashboardView(ctrl, registry, rowLines),
		KeyHandler: NewKeyHandler(NewKeybinds()),
		Registry:   registry,
		Refresh:    deps.Refresh,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
