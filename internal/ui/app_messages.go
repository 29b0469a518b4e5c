package ui

import (
	"time"

	"cryptodash/internal/prices"
)

// Data messages carry the id of the widget that asked for them and the
// sequence number of the request. A widget only accepts the response to its
// latest request.

// AssetsLoadedMsg is sent when an asset list fetch completes.
type AssetsLoadedMsg struct {
	Widget string
	Seq    int
	Assets []prices.Asset
	Err    error
}

// HistoryLoadedMsg is sent when a price history fetch completes.
type HistoryLoadedMsg struct {
	Widget string
	Seq    int
	Points []prices.Point
	Err    error
}

// FearGreedLoadedMsg is sent when a fear and greed index fetch completes.
type FearGreedLoadedMsg struct {
	Widget string
	Seq    int
	Index  prices.FearGreed
	Err    error
}

func (m AssetsLoadedMsg) target() string    { return m.Widget }
func (m HistoryLoadedMsg) target() string   { return m.Widget }
func (m FearGreedLoadedMsg) target() string { return m.Widget }

// targetedMsg is a message meant for a single widget.
type targetedMsg interface {
	target() string
}

// RefreshMsg asks every widget to refetch its data.
type RefreshMsg struct{}

// tickMsg drives the periodic refresh.
type tickMsg time.Time

// ShowAddWidgetMsg opens the add-widget dialog (SPC w a).
type ShowAddWidgetMsg struct{}

// AddWidgetMsg is sent when a widget id is picked in the add-widget dialog.
type AddWidgetMsg struct {
	ID string
}

// DismissModalMsg closes the top overlay without acting.
type DismissModalMsg struct{}

// RemoveWidgetMsg removes the selected widget (SPC w d).
type RemoveWidgetMsg struct{}

// ToggleExpandMsg expands or collapses the selected widget (SPC w e).
type ToggleExpandMsg struct{}

// StartMoveMsg grabs the selected widget for reordering (SPC w m).
type StartMoveMsg struct{}

// StartResizeMsg starts resizing the selected widget (SPC w r).
type StartResizeMsg struct{}

// ShowResetLayoutMsg asks for confirmation before resetting the layout
// (SPC w R).
type ShowResetLayoutMsg struct{}

// ResetLayoutMsg restores the default widget order and sizes.
type ResetLayoutMsg struct{}
