// Package ui is the Bubble Tea front end of the dashboard.
//
// The pieces:
//   - AppModel: root model; routes keys through the keybind registry and the
//     overlay stack, and drives periodic price refreshes
//   - DashboardView: renders the packed widget grid and handles selection,
//     move and resize modes on top of a dashboard.Controller
//   - Widget: a dashboard tile built from the widget registry
//   - AddWidgetModal: list picker over the registered widget ids
package ui
