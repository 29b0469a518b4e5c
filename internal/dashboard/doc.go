// Package dashboard holds the dashboard's state machine.
//
// A Controller owns the widget order, the size map, the per-widget expansion
// flags and the column count. Views call its transition methods (Reorder,
// Remove, Add, Resize, ToggleExpand, SetViewportWidth) and read back Layout.
// Order and size changes are written through to the injected Store.
//
// Registry maps widget identities to factories so the view layer can turn an
// id into a concrete widget, with ErrUnknownWidget for ids it does not know.
package dashboard
