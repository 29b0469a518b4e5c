// Package layoutstore persists the dashboard layout inputs (widget order and
// size map) as two JSON blobs in a pluggable key-value backend.
//
// Loading never fails: absent or malformed state falls back to the built-in
// defaults from package layout.
package layoutstore
